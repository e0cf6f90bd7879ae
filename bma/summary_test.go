package bma

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/scibma/pkg/errors"
)

func TestSummaryTable(t *testing.T) {
	s := Summary{
		{Name: "const", Probability: 1, Coefficient: 0.5},
		{Name: "education_years", Probability: 0.25, Coefficient: -1.125},
	}

	lines := strings.Split(strings.TrimRight(s.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Variable Name   | Probability | Avg. Coefficient", lines[0])
	assert.Equal(t, "----------------+-------------+-----------------", lines[1])
	assert.Equal(t, "const           |    1.000000 |         0.500000", lines[2])
	assert.Equal(t, "education_years |    0.250000 |        -1.125000", lines[3])

	var buf bytes.Buffer
	n, err := s.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, s.String(), buf.String())
}

func TestBMASummary(t *testing.T) {
	b := fittedExact(t)
	res, _ := b.Result()

	s, err := b.Summary()
	require.NoError(t, err)
	require.Len(t, s, 3)
	for j, row := range s {
		assert.Equal(t, res.Names[j], row.Name)
		assert.Equal(t, res.Probabilities[j], row.Probability)
		assert.Equal(t, res.Coefficients[j], row.Coefficient)
	}

	y, X := exactData()
	unfitted, err := New(y, X, nil, WithLogger(quietLogger()))
	require.NoError(t, err)
	_, err = unfitted.Summary()
	var nf *errors.NotFittedError
	assert.True(t, errors.As(err, &nf))
}

func TestFingerprint(t *testing.T) {
	base := &Result{
		Names:         []string{"a", "b"},
		Probabilities: []float64{0.5, 0.25},
		Coefficients:  []float64{1, 2},
	}
	same := &Result{
		Names:         []string{"a", "b"},
		Probabilities: []float64{0.5, 0.25},
		Coefficients:  []float64{1, 2},
	}
	changed := &Result{
		Names:         []string{"a", "b"},
		Probabilities: []float64{0.5, 0.25},
		Coefficients:  []float64{1, 2.0000000000000004},
	}
	renamed := &Result{
		Names:         []string{"ab", ""},
		Probabilities: []float64{0.5, 0.25},
		Coefficients:  []float64{1, 2},
	}

	assert.Equal(t, base.Fingerprint(), same.Fingerprint())
	assert.NotEqual(t, base.Fingerprint(), changed.Fingerprint())
	assert.NotEqual(t, base.Fingerprint(), renamed.Fingerprint())
}

func TestWeights(t *testing.T) {
	b := fittedExact(t)
	res, _ := b.Result()

	w, err := b.Weights()
	require.NoError(t, err)
	require.NoError(t, w.Validate())
	assert.Equal(t, "BMA", w.ModelType)
	assert.Equal(t, res.Names, w.Features)
	assert.Equal(t, res.Coefficients, w.Coefficients)
	assert.Equal(t, res.Probabilities, w.InclusionProbabilities)
	assert.Equal(t, 4, w.Metadata["accepted"])
	assert.Equal(t, "skip", w.Hyperparameters["on_failure"])

	y, X := exactData()
	unfitted, err := New(y, X, nil, WithLogger(quietLogger()))
	require.NoError(t, err)
	_, err = unfitted.Weights()
	assert.Error(t, err)
}
