package bma

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/YuminosukeSato/scibma/core/model"
	"github.com/YuminosukeSato/scibma/pkg/errors"
)

const (
	headerName        = "Variable Name"
	headerProbability = "Probability"
	headerCoefficient = "Avg. Coefficient"
)

// SummaryRow is one predictor in a Summary.
type SummaryRow struct {
	Name        string
	Probability float64
	Coefficient float64
}

// Summary lists every predictor in column order.
type Summary []SummaryRow

// Summary returns the posterior inclusion probability and averaged coefficient
// of every predictor.
func (b *BMA) Summary() (Summary, error) {
	if !b.IsFitted() {
		return nil, errors.NewNotFittedError("BMA", "Summary")
	}
	return b.result.Summary(), nil
}

// Summary builds the table rows of a posterior.
func (r *Result) Summary() Summary {
	s := make(Summary, len(r.Names))
	for j, name := range r.Names {
		s[j] = SummaryRow{
			Name:        name,
			Probability: r.Probabilities[j],
			Coefficient: r.Coefficients[j],
		}
	}
	return s
}

// String renders s as an aligned text table.
func (s Summary) String() string {
	var sb strings.Builder
	_, _ = s.WriteTo(&sb)
	return sb.String()
}

// WriteTo writes the table to w.
func (s Summary) WriteTo(w io.Writer) (int64, error) {
	nameWidth := len(headerName)
	for _, row := range s {
		if len(row.Name) > nameWidth {
			nameWidth = len(row.Name)
		}
	}
	probWidth := len(headerProbability)
	coefWidth := len(headerCoefficient)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%-*s | %*s | %*s\n", nameWidth, headerName, probWidth, headerProbability, coefWidth, headerCoefficient)
	fmt.Fprintf(&sb, "%s-+-%s-+-%s\n",
		strings.Repeat("-", nameWidth), strings.Repeat("-", probWidth), strings.Repeat("-", coefWidth))
	for _, row := range s {
		fmt.Fprintf(&sb, "%-*s | %*.6f | %*.6f\n",
			nameWidth, row.Name, probWidth, row.Probability, coefWidth, row.Coefficient)
	}
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

// Fingerprint hashes the names, probabilities and coefficients of r. Two
// posteriors with equal fingerprints are bit-identical with overwhelming
// probability.
func (r *Result) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [8]byte
	for j, name := range r.Names {
		_, _ = d.WriteString(name)
		_, _ = d.Write([]byte{0})
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(r.Probabilities[j]))
		_, _ = d.Write(buf[:])
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(r.Coefficients[j]))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}

// Weights exports the posterior for serialization with model.SaveWeights.
func (b *BMA) Weights() (*model.ModelWeights, error) {
	if !b.IsFitted() {
		return nil, errors.NewNotFittedError("BMA", "Weights")
	}
	r := b.result
	return &model.ModelWeights{
		ModelType:              "BMA",
		Version:                model.WeightsVersion,
		Features:               append([]string(nil), r.Names...),
		Coefficients:           append([]float64(nil), r.Coefficients...),
		InclusionProbabilities: append([]float64(nil), r.Probabilities...),
		Hyperparameters: map[string]interface{}{
			"max_vars":     b.cfg.MaxVars,
			"priors":       append([]float64(nil), b.priors...),
			"window_ratio": b.cfg.WindowRatio,
			"precision":    b.cfg.Precision,
			"on_failure":   b.cfg.OnFitFailure.String(),
		},
		Metadata: map[string]interface{}{
			"estimator_id": b.id,
			"candidates":   r.Candidates,
			"accepted":     r.Accepted,
			"rejected":     r.Rejected,
			"failed":       r.Failed,
			"fingerprint":  strconv.FormatUint(r.Fingerprint(), 16),
			"n_obs":        b.nRows,
		},
		IsFitted: true,
	}, nil
}
