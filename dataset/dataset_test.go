package dataset

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/scibma/pkg/errors"
)

const sampleCSV = `flow, rain, temp, turbidity
10.5, 1.0, 20, 3
11.0, NA, 21, 4
12.5, 2.0, 19, 5
, 1.5, 18, 6
13.0, 2.5, 22, 7
`

func TestReadCSV(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader(sampleCSV), "flow", nil)
	require.NoError(t, err)

	n, p := ds.Dims()
	assert.Equal(t, 5, n)
	assert.Equal(t, 3, p)
	assert.Equal(t, []string{"rain", "temp", "turbidity"}, ds.Names)
	assert.Equal(t, 10.5, ds.Y.AtVec(0))
	assert.True(t, math.IsNaN(ds.X.At(1, 0)))
	assert.True(t, math.IsNaN(ds.Y.AtVec(3)))

	ds, err = ReadCSV(strings.NewReader(sampleCSV), "flow", []string{"turbidity", "rain"})
	require.NoError(t, err)
	assert.Equal(t, []string{"turbidity", "rain"}, ds.Names)
	assert.Equal(t, []float64{3, 1}, ds.X.RawRowView(0))
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		response   string
		predictors []string
	}{
		{"empty input", "", "y", nil},
		{"header only", "y,x\n", "y", nil},
		{"unknown response", "y,x\n1,2\n", "z", nil},
		{"unknown predictor", "y,x\n1,2\n", "y", []string{"w"}},
		{"no predictors", "y\n1\n", "y", nil},
		{"not a number", "y,x\n1,abc\n", "y", nil},
		{"ragged row", "y,x\n1,2\n3\n", "y", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := ReadCSV(strings.NewReader(tt.input), tt.response, tt.predictors)
			assert.Error(t, err)
			assert.Nil(t, ds)
		})
	}

	_, err := ReadCSV(strings.NewReader("y,x\n1,abc\n"), "y", nil)
	assert.Contains(t, err.Error(), `line 2, column "x"`)
}

func TestDropNA(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader(sampleCSV), "flow", nil)
	require.NoError(t, err)

	clean, dropped, err := DropNA(ds)
	require.NoError(t, err)
	assert.Equal(t, 2, dropped)
	n, _ := clean.Dims()
	assert.Equal(t, 3, n)
	assert.Equal(t, []float64{10.5, 12.5, 13.0}, clean.Y.RawVector().Data)
	assert.Equal(t, []float64{2.5, 22, 7}, clean.X.RawRowView(2))

	allMissing, err := ReadCSV(strings.NewReader("y,x\nNA,1\n2,nan\n"), "y", nil)
	require.NoError(t, err)
	_, _, err = DropNA(allMissing)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}

func TestTrainTestSplit(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("y,x\n")
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&sb, "%d,%d\n", i, i%10)
	}
	ds, err := ReadCSV(strings.NewReader(sb.String()), "y", nil)
	require.NoError(t, err)

	train, test, err := TrainTestSplit(ds, 0.33, 42)
	require.NoError(t, err)
	nTrain, _ := train.Dims()
	nTest, _ := test.Dims()
	assert.Equal(t, 10, nTest)
	assert.Equal(t, 20, nTrain)

	// Every row lands in exactly one side.
	var ids []int
	for i := 0; i < nTrain; i++ {
		ids = append(ids, int(train.Y.AtVec(i)))
	}
	for i := 0; i < nTest; i++ {
		ids = append(ids, int(test.Y.AtVec(i)))
	}
	sort.Ints(ids)
	for i, id := range ids {
		assert.Equal(t, i, id)
	}

	// Rows keep their pairing of response and predictors.
	for i := 0; i < nTest; i++ {
		id := int(test.Y.AtVec(i))
		assert.Equal(t, float64(id%10), test.X.At(i, 0))
	}

	again, _, err := TrainTestSplit(ds, 0.33, 42)
	require.NoError(t, err)
	assert.Equal(t, train.Y.RawVector().Data, again.Y.RawVector().Data)

	other, _, err := TrainTestSplit(ds, 0.33, 43)
	require.NoError(t, err)
	assert.NotEqual(t, train.Y.RawVector().Data, other.Y.RawVector().Data)
}

func TestTrainTestSplitErrors(t *testing.T) {
	ds, err := ReadCSV(strings.NewReader("y,x\n1,2\n3,4\n"), "y", nil)
	require.NoError(t, err)

	for _, size := range []float64{0, 1, -0.5, math.NaN(), 0.99} {
		_, _, err := TrainTestSplit(ds, size, 1)
		assert.Error(t, err, "testSize=%v", size)
	}
}
