package bma

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scibma/pkg/errors"
)

// Predict applies the averaged coefficients to data.
//
// The natural orientation has one observation per row and one column per
// predictor. When the column count does not match but the row count does,
// data is read transposed (one observation per column). Square input is
// always read in the natural orientation.
func (b *BMA) Predict(data mat.Matrix) (*mat.VecDense, error) {
	if !b.IsFitted() {
		return nil, errors.NewNotFittedError("BMA", "Predict")
	}

	r, c := data.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewModelError("BMA.Predict", "empty data", errors.ErrEmptyData)
	}
	coef := mat.NewVecDense(b.nCols, b.result.Coefficients)

	switch {
	case c == b.nCols:
		out := mat.NewVecDense(r, nil)
		out.MulVec(data, coef)
		return out, nil
	case r == b.nCols:
		out := mat.NewVecDense(c, nil)
		out.MulVec(data.T(), coef)
		return out, nil
	default:
		return nil, errors.NewShapeMismatchError("BMA.Predict", b.nCols, [2]int{r, c}, [2]int{c, r})
	}
}

// PredictSlice is Predict for row-major observations.
func (b *BMA) PredictSlice(rows [][]float64) (*mat.VecDense, error) {
	if len(rows) == 0 {
		return nil, errors.NewModelError("BMA.PredictSlice", "empty data", errors.ErrEmptyData)
	}
	width := len(rows[0])
	flat := make([]float64, 0, len(rows)*width)
	for _, row := range rows {
		if len(row) != width {
			return nil, errors.NewDimensionError("BMA.PredictSlice", width, len(row), 1)
		}
		flat = append(flat, row...)
	}
	if width == 0 {
		return nil, errors.NewModelError("BMA.PredictSlice", "empty data", errors.ErrEmptyData)
	}
	return b.Predict(mat.NewDense(len(rows), width, flat))
}
