package bma

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// exactData returns 50 rows of three well-conditioned columns with
// y = 2*x1 exactly.
func exactData() (*mat.VecDense, *mat.Dense) {
	const n = 50
	X := mat.NewDense(n, 3, nil)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		t := float64(i)
		x0 := math.Sin(0.37 * t)
		x1 := math.Cos(1.3*t) + 0.5
		x2 := t / n
		X.SetRow(i, []float64{x0, x1, x2})
		y.SetVec(i, 2*x1)
	}
	return y, X
}

// duplicateData returns 50 rows where column 1 is an exact copy of column 0.
func duplicateData() (*mat.VecDense, *mat.Dense) {
	const n = 50
	X := mat.NewDense(n, 3, nil)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		t := float64(i)
		x0 := math.Sin(0.37*t) + 1
		x2 := math.Cos(1.3 * t)
		X.SetRow(i, []float64{x0, x0, x2})
		y.SetVec(i, 1.5*x0+0.8*x2+0.01*math.Sin(5.1*t))
	}
	return y, X
}

// noisyData returns n rows of p columns with a linear response and a small
// deterministic disturbance, so no candidate fits exactly.
func noisyData(n, p int) (*mat.VecDense, *mat.Dense) {
	X := mat.NewDense(n, p, nil)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		t := float64(i)
		v := 0.3 * math.Sin(2.9*t)
		for j := 0; j < p; j++ {
			x := math.Sin(0.11*float64(j+1)*t + float64(j))
			X.Set(i, j, x)
			if j%2 == 0 {
				v += float64(j+1) * x
			}
		}
		y.SetVec(i, v)
	}
	return y, X
}
