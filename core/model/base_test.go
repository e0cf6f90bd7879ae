package model

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestBaseEstimatorLifecycle(t *testing.T) {
	var e BaseEstimator

	if e.IsFitted() {
		t.Fatal("zero value should be NotFitted")
	}
	if e.State().String() != "NotFitted" {
		t.Errorf("State() = %s, want NotFitted", e.State())
	}

	e.SetFitted()
	if !e.IsFitted() || e.State() != Fitted {
		t.Fatal("SetFitted should move to Fitted")
	}

	e.Reset()
	if e.IsFitted() {
		t.Fatal("Reset should move back to NotFitted")
	}
}

func TestLinearFitterFunc(t *testing.T) {
	var called bool
	var f LinearFitter = LinearFitterFunc(func(X mat.Matrix, y mat.Vector) (LinearFit, error) {
		called = true
		_, c := X.Dims()
		return LinearFit{Coef: make([]float64, c), BIC: 1.5}, nil
	})

	fit, err := f.FitLinear(mat.NewDense(2, 3, nil), mat.NewVecDense(2, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called || len(fit.Coef) != 3 || fit.BIC != 1.5 {
		t.Errorf("unexpected fit %+v (called=%v)", fit, called)
	}
}
