// Package scibma provides Bayesian Model Averaging for linear regression in Go.
//
// SciBMA fits every plausible subset of predictor columns as a competing
// ordinary least squares model, weighs the models by their BIC-based
// likelihood, and reports how likely each predictor is to belong in the
// model together with its model-averaged coefficient.
//
// # Features
//
// - Occam's window search: larger models only extend smaller ones that survived
// - Arbitrary precision likelihoods: no underflow for large samples
// - Parallel scoring with deterministic results
// - Structured logging via slog or zerolog
// - Rich error types built on cockroachdb/errors
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/scibma/bma"
//	    "github.com/YuminosukeSato/scibma/preprocessing"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(6, 2, []float64{
//	        1, 0.3,
//	        2, 0.1,
//	        3, 0.4,
//	        4, 0.1,
//	        5, 0.5,
//	        6, 0.9,
//	    })
//	    y := mat.NewVecDense(6, []float64{2.1, 3.9, 6.2, 7.8, 10.1, 12.0})
//
//	    // 切片は自動で追加されないので定数列を加える
//	    Xc, names, err := preprocessing.AddConstant(X, []string{"x", "z"})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    b, err := bma.New(y, Xc, names)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if _, err := b.Fit(); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    summary, _ := b.Summary()
//	    fmt.Print(summary)
//	}
//
// # Packages
//
//   - bma: Bayesian Model Averaging estimator, summary table and prediction
//   - linear: Ordinary least squares with BIC
//   - dataset: CSV loading, missing value removal and train/test splits
//   - preprocessing: StandardScaler and constant column helper
//   - metrics: Regression metrics (MSE, RMSE, MAE, R², MAPE)
//   - core/model: Estimator base types and posterior persistence
//   - core/parallel: Parallel processing utilities
//   - pkg/errors: Error types
//   - pkg/log: Structured logging
//
// The cmd/bma command runs the whole pipeline on a CSV file and compares
// out-of-sample RMSE against OLS.
//
// # License
//
// SciBMA is released under the MIT License.
package scibma
