// Package bma implements Bayesian Model Averaging over linear regression
// models.
//
// Given a response vector and p candidate predictor columns, BMA fits every
// subset of predictors as a competing linear model, weighs each model by
// exp(-BIC/2) times the product of per-variable priors, and reports
// likelihood-weighted posterior inclusion probabilities and averaged
// coefficients.
//
// The search runs over subset sizes 1..MaxVars in increasing order. Size 1
// evaluates every single column. Each larger size evaluates only subsets that
// extend a model accepted at the previous size. A candidate is accepted when
// its likelihood exceeds the largest likelihood accepted so far anywhere in
// the search divided by the window ratio (Occam's window, default 20).
//
// Likelihoods are carried as math/big floats so that exp(-BIC/2) does not
// underflow for large samples:
//
//	b, err := bma.New(y, X, names, bma.WithVerbose(true))
//	if err != nil {
//	    return err
//	}
//	if _, err := b.Fit(); err != nil {
//	    return err
//	}
//	summary, _ := b.Summary()
//	fmt.Println(summary)
//
// The fitter does not add an intercept. Include a constant column in X (see
// preprocessing.AddConstant) when one is wanted; it then takes part in the search
// like any other variable.
package bma
