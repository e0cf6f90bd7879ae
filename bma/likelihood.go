package bma

import (
	"math"
	"math/big"

	"github.com/ALTree/bigfloat"

	"github.com/YuminosukeSato/scibma/pkg/errors"
)

// Likelihood returns exp(-bic/2) times the product of priors over the columns
// of m, at prec bits of precision.
//
// exp(-bic/2) leaves the float64 range once |bic| exceeds about 1400, which
// happens routinely for a few thousand observations, so the value is built
// directly as a big.Float. A zero prior gives a zero likelihood.
func Likelihood(bic float64, priors []float64, m Model, prec uint) (*big.Float, error) {
	if math.IsNaN(bic) || math.IsInf(bic, 0) {
		return nil, errors.NewNumericalInstabilityError("bic", []float64{bic})
	}
	l := expBig(-bic/2, prec)
	if l == nil {
		return nil, errors.NewNumericalInstabilityError("likelihood_overflow", []float64{bic})
	}
	for _, j := range m.Indices() {
		if j >= len(priors) {
			return nil, errors.NewDimensionError("Likelihood", j+1, len(priors), 1)
		}
		l.Mul(l, new(big.Float).SetPrec(prec).SetFloat64(priors[j]))
	}
	return l, nil
}

// expBig computes e^x as 2^k · e^r with r = x - k·ln2 in [0, ln2), carrying
// 64 guard bits through the reduction so the result is accurate to prec bits.
// It returns nil when the result overflows the big.Float exponent range.
func expBig(x float64, prec uint) *big.Float {
	k := math.Floor(x / math.Ln2)
	if k < big.MinExp {
		return new(big.Float).SetPrec(prec) // underflows even big.Float
	}
	if k > big.MaxExp-1 {
		return nil
	}
	work := prec + 64
	ln2 := bigfloat.Log(new(big.Float).SetPrec(work).SetInt64(2))
	r := new(big.Float).SetPrec(work).SetFloat64(x)
	r.Sub(r, ln2.Mul(ln2, new(big.Float).SetPrec(work).SetFloat64(k)))

	z := bigfloat.Exp(r)
	z.SetMantExp(z, int(k))
	return new(big.Float).SetPrec(prec).Set(z)
}
