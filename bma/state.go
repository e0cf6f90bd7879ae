package bma

import (
	"math/big"

	"github.com/YuminosukeSato/scibma/pkg/errors"
)

// state holds the per-column likelihood-weighted sums of one search.
type state struct {
	prec            uint
	likelihoodSum   []*big.Float
	weightedCoefSum []*big.Float
	total           *big.Float
}

func newState(p int, prec uint) *state {
	s := &state{
		prec:            prec,
		likelihoodSum:   make([]*big.Float, p),
		weightedCoefSum: make([]*big.Float, p),
		total:           new(big.Float).SetPrec(prec),
	}
	for j := 0; j < p; j++ {
		s.likelihoodSum[j] = new(big.Float).SetPrec(prec)
		s.weightedCoefSum[j] = new(big.Float).SetPrec(prec)
	}
	return s
}

// accumulate adds an accepted model. coef[i] belongs to the i-th smallest
// column index of m.
func (s *state) accumulate(m Model, l *big.Float, coef []float64) {
	term := new(big.Float).SetPrec(s.prec)
	for i, j := range m.Indices() {
		s.likelihoodSum[j].Add(s.likelihoodSum[j], l)
		term.SetFloat64(coef[i])
		term.Mul(term, l)
		s.weightedCoefSum[j].Add(s.weightedCoefSum[j], term)
	}
	s.total.Add(s.total, l)
}

// normalize divides every sum by the total likelihood.
func (s *state) normalize(candidates, accepted int) (probs, coefs []float64, err error) {
	if s.total.Sign() == 0 {
		return nil, nil, errors.NewEmptyEvidenceError(candidates, accepted)
	}
	p := len(s.likelihoodSum)
	probs = make([]float64, p)
	coefs = make([]float64, p)
	q := new(big.Float).SetPrec(s.prec)
	for j := 0; j < p; j++ {
		probs[j], _ = q.Quo(s.likelihoodSum[j], s.total).Float64()
		coefs[j], _ = q.Quo(s.weightedCoefSum[j], s.total).Float64()
	}
	return probs, coefs, nil
}
