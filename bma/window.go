package bma

import "math/big"

// Window is Occam's window: it keeps the largest likelihood accepted so far
// and accepts a candidate only when its likelihood exceeds that maximum
// divided by the window ratio.
//
// One Window spans a whole search. Its maximum is never reset between subset
// sizes, so larger models are held to the best likelihood seen at any size.
type Window struct {
	prec  uint
	ratio *big.Float
	max   *big.Float
}

// NewWindow returns a window with maximum 0, so the first candidate with a
// positive likelihood is always accepted.
func NewWindow(ratio float64, prec uint) *Window {
	return &Window{
		prec:  prec,
		ratio: new(big.Float).SetPrec(prec).SetFloat64(ratio),
		max:   new(big.Float).SetPrec(prec),
	}
}

// Threshold returns max/ratio, the value a likelihood must exceed.
func (w *Window) Threshold() *big.Float {
	return new(big.Float).SetPrec(w.prec).Quo(w.max, w.ratio)
}

// Max returns a copy of the largest accepted likelihood.
func (w *Window) Max() *big.Float {
	return new(big.Float).SetPrec(w.prec).Set(w.max)
}

// Accept decides a candidate and, when accepted, raises the running maximum.
func (w *Window) Accept(l *big.Float) bool {
	if l.Cmp(w.Threshold()) <= 0 {
		return false
	}
	if l.Cmp(w.max) > 0 {
		w.max.Set(l)
	}
	return true
}
