package linear

// Option is a function that configures OLS
type Option func(*OLS)

// WithMinResidualRatio sets the residual floor as a fraction of yᵀy.
// A perfect fit otherwise has SSR = 0 and an infinite log-likelihood.
func WithMinResidualRatio(ratio float64) Option {
	return func(o *OLS) {
		if ratio >= 0 {
			o.minResidualRatio = ratio
		}
	}
}

// WithParallelThreshold sets the row count above which residuals are
// computed in parallel.
func WithParallelThreshold(rows int) Option {
	return func(o *OLS) {
		o.parallelThreshold = rows
	}
}
