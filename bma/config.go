package bma

import (
	"github.com/YuminosukeSato/scibma/core/model"
	"github.com/YuminosukeSato/scibma/pkg/log"
)

// FitFailurePolicy decides what Fit does when a candidate model cannot be
// fitted (singular or collinear design, non-finite BIC, fitter panic).
type FitFailurePolicy int

const (
	// SkipFailed logs a warning, counts the candidate as failed and continues.
	// A failed candidate contributes no likelihood and does not survive into
	// the next subset size.
	SkipFailed FitFailurePolicy = iota
	// AbortOnFailure makes Fit return the first *errors.FitFailureError.
	AbortOnFailure
)

func (p FitFailurePolicy) String() string {
	if p == AbortOnFailure {
		return "abort"
	}
	return "skip"
}

const (
	// DefaultWindowRatio is the Occam's window divisor: a model is kept when
	// its likelihood exceeds maxLikelihood / DefaultWindowRatio.
	DefaultWindowRatio = 20.0

	// DefaultPrecision is the mantissa size in bits of the likelihood
	// accumulators, about 77 significant decimal digits.
	DefaultPrecision uint = 256

	// MinPrecision is twice the float64 mantissa.
	MinPrecision uint = 106

	// MaxColumns is the largest number of predictor columns a Model can index.
	MaxColumns = 64
)

// Config holds the settings of a BMA estimator. The zero value of every field
// selects its default.
type Config struct {
	// MaxVars caps the largest subset size explored. 0 means every column.
	MaxVars int
	// Priors holds one nonnegative weight per predictor column. nil means
	// all ones. A vector of the wrong length is replaced by all ones with a
	// warning.
	Priors []float64
	// Verbose logs one line per subset size and one line per candidate.
	Verbose bool
	// NJobs is the number of goroutines scoring candidates of one size.
	// 0 or 1 scores sequentially, -1 uses every CPU core.
	NJobs int
	// OnFitFailure selects the fit failure policy. Default SkipFailed.
	OnFitFailure FitFailurePolicy
	// WindowRatio is the Occam's window divisor. Default 20.
	WindowRatio float64
	// Precision is the big.Float mantissa size in bits. Default 256.
	Precision uint
	// Fitter computes coefficients and BIC for a column subset.
	// Default linear.NewOLS().
	Fitter model.LinearFitter
	// Logger receives progress, verbose and warning output.
	// Default log.GetLogger().
	Logger log.Logger
}

// Option configures a BMA estimator.
type Option func(*Config)

// WithMaxVars caps the largest subset size explored.
func WithMaxVars(n int) Option {
	return func(c *Config) { c.MaxVars = n }
}

// WithPriors sets per-variable prior weights.
func WithPriors(priors []float64) Option {
	return func(c *Config) { c.Priors = append([]float64(nil), priors...) }
}

// WithVerbose enables per-size and per-candidate diagnostic logging.
func WithVerbose(v bool) Option {
	return func(c *Config) { c.Verbose = v }
}

// WithNJobs sets the number of goroutines used to score the candidates of one
// subset size. -1 uses every CPU core.
func WithNJobs(n int) Option {
	return func(c *Config) { c.NJobs = n }
}

// WithFitFailurePolicy selects what happens when a candidate fit fails.
func WithFitFailurePolicy(p FitFailurePolicy) Option {
	return func(c *Config) { c.OnFitFailure = p }
}

// WithWindowRatio sets the Occam's window divisor.
func WithWindowRatio(r float64) Option {
	return func(c *Config) { c.WindowRatio = r }
}

// WithPrecision sets the big.Float mantissa size of the accumulators.
func WithPrecision(bits uint) Option {
	return func(c *Config) { c.Precision = bits }
}

// WithFitter replaces the default OLS fitter.
func WithFitter(f model.LinearFitter) Option {
	return func(c *Config) { c.Fitter = f }
}

// WithLogger sets the logger.
func WithLogger(l log.Logger) Option {
	return func(c *Config) { c.Logger = l }
}
