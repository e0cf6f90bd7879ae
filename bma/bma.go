package bma

import (
	"context"
	"math"
	"math/big"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scibma/core/model"
	"github.com/YuminosukeSato/scibma/core/parallel"
	"github.com/YuminosukeSato/scibma/linear"
	"github.com/YuminosukeSato/scibma/pkg/errors"
	"github.com/YuminosukeSato/scibma/pkg/log"
)

// BMA is a Bayesian Model Averaging estimator over linear regression models.
//
// A BMA is created NotFitted by New, becomes Fitted after one successful Fit
// and is read-only afterwards. Fitting again requires Reset. Fit holds an
// internal lock, so concurrent Fit calls on one instance are serialized and
// all but the first fail with ErrAlreadyFitted.
type BMA struct {
	model.BaseEstimator

	mu     sync.Mutex
	id     string
	cfg    Config
	y      *mat.VecDense
	X      *mat.Dense
	names  []string
	priors []float64
	nRows  int
	nCols  int
	logger log.Logger

	result *Result
}

// SizeStat counts the outcome of one subset size.
type SizeStat struct {
	Size       int
	Candidates int
	Accepted   int
	Rejected   int
	Failed     int
}

// Result is the posterior of a fitted BMA.
type Result struct {
	Names []string
	// Probabilities[j] is the posterior inclusion probability of column j.
	Probabilities []float64
	// Coefficients[j] is the BMA-averaged coefficient of column j.
	Coefficients []float64
	// TotalLikelihood is the likelihood mass of every accepted model.
	TotalLikelihood *big.Float
	// MaxLikelihood is the largest likelihood accepted during the search.
	MaxLikelihood *big.Float

	Candidates int
	Accepted   int
	Rejected   int
	Failed     int
	SizeStats  []SizeStat
}

// New creates an unfitted estimator for response y and predictor matrix X
// (rows are observations). names labels the columns of X; nil names them
// x0, x1, and so on. X and y are copied.
func New(y mat.Vector, X mat.Matrix, names []string, opts ...Option) (*BMA, error) {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}

	n, p := X.Dims()
	if n == 0 || p == 0 {
		return nil, errors.NewModelError("BMA.New", "empty data", errors.ErrEmptyData)
	}
	if y.Len() != n {
		return nil, errors.NewDimensionError("BMA.New", n, y.Len(), 0)
	}
	if p > MaxColumns {
		return nil, errors.NewValidationError("X", "at most 64 predictor columns are supported", p)
	}

	names, err := resolveNames(names, p)
	if err != nil {
		return nil, err
	}
	if err := validateConfig(&cfg, p); err != nil {
		return nil, err
	}

	b := &BMA{
		id:    uuid.NewString(),
		cfg:   cfg,
		y:     mat.VecDenseCopyOf(y),
		X:     mat.DenseCopyOf(X),
		names: names,
		nRows: n,
		nCols: p,
	}
	if b.cfg.Fitter == nil {
		b.cfg.Fitter = linear.NewOLS()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.GetLogger()
	}
	b.logger = logger.With(
		log.ModelNameKey, "BMA",
		log.EstimatorIDKey, b.id,
	)
	b.priors = b.resolvePriors(cfg.Priors)
	return b, nil
}

func resolveNames(names []string, p int) ([]string, error) {
	if names == nil {
		out := make([]string, p)
		for j := range out {
			out[j] = "x" + strconv.Itoa(j)
		}
		return out, nil
	}
	if len(names) != p {
		return nil, errors.NewValidationError("names", "must have one name per column of X", len(names))
	}
	seen := make(map[string]struct{}, p)
	for _, name := range names {
		if _, dup := seen[name]; dup {
			return nil, errors.NewValidationError("names", "column names must be unique", name)
		}
		seen[name] = struct{}{}
	}
	return append([]string(nil), names...), nil
}

func validateConfig(cfg *Config, p int) error {
	if cfg.MaxVars < 0 || cfg.MaxVars > p {
		return errors.NewValidationError("MaxVars", "must be between 1 and the number of columns", cfg.MaxVars)
	}
	if cfg.MaxVars == 0 {
		cfg.MaxVars = p
	}
	if cfg.WindowRatio == 0 {
		cfg.WindowRatio = DefaultWindowRatio
	}
	if cfg.Precision == 0 {
		cfg.Precision = DefaultPrecision
	}
	if !(cfg.WindowRatio > 0) || math.IsInf(cfg.WindowRatio, 0) {
		return errors.NewValidationError("WindowRatio", "must be positive and finite", cfg.WindowRatio)
	}
	if cfg.Precision < MinPrecision {
		return errors.NewValidationError("Precision", "must be at least 106 bits", cfg.Precision)
	}
	if cfg.OnFitFailure != SkipFailed && cfg.OnFitFailure != AbortOnFailure {
		return errors.NewValidationError("OnFitFailure", "unknown policy", int(cfg.OnFitFailure))
	}
	for j, v := range cfg.Priors {
		if !(v >= 0) || math.IsInf(v, 0) {
			return errors.NewValidationError("Priors", "must be nonnegative and finite", map[int]float64{j: v})
		}
	}
	return nil
}

// resolvePriors falls back to uniform priors, with a warning, when the
// configured vector does not have one entry per column.
func (b *BMA) resolvePriors(priors []float64) []float64 {
	uniform := func() []float64 {
		out := make([]float64, b.nCols)
		for j := range out {
			out[j] = 1
		}
		return out
	}
	if priors == nil {
		return uniform()
	}
	if len(priors) != b.nCols {
		w := errors.NewConfigurationWarning("priors", b.nCols, len(priors), "uniform priors")
		errors.Warn(w)
		b.logger.Warn("Provided priors have the wrong length; using uniform priors",
			"expected", b.nCols,
			"got", len(priors),
		)
		return uniform()
	}
	return append([]float64(nil), priors...)
}

// ID returns the estimator instance identifier used in log records.
func (b *BMA) ID() string { return b.id }

// Names returns the column names in column order.
func (b *BMA) Names() []string { return append([]string(nil), b.names...) }

// Priors returns the priors in effect, after any fallback to uniform priors.
func (b *BMA) Priors() []float64 { return append([]float64(nil), b.priors...) }

// MaxVars returns the resolved maximum subset size.
func (b *BMA) MaxVars() int { return b.cfg.MaxVars }

// Fit runs the model search and returns the fitted estimator.
func (b *BMA) Fit() (*BMA, error) {
	return b.FitContext(context.Background())
}

// FitContext is Fit with cancellation checked between candidates.
func (b *BMA) FitContext(ctx context.Context) (*BMA, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.IsFitted() {
		return nil, errors.Wrap(errors.ErrAlreadyFitted, "BMA.Fit: call Reset before fitting again")
	}

	start := time.Now()
	b.logger.Info("Model search started",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, b.nRows,
		log.FeaturesKey, b.nCols,
		"max_vars", b.cfg.MaxVars,
	)

	st := newState(b.nCols, b.cfg.Precision)
	win := NewWindow(b.cfg.WindowRatio, b.cfg.Precision)
	res := &Result{Names: append([]string(nil), b.names...)}

	var previous []Model
	for k := 1; k <= b.cfg.MaxVars; k++ {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "BMA.Fit")
		}

		candidates := Enumerate(b.nCols, k, previous)
		if len(candidates) == 0 {
			b.logger.Debug("No candidate models extend the previous size; stopping",
				log.SubsetSizeKey, k,
			)
			break
		}
		b.progress("Computing BMA for models of size",
			log.SubsetSizeKey, k,
			log.CandidatesKey, len(candidates),
		)

		scores, err := b.score(ctx, candidates)
		if err != nil {
			return nil, err
		}

		stat := SizeStat{Size: k, Candidates: len(candidates)}
		survivors := make([]Model, 0, len(candidates))
		for i, c := range candidates {
			sc := scores[i]
			if sc.err != nil {
				fitErr := errors.NewFitFailureError(c.String(), sc.err)
				if b.cfg.OnFitFailure == AbortOnFailure {
					return nil, fitErr
				}
				stat.Failed++
				b.logger.Warn("Candidate model fit failed; skipping", fitErr,
					log.ModelKey, c.String(),
					log.VerdictKey, log.VerdictFailed,
				)
				continue
			}

			if win.Accept(sc.likelihood) {
				st.accumulate(c, sc.likelihood, sc.coef)
				survivors = append(survivors, c)
				stat.Accepted++
				b.candidate(c, sc, log.VerdictAccepted)
			} else {
				stat.Rejected++
				b.candidate(c, sc, log.VerdictRejected)
			}
		}

		res.SizeStats = append(res.SizeStats, stat)
		res.Candidates += stat.Candidates
		res.Accepted += stat.Accepted
		res.Rejected += stat.Rejected
		res.Failed += stat.Failed
		b.progress("Subset size done",
			log.SubsetSizeKey, k,
			log.AcceptedKey, stat.Accepted,
			log.RejectedKey, stat.Rejected,
			log.FailedKey, stat.Failed,
		)

		// Only the immediately preceding size seeds the next one.
		previous = survivors
	}

	probs, coefs, err := st.normalize(res.Candidates, res.Accepted)
	if err != nil {
		b.logger.Error("Model search produced no evidence", err,
			log.OperationKey, log.OperationFit,
		)
		return nil, err
	}
	res.Probabilities = probs
	res.Coefficients = coefs
	res.TotalLikelihood = new(big.Float).SetPrec(b.cfg.Precision).Set(st.total)
	res.MaxLikelihood = win.Max()

	b.result = res
	b.SetFitted()

	b.logger.Info("Model search completed",
		log.OperationKey, log.OperationFit,
		log.DurationMsKey, time.Since(start).Milliseconds(),
		log.CandidatesKey, res.Candidates,
		log.AcceptedKey, res.Accepted,
		log.FailedKey, res.Failed,
		log.FingerprintKey, res.Fingerprint(),
	)
	return b, nil
}

// Reset discards the posterior and returns the estimator to NotFitted.
func (b *BMA) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.result = nil
	b.BaseEstimator.Reset()
}

// Result returns the posterior of a fitted estimator.
func (b *BMA) Result() (*Result, error) {
	if !b.IsFitted() {
		return nil, errors.NewNotFittedError("BMA", "Result")
	}
	return b.result, nil
}

type scored struct {
	likelihood *big.Float
	coef       []float64
	bic        float64
	err        error
}

// score fits and scores every candidate of one size. Scoring is independent
// per candidate and may run on several goroutines; each result lands at its
// candidate's index, so the acceptance pass that follows sees the same
// sequence regardless of scheduling.
func (b *BMA) score(ctx context.Context, candidates []Model) ([]scored, error) {
	out := make([]scored, len(candidates))
	parallel.ParallelizeWorkers(len(candidates), parallel.Workers(b.cfg.NJobs), func(start, end int) {
		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				out[i].err = err
				continue
			}
			out[i] = b.scoreOne(candidates[i])
		}
	})
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "BMA.Fit")
	}
	return out, nil
}

func (b *BMA) scoreOne(m Model) (sc scored) {
	sc.err = errors.SafeExecute("BMA.score", func() error {
		fit, err := b.cfg.Fitter.FitLinear(b.columns(m), b.y)
		if err != nil {
			return err
		}
		if len(fit.Coef) != m.Size() {
			return errors.NewDimensionError("BMA.score", m.Size(), len(fit.Coef), 1)
		}
		if err := errors.CheckNumericalStability("coefficients", fit.Coef); err != nil {
			return err
		}
		l, err := Likelihood(fit.BIC, b.priors, m, b.cfg.Precision)
		if err != nil {
			return err
		}
		sc.likelihood, sc.coef, sc.bic = l, fit.Coef, fit.BIC
		return nil
	})
	return sc
}

// columns returns the design matrix restricted to the columns of m, in
// increasing column order.
func (b *BMA) columns(m Model) *mat.Dense {
	idx := m.Indices()
	Xm := mat.NewDense(b.nRows, len(idx), nil)
	col := make([]float64, b.nRows)
	for i, j := range idx {
		mat.Col(col, j, b.X)
		Xm.SetCol(i, col)
	}
	return Xm
}

func (b *BMA) progress(msg string, fields ...any) {
	if b.cfg.Verbose {
		b.logger.Info(msg, fields...)
		return
	}
	b.logger.Debug(msg, fields...)
}

func (b *BMA) candidate(m Model, sc scored, verdict string) {
	if !b.cfg.Verbose || !b.logger.Enabled(context.Background(), log.LevelInfo) {
		return
	}
	b.logger.Info("Model evaluated",
		log.ModelKey, m.String(),
		log.LikelihoodKey, sc.likelihood.Text('g', 12),
		log.BICKey, sc.bic,
		log.VerdictKey, verdict,
	)
}
