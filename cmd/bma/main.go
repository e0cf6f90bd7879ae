// Command bma fits a Bayesian Model Averaging regression to a CSV file,
// prints the posterior summary and compares out-of-sample RMSE against
// ordinary least squares over repeated random train/test splits.
//
//	bma -csv data.csv -response flow -iters 50 -save posterior.json
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scibma/bma"
	"github.com/YuminosukeSato/scibma/core/model"
	"github.com/YuminosukeSato/scibma/dataset"
	"github.com/YuminosukeSato/scibma/linear"
	"github.com/YuminosukeSato/scibma/metrics"
	"github.com/YuminosukeSato/scibma/pkg/errors"
	"github.com/YuminosukeSato/scibma/pkg/log"
	"github.com/YuminosukeSato/scibma/preprocessing"
)

type options struct {
	csvPath     string
	response    string
	predictors  string
	maxVars     int
	nJobs       int
	verbose     bool
	standardize bool
	noConstant  bool
	iters       int
	testSize    float64
	seed        uint64
	logLevel    string
	logFormat   string
	savePath    string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("bma", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.csvPath, "csv", "", "path to a CSV file with a header row (required)")
	fs.StringVar(&o.response, "response", "", "name of the response column (required)")
	fs.StringVar(&o.predictors, "predictors", "", "comma-separated predictor columns (default: every other column)")
	fs.IntVar(&o.maxVars, "max-vars", 0, "largest model size to explore (0: all predictors)")
	fs.IntVar(&o.nJobs, "njobs", 1, "goroutines scoring candidate models (-1: all CPUs)")
	fs.BoolVar(&o.verbose, "verbose", false, "log every subset size and candidate model")
	fs.BoolVar(&o.standardize, "standardize", false, "standardize predictors using training statistics")
	fs.BoolVar(&o.noConstant, "no-constant", false, "do not prepend a constant column")
	fs.IntVar(&o.iters, "iters", 50, "number of random train/test splits to compare (0: skip)")
	fs.Float64Var(&o.testSize, "test-size", 0.33, "fraction of rows held out in each split")
	fs.Uint64Var(&o.seed, "seed", 0, "seed of the first split; split i uses seed+i")
	fs.StringVar(&o.logLevel, "log-level", "warn", "debug, info, warn or error")
	fs.StringVar(&o.logFormat, "log-format", "slog", "slog or zerolog")
	fs.StringVar(&o.savePath, "save", "", "write the full-data posterior as JSON to this path")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.csvPath == "" || o.response == "" {
		fs.Usage()
		return o, errors.New("-csv and -response are required")
	}
	return o, nil
}

func setupLogging(o options, w io.Writer) error {
	switch o.logFormat {
	case "slog":
		return log.SetupLoggerTo(w, o.logLevel)
	case "zerolog":
		return log.SetupZerolog(w, o.logLevel)
	default:
		return errors.Newf("unknown log format %q", o.logFormat)
	}
}

func main() {
	o, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := setupLogging(o, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, o, os.Stdout); err != nil {
		log.GetLogger().Error("bma failed", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, o options, out io.Writer) error {
	logger := log.GetLogger().With(log.ComponentKey, "cmd/bma")

	f, err := os.Open(o.csvPath)
	if err != nil {
		return errors.Wrap(err, "open csv")
	}
	defer f.Close()

	var predictors []string
	if o.predictors != "" {
		for _, p := range strings.Split(o.predictors, ",") {
			predictors = append(predictors, strings.TrimSpace(p))
		}
	}
	raw, err := dataset.ReadCSV(f, o.response, predictors)
	if err != nil {
		return err
	}
	ds, dropped, err := dataset.DropNA(raw)
	if err != nil {
		return err
	}
	n, p := ds.Dims()
	logger.Info("Dataset loaded",
		log.SamplesKey, n,
		log.FeaturesKey, p,
		"dropped_rows", dropped,
	)

	full, err := fitBMA(ctx, o, ds)
	if err != nil {
		return err
	}
	summary, err := full.Summary()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Posterior summary (%d observations)\n\n", n)
	if _, err := summary.WriteTo(out); err != nil {
		return err
	}
	if o.savePath != "" {
		w, err := full.Weights()
		if err != nil {
			return err
		}
		if err := model.SaveWeights(w, o.savePath); err != nil {
			return errors.Wrapf(err, "save posterior to %s", o.savePath)
		}
		logger.Info("Posterior saved", "path", o.savePath)
	}

	if o.iters <= 0 {
		return nil
	}
	fmt.Fprintf(out, "\n%-6s %12s %12s %12s %12s\n", "split", "RMSE BMA", "RMSE OLS", "mean BMA", "mean OLS")
	var meanBMA, meanOLS metrics.RunningMean
	for i := 0; i < o.iters; i++ {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, "comparison interrupted")
		}
		rmseBMA, rmseOLS, err := compare(ctx, o, ds, o.seed+uint64(i))
		if err != nil {
			return errors.Wrapf(err, "split %d", i)
		}
		fmt.Fprintf(out, "%-6d %12.6f %12.6f %12.6f %12.6f\n",
			i, rmseBMA, rmseOLS, meanBMA.Add(rmseBMA), meanOLS.Add(rmseOLS))
		logger.Debug("Split evaluated",
			log.IterationKey, i,
			log.RMSEKey, rmseBMA,
			"metrics.rmse_ols", rmseOLS,
		)
	}
	fmt.Fprintf(out, "\nMean RMSE over %d splits: BMA %.6f, OLS %.6f\n", meanBMA.Count(), meanBMA.Mean(), meanOLS.Mean())
	return nil
}

// design turns a dataset into the matrix the models see: optionally
// standardized with scaler, then with a constant column prepended.
func design(o options, ds *dataset.Dataset, scaler *preprocessing.StandardScaler) (*mat.Dense, []string, error) {
	X := ds.X
	if o.standardize {
		var err error
		if !scaler.IsFitted() {
			if err = scaler.Fit(X); err != nil {
				return nil, nil, err
			}
		}
		if X, err = scaler.Transform(X); err != nil {
			return nil, nil, err
		}
	}
	if o.noConstant {
		return X, ds.Names, nil
	}
	return preprocessing.AddConstant(X, ds.Names)
}

func newBMA(o options, y mat.Vector, X mat.Matrix, names []string) (*bma.BMA, error) {
	return bma.New(y, X, names,
		bma.WithMaxVars(o.maxVars),
		bma.WithNJobs(o.nJobs),
		bma.WithVerbose(o.verbose),
	)
}

func fitBMA(ctx context.Context, o options, ds *dataset.Dataset) (*bma.BMA, error) {
	X, names, err := design(o, ds, preprocessing.NewStandardScaler())
	if err != nil {
		return nil, err
	}
	b, err := newBMA(o, ds.Y, X, names)
	if err != nil {
		return nil, err
	}
	return b.FitContext(ctx)
}

// compare fits BMA and OLS on one random split and returns their test RMSE.
func compare(ctx context.Context, o options, ds *dataset.Dataset, seed uint64) (rmseBMA, rmseOLS float64, err error) {
	train, test, err := dataset.TrainTestSplit(ds, o.testSize, seed)
	if err != nil {
		return 0, 0, err
	}
	scaler := preprocessing.NewStandardScaler()
	XTrain, names, err := design(o, train, scaler)
	if err != nil {
		return 0, 0, err
	}
	XTest, _, err := design(o, test, scaler)
	if err != nil {
		return 0, 0, err
	}

	b, err := newBMA(o, train.Y, XTrain, names)
	if err != nil {
		return 0, 0, err
	}
	if _, err := b.FitContext(ctx); err != nil {
		return 0, 0, err
	}
	predBMA, err := b.Predict(XTest)
	if err != nil {
		return 0, 0, err
	}

	ols := linear.NewOLS()
	if _, err := ols.Fit(XTrain, train.Y); err != nil {
		return 0, 0, err
	}
	predOLS, err := ols.Predict(XTest)
	if err != nil {
		return 0, 0, err
	}

	if rmseBMA, err = metrics.RMSE(test.Y, predBMA); err != nil {
		return 0, 0, err
	}
	if rmseOLS, err = metrics.RMSE(test.Y, predOLS); err != nil {
		return 0, 0, err
	}
	return rmseBMA, rmseOLS, nil
}
