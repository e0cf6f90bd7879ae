// Standard attribute keys for model search logging.
//
// Keys follow a hierarchical naming convention ("model.name", "data.samples",
// "bma.likelihood") so log pipelines can filter on them consistently.

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of estimator.
	// Examples: "BMA", "OLS"
	ModelNameKey = "model.name"

	// EstimatorIDKey provides a unique identifier for a specific estimator instance.
	EstimatorIDKey = "estimator.id"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "summary"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	ComponentKey = "ml.component"
)

// Data Shape
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of predictor columns.
	FeaturesKey = "data.features"
)

// Performance
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// RMSEKey records root mean squared error of an evaluation.
	RMSEKey = "metrics.rmse"

	// IterationKey records the current iteration of a repeated evaluation.
	IterationKey = "training.iteration"
)

// Model search
const (
	// SubsetSizeKey is the number of predictors in the models being evaluated.
	SubsetSizeKey = "bma.subset_size"

	// CandidatesKey is the number of candidate models at a subset size.
	CandidatesKey = "bma.candidates"

	// AcceptedKey is the number of models accepted by Occam's window.
	AcceptedKey = "bma.accepted"

	// RejectedKey is the number of models rejected by Occam's window.
	RejectedKey = "bma.rejected"

	// FailedKey is the number of candidate models whose fit failed.
	FailedKey = "bma.failed"

	// ModelKey is the index set of a candidate model, e.g. "(0, 3)".
	ModelKey = "bma.model"

	// LikelihoodKey is a model's unnormalized posterior likelihood.
	LikelihoodKey = "bma.likelihood"

	// BICKey is a model's Bayesian Information Criterion.
	BICKey = "bma.bic"

	// VerdictKey is the Occam's window decision for a candidate.
	VerdictKey = "bma.verdict"

	// FingerprintKey is the hash of a fitted posterior.
	FingerprintKey = "bma.fingerprint"
)

// Error Context
const (
	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationSummary = "summary"

	VerdictAccepted = "accepted"
	VerdictRejected = "rejected"
	VerdictFailed   = "failed"
)
