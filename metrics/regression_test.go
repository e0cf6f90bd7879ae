package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func vec(v ...float64) *mat.VecDense {
	return mat.NewVecDense(len(v), v)
}

type metricFunc func(yTrue, yPred mat.Vector) (float64, error)

func TestRegressionMetrics(t *testing.T) {
	tests := []struct {
		name   string
		metric metricFunc
		yTrue  *mat.VecDense
		yPred  *mat.VecDense
		want   float64
	}{
		{"MSE perfect", MSE, vec(1, 2, 3, 4, 5), vec(1, 2, 3, 4, 5), 0},
		{"MSE simple", MSE, vec(1, 2, 3, 4), vec(1.5, 2.5, 2.5, 3.5), 0.25},
		{"MSE larger errors", MSE, vec(10, 20, 30), vec(12, 18, 33), 17.0 / 3.0},
		{"RMSE", RMSE, vec(10, 20, 30), vec(12, 18, 33), math.Sqrt(17.0 / 3.0)},
		{"MAE", MAE, vec(10, 20, 30), vec(12, 18, 33), 7.0 / 3.0},
		{"R2 perfect", R2Score, vec(1, 2, 3), vec(1, 2, 3), 1},
		{"R2 mean predictor", R2Score, vec(1, 2, 3), vec(2, 2, 2), 0},
		{"R2 partial", R2Score, vec(1, 2, 3, 4), vec(1.5, 2.5, 2.5, 3.5), 1 - 1.0/5.0},
		{"MAPE skips zeros", MAPE, vec(0, 10, 20), vec(5, 11, 18), 10},
		{"explained variance constant bias", ExplainedVarianceScore, vec(1, 2, 3), vec(2, 3, 4), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.metric(tt.yTrue, tt.yPred)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-10)
		})
	}
}

func TestRegressionMetricErrors(t *testing.T) {
	metrics := map[string]metricFunc{
		"MSE":                    MSE,
		"RMSE":                   RMSE,
		"MAE":                    MAE,
		"R2Score":                R2Score,
		"MAPE":                   MAPE,
		"ExplainedVarianceScore": ExplainedVarianceScore,
	}
	for name, metric := range metrics {
		t.Run(name, func(t *testing.T) {
			_, err := metric(vec(1, 2, 3), vec(1, 2))
			assert.Error(t, err, "dimension mismatch")

			_, err = metric(&mat.VecDense{}, &mat.VecDense{})
			assert.Error(t, err, "empty vectors")
		})
	}

	_, err := R2Score(vec(2, 2, 2), vec(1, 2, 3))
	assert.Error(t, err, "no variance in yTrue")

	_, err = MAPE(vec(0, 0), vec(1, 2))
	assert.Error(t, err)
}

func TestMSEMatrix(t *testing.T) {
	got, err := MSEMatrix(
		mat.NewDense(4, 1, []float64{1, 2, 3, 4}),
		mat.NewDense(4, 1, []float64{1.5, 2.5, 2.5, 3.5}),
	)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, got, 1e-10)

	_, err = MSEMatrix(mat.NewDense(2, 2, nil), mat.NewDense(2, 2, nil))
	assert.Error(t, err, "multiple columns")

	_, err = MSEMatrix(mat.NewDense(2, 1, nil), mat.NewDense(3, 1, nil))
	assert.Error(t, err)
}

func TestRunningMean(t *testing.T) {
	var r RunningMean
	assert.Equal(t, 0.0, r.Mean())

	r.Add(1)
	r.Add(2)
	assert.InDelta(t, 2.0, r.Add(3), 1e-15)
	assert.Equal(t, 3, r.Count())
}

func BenchmarkMSE(b *testing.B) {
	size := 10000
	yTrue := mat.NewVecDense(size, nil)
	yPred := mat.NewVecDense(size, nil)
	for i := 0; i < size; i++ {
		yTrue.SetVec(i, float64(i))
		yPred.SetVec(i, float64(i)+0.1*float64(i%10))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = MSE(yTrue, yPred)
	}
}
