// Package linear は情報量規準付きの最小二乗回帰を提供する
package linear

import (
	"math"

	"github.com/YuminosukeSato/scibma/core/model"
	"github.com/YuminosukeSato/scibma/core/parallel"
	"github.com/YuminosukeSato/scibma/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	// DefaultMinResidualRatio は残差平方和の下限（yᵀy に対する比率）
	DefaultMinResidualRatio = 1e-12

	defaultParallelThreshold = 1000
)

// Result は一回の最小二乗推定の結果
type Result struct {
	Coef          []float64 // 計画行列の列順の係数
	SSR           float64   // 残差平方和（下限適用後）
	LogLikelihood float64   // ガウス対数尤度
	BIC           float64   // ベイズ情報量規準
	AIC           float64   // 赤池情報量規準
	NObs          int       // 観測数
	NParams       int       // パラメータ数（列数）
}

// OLS は切片を暗黙に追加しない最小二乗回帰
//
// 定数項が必要な場合は計画行列に定数列を含める。
// FitLinear は状態を変更しないため、複数のゴルーチンから同時に呼べる。
type OLS struct {
	model.BaseEstimator

	minResidualRatio  float64
	parallelThreshold int

	result *Result
}

// NewOLS は新しい OLS を作成する
func NewOLS(opts ...Option) *OLS {
	o := &OLS{
		minResidualRatio:  DefaultMinResidualRatio,
		parallelThreshold: defaultParallelThreshold,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Fit はモデルを学習し、結果を保持する
func (o *OLS) Fit(X mat.Matrix, y mat.Vector) (*Result, error) {
	res, err := o.solve(X, y)
	if err != nil {
		return nil, err
	}
	o.result = res
	o.SetFitted()
	return res, nil
}

// FitLinear は model.LinearFitter を実装する
func (o *OLS) FitLinear(X mat.Matrix, y mat.Vector) (model.LinearFit, error) {
	res, err := o.solve(X, y)
	if err != nil {
		return model.LinearFit{}, err
	}
	return model.LinearFit{Coef: res.Coef, BIC: res.BIC}, nil
}

// Result は学習結果を返す（未学習なら nil）
func (o *OLS) Result() *Result {
	return o.result
}

// Predict は model.Predictor を実装する
func (o *OLS) Predict(X mat.Matrix) (*mat.VecDense, error) {
	if !o.IsFitted() {
		return nil, errors.NewNotFittedError("OLS", "Predict")
	}
	return o.result.Predict(X)
}

// solve は正規方程式 β = (XᵀX)⁻¹ Xᵀy を解き、情報量規準を計算する
func (o *OLS) solve(X mat.Matrix, y mat.Vector) (*Result, error) {
	n, k := X.Dims()
	if n == 0 || k == 0 {
		return nil, errors.NewModelError("OLS.Fit", "empty data", errors.ErrEmptyData)
	}
	if y.Len() != n {
		return nil, errors.NewDimensionError("OLS.Fit", n, y.Len(), 0)
	}
	if n < k {
		return nil, errors.NewModelError("OLS.Fit", "underdetermined system", errors.ErrUnderdetermined)
	}

	var xtx mat.Dense
	xtx.Mul(X.T(), X)

	// 特異・準特異の場合 gonum は Condition エラーを返す
	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err != nil {
		return nil, errors.NewModelError("OLS.Fit", "singular matrix", errors.Wrapf(errors.ErrSingularMatrix, "%v", err))
	}

	var xty mat.VecDense
	xty.MulVec(X.T(), y)

	beta := mat.NewVecDense(k, nil)
	beta.MulVec(&xtxInv, &xty)

	coef := make([]float64, k)
	for j := range coef {
		coef[j] = beta.AtVec(j)
	}
	if err := errors.CheckNumericalStability("ols_coefficients", coef); err != nil {
		return nil, err
	}

	// 残差は行ごとに独立に計算し、総和は逐次に取る（加算順序を固定する）
	resid := make([]float64, n)
	parallel.ParallelizeWithThreshold(n, o.parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			pred := 0.0
			for j := 0; j < k; j++ {
				pred += X.At(i, j) * coef[j]
			}
			resid[i] = y.AtVec(i) - pred
		}
	})
	ssr := floats.Dot(resid, resid)

	floor := o.minResidualRatio * mat.Dot(y, y)
	if floor < math.SmallestNonzeroFloat64 {
		floor = math.SmallestNonzeroFloat64
	}
	if ssr < floor {
		ssr = floor
	}

	nf := float64(n)
	llf := -nf / 2 * (math.Log(2*math.Pi) + math.Log(ssr/nf) + 1)
	bic := -2*llf + float64(k)*math.Log(nf)
	aic := -2*llf + 2*float64(k)
	if err := errors.CheckScalar("bic", bic); err != nil {
		return nil, err
	}

	return &Result{
		Coef:          coef,
		SSR:           ssr,
		LogLikelihood: llf,
		BIC:           bic,
		AIC:           aic,
		NObs:          n,
		NParams:       k,
	}, nil
}

// Predict は X の各行に係数を適用する
func (r *Result) Predict(X mat.Matrix) (*mat.VecDense, error) {
	n, c := X.Dims()
	if n == 0 {
		return nil, errors.NewModelError("OLS.Predict", "empty data", errors.ErrEmptyData)
	}
	if c != len(r.Coef) {
		return nil, errors.NewDimensionError("OLS.Predict", len(r.Coef), c, 1)
	}
	pred := mat.NewVecDense(n, nil)
	pred.MulVec(X, mat.NewVecDense(c, r.Coef))
	return pred, nil
}
