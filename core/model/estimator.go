// Package model はモデル平均化と回帰ソルバの間の共通インターフェースを定義する
package model

import "gonum.org/v1/gonum/mat"

// LinearFit は一つの計画行列に対する最小二乗回帰の結果
type LinearFit struct {
	// Coef は計画行列の列と同じ順序の係数
	Coef []float64
	// BIC はベイズ情報量規準（小さいほど良い）
	BIC float64
}

// LinearFitter は任意の列部分集合に対して係数とBICを返す回帰ソルバ
//
// 実装は切片を暗黙に追加してはならない。定数列が必要な場合は
// 呼び出し側が計画行列に含める。
type LinearFitter interface {
	FitLinear(X mat.Matrix, y mat.Vector) (LinearFit, error)
}

// LinearFitterFunc は関数を LinearFitter として扱うためのアダプタ
type LinearFitterFunc func(X mat.Matrix, y mat.Vector) (LinearFit, error)

// FitLinear は f(X, y) を呼ぶ
func (f LinearFitterFunc) FitLinear(X mat.Matrix, y mat.Vector) (LinearFit, error) {
	return f(X, y)
}

// Predictor は予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は X の各行（観測）に対する予測値を返す
	Predict(X mat.Matrix) (*mat.VecDense, error)
}
