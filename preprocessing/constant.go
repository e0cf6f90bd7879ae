package preprocessing

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scibma/pkg/errors"
)

// ConstantName は AddConstant が追加する切片列の名前
const ConstantName = "const"

// AddConstant は X の先頭に値1の列を追加した新しい行列を返す
//
// 回帰ソルバは切片を暗黙に追加しないため、切片付きのモデルを平均化する場合は
// この関数で計画行列を作る。names が nil でなければ先頭に ConstantName を
// 加えた列名も返す。
func AddConstant(X mat.Matrix, names []string) (*mat.Dense, []string, error) {
	r, c := X.Dims()
	if r == 0 {
		return nil, nil, errors.NewModelError("AddConstant", "empty data", errors.ErrEmptyData)
	}
	if names != nil && len(names) != c {
		return nil, nil, errors.NewDimensionError("AddConstant", c, len(names), 1)
	}

	out := mat.NewDense(r, c+1, nil)
	for i := 0; i < r; i++ {
		out.Set(i, 0, 1)
	}
	if c > 0 {
		out.Slice(0, r, 1, c+1).(*mat.Dense).Copy(X)
	}

	var outNames []string
	if names != nil {
		outNames = append([]string{ConstantName}, names...)
	}
	return out, outNames, nil
}
