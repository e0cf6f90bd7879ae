// Package dataset は CSV からの回帰データの読み込みと、学習・評価用の分割を提供する
package dataset

import (
	"encoding/csv"
	"io"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/scibma/pkg/errors"
)

// Dataset は目的変数 Y と説明変数行列 X（行が観測）の組
type Dataset struct {
	Names []string
	X     *mat.Dense
	Y     *mat.VecDense
}

// Dims は観測数と説明変数の数を返す
func (d *Dataset) Dims() (rows, cols int) {
	return d.X.Dims()
}

// missing は欠損値として扱う文字列
var missing = map[string]struct{}{
	"":    {},
	"na":  {},
	"nan": {},
	"n/a": {},
}

// ReadCSV はヘッダ付き CSV を読み込む
//
// response は目的変数の列名。predictors が nil の場合は response 以外の全列を
// 説明変数とする。欠損値（空文字、NA、NaN）は NaN として読み込まれるので、
// 必要に応じて DropNA で除去する。
func ReadCSV(r io.Reader, response string, predictors []string) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.NewModelError("ReadCSV", "empty data", errors.ErrEmptyData)
	}
	if err != nil {
		return nil, errors.Wrap(err, "ReadCSV: read header")
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}

	yCol, ok := index[response]
	if !ok {
		return nil, errors.NewValidationError("response", "column not found in header", response)
	}
	if predictors == nil {
		for _, h := range header {
			if h = strings.TrimSpace(h); h != response {
				predictors = append(predictors, h)
			}
		}
	}
	if len(predictors) == 0 {
		return nil, errors.NewValidationError("predictors", "at least one predictor column is required", predictors)
	}
	xCols := make([]int, len(predictors))
	for j, name := range predictors {
		c, ok := index[name]
		if !ok {
			return nil, errors.NewValidationError("predictors", "column not found in header", name)
		}
		xCols[j] = c
	}

	var xData, yData []float64
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, errors.Wrapf(err, "ReadCSV: line %d", line)
		}
		y, err := parseCell(rec[yCol])
		if err != nil {
			return nil, errors.Wrapf(err, "ReadCSV: line %d, column %q", line, response)
		}
		yData = append(yData, y)
		for j, c := range xCols {
			v, err := parseCell(rec[c])
			if err != nil {
				return nil, errors.Wrapf(err, "ReadCSV: line %d, column %q", line, predictors[j])
			}
			xData = append(xData, v)
		}
	}
	if len(yData) == 0 {
		return nil, errors.NewModelError("ReadCSV", "no data rows", errors.ErrEmptyData)
	}

	return &Dataset{
		Names: append([]string(nil), predictors...),
		X:     mat.NewDense(len(yData), len(predictors), xData),
		Y:     mat.NewVecDense(len(yData), yData),
	}, nil
}

func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if _, ok := missing[strings.ToLower(s)]; ok {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// DropNA は目的変数または説明変数に NaN を含む行を除いた Dataset と、
// 除去した行数を返す。全行が除去される場合は ErrEmptyData を返す
func DropNA(d *Dataset) (*Dataset, int, error) {
	n, _ := d.Dims()
	keep := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(d.Y.AtVec(i)) || hasNaN(d.X.RawRowView(i)) {
			continue
		}
		keep = append(keep, i)
	}
	if len(keep) == 0 {
		return nil, n, errors.NewModelError("DropNA", "every row has a missing value", errors.ErrEmptyData)
	}
	return d.rows(keep), n - len(keep), nil
}

func hasNaN(row []float64) bool {
	for _, v := range row {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

// rows は指定した行だけを指定順に持つ Dataset を返す。rows は空であってはならない
func (d *Dataset) rows(rows []int) *Dataset {
	_, p := d.Dims()
	out := &Dataset{
		Names: append([]string(nil), d.Names...),
		X:     mat.NewDense(len(rows), p, nil),
		Y:     mat.NewVecDense(len(rows), nil),
	}
	for k, i := range rows {
		out.X.SetRow(k, d.X.RawRowView(i))
		out.Y.SetVec(k, d.Y.AtVec(i))
	}
	return out
}

// TrainTestSplit は行をシャッフルして学習用と評価用に分割する
//
// testSize は評価用に回す行の割合 (0, 1)。評価用の行数は切り上げで決まり、
// 両方に少なくとも1行が残る必要がある。同じ seed からは常に同じ分割が得られる。
func TrainTestSplit(d *Dataset, testSize float64, seed uint64) (train, test *Dataset, err error) {
	if !(testSize > 0 && testSize < 1) {
		return nil, nil, errors.NewValidationError("testSize", "must be in (0, 1)", testSize)
	}
	n, _ := d.Dims()
	nTest := int(math.Ceil(testSize * float64(n)))
	if nTest < 1 || nTest >= n {
		return nil, nil, errors.NewValidationError("testSize", "leaves an empty train or test set", testSize)
	}

	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	perm := rng.Perm(n)
	return d.rows(perm[nTest:]), d.rows(perm[:nTest]), nil
}
