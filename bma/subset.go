package bma

import (
	"math/big"
	"math/bits"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat/combin"
)

// Model is a subset of predictor columns, one bit per column index.
type Model uint64

// NewModel returns the model containing the given column indices.
func NewModel(indices ...int) Model {
	var m Model
	for _, j := range indices {
		m |= 1 << uint(j)
	}
	return m
}

// Size returns the number of columns in m.
func (m Model) Size() int {
	return bits.OnesCount64(uint64(m))
}

// Has reports whether column j is in m.
func (m Model) Has(j int) bool {
	return m&(1<<uint(j)) != 0
}

// Contains reports whether m is a superset of other.
func (m Model) Contains(other Model) bool {
	return m&other == other
}

// Indices returns the column indices of m in increasing order.
func (m Model) Indices() []int {
	out := make([]int, 0, m.Size())
	for v := uint64(m); v != 0; v &= v - 1 {
		out = append(out, bits.TrailingZeros64(v))
	}
	return out
}

// String formats m as a sorted index tuple, e.g. "(0, 2, 5)".
func (m Model) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, j := range m.Indices() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Itoa(j))
	}
	sb.WriteByte(')')
	return sb.String()
}

// lexLess orders two models of equal size by their sorted index tuples.
// Below the lowest differing bit both tuples agree, so the model holding that
// bit has the smaller element at the first differing position.
func lexLess(a, b Model) bool {
	d := uint64(a ^ b)
	if d == 0 {
		return false
	}
	low := d & -d
	return uint64(a)&low != 0
}

// Enumerate returns the candidate models of size k over p columns.
//
// For k == 1 every single column is a candidate. For k > 1 the candidates are
// the size-k subsets that contain at least one model of previous, the models
// accepted at size k-1. Every such subset is one of those models plus one
// column, so the candidates are built by extension rather than by filtering
// all C(p, k) subsets. The result is sorted lexicographically by index tuple
// and contains no duplicates.
func Enumerate(p, k int, previous []Model) []Model {
	if k < 1 || k > p {
		return nil
	}
	if k == 1 {
		out := make([]Model, p)
		for j := 0; j < p; j++ {
			out[j] = NewModel(j)
		}
		return out
	}

	seen := make(map[Model]struct{})
	var out []Model
	for _, prev := range previous {
		if prev.Size() != k-1 {
			continue
		}
		for j := 0; j < p; j++ {
			if prev.Has(j) {
				continue
			}
			c := prev | NewModel(j)
			if _, dup := seen[c]; dup {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return lexLess(out[i], out[j]) })
	return out
}

// AllSubsets returns every size-k subset of p columns in lexicographic order.
// The caller keeps C(p, k) small enough to hold in memory.
func AllSubsets(p, k int) []Model {
	if k < 1 || k > p {
		return nil
	}
	out := make([]Model, 0, Combinations(p, k))
	gen := combin.NewCombinationGenerator(p, k)
	idx := make([]int, k)
	for gen.Next() {
		out = append(out, NewModel(gen.Combination(idx)...))
	}
	return out
}

// binomialSafeMax is the largest p for which combin.Binomial cannot
// overflow: its intermediate products reach k·C(p, k).
const binomialSafeMax = 61

// Combinations returns C(p, k). Every C(p, k) with p <= MaxColumns fits in
// an int.
func Combinations(p, k int) int {
	if k < 0 || k > p {
		return 0
	}
	if p <= binomialSafeMax {
		return combin.Binomial(p, k)
	}
	return int(new(big.Int).Binomial(int64(p), int64(k)).Int64())
}
