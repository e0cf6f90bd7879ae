package bma

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel(t *testing.T) {
	m := NewModel(5, 0, 2)

	assert.Equal(t, 3, m.Size())
	assert.Equal(t, []int{0, 2, 5}, m.Indices())
	assert.Equal(t, "(0, 2, 5)", m.String())
	assert.True(t, m.Has(2))
	assert.False(t, m.Has(1))
	assert.True(t, m.Contains(NewModel(0, 5)))
	assert.False(t, m.Contains(NewModel(1)))
	assert.Equal(t, "(63)", NewModel(63).String())
}

func TestCombinations(t *testing.T) {
	tests := []struct {
		p, k, want int
	}{
		{5, 0, 1},
		{5, 1, 5},
		{5, 2, 10},
		{5, 5, 1},
		{5, 6, 0},
		{20, 10, 184756},
		{64, 3, 41664},
		{61, 30, 232714176627630544},
		{62, 31, 465428353255261088},
		{63, 20, 13488561475572645},
		{64, 32, 1832624140942590534},
		{64, 63, 64},
		{64, 64, 1},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("C(%d,%d)", tt.p, tt.k), func(t *testing.T) {
			assert.Equal(t, tt.want, Combinations(tt.p, tt.k))
		})
	}
}

func TestAllSubsetsWidest(t *testing.T) {
	all := make([]int, MaxColumns)
	for i := range all {
		all[i] = i
	}

	got := AllSubsets(MaxColumns, MaxColumns-1)
	require.Len(t, got, MaxColumns)
	assert.Equal(t, NewModel(all[:MaxColumns-1]...), got[0])
	assert.Equal(t, NewModel(all[1:]...), got[MaxColumns-1])
	for i := 1; i < len(got); i++ {
		assert.True(t, lexLess(got[i-1], got[i]))
	}

	assert.Equal(t, []Model{NewModel(all...)}, AllSubsets(MaxColumns, MaxColumns))
	assert.Len(t, AllSubsets(MaxColumns, 2), 2016)
}

func TestAllSubsetsLexicographic(t *testing.T) {
	got := AllSubsets(4, 2)
	names := make([]string, len(got))
	for i, m := range got {
		names[i] = m.String()
	}
	assert.Equal(t, []string{"(0, 1)", "(0, 2)", "(0, 3)", "(1, 2)", "(1, 3)", "(2, 3)"}, names)
}

func TestLexLess(t *testing.T) {
	assert.True(t, lexLess(NewModel(0, 3), NewModel(1, 2)))
	assert.True(t, lexLess(NewModel(0, 1, 5), NewModel(0, 2, 3)))
	assert.False(t, lexLess(NewModel(1, 2), NewModel(0, 3)))
	assert.False(t, lexLess(NewModel(1, 2), NewModel(1, 2)))
}

func TestEnumerateUnprunedMatchesCombinations(t *testing.T) {
	const p = 7
	for k := 1; k <= p; k++ {
		var previous []Model
		if k > 1 {
			previous = AllSubsets(p, k-1)
		}
		got := Enumerate(p, k, previous)
		require.Len(t, got, Combinations(p, k), "size %d", k)
		assert.Equal(t, AllSubsets(p, k), got, "size %d", k)
	}
}

func TestEnumeratePruned(t *testing.T) {
	tests := []struct {
		name     string
		p, k     int
		previous []Model
		want     []Model
	}{
		{
			name:     "single survivor",
			p:        4,
			k:        3,
			previous: []Model{NewModel(0, 1)},
			want:     []Model{NewModel(0, 1, 2), NewModel(0, 1, 3)},
		},
		{
			name:     "shared supersets are not duplicated",
			p:        4,
			k:        2,
			previous: []Model{NewModel(3), NewModel(1)},
			want:     []Model{NewModel(0, 1), NewModel(0, 3), NewModel(1, 2), NewModel(1, 3), NewModel(2, 3)},
		},
		{
			name: "no survivors",
			p:    4,
			k:    2,
			want: nil,
		},
		{
			name:     "size above p",
			p:        2,
			k:        3,
			previous: []Model{NewModel(0, 1)},
			want:     nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Enumerate(tt.p, tt.k, tt.previous))
		})
	}
}

func TestEnumerateCountsSupersets(t *testing.T) {
	const p, k = 8, 4
	previous := []Model{NewModel(0, 1, 2), NewModel(2, 5, 7), NewModel(1, 2, 3)}

	got := Enumerate(p, k, previous)

	want := 0
	for _, c := range AllSubsets(p, k) {
		for _, prev := range previous {
			if c.Contains(prev) {
				want++
				break
			}
		}
	}
	assert.Len(t, got, want)
	assert.LessOrEqual(t, len(got), Combinations(p, k))
	for i := 1; i < len(got); i++ {
		assert.True(t, lexLess(got[i-1], got[i]), "candidates must be sorted")
	}
}
