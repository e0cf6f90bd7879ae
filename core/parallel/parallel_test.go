package parallel

import (
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParallelizeWorkersCoversEveryItemOnce(t *testing.T) {
	for _, tc := range []struct {
		name    string
		items   int
		workers int
	}{
		{"sequential", 10, 1},
		{"even split", 12, 4},
		{"uneven split", 13, 4},
		{"more workers than items", 3, 8},
		{"empty", 0, 4},
	} {
		t.Run(tc.name, func(t *testing.T) {
			hits := make([]int32, tc.items)
			ParallelizeWorkers(tc.items, tc.workers, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt32(&hits[i], 1)
				}
			})
			for i, h := range hits {
				assert.Equal(t, int32(1), h, "item %d", i)
			}
		})
	}
}

func TestParallelizeWithThresholdSequential(t *testing.T) {
	var calls int32
	ParallelizeWithThreshold(50, 100, func(start, end int) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, 0, start)
		assert.Equal(t, 50, end)
	})
	assert.Equal(t, int32(1), calls)
}

func TestWorkers(t *testing.T) {
	assert.Equal(t, runtime.NumCPU(), Workers(-1))
	assert.Equal(t, 1, Workers(0))
	assert.Equal(t, 3, Workers(3))
}
