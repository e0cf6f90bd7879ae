package parallel

import (
	"runtime"
	"sync"
)

// Workers resolves an n_jobs style setting: -1 (or any negative value) means
// one worker per CPU core, 0 means one worker.
func Workers(nJobs int) int {
	switch {
	case nJobs < 0:
		return runtime.NumCPU()
	case nJobs == 0:
		return 1
	default:
		return nJobs
	}
}

// ParallelizeWorkers splits [0, items) into contiguous ranges, one per worker,
// and runs fn on each range in its own goroutine. It returns when every range
// has been processed. With one worker fn runs on the calling goroutine.
func ParallelizeWorkers(items, workers int, fn func(start, end int)) {
	if items == 0 {
		return
	}
	if workers > items {
		workers = items // No need for more workers than items
	}
	if workers <= 1 {
		fn(0, items)
		return
	}

	// Ceiling division
	chunkSize := (items + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < items; start += chunkSize {
		end := start + chunkSize
		if end > items {
			end = items
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// Parallelize runs ParallelizeWorkers with one worker per CPU core.
func Parallelize(items int, fn func(start, end int)) {
	ParallelizeWorkers(items, runtime.NumCPU(), fn)
}

// ParallelizeWithThreshold parallelizes only when items exceeds threshold;
// smaller inputs are processed sequentially.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}
