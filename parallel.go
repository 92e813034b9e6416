package lossyjpeg

import (
	"runtime"
	"sync"
)

var (
	maxParallelWorkers = 0
	workerSemOnce      sync.Once
	workerSem          chan struct{}
)

// parallelFor splits [0, total) into contiguous ranges and runs fn on them
// with at most workers goroutines (GOMAXPROCS when workers <= 0).
// A shared semaphore bounds the goroutines across concurrent callers.
func parallelFor(total, workers int, fn func(start, end int)) {
	if total <= 0 {
		return
	}
	capacity := runtime.GOMAXPROCS(0)
	if maxParallelWorkers > 0 && capacity > maxParallelWorkers {
		capacity = maxParallelWorkers
	}
	if capacity < 1 {
		capacity = 1
	}
	workerSemOnce.Do(func() {
		workerSem = make(chan struct{}, capacity)
	})
	if workers <= 0 || workers > capacity {
		workers = capacity
	}
	if workers > total {
		workers = total
	}
	if workers <= 1 {
		fn(0, total)
		return
	}
	step := (total + workers - 1) / workers
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		start := i * step
		end := start + step
		if end > total {
			end = total
		}
		if start >= end {
			break
		}
		wg.Add(1)
		select {
		case workerSem <- struct{}{}:
			go func(s, e int) {
				defer wg.Done()
				defer func() { <-workerSem }()
				fn(s, e)
			}(start, end)
		default:
			// Pool exhausted by an outer caller, run inline.
			fn(start, end)
			wg.Done()
		}
	}
	wg.Wait()
}
