package main

import (
	"context"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
)

// maxAutoWorkers caps the automatic worker count.
const maxAutoWorkers = 16

// resolvePoolSize determines the number of chapters processed in parallel.
// Priority: explicit count > GOMAXPROCS-based calculation.
func resolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	if n > maxAutoWorkers {
		return maxAutoWorkers
	}
	return n
}

// renumberBatch processes chapters concurrently. Results keep the order of jobs.
// Jobs still queued when ctx is canceled fail with the context error.
func renumberBatch(ctx context.Context, jobs []chapterJob, poolSize int, opts *rewriteOptions, logger zerolog.Logger, env *Environment) []chapterResult {
	if len(jobs) == 0 {
		return nil
	}

	concurrency := min(poolSize, len(jobs))

	results := make([]chapterResult, len(jobs))
	var wg sync.WaitGroup
	queue := make(chan int, len(jobs))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range queue {
				if ctx.Err() != nil {
					results[idx] = chapterResult{Job: jobs[idx], Err: ctx.Err()}
					continue
				}
				results[idx] = processChapter(jobs[idx], opts, logger, env)
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return results
}
