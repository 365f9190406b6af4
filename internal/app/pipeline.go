package app

import (
	"runtime"
	"sync"

	"github.com/corey/secframe/internal/domain/score"
	"github.com/corey/secframe/internal/ports"
)

// scoreConcurrent scores records over a bounded worker pool. Each goroutine
// writes only its own slot of the results slice, so output order always
// matches input order regardless of scheduling.
func scoreConcurrent(scorer *score.Scorer, records []ports.Record, workers int) []ports.ScoredRecord {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers == 1 || len(records) < 2 {
		return scorer.ScoreAll(records)
	}

	results := make([]ports.ScoredRecord, len(records))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i := range records {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release
			results[i] = scorer.Score(records[i])
		}(i)
	}
	wg.Wait()

	return results
}
