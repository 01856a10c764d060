package gen

import (
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/lepinkainen/binforge/plan"
	"github.com/lepinkainen/binforge/source"
)

// Failure records one item that did not reach Completed.
type Failure struct {
	Item plan.Item
	Err  error
}

// Pool fans work items out to a fixed number of worker goroutines over a
// shared jobs channel. A slot picks up the next undispatched item as soon as
// its current one reaches a terminal state, so uneven item sizes
// self-balance across workers.
type Pool struct {
	Workers   int
	Dir       string
	ChunkSize int64
	Interval  time.Duration
	NewSource func() source.Source
}

// DefaultWorkers caps concurrency at 16 and never exceeds the item count.
func DefaultWorkers(items int) int {
	workers := runtime.NumCPU()
	if workers > 16 {
		workers = 16
	}
	if workers > items {
		workers = items
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

// Run blocks until every item has reached a terminal state and returns the
// failures sorted by item name. One item's failure never aborts the rest of
// the batch. Each worker owns its own random source instance.
func (p *Pool) Run(items []plan.Item, events chan<- Event) []Failure {
	jobs := make(chan plan.Item, len(items))
	failc := make(chan Failure, len(items))

	var wg sync.WaitGroup
	for i := 0; i < p.Workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			src := p.NewSource()
			for item := range jobs {
				if err := WriteFile(worker, p.Dir, item, src, p.ChunkSize, p.Interval, events); err != nil {
					failc <- Failure{Item: item, Err: err}
				}
			}
		}(i)
	}

	for _, item := range items {
		jobs <- item
	}
	close(jobs)

	wg.Wait()
	close(failc)

	var failures []Failure
	for f := range failc {
		failures = append(failures, f)
	}
	sort.Slice(failures, func(i, j int) bool {
		return failures[i].Item.Name < failures[j].Item.Name
	})
	return failures
}
