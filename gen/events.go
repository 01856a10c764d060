package gen

import "time"

// Event is a progress message from one worker slot, consumed solely by the
// aggregator. Events for a single item arrive in emit order on the shared
// channel; no ordering holds across workers.
type Event interface {
	event()
}

// Started is emitted once when a worker picks up an item.
type Started struct {
	Worker int
	Name   string
	Size   int64
}

// Progress is emitted at most once per report interval while writing.
// Written never decreases within one item.
type Progress struct {
	Worker  int
	Name    string
	Written int64
	Size    int64
	Elapsed time.Duration
	Rate    float64 // MB/s
}

// Completed is the success terminal event for an item.
type Completed struct {
	Worker  int
	Name    string
	Size    int64
	Elapsed time.Duration
	Rate    float64 // MB/s
}

// Failed is the failure terminal event for an item.
type Failed struct {
	Worker int
	Name   string
	Err    error
}

func (Started) event()   {}
func (Progress) event()  {}
func (Completed) event() {}
func (Failed) event()    {}
