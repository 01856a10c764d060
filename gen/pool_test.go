package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lepinkainen/binforge/plan"
	"github.com/lepinkainen/binforge/source"
)

// testItems builds a plan with the planner's naming scheme.
func testItems(n int, size int64) []plan.Item {
	items := make([]plan.Item, n)
	for i := range items {
		items[i] = plan.Item{Name: fmt.Sprintf("d%04d.bin", i), Size: size}
	}
	return items
}

func TestPoolRunsAllItems(t *testing.T) {
	dir := t.TempDir()
	items := testItems(5, 20_000)
	events := make(chan Event, 2*len(items)+256)

	p := &Pool{
		Workers:   2,
		Dir:       dir,
		ChunkSize: 4096,
		Interval:  time.Hour,
		NewSource: func() source.Source { return zeroSource{} },
	}
	failures := p.Run(items, events)
	if len(failures) != 0 {
		t.Fatalf("Expected no failures, got %v", failures)
	}

	for _, item := range items {
		fi, err := os.Stat(filepath.Join(dir, item.Name))
		if err != nil {
			t.Errorf("Missing output file %s: %v", item.Name, err)
			continue
		}
		if fi.Size() != item.Size {
			t.Errorf("%s: size %d, expected %d", item.Name, fi.Size(), item.Size)
		}
	}

	var completed int
	for _, ev := range collect(events) {
		if _, ok := ev.(Completed); ok {
			completed++
		}
	}
	if completed != len(items) {
		t.Errorf("Expected %d Completed events, got %d", len(items), completed)
	}
}

// gaugedSource tracks how many Fill calls run at once across all workers.
type gaugedSource struct {
	current *int32
	max     *int32
}

func (s gaugedSource) Fill(p []byte) error {
	cur := atomic.AddInt32(s.current, 1)
	for {
		old := atomic.LoadInt32(s.max)
		if cur <= old || atomic.CompareAndSwapInt32(s.max, old, cur) {
			break
		}
	}
	time.Sleep(time.Millisecond)
	atomic.AddInt32(s.current, -1)
	return zeroSource{}.Fill(p)
}

func TestPoolHonorsConcurrencyBound(t *testing.T) {
	dir := t.TempDir()
	items := testItems(5, 16*1024)
	events := make(chan Event, 2*len(items)+256)

	var current, max int32
	p := &Pool{
		Workers:   2,
		Dir:       dir,
		ChunkSize: 4096,
		Interval:  time.Hour,
		NewSource: func() source.Source { return gaugedSource{current: &current, max: &max} },
	}
	if failures := p.Run(items, events); len(failures) != 0 {
		t.Fatalf("Expected no failures, got %v", failures)
	}

	if got := atomic.LoadInt32(&max); got > 2 {
		t.Errorf("Observed %d concurrent fills, bound is 2", got)
	}
}

func TestPoolIsolatesFailures(t *testing.T) {
	dir := t.TempDir()
	items := testItems(5, 10_000)

	// Occupy one target so exactly that item fails on O_EXCL
	blocked := items[2].Name
	if err := os.WriteFile(filepath.Join(dir, blocked), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	events := make(chan Event, 2*len(items)+256)
	p := &Pool{
		Workers:   2,
		Dir:       dir,
		ChunkSize: 4096,
		Interval:  time.Hour,
		NewSource: func() source.Source { return zeroSource{} },
	}
	failures := p.Run(items, events)

	if len(failures) != 1 {
		t.Fatalf("Expected exactly 1 failure, got %d", len(failures))
	}
	if failures[0].Item.Name != blocked {
		t.Errorf("Failed item %s, expected %s", failures[0].Item.Name, blocked)
	}

	// Every sibling still completed
	for _, item := range items {
		if item.Name == blocked {
			continue
		}
		fi, err := os.Stat(filepath.Join(dir, item.Name))
		if err != nil {
			t.Errorf("Sibling %s missing: %v", item.Name, err)
			continue
		}
		if fi.Size() != item.Size {
			t.Errorf("Sibling %s: size %d, expected %d", item.Name, fi.Size(), item.Size)
		}
	}
}

func TestDefaultWorkers(t *testing.T) {
	tests := []struct {
		name  string
		items int
	}{
		{"Many items", 1000},
		{"Few items", 2},
		{"Single item", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultWorkers(tt.items)
			if got < 1 {
				t.Errorf("DefaultWorkers(%d) = %d, expected at least 1", tt.items, got)
			}
			if got > 16 {
				t.Errorf("DefaultWorkers(%d) = %d, cap is 16", tt.items, got)
			}
			if got > tt.items {
				t.Errorf("DefaultWorkers(%d) = %d, exceeds item count", tt.items, got)
			}
		})
	}
}
