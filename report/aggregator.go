package report

import (
	"fmt"
	"io"
	"time"

	"code.cloudfoundry.org/bytefmt"
	"github.com/charmbracelet/lipgloss"
	"github.com/schollz/progressbar/v3"

	"github.com/lepinkainen/binforge/gen"
)

// workerState tracks one active worker slot between its Started and terminal
// events. Keyed by slot id rather than file name, since a slot is reused
// across items over the run.
type workerState struct {
	name       string
	written    int64
	size       int64
	rate       float64
	lastUpdate time.Time
}

// Summary is the final tally for a run.
type Summary struct {
	CompletedItems int
	FailedItems    int
	CompletedBytes int64
	Elapsed        time.Duration
	Failed         []string
}

// Aggregator is the single consumer of the pool's event channel. It owns all
// cross-worker progress state, so none of its fields need locking.
type Aggregator struct {
	Items int
	Bytes int64
	Out   io.Writer
	Bar   bool

	bar     *progressbar.ProgressBar
	workers map[int]*workerState
}

func stamp() string {
	return time.Now().Format("15:04:05")
}

// Run drains events until every planned item has reported a terminal state
// (or the channel closes early), printing a line per event and a final
// summary. A one-second ticker keeps the loop live while no events arrive.
func (a *Aggregator) Run(events <-chan gen.Event) Summary {
	a.workers = make(map[int]*workerState)
	start := time.Now()

	if a.Bar {
		a.bar = progressbar.NewOptions64(a.Bytes,
			progressbar.OptionSetWriter(a.Out),
			progressbar.OptionSetDescription("generating"),
			progressbar.OptionShowBytes(true),
			progressbar.OptionThrottle(100*time.Millisecond),
		)
	}

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	var sum Summary

loop:
	for sum.CompletedItems+sum.FailedItems < a.Items {
		select {
		case ev, ok := <-events:
			if !ok {
				break loop
			}
			a.apply(ev, &sum, start)
		case <-ticker.C:
			// Liveness tick only; the blocking receive is the wake mechanism.
		}
	}

	sum.Elapsed = time.Since(start)
	a.printSummary(sum)
	return sum
}

func (a *Aggregator) apply(ev gen.Event, sum *Summary, start time.Time) {
	switch ev := ev.(type) {
	case gen.Started:
		a.workers[ev.Worker] = &workerState{
			name:       ev.Name,
			size:       ev.Size,
			lastUpdate: time.Now(),
		}
		if !a.Bar {
			fmt.Fprintf(a.Out, "[%s] %s\n", stamp(),
				infoStyle.Render(fmt.Sprintf("worker %2d started %-10s (%s)",
					ev.Worker+1, ev.Name, bytefmt.ByteSize(uint64(ev.Size)))))
		}

	case gen.Progress:
		state, ok := a.workers[ev.Worker]
		if !ok {
			state = &workerState{name: ev.Name, size: ev.Size}
			a.workers[ev.Worker] = state
		}
		delta := ev.Written - state.written
		state.written = ev.Written
		state.size = ev.Size
		state.rate = ev.Rate
		state.lastUpdate = time.Now()

		if a.Bar {
			a.bar.Add64(delta)
			return
		}
		percent := 0.0
		if ev.Size > 0 {
			percent = float64(ev.Written) / float64(ev.Size) * 100
		}
		fmt.Fprintf(a.Out, "[%s] worker %2d: %-10s - %5.1f%% (%s/%s) - %5.2f MB/s\n",
			stamp(), ev.Worker+1, ev.Name, percent,
			bytefmt.ByteSize(uint64(ev.Written)), bytefmt.ByteSize(uint64(ev.Size)), ev.Rate)

	case gen.Completed:
		var already int64
		if state, ok := a.workers[ev.Worker]; ok {
			already = state.written
		}
		delete(a.workers, ev.Worker)

		sum.CompletedItems++
		sum.CompletedBytes += ev.Size

		if a.Bar {
			a.bar.Add64(ev.Size - already)
			return
		}
		fmt.Fprintf(a.Out, "[%s] %s\n", stamp(),
			successStyle.Render(fmt.Sprintf("worker %2d completed %-10s in %6.2fs (%5.2f MB/s)",
				ev.Worker+1, ev.Name, ev.Elapsed.Seconds(), ev.Rate)))
		a.printTally(*sum, time.Since(start))

	case gen.Failed:
		delete(a.workers, ev.Worker)
		sum.FailedItems++
		sum.Failed = append(sum.Failed, ev.Name)
		fmt.Fprintf(a.Out, "[%s] %s\n", stamp(),
			errorStyle.Render(fmt.Sprintf("worker %2d failed %-10s: %v", ev.Worker+1, ev.Name, ev.Err)))
	}
}

// printTally reports the global view after each completion, the way the
// per-file lines report the local one.
func (a *Aggregator) printTally(sum Summary, elapsed time.Duration) {
	percent := 0.0
	if a.Bytes > 0 {
		percent = float64(sum.CompletedBytes) / float64(a.Bytes) * 100
	}
	fmt.Fprintf(a.Out, "[%s] overall: %5.1f%% (%s/%s) - %6.2f GB/h - %d/%d files\n",
		stamp(), percent,
		bytefmt.ByteSize(uint64(sum.CompletedBytes)), bytefmt.ByteSize(uint64(a.Bytes)),
		gbPerHour(sum.CompletedBytes, elapsed), sum.CompletedItems, a.Items)
}

func (a *Aggregator) printSummary(sum Summary) {
	if a.Bar {
		fmt.Fprintln(a.Out)
	}
	fmt.Fprintf(a.Out, "\n%s\n", successStyle.Render(fmt.Sprintf(
		"Done: %d/%d files, %s in %s (%.2f GB/h)",
		sum.CompletedItems, a.Items,
		bytefmt.ByteSize(uint64(sum.CompletedBytes)),
		sum.Elapsed.Round(time.Second), gbPerHour(sum.CompletedBytes, sum.Elapsed))))
	if len(sum.Failed) > 0 {
		fmt.Fprintf(a.Out, "%s\n", errorStyle.Render(fmt.Sprintf("Failed: %v", sum.Failed)))
	}
}

func gbPerHour(bytes int64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(bytes) / (1 << 30) / elapsed.Hours()
}

// Styling definitions
var (
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true)
)
