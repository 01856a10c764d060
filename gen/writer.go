package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lepinkainen/binforge/plan"
	"github.com/lepinkainen/binforge/source"
)

// Streaming defaults, overridable from the command line.
const (
	DefaultChunkSize = 512 * 1024
	DefaultInterval  = 5 * time.Second
)

func rateMBps(written int64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(written) / (1024 * 1024) / elapsed.Seconds()
}

// WriteFile streams random bytes to dir/item.Name until the item's size is
// reached. It emits Started immediately, rate-limited Progress events after
// chunks, and exactly one of Completed or Failed. The target must not exist
// yet; a failed item leaves its partial file in place.
func WriteFile(worker int, dir string, item plan.Item, src source.Source, chunkSize int64, interval time.Duration, events chan<- Event) error {
	path := filepath.Join(dir, item.Name)

	events <- Started{Worker: worker, Name: item.Name, Size: item.Size}

	fail := func(err error) error {
		events <- Failed{Worker: worker, Name: item.Name, Err: err}
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL|os.O_APPEND, 0o644)
	if err != nil {
		return fail(fmt.Errorf("open %s: %w", path, err))
	}

	start := time.Now()
	lastReport := start
	buf := make([]byte, chunkSize)

	var written int64
	for written < item.Size {
		n := chunkSize
		if remaining := item.Size - written; remaining < n {
			n = remaining
		}

		if err := src.Fill(buf[:n]); err != nil {
			f.Close()
			return fail(fmt.Errorf("random source: %w", err))
		}
		if _, err := f.Write(buf[:n]); err != nil {
			f.Close()
			return fail(fmt.Errorf("write %s: %w", path, err))
		}
		written += n

		if now := time.Now(); now.Sub(lastReport) >= interval {
			elapsed := now.Sub(start)
			events <- Progress{
				Worker:  worker,
				Name:    item.Name,
				Written: written,
				Size:    item.Size,
				Elapsed: elapsed,
				Rate:    rateMBps(written, elapsed),
			}
			lastReport = now
		}
	}

	if err := f.Close(); err != nil {
		return fail(fmt.Errorf("close %s: %w", path, err))
	}

	elapsed := time.Since(start)
	events <- Completed{
		Worker:  worker,
		Name:    item.Name,
		Size:    item.Size,
		Elapsed: elapsed,
		Rate:    rateMBps(item.Size, elapsed),
	}
	return nil
}
