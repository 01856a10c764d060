package plan

import (
	"fmt"
	"math/rand"
)

// Item is one planned unit of generation work: a file name and the exact
// number of random bytes it will hold. Items are immutable once planned.
type Item struct {
	Name string
	Size int64
}

// Partition splits total into an ordered sequence of items whose sizes sum
// to exactly total. Sizes are drawn uniformly from [minSize, maxSize]; once
// the remainder drops below minSize the final item takes exactly the
// remainder, so the last item may be undersized. Names are zero-padded
// sequential so lexical order matches plan order.
func Partition(total, minSize, maxSize int64, rng *rand.Rand) ([]Item, error) {
	if total <= 0 {
		return nil, fmt.Errorf("total size must be positive, got %d", total)
	}
	if minSize <= 0 {
		return nil, fmt.Errorf("minimum file size must be positive, got %d", minSize)
	}
	if maxSize < minSize {
		return nil, fmt.Errorf("maximum file size %d is below minimum %d", maxSize, minSize)
	}

	var items []Item
	remaining := total
	for remaining > 0 {
		size := remaining
		if remaining >= minSize {
			limit := maxSize
			if remaining < limit {
				limit = remaining
			}
			size = minSize + rng.Int63n(limit-minSize+1)
		}
		items = append(items, Item{
			Name: fmt.Sprintf("d%04d.bin", len(items)),
			Size: size,
		})
		remaining -= size
	}

	return items, nil
}

// Total sums the planned sizes.
func Total(items []Item) int64 {
	var total int64
	for _, item := range items {
		total += item.Size
	}
	return total
}
