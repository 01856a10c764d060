package source

import (
	"crypto/rand"
	"io"

	"github.com/dustin/randbo"
)

// Source produces blocks of uniformly random bytes. Implementations are not
// safe for concurrent use; each worker owns its own instance.
type Source interface {
	Fill(p []byte) error
}

// CryptoSource reads from the operating system CSPRNG.
type CryptoSource struct{}

func (CryptoSource) Fill(p []byte) error {
	_, err := io.ReadFull(rand.Reader, p)
	return err
}

// FastSource streams bytes from a fast userspace PRNG. It cannot run out of
// entropy, which makes it the fallback tier when the CSPRNG is unavailable.
// The output is uniform but not cryptographically strong.
type FastSource struct {
	r io.Reader
}

// NewFast returns a FastSource with a freshly seeded generator.
func NewFast() *FastSource {
	return &FastSource{r: randbo.New()}
}

func (s *FastSource) Fill(p []byte) error {
	_, err := io.ReadFull(s.r, p)
	return err
}

// tiered tries the primary source and downgrades permanently to the fallback
// after the first primary failure. Callers stay fallback-agnostic.
type tiered struct {
	primary  Source
	fallback Source
	degraded bool
}

// Tiered combines a primary and a fallback source behind one Source.
func Tiered(primary, fallback Source) Source {
	return &tiered{primary: primary, fallback: fallback}
}

func (t *tiered) Fill(p []byte) error {
	if !t.degraded {
		if err := t.primary.Fill(p); err == nil {
			return nil
		}
		t.degraded = true
	}
	return t.fallback.Fill(p)
}

// Default is the production configuration: CSPRNG with PRNG fallback.
func Default() Source {
	return Tiered(CryptoSource{}, NewFast())
}
