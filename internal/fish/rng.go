package fish

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand"
	"sync"
	"time"
)

// Source is the randomness used by every sampler in this package.
// Implementations must be safe for concurrent use; casts for different
// players draw from the same Source.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Intn returns a value in [0, n). n must be > 0.
	Intn(n int) int
}

type lockedSource struct {
	mu  sync.Mutex
	rng *mrand.Rand
}

// NewSource returns a Source seeded from crypto/rand, falling back to the
// clock if the system entropy pool is unavailable.
func NewSource() Source {
	var b [8]byte
	seed := time.Now().UnixNano()
	if _, err := rand.Read(b[:]); err == nil {
		seed = int64(binary.LittleEndian.Uint64(b[:]))
	}
	return NewSeededSource(seed)
}

// NewSeededSource returns a deterministic Source, mostly useful in tests.
func NewSeededSource(seed int64) Source {
	return &lockedSource{rng: mrand.New(mrand.NewSource(seed))}
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// weightedIndex draws an index from a categorical distribution using a
// cumulative table and binary search. Non-positive weights are never picked.
// It returns -1 when no weight is positive.
func weightedIndex(weights []float64, src Source) int {
	cumulative := make([]float64, len(weights))
	total := 0.0
	for i, w := range weights {
		if w > 0 {
			total += w
		}
		cumulative[i] = total
	}
	if total <= 0 {
		return -1
	}

	roll := src.Float64() * total // [0, total)

	lo, hi := 0, len(cumulative)-1
	for lo < hi {
		mid := (lo + hi) >> 1
		if roll < cumulative[mid] {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo
}
