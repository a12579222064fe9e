// Package entropy abstracts the randomness the schedulers consume so tests
// can supply seeded, deterministic sources.
package entropy

import (
	"math/rand"
	"sync"
	"time"
)

// Source supplies the random draws used by stock rotation and meteor
// resolution. Implementations must be safe for use from a single scheduler
// goroutine; the default source is additionally safe for concurrent use.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// Intn returns a uniform value in [0, n). Panics if n <= 0.
	Intn(n int) int
	// Shuffle performs a uniform Fisher-Yates shuffle of n elements.
	Shuffle(n int, swap func(i, j int))
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// New returns a seeded source. The same seed always yields the same draw
// sequence, which the tests rely on.
func New(seed int64) Source {
	return &lockedRand{r: rand.New(rand.NewSource(seed))}
}

// NewFromTime returns a source seeded from the wall clock.
func NewFromTime() Source {
	return New(time.Now().UnixNano())
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

func (l *lockedRand) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.r.Shuffle(n, swap)
}
