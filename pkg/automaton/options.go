package automaton

import (
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/aretw0/jza/pkg/domain"
)

const (
	// DefaultMaxRetries bounds restarts of Monte-Carlo constructions such as PrependFull.
	DefaultMaxRetries = 64
	// DefaultMaxSteps bounds the length of a single random walk.
	DefaultMaxSteps = 512
)

// Rand is the source of uniform draws in [0, 1) used for sampling.
type Rand interface {
	Float64() float64
}

// Option configures an Automaton.
type Option func(*Automaton)

// WithRand installs a random source. The source is not synchronized.
func WithRand(r Rand) Option {
	return func(a *Automaton) {
		a.rng = r
	}
}

// WithSeed installs a deterministic PCG source seeded with seed.
func WithSeed(seed uint64) Option {
	return WithRand(NewSeededRand(seed))
}

// NewSeededRand returns an unsynchronized PCG source seeded with seed.
func NewSeededRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

type lockedRand struct {
	mu sync.Mutex
	r  Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

// Synchronized wraps r so that several goroutines may sample from one
// automaton concurrently.
func Synchronized(r Rand) Rand {
	return &lockedRand{r: r}
}

// WithLogger sets a structured logger for the automaton.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Automaton) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(a *Automaton) {
		a.hooks = hooks
	}
}

// WithMaxRetries bounds restarts of Monte-Carlo constructions.
func WithMaxRetries(n int) Option {
	return func(a *Automaton) {
		if n > 0 {
			a.maxRetries = n
		}
	}
}

// WithMaxSteps bounds the length of a single random walk.
func WithMaxSteps(n int) Option {
	return func(a *Automaton) {
		if n > 0 {
			a.maxSteps = n
		}
	}
}
