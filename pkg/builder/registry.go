package builder

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/aretw0/jza/internal/logging"
	"github.com/aretw0/jza/pkg/automaton"
)

// ErrUnknownOperation is returned when applying an operation that was never registered.
var ErrUnknownOperation = errors.New("unknown builder operation")

// Operation adds states and transitions to an automaton.
type Operation func(a *automaton.Automaton) error

// Registry manages the available operations.
type Registry struct {
	mu     sync.RWMutex
	ops    map[string]Operation
	logger *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used to report applied operations.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		ops:    make(map[string]Operation),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds an operation. An existing operation with the same name is replaced.
func (r *Registry) Register(name string, op Operation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops[name] = op
}

// Names returns the registered operation names in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Apply runs the named operations in order. It stops at the first failure.
func (r *Registry) Apply(a *automaton.Automaton, names ...string) error {
	for _, name := range names {
		r.mu.RLock()
		op, ok := r.ops[name]
		r.mu.RUnlock()
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownOperation, name)
		}

		states, edges := a.Len(), a.NumTransitions()
		if err := op(a); err != nil {
			return fmt.Errorf("operation %s: %w", name, err)
		}
		r.logger.Debug("applied builder operation", "op", name,
			"states_added", a.Len()-states, "transitions_added", a.NumTransitions()-edges)
	}
	return nil
}

// DefaultOrder lists the operations run by Default.
var DefaultOrder = []string{
	OpPrimitive,
	OpTonicization,
	OpApplied,
	OpDiminished,
	OpTritoneSubstitutions,
	OpUnpacked,
	OpSus,
	OpChromaticApproach,
	OpNeighbors,
	OpPassing,
}

// DefaultRegistry returns a registry holding every built-in operation.
func DefaultRegistry(opts ...Option) *Registry {
	r := NewRegistry(opts...)
	r.Register(OpPrimitive, AddPrimitiveChords)
	r.Register(OpTonicization, AddTonicization)
	r.Register(OpApplied, AddAppliedChords)
	r.Register(OpDiminished, AddDiminishedChords)
	r.Register(OpTritoneSubstitutions, AddTritoneSubstitutions)
	r.Register(OpUnpacked, AddUnpackedChords)
	r.Register(OpSus, AddSusChords)
	r.Register(OpChromaticApproach, AddChromaticApproachingChords)
	r.Register(OpNeighbors, AddNeighborChords)
	r.Register(OpPassing, AddPassingChords)
	return r
}

// Default applies DefaultOrder to a.
func Default(a *automaton.Automaton, opts ...Option) error {
	return DefaultRegistry(opts...).Apply(a, DefaultOrder...)
}

// New creates an automaton with the default topology.
func New(opts ...automaton.Option) (*automaton.Automaton, error) {
	a := automaton.New(opts...)
	if err := Default(a); err != nil {
		return nil, err
	}
	return a, nil
}
