package automaton

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/aretw0/jza/internal/logging"
	"github.com/aretw0/jza/pkg/domain"
)

// Automaton is a weighted nondeterministic finite automaton.
type Automaton struct {
	states []*State

	rng        Rand
	logger     *slog.Logger
	hooks      domain.LifecycleHooks
	maxRetries int
	maxSteps   int
}

// New creates an empty automaton.
func New(opts ...Option) *Automaton {
	a := &Automaton{
		logger:     logging.NewNop(),
		maxRetries: DefaultMaxRetries,
		maxSteps:   DefaultMaxSteps,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AddState appends a new state and returns it.
func (a *Automaton) AddState(name string, isStart, isEnd bool) *State {
	s := &State{
		ID:      StateID(len(a.states)),
		Name:    name,
		IsStart: isStart,
		IsEnd:   isEnd,
	}
	a.states = append(a.states, s)
	return s
}

// State returns the state with the given id, or nil if it does not exist.
func (a *Automaton) State(id StateID) *State {
	if id < 0 || int(id) >= len(a.states) {
		return nil
	}
	return a.states[id]
}

func (a *Automaton) mustState(id StateID) *State {
	s := a.State(id)
	if s == nil {
		panic(fmt.Sprintf("automaton: unknown state %d", id))
	}
	return s
}

// States returns every state in insertion order.
func (a *Automaton) States() []*State {
	out := make([]*State, len(a.states))
	copy(out, a.states)
	return out
}

// Len returns the number of states.
func (a *Automaton) Len() int {
	return len(a.states)
}

// AddTransition adds an edge from one state to another. It returns nil when an
// edge with an equal symbol already connects the two states. Unknown state ids
// panic.
func (a *Automaton) AddTransition(sym domain.Symbol, from, to StateID, count float64) *Transition {
	src := a.mustState(from)
	a.mustState(to)

	if src.transition(sym, to) != nil {
		return nil
	}
	t := &Transition{From: from, To: to, Symbol: sym, Count: count}
	src.transitions = append(src.transitions, t)
	return t
}

// Probability returns the count of t divided by the total count leaving its source.
func (a *Automaton) Probability(t *Transition) float64 {
	total := a.mustState(t.From).TotalCount()
	if total == 0 {
		return 0
	}
	return t.Count / total
}

// FormatTransition renders t as "from =[symbol]=> to".
func (a *Automaton) FormatTransition(t *Transition) string {
	return fmt.Sprintf("%s =[%s]=> %s", a.mustState(t.From).Name, t.Symbol, a.mustState(t.To).Name)
}

// NumTransitions returns the total number of edges.
func (a *Automaton) NumTransitions() int {
	n := 0
	for _, s := range a.states {
		n += len(s.transitions)
	}
	return n
}

func (a *Automaton) float64() float64 {
	if a.rng != nil {
		return a.rng.Float64()
	}
	return rand.Float64()
}

// isEntry reports whether t may open a walk.
func (a *Automaton) isEntry(t *Transition) bool {
	return a.states[t.To].IsStart || a.states[t.From].IsStart
}

func (a *Automaton) emitTrain(e *domain.TrainEvent) {
	if a.hooks.OnTrain != nil {
		e.EventBase = domain.NewEventBase(domain.EventTrain)
		a.hooks.OnTrain(e)
	}
}

func (a *Automaton) emitValidate(e *domain.ValidateEvent) {
	if a.hooks.OnValidate != nil {
		e.EventBase = domain.NewEventBase(domain.EventValidate)
		a.hooks.OnValidate(e)
	}
}

func (a *Automaton) emitGenerate(op string, seq *Sequence, err error) {
	if a.hooks.OnGenerate == nil {
		return
	}
	e := &domain.GenerateEvent{EventBase: domain.NewEventBase(domain.EventGenerate), Operation: op, Err: err}
	if seq != nil {
		e.Length = seq.Len()
	}
	a.hooks.OnGenerate(e)
}

func (a *Automaton) emitRetry(op string, attempt int, err error) {
	a.logger.Debug("retrying construction", "op", op, "attempt", attempt, "err", err)
	if a.hooks.OnRetry != nil {
		a.hooks.OnRetry(&domain.RetryEvent{
			EventBase: domain.NewEventBase(domain.EventRetry),
			Operation: op,
			Attempt:   attempt,
			Err:       err,
		})
	}
}

// retry runs build up to maxRetries times and returns the first success.
func (a *Automaton) retry(op string, build func() (*Sequence, error)) (*Sequence, error) {
	var lastErr error
	for attempt := 1; attempt <= a.maxRetries; attempt++ {
		seq, err := build()
		if err == nil {
			a.emitGenerate(op, seq, nil)
			return seq, nil
		}
		lastErr = err
		a.emitRetry(op, attempt, err)
	}
	err := fmt.Errorf("%w: %s gave up after %d attempts: %w", domain.ErrGenerationFailed, op, a.maxRetries, lastErr)
	a.emitGenerate(op, nil, err)
	return nil, err
}
