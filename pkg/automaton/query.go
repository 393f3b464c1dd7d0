package automaton

import (
	"regexp"

	"github.com/aretw0/jza/pkg/domain"
)

// Filter is a predicate over a transition and its endpoint states.
type Filter func(t *Transition, from, to *State) bool

// FromState matches transitions leaving id.
func FromState(id StateID) Filter {
	return func(t *Transition, _, _ *State) bool { return t.From == id }
}

// ToState matches transitions landing on id.
func ToState(id StateID) Filter {
	return func(t *Transition, _, _ *State) bool { return t.To == id }
}

// WithSymbol matches transitions labeled sym.
func WithSymbol(sym domain.Symbol) Filter {
	return func(t *Transition, _, _ *State) bool { return t.Symbol.Equal(sym) }
}

// WithoutSymbols matches transitions whose label equals none of syms.
func WithoutSymbols(syms ...domain.Symbol) Filter {
	return func(t *Transition, _, _ *State) bool { return !domain.ContainsSymbol(syms, t.Symbol) }
}

// WithQuality matches transitions whose symbol has the given quality.
func WithQuality(quality string) Filter {
	return func(t *Transition, _, _ *State) bool { return t.Symbol.Quality() == quality }
}

// ToIsStart matches transitions landing on a start state.
func ToIsStart() Filter {
	return func(_ *Transition, _, to *State) bool { return to.IsStart }
}

// ToIsEnd matches transitions landing on an end state.
func ToIsEnd() Filter {
	return func(_ *Transition, _, to *State) bool { return to.IsEnd }
}

// FromIsEnd matches transitions leaving an end state.
func FromIsEnd() Filter {
	return func(_ *Transition, from, _ *State) bool { return from.IsEnd }
}

// Entry matches transitions that may open a walk.
func Entry() Filter {
	return func(_ *Transition, from, to *State) bool { return from.IsStart || to.IsStart }
}

// Positive matches transitions with a non-zero count.
func Positive() Filter {
	return func(t *Transition, _, _ *State) bool { return t.Count > 0 }
}

// Not negates a filter.
func Not(f Filter) Filter {
	return func(t *Transition, from, to *State) bool { return !f(t, from, to) }
}

func (a *Automaton) match(t *Transition, filters []Filter) bool {
	from, to := a.states[t.From], a.states[t.To]
	for _, f := range filters {
		if !f(t, from, to) {
			return false
		}
	}
	return true
}

func (a *Automaton) filter(ts []*Transition, filters ...Filter) []*Transition {
	var out []*Transition
	for _, t := range ts {
		if a.match(t, filters) {
			out = append(out, t)
		}
	}
	return out
}

// Transitions returns every edge, state by state.
func (a *Automaton) Transitions() []*Transition {
	out := make([]*Transition, 0, a.NumTransitions())
	for _, s := range a.states {
		out = append(out, s.transitions...)
	}
	return out
}

// TransitionsWhere returns every edge matching all filters.
func (a *Automaton) TransitionsWhere(filters ...Filter) []*Transition {
	var out []*Transition
	for _, s := range a.states {
		for _, t := range s.transitions {
			if a.match(t, filters) {
				out = append(out, t)
			}
		}
	}
	return out
}

// TransitionWhere returns the first edge matching all filters, or nil.
func (a *Automaton) TransitionWhere(filters ...Filter) *Transition {
	for _, s := range a.states {
		for _, t := range s.transitions {
			if a.match(t, filters) {
				return t
			}
		}
	}
	return nil
}

// TransitionsBySymbol returns every edge labeled sym.
func (a *Automaton) TransitionsBySymbol(sym domain.Symbol) []*Transition {
	return a.TransitionsWhere(WithSymbol(sym))
}

// TransitionsByQuality returns every edge whose symbol has the given quality.
func (a *Automaton) TransitionsByQuality(quality string) []*Transition {
	return a.TransitionsWhere(WithQuality(quality))
}

// TransitionsByToState returns every edge landing on id.
func (a *Automaton) TransitionsByToState(id StateID) []*Transition {
	return a.TransitionsWhere(ToState(id))
}

// EntryTransitions returns every edge that may open a walk.
func (a *Automaton) EntryTransitions() []*Transition {
	return a.TransitionsWhere(Entry())
}

// StatesByName returns the states named name.
func (a *Automaton) StatesByName(name string) []*State {
	var out []*State
	for _, s := range a.states {
		if s.Name == name {
			out = append(out, s)
		}
	}
	return out
}

// StateByName returns the first state named name, or nil.
func (a *Automaton) StateByName(name string) *State {
	for _, s := range a.states {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// StatesByPattern returns the states whose name matches re.
func (a *Automaton) StatesByPattern(re *regexp.Regexp) []*State {
	var out []*State
	for _, s := range a.states {
		if re.MatchString(s.Name) {
			out = append(out, s)
		}
	}
	return out
}

// StatesByNameAndTransition returns the states named name that have an edge to downstream.
func (a *Automaton) StatesByNameAndTransition(name string, downstream StateID) []*State {
	var out []*State
	for _, s := range a.StatesByName(name) {
		for _, t := range s.transitions {
			if t.To == downstream {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// StateByNameAndTransition returns the first state named name with an edge to downstream, or nil.
func (a *Automaton) StateByNameAndTransition(name string, downstream StateID) *State {
	if states := a.StatesByNameAndTransition(name, downstream); len(states) > 0 {
		return states[0]
	}
	return nil
}

// GetOrCreateStateByNameAndTransition finds a state named name with an edge to
// downstream, creating a new state with the given flags when none exists.
func (a *Automaton) GetOrCreateStateByNameAndTransition(name string, downstream StateID, isStart, isEnd bool) *State {
	if s := a.StateByNameAndTransition(name, downstream); s != nil {
		return s
	}
	return a.AddState(name, isStart, isEnd)
}

// toStates returns the distinct targets of ts in order of appearance.
func toStates(ts []*Transition) []StateID {
	seen := make(map[StateID]bool, len(ts))
	var out []StateID
	for _, t := range ts {
		if !seen[t.To] {
			seen[t.To] = true
			out = append(out, t.To)
		}
	}
	return out
}

func fromSet(ts []*Transition) map[StateID]bool {
	out := make(map[StateID]bool, len(ts))
	for _, t := range ts {
		out[t.From] = true
	}
	return out
}

func toSet(ts []*Transition) map[StateID]bool {
	out := make(map[StateID]bool, len(ts))
	for _, t := range ts {
		out[t.To] = true
	}
	return out
}
