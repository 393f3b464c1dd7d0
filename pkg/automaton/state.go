package automaton

import "github.com/aretw0/jza/pkg/domain"

// StateID is the position of a State in its Automaton.
type StateID int

// NoState marks an absent state reference.
const NoState StateID = -1

// State is a node of the automaton. It owns its outgoing transitions.
type State struct {
	ID   StateID
	Name string

	// IsStart is true if a walk may begin at this state.
	IsStart bool

	// IsEnd is true if a walk may finish at this state.
	IsEnd bool

	transitions []*Transition
}

func (s *State) String() string {
	return s.Name
}

// Transitions returns the outgoing transitions in insertion order.
func (s *State) Transitions() []*Transition {
	out := make([]*Transition, len(s.transitions))
	copy(out, s.transitions)
	return out
}

// TransitionsBySymbol returns the outgoing transitions labeled sym.
func (s *State) TransitionsBySymbol(sym domain.Symbol) []*Transition {
	var out []*Transition
	for _, t := range s.transitions {
		if t.Symbol.Equal(sym) {
			out = append(out, t)
		}
	}
	return out
}

// NextStatesBySymbol returns the targets of the outgoing transitions labeled sym.
func (s *State) NextStatesBySymbol(sym domain.Symbol) []StateID {
	var out []StateID
	for _, t := range s.transitions {
		if t.Symbol.Equal(sym) {
			out = append(out, t.To)
		}
	}
	return out
}

// HasTransition reports whether an edge labeled sym to the given state exists.
func (s *State) HasTransition(sym domain.Symbol, to StateID) bool {
	return s.transition(sym, to) != nil
}

// TotalCount sums the counts of the outgoing transitions.
func (s *State) TotalCount() float64 {
	return totalCount(s.transitions)
}

func (s *State) transition(sym domain.Symbol, to StateID) *Transition {
	for _, t := range s.transitions {
		if t.To == to && t.Symbol.Equal(sym) {
			return t
		}
	}
	return nil
}
