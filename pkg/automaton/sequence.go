package automaton

import (
	"fmt"
	"strings"

	"github.com/aretw0/jza/pkg/domain"
)

// Sequence is a connected walk over an Automaton. Its transitions alias the
// automaton's edges. A Sequence is never modified after construction; edits
// return a new Sequence.
type Sequence struct {
	automaton   *Automaton
	transitions []*Transition

	// pin holds the boundary the sequence was generated against, if any.
	pin *anchor
}

type anchor struct {
	startSymbol, endSymbol domain.Symbol
	startState, endState   StateID
}

// NewSequence builds a Sequence from ts, failing with ErrInvalidSequence when
// two adjacent transitions do not share a state.
func NewSequence(a *Automaton, ts ...*Transition) (*Sequence, error) {
	for i := 1; i < len(ts); i++ {
		if ts[i-1].To != ts[i].From {
			return nil, fmt.Errorf("%w: transition %d ends at %d but transition %d starts at %d",
				domain.ErrInvalidSequence, i-1, ts[i-1].To, i, ts[i].From)
		}
	}
	owned := make([]*Transition, len(ts))
	copy(owned, ts)
	return &Sequence{automaton: a, transitions: owned}, nil
}

// derive builds a sibling sequence that keeps the receiver's pin.
func (s *Sequence) derive(ts []*Transition) (*Sequence, error) {
	seq, err := NewSequence(s.automaton, ts...)
	if err != nil {
		return nil, err
	}
	seq.pin = s.pin
	return seq, nil
}

// Automaton returns the automaton the sequence walks.
func (s *Sequence) Automaton() *Automaton { return s.automaton }

// Len returns the number of transitions.
func (s *Sequence) Len() int { return len(s.transitions) }

// First returns the first transition, or nil.
func (s *Sequence) First() *Transition {
	if len(s.transitions) == 0 {
		return nil
	}
	return s.transitions[0]
}

// Last returns the last transition, or nil.
func (s *Sequence) Last() *Transition {
	if len(s.transitions) == 0 {
		return nil
	}
	return s.transitions[len(s.transitions)-1]
}

// At returns the transition at i, or nil when i is out of range.
func (s *Sequence) At(i int) *Transition {
	if i < 0 || i >= len(s.transitions) {
		return nil
	}
	return s.transitions[i]
}

// Transitions returns a copy of the walk.
func (s *Sequence) Transitions() []*Transition {
	out := make([]*Transition, len(s.transitions))
	copy(out, s.transitions)
	return out
}

// Symbols returns the transition labels in order.
func (s *Sequence) Symbols() []domain.Symbol {
	out := make([]domain.Symbol, len(s.transitions))
	for i, t := range s.transitions {
		out[i] = t.Symbol
	}
	return out
}

// States returns the state reached by each transition.
func (s *Sequence) States() []*State {
	out := make([]*State, len(s.transitions))
	for i, t := range s.transitions {
		out[i] = s.automaton.states[t.To]
	}
	return out
}

// SymbolStateStrings renders each step as "symbol: state".
func (s *Sequence) SymbolStateStrings() []string {
	out := make([]string, len(s.transitions))
	for i, t := range s.transitions {
		out[i] = fmt.Sprintf("%s: %s", t.Symbol, s.automaton.states[t.To].Name)
	}
	return out
}

// SymbolsCollapsed returns the symbols with adjacent repeats merged.
func (s *Sequence) SymbolsCollapsed() []domain.Symbol {
	var out []domain.Symbol
	for _, t := range s.transitions {
		if len(out) > 0 && out[len(out)-1].Equal(t.Symbol) {
			continue
		}
		out = append(out, t.Symbol)
	}
	return out
}

// Chords renders every symbol as a chord in key.
func (s *Sequence) Chords(key string) ([]string, error) {
	return renderChords(s.Symbols(), key)
}

// ChordsCollapsed renders SymbolsCollapsed as chords in key.
func (s *Sequence) ChordsCollapsed(key string) ([]string, error) {
	return renderChords(s.SymbolsCollapsed(), key)
}

func renderChords(symbols []domain.Symbol, key string) ([]string, error) {
	out := make([]string, len(symbols))
	for i, sym := range symbols {
		r, ok := sym.(domain.ChordRenderer)
		if !ok {
			return nil, fmt.Errorf("%w: %s cannot be rendered as a chord", domain.ErrInvalidSymbol, sym)
		}
		chord, err := r.Chord(key)
		if err != nil {
			return nil, err
		}
		out[i] = chord
	}
	return out, nil
}

// Equal reports whether both sequences walk the same edges.
func (s *Sequence) Equal(other *Sequence) bool {
	if other == nil || len(s.transitions) != len(other.transitions) {
		return false
	}
	for i, t := range s.transitions {
		if t != other.transitions[i] {
			return false
		}
	}
	return true
}

func (s *Sequence) String() string {
	return strings.Join(s.SymbolStateStrings(), " | ")
}

func (s *Sequence) lastSymbol() domain.Symbol {
	if t := s.Last(); t != nil {
		return t.Symbol
	}
	return nil
}
