package automaton

import (
	"fmt"

	"github.com/aretw0/jza/pkg/domain"
)

// candidates returns the transitions that may follow ts.
func (a *Automaton) candidates(ts []*Transition) []*Transition {
	if len(ts) == 0 {
		return a.EntryTransitions()
	}
	return a.states[ts[len(ts)-1].To].transitions
}

// step samples one transition following ts, skipping the excluded symbols.
func (a *Automaton) step(ts []*Transition, exclude []domain.Symbol) (*Transition, error) {
	candidates := a.candidates(ts)
	if len(exclude) > 0 {
		candidates = a.filter(candidates, WithoutSymbols(exclude...))
	}
	return a.SampleByProbability(candidates)
}

func appendCopy(ts []*Transition, more ...*Transition) []*Transition {
	out := make([]*Transition, 0, len(ts)+len(more))
	out = append(out, ts...)
	return append(out, more...)
}

// grow appends sampled transitions until done reports true for the newest one.
// At least one transition is always added.
func (a *Automaton) grow(ts []*Transition, allowRepeats bool, done func(*Transition) bool) ([]*Transition, error) {
	out := appendCopy(ts)
	for n := 0; ; n++ {
		if n >= a.maxSteps {
			return nil, fmt.Errorf("%w: walk exceeded %d steps", domain.ErrGenerationFailed, a.maxSteps)
		}
		var exclude []domain.Symbol
		if !allowRepeats && len(out) > 0 {
			exclude = append(exclude, out[len(out)-1].Symbol)
		}
		t, err := a.step(out, exclude)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
		if done(t) {
			return out, nil
		}
	}
}

// Add appends one sampled transition. Unless allowRepeats is set the new
// symbol differs from the current last one.
func (s *Sequence) Add(allowRepeats bool) (*Sequence, error) {
	return s.AddN(1, allowRepeats)
}

// AddN appends n sampled transitions.
func (s *Sequence) AddN(n int, allowRepeats bool) (*Sequence, error) {
	if n < 1 {
		return s.derive(s.transitions)
	}
	count := 0
	ts, err := s.automaton.grow(s.transitions, allowRepeats, func(*Transition) bool {
		count++
		return count >= n
	})
	if err != nil {
		return nil, err
	}
	return s.derive(ts)
}

// AddFull appends sampled transitions until one lands on an end state.
func (s *Sequence) AddFull(allowRepeats bool) (*Sequence, error) {
	a := s.automaton
	ts, err := a.grow(s.transitions, allowRepeats, func(t *Transition) bool {
		return a.states[t.To].IsEnd
	})
	if err != nil {
		return nil, err
	}
	return s.derive(ts)
}

// AddUntilSymbol appends sampled transitions until one is labeled sym.
func (s *Sequence) AddUntilSymbol(sym domain.Symbol, allowRepeats bool) (*Sequence, error) {
	ts, err := s.automaton.grow(s.transitions, allowRepeats, func(t *Transition) bool {
		return t.Symbol.Equal(sym)
	})
	if err != nil {
		return nil, err
	}
	return s.derive(ts)
}

// PrependFull grows the sequence backward until its first transition is an
// entry. The first transition is first resampled among the edges sharing its
// symbol and target. A sampling dead end restarts from the receiver, up to the
// automaton's retry limit.
func (s *Sequence) PrependFull(allowRepeats bool) (*Sequence, error) {
	if s.Len() == 0 {
		return nil, fmt.Errorf("prepend: %w", domain.ErrEmptySequence)
	}
	return s.automaton.retry("prepend", func() (*Sequence, error) {
		return s.tryPrepend(allowRepeats)
	})
}

func (s *Sequence) tryPrepend(allowRepeats bool) (*Sequence, error) {
	a := s.automaton
	first := s.transitions[0]

	t, err := a.SampleByProbability(a.TransitionsWhere(WithSymbol(first.Symbol), ToState(first.To)))
	if err != nil {
		return nil, err
	}
	reversed := []*Transition{t}

	for steps := 0; !a.isEntry(reversed[len(reversed)-1]); steps++ {
		if steps >= a.maxSteps {
			return nil, fmt.Errorf("%w: backward walk exceeded %d steps", domain.ErrNoViableChoice, a.maxSteps)
		}
		earliest := reversed[len(reversed)-1]
		filters := []Filter{ToState(earliest.From)}
		if !allowRepeats {
			filters = append(filters, WithoutSymbols(earliest.Symbol))
		}
		t, err := a.SampleByProbability(a.TransitionsWhere(filters...))
		if err != nil {
			return nil, err
		}
		reversed = append(reversed, t)
	}

	ts := make([]*Transition, 0, len(reversed)+len(s.transitions)-1)
	for i := len(reversed) - 1; i >= 0; i-- {
		ts = append(ts, reversed[i])
	}
	return s.derive(append(ts, s.transitions[1:]...))
}

// RemoveN drops the last n transitions. At least one transition must remain.
func (s *Sequence) RemoveN(n int) (*Sequence, error) {
	if n < 1 || n >= s.Len() {
		return nil, fmt.Errorf("%w: cannot remove %d of %d transitions", domain.ErrIndexOutOfRange, n, s.Len())
	}
	return s.derive(s.transitions[:s.Len()-n])
}

// Remove drops the last transition.
func (s *Sequence) Remove() (*Sequence, error) {
	return s.RemoveN(1)
}

// ChangeLast replaces the last transition with one labeled differently.
func (s *Sequence) ChangeLast(allowRepeats bool) (*Sequence, error) {
	if s.Len() == 0 {
		return nil, fmt.Errorf("change last: %w", domain.ErrEmptySequence)
	}
	base := s.transitions[:s.Len()-1]
	exclude := []domain.Symbol{s.lastSymbol()}
	if !allowRepeats && len(base) > 0 {
		exclude = append(exclude, base[len(base)-1].Symbol)
	}

	t, err := s.automaton.step(base, exclude)
	if err != nil {
		return nil, err
	}
	return s.derive(appendCopy(base, t))
}

// phraseBounds widens i to the smallest range that begins after an end state
// and finishes on one.
func (s *Sequence) phraseBounds(i int) (start, end int) {
	states := s.automaton.states
	for start = i; start > 0 && !states[s.transitions[start].From].IsEnd; start-- {
	}
	for end = i; end < s.Len()-1 && !states[s.transitions[end].To].IsEnd; end++ {
	}
	return start, end
}

// ReharmonizeAtIndex replaces the phrase containing index i with a freshly
// sampled one that connects to the surrounding transitions.
func (s *Sequence) ReharmonizeAtIndex(i int, allowRepeats bool) (*Sequence, error) {
	if i < 0 || i >= s.Len() {
		return nil, fmt.Errorf("%w: index %d of %d", domain.ErrIndexOutOfRange, i, s.Len())
	}
	a := s.automaton
	start, end := s.phraseBounds(i)
	last := s.Len() - 1

	switch {
	case start == 0 && end == last:
		if p := s.pin; p != nil {
			return s.regeneratePinned(p, allowRepeats)
		}
		empty, err := s.derive(nil)
		if err != nil {
			return nil, err
		}
		return empty.AddFull(allowRepeats)

	case end == last:
		head, err := s.derive(s.transitions[:start])
		if err != nil {
			return nil, err
		}
		return head.AddFull(allowRepeats)

	case start == 0:
		tail, err := s.derive(s.transitions[end+1:])
		if err != nil {
			return nil, err
		}
		return tail.PrependFull(allowRepeats)
	}

	conn, err := a.GenerateConnection(s.transitions[start-1], s.transitions[end+1])
	if err != nil {
		return nil, err
	}
	ts := appendCopy(s.transitions[:start], conn.transitions...)
	seq, err := s.derive(append(ts, s.transitions[end+2:]...))
	if err != nil {
		return nil, err
	}
	if !allowRepeats {
		seq = seq.MakeUnique()
	}
	return seq, nil
}

// regeneratePinned samples a new walk with the same length, boundary symbols
// and boundary states. Unless allowRepeats is set, walks with adjacent equal
// symbols are redrawn.
func (s *Sequence) regeneratePinned(p *anchor, allowRepeats bool) (*Sequence, error) {
	a := s.automaton
	anchors := []AnchorOption{WithStartState(p.startState), WithEndState(p.endState)}
	if allowRepeats {
		return a.GenerateNLengthSequence(s.Len(), p.startSymbol, p.endSymbol, anchors...)
	}
	return a.retry("reharmonize", func() (*Sequence, error) {
		seq, err := a.generateNLength(s.Len(), p.startSymbol, p.endSymbol, anchors)
		if err != nil {
			return nil, err
		}
		if seq.hasAdjacentRepeat() {
			return nil, fmt.Errorf("%w: adjacent repeated symbols", domain.ErrNoViableChoice)
		}
		return seq, nil
	})
}

func (s *Sequence) hasAdjacentRepeat() bool {
	for i := 1; i < s.Len(); i++ {
		if s.transitions[i-1].Symbol.Equal(s.transitions[i].Symbol) {
			return true
		}
	}
	return false
}

// Splice removes the transition at i while keeping the walk connected. Boundary
// transitions are dropped. An interior transition is merged with its successor
// through the direct edge from its source, labeled like the successor, to the
// successor's target. When no such edge exists the receiver is returned.
func (s *Sequence) Splice(i int) (*Sequence, error) {
	if i < 0 || i >= s.Len() {
		return nil, fmt.Errorf("%w: index %d of %d", domain.ErrIndexOutOfRange, i, s.Len())
	}
	ts := s.transitions
	if i == 0 || i == len(ts)-1 {
		return s.derive(appendCopy(ts[:i], ts[i+1:]...))
	}

	next := ts[i+1]
	direct := s.automaton.states[ts[i].From].transition(next.Symbol, next.To)
	if direct == nil {
		return s, nil
	}
	out := appendCopy(ts[:i], direct)
	return s.derive(append(out, ts[i+2:]...))
}

// MakeUnique splices away transitions that repeat a neighbor's symbol, pass
// after pass, until a pass changes nothing.
func (s *Sequence) MakeUnique() *Sequence {
	cur := s
	for changed := true; changed; {
		changed = false
		for i := 0; i < cur.Len(); {
			if !cur.repeatsNeighbor(i) {
				i++
				continue
			}
			next, err := cur.Splice(i)
			if err != nil || next == cur {
				i++
				continue
			}
			cur, changed = next, true
		}
	}
	return cur
}

func (s *Sequence) repeatsNeighbor(i int) bool {
	sym := s.transitions[i].Symbol
	if i > 0 && s.transitions[i-1].Symbol.Equal(sym) {
		return true
	}
	return i < s.Len()-1 && s.transitions[i+1].Symbol.Equal(sym)
}
