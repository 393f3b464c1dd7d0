package automaton

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/jza/pkg/domain"
)

// AnchorOption pins a boundary of a generated sequence to a state.
type AnchorOption func(*anchor)

// WithStartState requires the first transition to land on id.
func WithStartState(id StateID) AnchorOption {
	return func(p *anchor) { p.startState = id }
}

// WithEndState requires the last transition to land on id.
func WithEndState(id StateID) AnchorOption {
	return func(p *anchor) { p.endState = id }
}

// BuildSequence returns an empty sequence, or one holding a sampled entry
// transition labeled start when a start symbol is given.
func (a *Automaton) BuildSequence(start ...domain.Symbol) (*Sequence, error) {
	if len(start) == 0 {
		return NewSequence(a)
	}
	t, err := a.entry(start[0])
	if err != nil {
		return nil, err
	}
	return NewSequence(a, t)
}

func (a *Automaton) entry(sym domain.Symbol) (*Transition, error) {
	candidates := a.TransitionsWhere(Entry(), WithSymbol(sym))
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no entry labeled %s", domain.ErrUnreachableSymbol, sym)
	}
	return a.SampleByProbability(candidates)
}

// GenerateNLengthSequence samples a walk of exactly n transitions, the first
// labeled startSymbol and the last endSymbol. Without anchors the walk opens
// with an entry and closes on an end state. Zero-weight edges are never used.
func (a *Automaton) GenerateNLengthSequence(n int, startSymbol, endSymbol domain.Symbol, anchors ...AnchorOption) (*Sequence, error) {
	seq, err := a.generateNLength(n, startSymbol, endSymbol, anchors)
	a.emitGenerate("n-length", seq, err)
	return seq, err
}

func (a *Automaton) generateNLength(n int, startSymbol, endSymbol domain.Symbol, anchors []AnchorOption) (*Sequence, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: length %d", domain.ErrGenerationFailed, n)
	}
	pin := &anchor{startSymbol: startSymbol, endSymbol: endSymbol, startState: NoState, endState: NoState}
	for _, opt := range anchors {
		opt(pin)
	}

	first := []Filter{Positive(), WithSymbol(startSymbol), Entry()}
	if pin.startState != NoState {
		first[2] = ToState(pin.startState)
	}
	final := []Filter{Positive(), WithSymbol(endSymbol), ToIsEnd()}
	if pin.endState != NoState {
		final[2] = ToState(pin.endState)
	}

	var layers [][]*Transition
	if n == 1 {
		layers = [][]*Transition{a.TransitionsWhere(append(first, final...)...)}
	} else {
		steps := make([][]Filter, n-1)
		for i := range steps[:n-2] {
			steps[i] = []Filter{Positive()}
		}
		steps[n-2] = final
		layers = removeDeadEnds(a.expand(a.TransitionsWhere(first...), steps))
	}
	if hasEmptyLayer(layers) {
		return nil, fmt.Errorf("%w: no %d-step walk from %s to %s", domain.ErrGenerationFailed, n, startSymbol, endSymbol)
	}

	ts, err := a.sampleLayers(layers)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}
	seq, err := NewSequence(a, ts...)
	if err != nil {
		return nil, err
	}
	if len(anchors) > 0 {
		seq.pin = pin
	}
	return seq, nil
}

// sampleLayers draws one connected walk through pruned layers.
func (a *Automaton) sampleLayers(layers [][]*Transition) ([]*Transition, error) {
	ts := make([]*Transition, 0, len(layers))
	for i, layer := range layers {
		candidates := layer
		if i > 0 {
			candidates = a.filter(layer, FromState(ts[i-1].To))
		}
		t, err := a.SampleByProbability(candidates)
		if err != nil {
			return nil, err
		}
		ts = append(ts, t)
	}
	return ts, nil
}

// GenerateConnection samples a walk that leaves t1.To and closes with an edge
// labeled like t2 into t2.To. The first step of the walk is elaborated.
func (a *Automaton) GenerateConnection(t1, t2 *Transition) (*Sequence, error) {
	seq, err := a.generateConnection(t1, t2)
	a.emitGenerate("connect", seq, err)
	return seq, err
}

func (a *Automaton) generateConnection(t1, t2 *Transition) (*Sequence, error) {
	layers := removeDeadEnds(a.expand([]*Transition{t1}, [][]Filter{
		{Positive()},
		{Positive(), WithSymbol(t2.Symbol), ToState(t2.To)},
	}))
	if hasEmptyLayer(layers) {
		return nil, fmt.Errorf("%w: no connection from %s to %s",
			domain.ErrGenerationFailed, a.FormatTransition(t1), a.FormatTransition(t2))
	}

	ts, err := a.sampleLayers(layers[1:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}
	elaborated, err := a.Elaborate(ts[0], false)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGenerationFailed, err)
	}
	return NewSequence(a, append(elaborated, ts[1])...)
}

// GenerateFromStartAndLength samples a walk opening with first that has at
// least length transitions and closes on an end state.
func (a *Automaton) GenerateFromStartAndLength(first domain.Symbol, length int) (*Sequence, error) {
	return a.walkFrom("start-and-length", first, func(ts []*Transition) bool {
		return len(ts) >= length && a.states[ts[len(ts)-1].To].IsEnd
	})
}

// GenerateFromStartAndEnd samples a walk opening with first and closing with
// last on an end state.
func (a *Automaton) GenerateFromStartAndEnd(first, last domain.Symbol) (*Sequence, error) {
	return a.walkFrom("start-and-end", first, func(ts []*Transition) bool {
		t := ts[len(ts)-1]
		return len(ts) > 1 && t.Symbol.Equal(last) && a.states[t.To].IsEnd
	})
}

func (a *Automaton) walkFrom(op string, first domain.Symbol, done func([]*Transition) bool) (*Sequence, error) {
	if len(a.TransitionsWhere(Entry(), WithSymbol(first))) == 0 {
		return nil, fmt.Errorf("%w: no entry labeled %s", domain.ErrUnreachableSymbol, first)
	}
	return a.retry(op, func() (*Sequence, error) {
		t, err := a.entry(first)
		if err != nil {
			return nil, err
		}
		ts := []*Transition{t}
		for !done(ts) {
			if len(ts) > a.maxSteps {
				return nil, fmt.Errorf("%w: walk exceeded %d steps", domain.ErrNoViableChoice, a.maxSteps)
			}
			next, err := a.step(ts, nil)
			if err != nil {
				return nil, err
			}
			ts = append(ts, next)
		}
		return NewSequence(a, ts...)
	})
}

// SequenceCount is a generated symbol string with its frequency.
type SequenceCount struct {
	Symbols string `json:"symbols"`
	Count   int    `json:"count"`
}

// MostCommonGeneratedSequences runs GenerateFromStartAndEnd n times and
// returns the distinct results, most frequent first. Failed runs are skipped.
func (a *Automaton) MostCommonGeneratedSequences(first, last domain.Symbol, n int) []SequenceCount {
	counts := make(map[string]int)
	for range n {
		seq, err := a.GenerateFromStartAndEnd(first, last)
		if err != nil {
			continue
		}
		counts[joinSymbols(seq.Symbols())]++
	}

	out := make([]SequenceCount, 0, len(counts))
	for symbols, count := range counts {
		out = append(out, SequenceCount{Symbols: symbols, Count: count})
	}
	slices.SortFunc(out, func(x, y SequenceCount) int {
		if c := cmp.Compare(y.Count, x.Count); c != 0 {
			return c
		}
		return strings.Compare(x.Symbols, y.Symbols)
	})
	return out
}

func joinSymbols(symbols []domain.Symbol) string {
	parts := make([]string, len(symbols))
	for i, sym := range symbols {
		parts[i] = sym.String()
	}
	return strings.Join(parts, " ")
}
