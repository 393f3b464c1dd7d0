package automaton

import (
	"fmt"

	"github.com/aretw0/jza/pkg/domain"
)

// Pathways returns one layer of transitions per symbol. Layer 0 holds the entry
// transitions labeled symbols[0]; layer i holds the transitions labeled
// symbols[i] leaving a state reached by layer i-1. The last layer only keeps
// transitions into end states and dead ends are pruned backward, so every
// surviving transition lies on at least one accepting walk. An empty layer
// means the symbols cannot be read by the automaton.
func (a *Automaton) Pathways(symbols []domain.Symbol) [][]*Transition {
	if len(symbols) == 0 {
		return nil
	}

	steps := make([][]Filter, len(symbols)-1)
	for i, sym := range symbols[1:] {
		steps[i] = []Filter{WithSymbol(sym)}
	}
	layers := a.expand(a.TransitionsWhere(Entry(), WithSymbol(symbols[0])), steps)

	last := len(layers) - 1
	layers[last] = a.filter(layers[last], ToIsEnd())
	return removeDeadEnds(layers)
}

// expand grows layers forward from first. Layer i+1 holds the transitions
// leaving the states reached by layer i that match steps[i].
func (a *Automaton) expand(first []*Transition, steps [][]Filter) [][]*Transition {
	layers := make([][]*Transition, 0, len(steps)+1)
	layers = append(layers, first)

	prev := first
	for _, filters := range steps {
		var next []*Transition
		for _, id := range toStates(prev) {
			for _, t := range a.states[id].transitions {
				if a.match(t, filters) {
					next = append(next, t)
				}
			}
		}
		layers = append(layers, next)
		prev = next
	}
	return layers
}

// removeDeadEnds drops, from the last layer backward, every transition whose
// target is not the source of some transition in the following layer.
func removeDeadEnds(layers [][]*Transition) [][]*Transition {
	for i := len(layers) - 2; i >= 0; i-- {
		next := fromSet(layers[i+1])
		var kept []*Transition
		for _, t := range layers[i] {
			if next[t.To] {
				kept = append(kept, t)
			}
		}
		layers[i] = kept
	}
	return layers
}

func hasEmptyLayer(layers [][]*Transition) bool {
	if len(layers) == 0 {
		return true
	}
	for _, layer := range layers {
		if len(layer) == 0 {
			return true
		}
	}
	return false
}

// Analyze lists every state path, one state per symbol, along which the
// automaton accepts symbols.
func (a *Automaton) Analyze(symbols []domain.Symbol) [][]StateID {
	layers := a.Pathways(symbols)
	if hasEmptyLayer(layers) {
		return nil
	}

	var paths [][]StateID
	for _, id := range toStates(layers[0]) {
		paths = append(paths, []StateID{id})
	}

	for _, layer := range layers[1:] {
		var extended [][]StateID
		for _, t := range layer {
			for _, path := range paths {
				if path[len(path)-1] == t.From {
					next := make([]StateID, len(path), len(path)+1)
					copy(next, path)
					extended = append(extended, append(next, t.To))
				}
			}
		}
		paths = extended
	}
	return paths
}

// Realize samples one accepting walk reading symbols. Each step is drawn by
// count among the edges leaving the previous state, or uniformly when none of
// them has been trained.
func (a *Automaton) Realize(symbols []domain.Symbol) (*Sequence, error) {
	if len(symbols) == 0 {
		return nil, domain.ErrEmptySequence
	}
	layers := a.Pathways(symbols)
	if hasEmptyLayer(layers) {
		return nil, a.unreachable(symbols)
	}

	ts := make([]*Transition, 0, len(layers))
	for i, layer := range layers {
		candidates := layer
		if i > 0 {
			candidates = a.filter(layer, FromState(ts[i-1].To))
		}
		t, err := a.sampleOrUniform(candidates)
		if err != nil {
			return nil, err
		}
		ts = append(ts, t)
	}
	return NewSequence(a, ts...)
}

func (a *Automaton) sampleOrUniform(ts []*Transition) (*Transition, error) {
	if totalCount(ts) > 0 {
		return a.SampleByProbability(ts)
	}
	if len(ts) == 0 {
		return nil, fmt.Errorf("%w: no candidates", domain.ErrNoViableChoice)
	}
	i := int(a.float64() * float64(len(ts)))
	return ts[min(i, len(ts)-1)], nil
}
