package automaton

import (
	"regexp"
	"slices"

	"github.com/aretw0/jza/pkg/domain"
)

// KeyProbability is one entry of a Distribution.
type KeyProbability struct {
	Key         string  `json:"key"`
	Probability float64 `json:"probability"`
}

// Distribution is ordered by descending probability. Ties keep the order in
// which their keys were first seen.
type Distribution []KeyProbability

// Get returns the probability of key, or 0.
func (d Distribution) Get(key string) float64 {
	for _, kp := range d {
		if kp.Key == key {
			return kp.Probability
		}
	}
	return 0
}

// Map returns the distribution as a key to probability map.
func (d Distribution) Map() map[string]float64 {
	out := make(map[string]float64, len(d))
	for _, kp := range d {
		out[kp.Key] = kp.Probability
	}
	return out
}

// KeyType selects how TransitionProbabilitiesGivenStatePattern groups edges.
type KeyType int

const (
	// KeySymbolState groups by "symbol: target".
	KeySymbolState KeyType = iota
	// KeySymbol groups by symbol.
	KeySymbol
	// KeyState groups by target state name.
	KeyState
)

func (a *Automaton) distribution(ts []*Transition, key func(*Transition) string) Distribution {
	total := totalCount(ts)
	if total <= 0 {
		return Distribution{}
	}

	index := make(map[string]int)
	var d Distribution
	for _, t := range ts {
		if t.Count == 0 {
			continue
		}
		k := key(t)
		i, ok := index[k]
		if !ok {
			i = len(d)
			index[k] = i
			d = append(d, KeyProbability{Key: k})
		}
		d[i].Probability += t.Count
	}
	for i := range d {
		d[i].Probability /= total
	}
	slices.SortStableFunc(d, func(x, y KeyProbability) int {
		switch {
		case x.Probability > y.Probability:
			return -1
		case x.Probability < y.Probability:
			return 1
		}
		return 0
	})
	return d
}

func (a *Automaton) stateKey(t *Transition) string {
	return a.states[t.To].Name
}

func symbolKey(t *Transition) string {
	return t.Symbol.String()
}

func (a *Automaton) symbolStateKey(t *Transition) string {
	return t.Symbol.String() + ": " + a.states[t.To].Name
}

// StateProbabilitiesGivenSymbol returns how likely each target state is
// among the edges labeled sym.
func (a *Automaton) StateProbabilitiesGivenSymbol(sym domain.Symbol) Distribution {
	return a.distribution(a.TransitionsBySymbol(sym), a.stateKey)
}

// SymbolProbabilitiesGivenStatePattern returns how likely each symbol is
// among the edges landing on a state whose name matches re.
func (a *Automaton) SymbolProbabilitiesGivenStatePattern(re *regexp.Regexp) Distribution {
	targets := a.patternSet(re)
	return a.distribution(a.TransitionsWhere(func(t *Transition, _, _ *State) bool {
		return targets[t.To]
	}), symbolKey)
}

// TransitionProbabilitiesGivenStatePattern returns the distribution of edges
// leaving a state whose name matches re, grouped by key.
func (a *Automaton) TransitionProbabilitiesGivenStatePattern(re *regexp.Regexp, key KeyType) Distribution {
	sources := a.patternSet(re)
	ts := a.TransitionsWhere(func(t *Transition, _, _ *State) bool {
		return sources[t.From]
	})

	switch key {
	case KeySymbol:
		return a.distribution(ts, symbolKey)
	case KeyState:
		return a.distribution(ts, a.stateKey)
	default:
		return a.distribution(ts, a.symbolStateKey)
	}
}

func (a *Automaton) patternSet(re *regexp.Regexp) map[StateID]bool {
	out := make(map[StateID]bool)
	for _, s := range a.StatesByPattern(re) {
		out[s.ID] = true
	}
	return out
}
