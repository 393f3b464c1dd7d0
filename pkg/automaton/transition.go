package automaton

import "github.com/aretw0/jza/pkg/domain"

// Transition is a directed, symbol-labeled, weighted edge.
// It is owned by the State identified by From.
type Transition struct {
	From   StateID
	To     StateID
	Symbol domain.Symbol
	Count  float64
}

func totalCount(ts []*Transition) float64 {
	var total float64
	for _, t := range ts {
		total += t.Count
	}
	return total
}
