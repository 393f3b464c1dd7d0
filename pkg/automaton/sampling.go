package automaton

import (
	"fmt"

	"github.com/aretw0/jza/pkg/domain"
)

// SampleByProbability picks one transition with probability proportional to its
// count within ts. It fails with ErrNoViableChoice when ts carries no weight.
func (a *Automaton) SampleByProbability(ts []*Transition) (*Transition, error) {
	total := totalCount(ts)
	if total <= 0 {
		return nil, fmt.Errorf("%w: %d candidates with zero total weight", domain.ErrNoViableChoice, len(ts))
	}

	draw := a.float64()
	var (
		cumulative float64
		last       *Transition
	)
	for _, t := range ts {
		if t.Count <= 0 {
			continue
		}
		cumulative += t.Count / total
		if cumulative > draw {
			return t, nil
		}
		last = t
	}
	// Rounding can leave the cumulative mass just under the draw.
	return last, nil
}
