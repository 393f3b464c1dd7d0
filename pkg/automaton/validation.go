package automaton

import "github.com/aretw0/jza/pkg/domain"

// FailureReport describes where a symbol list stops being readable.
type FailureReport struct {
	// Symbol is the symbol at Index, nil for an empty list.
	Symbol  domain.Symbol
	Symbols []domain.Symbol
	Index   int

	// PreviousStates are the states reached just before Index, or the final
	// states when InvalidEndState is set.
	PreviousStates []StateID

	// InvalidEndState is set when every symbol was read but no reached state is an end state.
	InvalidEndState bool
}

// FindFailurePoint walks symbols forward and reports the first index at which
// no state is reachable. It returns nil when the symbols are accepted.
func (a *Automaton) FindFailurePoint(symbols []domain.Symbol) *FailureReport {
	report := a.failurePoint(symbols)

	e := &domain.ValidateEvent{Accepted: report == nil}
	if report != nil {
		e.Index = report.Index
		e.InvalidEndState = report.InvalidEndState
	}
	a.emitValidate(e)
	return report
}

// Validate reports whether symbols are accepted.
func (a *Automaton) Validate(symbols []domain.Symbol) bool {
	return a.FindFailurePoint(symbols) == nil
}

func (a *Automaton) failurePoint(symbols []domain.Symbol) *FailureReport {
	fail := func(index int, previous []StateID, invalidEnd bool) *FailureReport {
		r := &FailureReport{
			Symbols:         symbols,
			Index:           index,
			PreviousStates:  previous,
			InvalidEndState: invalidEnd,
		}
		if index < len(symbols) {
			r.Symbol = symbols[index]
		}
		return r
	}

	if len(symbols) == 0 {
		return fail(0, nil, false)
	}

	current := toStates(a.TransitionsWhere(Entry(), WithSymbol(symbols[0])))
	if len(current) == 0 {
		return fail(0, nil, false)
	}

	for i := 1; i < len(symbols); i++ {
		var next []StateID
		seen := make(map[StateID]bool)
		for _, id := range current {
			for _, to := range a.states[id].NextStatesBySymbol(symbols[i]) {
				if !seen[to] {
					seen[to] = true
					next = append(next, to)
				}
			}
		}
		if len(next) == 0 {
			return fail(i, current, false)
		}
		current = next
	}

	for _, id := range current {
		if a.states[id].IsEnd {
			return nil
		}
	}
	return fail(len(symbols)-1, current, true)
}
