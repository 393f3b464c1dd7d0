package automaton

import (
	"fmt"

	"github.com/aretw0/jza/pkg/domain"
)

// Serialize dumps the automaton. Transitions reference states by index.
func (a *Automaton) Serialize() *domain.Document {
	doc := &domain.Document{
		States:      make([]domain.StateRecord, len(a.states)),
		Transitions: make([]domain.TransitionRecord, 0, a.NumTransitions()),
	}
	for i, s := range a.states {
		doc.States[i] = domain.StateRecord{Name: s.Name, IsStart: s.IsStart, IsEnd: s.IsEnd}
	}
	for _, t := range a.Transitions() {
		doc.Transitions = append(doc.Transitions, domain.TransitionRecord{
			From:   int(t.From),
			To:     int(t.To),
			Symbol: domain.SymbolRecord{Numeral: t.Symbol.Numeral(), Quality: t.Symbol.Quality()},
			Count:  t.Count,
		})
	}
	return doc
}

// Load rebuilds an automaton from doc, creating symbols with factory.
func Load(doc *domain.Document, factory domain.SymbolFactory, opts ...Option) (*Automaton, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", domain.ErrInvalidDocument)
	}
	a := New(opts...)
	for _, s := range doc.States {
		a.AddState(s.Name, s.IsStart, s.IsEnd)
	}

	for i, rec := range doc.Transitions {
		if rec.From < 0 || rec.From >= len(doc.States) || rec.To < 0 || rec.To >= len(doc.States) {
			return nil, fmt.Errorf("%w: transition %d references state %d -> %d of %d",
				domain.ErrInvalidDocument, i, rec.From, rec.To, len(doc.States))
		}
		if rec.Count < 0 {
			return nil, fmt.Errorf("%w: transition %d has negative count %v", domain.ErrInvalidDocument, i, rec.Count)
		}
		sym, err := factory(rec.Symbol.Numeral, rec.Symbol.Quality)
		if err != nil {
			return nil, fmt.Errorf("%w: transition %d: %w", domain.ErrInvalidDocument, i, err)
		}
		a.AddTransition(sym, StateID(rec.From), StateID(rec.To), rec.Count)
	}
	return a, nil
}
