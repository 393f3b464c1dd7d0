package symbol

import (
	"sync"

	"github.com/aretw0/jza/pkg/domain"
)

// Table memoizes parsed symbols. It is owned by whoever constructs symbols
// (builder, corpus loader, engine) and is safe for concurrent use.
type Table struct {
	mu      sync.RWMutex
	entries map[string]Mehegan
}

// NewTable creates an empty interning table.
func NewTable() *Table {
	return &Table{entries: make(map[string]Mehegan)}
}

// Parse returns the symbol for s, parsing it at most once.
func (t *Table) Parse(s string) (Mehegan, error) {
	t.mu.RLock()
	m, ok := t.entries[s]
	t.mu.RUnlock()
	if ok {
		return m, nil
	}

	m, err := Parse(s)
	if err != nil {
		return Mehegan{}, err
	}

	t.mu.Lock()
	t.entries[s] = m
	t.mu.Unlock()
	return m, nil
}

// MustParse is like Parse but panics on malformed input.
func (t *Table) MustParse(s string) Mehegan {
	m, err := t.Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// ParseAll parses every string into a domain symbol.
func (t *Table) ParseAll(ss ...string) ([]domain.Symbol, error) {
	out := make([]domain.Symbol, 0, len(ss))
	for _, s := range ss {
		m, err := t.Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Of implements domain.SymbolFactory.
func (t *Table) Of(numeral, quality string) (domain.Symbol, error) {
	key := numeral + "/" + quality
	t.mu.RLock()
	m, ok := t.entries[key]
	t.mu.RUnlock()
	if ok {
		return m, nil
	}

	m, err := FromParts(numeral, quality)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.entries[key] = m
	t.mu.Unlock()
	return m, nil
}

// Len returns the number of memoized entries.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
