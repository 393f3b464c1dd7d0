package domain

// Symbol is an opaque harmonic-function token.
// The automaton only relies on equality and quality; Numeral and Quality are
// also the persisted identity of a symbol (see SymbolRecord).
type Symbol interface {
	// Equal reports whether both symbols denote the same token.
	Equal(other Symbol) bool
	// Quality returns the chord quality classification (e.g. "M", "m", "x").
	Quality() string
	// Numeral returns the scale-degree part of the symbol (e.g. "bVII").
	Numeral() string
	String() string
}

// ChordRenderer is implemented by symbols that can be rendered as a chord name
// in a given key.
type ChordRenderer interface {
	Chord(key string) (string, error)
}

// SymbolFactory rebuilds a Symbol from its persisted parts.
type SymbolFactory func(numeral, quality string) (Symbol, error)

// ContainsSymbol reports whether sym is equal to any of the given symbols.
func ContainsSymbol(symbols []Symbol, sym Symbol) bool {
	for _, s := range symbols {
		if s.Equal(sym) {
			return true
		}
	}
	return false
}
