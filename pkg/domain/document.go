package domain

// Document is the persisted layout of an automaton.
// Transition endpoints are indices into States.
type Document struct {
	States      []StateRecord      `json:"states" yaml:"states"`
	Transitions []TransitionRecord `json:"transitions" yaml:"transitions"`
}

// StateRecord is the persisted form of a state.
type StateRecord struct {
	Name    string `json:"name" yaml:"name"`
	IsStart bool   `json:"isStart" yaml:"isStart"`
	IsEnd   bool   `json:"isEnd" yaml:"isEnd"`
}

// TransitionRecord is the persisted form of a transition.
type TransitionRecord struct {
	From   int          `json:"from" yaml:"from"`
	To     int          `json:"to" yaml:"to"`
	Symbol SymbolRecord `json:"symbol" yaml:"symbol"`
	Count  float64      `json:"count" yaml:"count"`
}

// SymbolRecord is the persisted identity of a symbol.
type SymbolRecord struct {
	Numeral string `json:"numeral" yaml:"numeral"`
	Quality string `json:"quality" yaml:"quality"`
}
