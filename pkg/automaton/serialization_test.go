package automaton_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jza/pkg/automaton"
	"github.com/aretw0/jza/pkg/domain"
	"github.com/aretw0/jza/pkg/symbol"
)

type edge struct {
	From, To, Symbol string
	Count            float64
}

func edges(a *automaton.Automaton) []edge {
	var out []edge
	for _, t := range a.Transitions() {
		out = append(out, edge{a.State(t.From).Name, a.State(t.To).Name, t.Symbol.String(), t.Count})
	}
	return out
}

func TestSerialize_RoundTrip(t *testing.T) {
	c := newCadence(t)
	require.NoError(t, c.a.TrainSequence(toks("ii", "V", "I")))

	raw, err := json.Marshal(c.a.Serialize())
	require.NoError(t, err)

	var doc domain.Document
	require.NoError(t, json.Unmarshal(raw, &doc))
	loaded, err := automaton.Load(&doc, tokFactory)
	require.NoError(t, err)

	assert.Equal(t, c.a.Len(), loaded.Len())
	for i, s := range c.a.States() {
		got := loaded.State(automaton.StateID(i))
		assert.Equal(t, s.Name, got.Name)
		assert.Equal(t, s.IsStart, got.IsStart)
		assert.Equal(t, s.IsEnd, got.IsEnd)
	}
	assert.ElementsMatch(t, edges(c.a), edges(loaded))
}

func TestSerialize_WireFormat(t *testing.T) {
	a := automaton.New()
	s0 := a.AddState("S0", true, false)
	s1 := a.AddState("S1", false, true)
	a.AddTransition(symbol.MustParse("bVIIx"), s0.ID, s1.ID, 1.5)

	raw, err := json.Marshal(a.Serialize())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"states": [
			{"name": "S0", "isStart": true, "isEnd": false},
			{"name": "S1", "isStart": false, "isEnd": true}
		],
		"transitions": [
			{"from": 0, "to": 1, "symbol": {"numeral": "bVII", "quality": "x"}, "count": 1.5}
		]
	}`, string(raw))

	loaded, err := automaton.Load(a.Serialize(), symbol.NewTable().Of)
	require.NoError(t, err)
	assert.Len(t, loaded.TransitionsBySymbol(symbol.MustParse("bVIIx")), 1)
}

func TestLoad_RejectsBadDocuments(t *testing.T) {
	states := []domain.StateRecord{{Name: "S0", IsStart: true, IsEnd: true}}

	cases := map[string]*domain.Document{
		"nil":            nil,
		"dangling index": {States: states, Transitions: []domain.TransitionRecord{{From: 0, To: 3}}},
		"negative count": {States: states, Transitions: []domain.TransitionRecord{{From: 0, To: 0, Count: -1}}},
	}
	for name, doc := range cases {
		_, err := automaton.Load(doc, tokFactory)
		assert.ErrorIs(t, err, domain.ErrInvalidDocument, name)
	}

	bad := &domain.Document{States: states, Transitions: []domain.TransitionRecord{
		{From: 0, To: 0, Symbol: domain.SymbolRecord{Numeral: "Q", Quality: "M"}},
	}}
	_, err := automaton.Load(bad, symbol.NewTable().Of)
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)
	assert.ErrorIs(t, err, domain.ErrInvalidSymbol)
}
