package automaton_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/jza/pkg/automaton"
	"github.com/aretw0/jza/pkg/domain"
)

// tok is a minimal symbol compared by value.
type tok string

func (t tok) Equal(other domain.Symbol) bool {
	o, ok := other.(tok)
	return ok && o == t
}
func (t tok) Quality() string { return "t" }
func (t tok) Numeral() string { return string(t) }
func (t tok) String() string  { return string(t) }

func tokFactory(numeral, _ string) (domain.Symbol, error) {
	return tok(numeral), nil
}

func toks(ss ...string) []domain.Symbol {
	out := make([]domain.Symbol, len(ss))
	for i, s := range ss {
		out[i] = tok(s)
	}
	return out
}

// fixedRand always returns the same draw.
type fixedRand float64

func (r fixedRand) Float64() float64 { return float64(r) }

// cadence is a small tonic/predominant/dominant cycle.
type cadence struct {
	a       *automaton.Automaton
	T, P, D *automaton.State

	TI, Tii, TIV, Pii, PV, DV, DI *automaton.Transition
}

func newCadence(t *testing.T, opts ...automaton.Option) *cadence {
	t.Helper()
	a := automaton.New(opts...)
	c := &cadence{a: a}
	c.T = a.AddState("Tonic", true, true)
	c.P = a.AddState("Predominant", false, false)
	c.D = a.AddState("Dominant", false, false)

	c.TI = a.AddTransition(tok("I"), c.T.ID, c.T.ID, 1)
	c.Tii = a.AddTransition(tok("ii"), c.T.ID, c.P.ID, 2)
	c.TIV = a.AddTransition(tok("IV"), c.T.ID, c.P.ID, 1)
	c.Pii = a.AddTransition(tok("ii"), c.P.ID, c.P.ID, 1)
	c.PV = a.AddTransition(tok("V"), c.P.ID, c.D.ID, 2)
	c.DV = a.AddTransition(tok("V"), c.D.ID, c.D.ID, 1)
	c.DI = a.AddTransition(tok("I"), c.D.ID, c.T.ID, 3)
	for _, tr := range []*automaton.Transition{c.TI, c.Tii, c.TIV, c.Pii, c.PV, c.DV, c.DI} {
		require.NotNil(t, tr)
	}
	return c
}

func (c *cadence) seq(t *testing.T, ts ...*automaton.Transition) *automaton.Sequence {
	t.Helper()
	s, err := automaton.NewSequence(c.a, ts...)
	require.NoError(t, err)
	return s
}

func connected(s *automaton.Sequence) bool {
	ts := s.Transitions()
	for i := 1; i < len(ts); i++ {
		if ts[i-1].To != ts[i].From {
			return false
		}
	}
	return true
}

func symbolStrings(s *automaton.Sequence) []string {
	out := make([]string, 0, s.Len())
	for _, sym := range s.Symbols() {
		out = append(out, sym.String())
	}
	return out
}

var alphabet = []string{"I", "ii", "IV", "V", "vi"}

// spell maps generated indices onto alphabet.
func spell(idx []int) []domain.Symbol {
	out := make([]domain.Symbol, len(idx))
	for i, n := range idx {
		out[i] = tok(alphabet[n])
	}
	return out
}
