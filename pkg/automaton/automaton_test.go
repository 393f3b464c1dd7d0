package automaton_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jza/pkg/automaton"
)

func TestAddTransition_Deduplicates(t *testing.T) {
	a := automaton.New()
	s0 := a.AddState("S0", true, false)
	s1 := a.AddState("S1", false, true)

	first := a.AddTransition(tok("x"), s0.ID, s1.ID, 1)
	require.NotNil(t, first)
	assert.Nil(t, a.AddTransition(tok("x"), s0.ID, s1.ID, 5))
	assert.NotNil(t, a.AddTransition(tok("y"), s0.ID, s1.ID, 0))

	assert.Equal(t, 2, a.NumTransitions())
	assert.Equal(t, 1.0, first.Count)
	assert.True(t, s0.HasTransition(tok("x"), s1.ID))
	assert.Equal(t, []automaton.StateID{s1.ID}, s0.NextStatesBySymbol(tok("y")))
}

func TestAddTransition_UnknownStatePanics(t *testing.T) {
	a := automaton.New()
	s0 := a.AddState("S0", true, true)
	assert.Panics(t, func() { a.AddTransition(tok("x"), s0.ID, 7, 1) })
}

func TestGetOrCreateStateByNameAndTransition(t *testing.T) {
	a := automaton.New()
	target := a.AddState("I", true, true)

	helper := a.GetOrCreateStateByNameAndTransition("V / I", target.ID, false, false)
	require.NotNil(t, a.AddTransition(tok("I"), helper.ID, target.ID, 0))

	again := a.GetOrCreateStateByNameAndTransition("V / I", target.ID, false, false)
	assert.Same(t, helper, again)

	other := a.AddState("II", false, false)
	fresh := a.GetOrCreateStateByNameAndTransition("V / I", other.ID, false, false)
	assert.NotSame(t, helper, fresh)
	assert.Len(t, a.StatesByName("V / I"), 2)
}

func TestQueries(t *testing.T) {
	c := newCadence(t)
	a := c.a

	assert.Equal(t, 3, a.Len())
	assert.Same(t, c.P, a.StateByName("Predominant"))
	assert.Nil(t, a.StateByName("Nope"))
	assert.Nil(t, a.State(automaton.NoState))

	assert.ElementsMatch(t, []*automaton.State{c.P, c.D},
		a.StatesByPattern(regexp.MustCompile("^(Pre|Dom)")))

	assert.Equal(t, []*automaton.Transition{c.TI, c.DI}, a.TransitionsBySymbol(tok("I")))
	assert.Equal(t, []*automaton.Transition{c.TI, c.DI}, a.TransitionsByToState(c.T.ID))
	assert.Len(t, a.TransitionsByQuality("t"), 7)

	// Entry transitions leave or land on a start state.
	assert.Equal(t, []*automaton.Transition{c.TI, c.Tii, c.TIV, c.DI}, a.EntryTransitions())

	assert.Equal(t, []*automaton.Transition{c.Pii},
		a.TransitionsWhere(automaton.FromState(c.P.ID), automaton.WithoutSymbols(tok("V"))))
	assert.Same(t, c.PV, a.TransitionWhere(automaton.WithSymbol(tok("V"))))
	assert.Nil(t, a.TransitionWhere(automaton.WithSymbol(tok("vii"))))
	assert.Equal(t, []*automaton.Transition{c.TI, c.DI}, a.TransitionsWhere(automaton.ToIsEnd()))
	assert.Equal(t, []*automaton.Transition{c.TI, c.Tii, c.TIV}, a.TransitionsWhere(automaton.FromIsEnd()))
}

func TestProbabilityAndFormat(t *testing.T) {
	c := newCadence(t)
	assert.InDelta(t, 0.5, c.a.Probability(c.Tii), 1e-9)
	assert.Equal(t, "Dominant =[I]=> Tonic", c.a.FormatTransition(c.DI))
}
