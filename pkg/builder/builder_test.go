package builder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jza/pkg/automaton"
	"github.com/aretw0/jza/pkg/builder"
	"github.com/aretw0/jza/pkg/domain"
	"github.com/aretw0/jza/pkg/symbol"
)

func parse(t *testing.T, ss ...string) []domain.Symbol {
	t.Helper()
	syms, err := symbol.NewTable().ParseAll(ss...)
	require.NoError(t, err)
	return syms
}

func apply(t *testing.T, ops ...string) *automaton.Automaton {
	t.Helper()
	a := automaton.New()
	require.NoError(t, builder.DefaultRegistry().Apply(a, ops...))
	return a
}

func incoming(a *automaton.Automaton, state string, sym domain.Symbol) []*automaton.Transition {
	target := a.StateByName(state)
	if target == nil {
		return nil
	}
	return a.TransitionsWhere(automaton.ToState(target.ID), automaton.WithSymbol(sym))
}

func TestPrimitiveChords(t *testing.T) {
	a := apply(t, builder.OpPrimitive)

	assert.Equal(t, 11, a.Len())
	// T->T 64, T->S 64, S->S 64, S->D 16, D->D 12, D->T 48.
	assert.Equal(t, 268, a.NumTransitions())
	for _, s := range a.States() {
		assert.True(t, s.IsStart && s.IsEnd, s.Name)
	}
	assert.True(t, a.Validate(parse(t, "ii", "V", "I")))
	assert.False(t, a.Validate(parse(t, "Vm", "Ix", "IVM")))
}

func TestTonicization(t *testing.T) {
	a := apply(t, builder.OpPrimitive, builder.OpTonicization)

	ii := a.StateByName("ii / IVM")
	require.NotNil(t, ii)
	assert.True(t, ii.IsStart)
	assert.False(t, ii.IsEnd)
	assert.NotNil(t, a.StateByName("V / IVM"))
	assert.Nil(t, a.StateByName("V / IM"), "the tonic is not tonicized")

	assert.True(t, a.Validate(parse(t, "Vm", "Ix", "IVM")))
}

func TestAppliedAndChromaticApproach(t *testing.T) {
	a := apply(t, builder.OpPrimitive, builder.OpApplied, builder.OpChromaticApproach)

	assert.True(t, a.Validate(parse(t, "IIIx", "VIm")))
	assert.True(t, a.Validate(parse(t, "Vx", "bVIM")))
}

func TestSubstitutions(t *testing.T) {
	a := apply(t, builder.OpPrimitive, builder.OpTritoneSubstitutions, builder.OpDiminished, builder.OpSus)

	assert.NotEmpty(t, incoming(a, "Dominant 5", symbol.MustParse("bIIx")))
	assert.Empty(t, incoming(a, "Dominant 3", symbol.MustParse("bVIIx")), "covered by Dominant b7")
	assert.NotEmpty(t, incoming(a, "Dominant 5", symbol.MustParse("VIIo")))
	assert.NotEmpty(t, incoming(a, "Dominant 5", symbol.MustParse("Vs")))
	assert.NotNil(t, a.StateByName("Diminished approaching IIm"))
}

func TestUnpacked(t *testing.T) {
	a := apply(t, builder.OpPrimitive, builder.OpUnpacked)

	unpacked := a.StatesByName("Unpacked Vx")
	require.NotEmpty(t, unpacked)
	assert.True(t, a.Validate(parse(t, "IIm", "Vx", "IM")))
}

func TestNeighborsAndPassing(t *testing.T) {
	a := apply(t, builder.OpPrimitive, builder.OpNeighbors, builder.OpPassing)

	assert.NotEmpty(t, a.StatesByName("IM with neighbor"))
	assert.NotEmpty(t, a.StatesByName("Tonic with passing chord"))
	assert.True(t, a.Validate(parse(t, "IM", "IVx", "IM")))
}

func TestApply_UnknownOperation(t *testing.T) {
	a := automaton.New()
	err := builder.DefaultRegistry().Apply(a, "modal-interchange")
	assert.ErrorIs(t, err, builder.ErrUnknownOperation)
}

func TestRegistryNames(t *testing.T) {
	assert.ElementsMatch(t, builder.DefaultOrder, builder.DefaultRegistry().Names())
}

func TestDefault_TrainsAndGenerates(t *testing.T) {
	a, err := builder.New(automaton.WithSeed(1))
	require.NoError(t, err)

	assert.Greater(t, a.Len(), 11)

	song := parse(t, "IM", "VIm", "IIm", "Vx", "IM")
	require.NoError(t, a.TrainSequence(song))
	assert.True(t, a.Validate(song))

	// Only edges on the trained walk carry weight.
	seq, err := a.GenerateNLengthSequence(5, symbol.MustParse("IM"), symbol.MustParse("IM"))
	require.NoError(t, err)
	assert.Equal(t, 5, seq.Len())
	assert.True(t, a.Validate(seq.Symbols()))
}
