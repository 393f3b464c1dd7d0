package graph_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jza/internal/presentation/graph"
	"github.com/aretw0/jza/pkg/automaton"
	"github.com/aretw0/jza/pkg/symbol"
)

func fixture() (*automaton.Automaton, []*automaton.Transition) {
	a := automaton.New()
	tonic := a.AddState("Tonic", true, true)
	dom := a.AddState("Dominant 5", false, true)
	pre := a.AddState("ii / IVM", true, false)
	plain := a.AddState(`Say "hi"`, false, false)

	ts := []*automaton.Transition{
		a.AddTransition(symbol.MustParse("Vx"), tonic.ID, dom.ID, 3),
		a.AddTransition(symbol.MustParse("bIIx"), tonic.ID, dom.ID, 1),
		a.AddTransition(symbol.MustParse("IM"), dom.ID, tonic.ID, 1),
		a.AddTransition(symbol.MustParse("Vm"), pre.ID, plain.ID, 0),
	}
	return a, ts
}

func TestGenerateMermaid(t *testing.T) {
	a, _ := fixture()
	out := graph.GenerateMermaid(a, graph.Options{}, nil)

	for _, want := range []string{
		"graph LR\n",
		`s0(("Tonic"))`,
		`s1[["Dominant 5"]]`,
		`s2(["ii / IVM"])`,
		`s3["Say 'hi'"]`,
		`s0 -- "Vx, bIIx" --> s1`,
		`s1 -- "IM" --> s0`,
		`s2 -- "Vm" --> s3`,
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "classDef")
}

func TestGenerateMermaid_Options(t *testing.T) {
	a, _ := fixture()
	out := graph.GenerateMermaid(a, graph.Options{TrainedOnly: true, Probabilities: true}, nil)

	assert.Contains(t, out, `s0 -- "Vx 0.75, bIIx 0.25" --> s1`)
	assert.NotContains(t, out, "s2", "untrained states are dropped")
	assert.NotContains(t, out, "Vm")
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	a, ts := fixture()
	seq, err := automaton.NewSequence(a, ts[0], ts[2], ts[1])
	require.NoError(t, err)

	out := graph.GenerateMermaid(a, graph.Options{}, &graph.Overlay{Sequence: seq})
	assert.Contains(t, out, "classDef visited")
	assert.Equal(t, 1, strings.Count(out, "class s0 visited;"))
	assert.Contains(t, out, "class s1 visited;")
	assert.Contains(t, out, "class s1 current;")
}
