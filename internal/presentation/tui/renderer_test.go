package tui_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jza/internal/presentation/tui"
	"github.com/aretw0/jza/pkg/automaton"
	"github.com/aretw0/jza/pkg/symbol"
)

func TestPrinter_Plain(t *testing.T) {
	a := automaton.New()
	tonic := a.AddState("Tonic", true, true)
	dom := a.AddState("Dominant", false, false)
	v := a.AddTransition(symbol.MustParse("Vx"), tonic.ID, dom.ID, 1)
	i := a.AddTransition(symbol.MustParse("IM"), dom.ID, tonic.ID, 1)
	seq, err := automaton.NewSequence(a, v, i)
	require.NoError(t, err)

	var buf bytes.Buffer
	p := tui.NewPrinter(&buf)
	assert.False(t, p.Styled())

	p.Sequence(seq, true)
	p.Success("accepted")
	assert.Equal(t, "Vx IM\n  Vx: Dominant\n  IM: Tonic\naccepted\n", buf.String())

	buf.Reset()
	require.NoError(t, p.Markdown("# Title\n"))
	assert.Equal(t, "# Title\n", buf.String())
}

func TestDistributionTable(t *testing.T) {
	d := automaton.Distribution{{Key: "Tonic", Probability: 0.75}, {Key: "a|b", Probability: 0.25}}
	md := tui.DistributionTable("After Vx", "State", d)

	assert.Contains(t, md, "## After Vx\n")
	assert.Contains(t, md, "| State | Probability |")
	assert.Contains(t, md, "| Tonic | 0.7500 |")
	assert.Contains(t, md, `| a\|b | 0.2500 |`)

	assert.Contains(t, tui.DistributionTable("", "Symbol", nil), "_none_")
}

func TestCountTable(t *testing.T) {
	md := tui.CountTable("", []automaton.SequenceCount{{Symbols: "IIm Vx IM", Count: 4}})
	assert.Equal(t, "| Sequence | Count |\n|---|---:|\n| IIm Vx IM | 4 |\n", md)
}

func TestNewRenderer(t *testing.T) {
	render, err := tui.NewRenderer(40)
	require.NoError(t, err)
	out, err := render("**bold**")
	require.NoError(t, err)
	assert.Contains(t, out, "bold")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|__/")
}
