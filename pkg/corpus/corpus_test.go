package corpus_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jza/pkg/automaton"
	"github.com/aretw0/jza/pkg/builder"
	"github.com/aretw0/jza/pkg/corpus"
	"github.com/aretw0/jza/pkg/domain"
	"github.com/aretw0/jza/pkg/symbol"
)

const charts = `
charts:
  - title: Blue Turn
    sections:
      - name: A
        chords: [IM, VIm, IIm, Vx]
      - name: B
        chords: [IIIm, VIx, IIm, Vx]
  - title: Autumn
    key: G
    sections:
      - name: A
        chords: [Am7, D7, Gmaj7, Cmaj7]
`

func names(syms []domain.Symbol) []string {
	out := make([]string, len(syms))
	for i, s := range syms {
		out[i] = s.String()
	}
	return out
}

func TestParse(t *testing.T) {
	c, err := corpus.Parse([]byte(charts), nil)
	require.NoError(t, err)
	require.Len(t, c.Charts, 2)

	songs := c.SongSymbols(false)
	assert.Equal(t, []string{"IM", "VIm", "IIm", "Vx", "IIIm", "VIx", "IIm", "Vx"}, names(songs[0]))
	assert.Equal(t, []string{"IIm", "Vx", "IM", "IVM"}, names(songs[1]))

	wrapped := c.SongSymbols(true)
	assert.Equal(t, "IM", names(wrapped[0])[8])
}

func TestSectionSymbols_WrapAround(t *testing.T) {
	c, err := corpus.Parse([]byte(charts), symbol.NewTable())
	require.NoError(t, err)

	sections := c.SectionSymbols(true)
	require.Len(t, sections, 3)
	assert.Equal(t, []string{"IM", "VIm", "IIm", "Vx", "IIIm"}, names(sections[0]))
	assert.Equal(t, []string{"IIIm", "VIx", "IIm", "Vx", "IM"}, names(sections[1]))
	assert.Equal(t, []string{"IIm", "Vx", "IM", "IVM", "IIm"}, names(sections[2]))

	plain := c.SectionSymbols(false)
	assert.Len(t, plain[0], 4)
}

func TestTitlesWithSequence(t *testing.T) {
	c, err := corpus.Parse([]byte(charts), nil)
	require.NoError(t, err)

	seq := []domain.Symbol{symbol.MustParse("IIm"), symbol.MustParse("Vx")}
	assert.Equal(t, []string{"Blue Turn", "Autumn"}, c.TitlesWithSequence(seq))
	assert.Empty(t, c.TitlesWithSequence([]domain.Symbol{symbol.MustParse("bIIx")}))
}

func TestParse_Errors(t *testing.T) {
	_, err := corpus.Parse([]byte("charts: [{title: x, sections: [{name: A, chords: [Qm]}]}]"), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidSymbol)

	_, err = corpus.Parse([]byte("charts: [{title: x, sections: [{name: A, chords: [Dm7]}]}]"), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidSymbol, "chord names need a key")

	_, err = corpus.Parse([]byte("charts: [unclosed"), nil)
	assert.Error(t, err)
}

func TestLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.json")
	data := `{"charts":[{"title":"Solo","sections":[{"name":"A","chords":["IIm","Vx","IM"]}]}]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, err := corpus.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"IIm", "Vx", "IM"}, names(c.SongSymbols(false)[0]))

	_, err = corpus.Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestTrainCorpus(t *testing.T) {
	c, err := corpus.Parse([]byte(charts), nil)
	require.NoError(t, err)

	a, err := builder.New()
	require.NoError(t, err)

	accepted, err := a.TrainCorpusBySection(c, 2, true)
	require.NoError(t, err)
	assert.Equal(t, 3, accepted)

	var _ automaton.Corpus = c
}
