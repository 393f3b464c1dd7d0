package symbol_test

import (
	"testing"

	"github.com/aretw0/jza/pkg/domain"
	"github.com/aretw0/jza/pkg/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		numeral string
		quality string
	}{
		{"IM", "I", "M"},
		{"I", "I", "M"},
		{"V", "V", "x"},
		{"ii", "II", "m"},
		{"vii", "VII", "ø"},
		{"bVIIx", "bVII", "x"},
		{"#IVø", "bV", "ø"},
		{"IIIm", "III", "m"},
		{"bIIIo", "bIII", "o"},
		{"Vs", "V", "s"},
		{"bI", "VII", "M"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m, err := symbol.Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.numeral, m.Numeral())
			assert.Equal(t, tt.quality, m.Quality())
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "x", "IVq", "Iv", "b", "IIII"} {
		t.Run(in, func(t *testing.T) {
			_, err := symbol.Parse(in)
			assert.ErrorIs(t, err, domain.ErrInvalidSymbol)
		})
	}
}

func TestTransposeAndQuality(t *testing.T) {
	ii := symbol.MustParse("IIm")

	assert.Equal(t, "IIIm", ii.Transpose(symbol.MajorSecond).String())
	assert.Equal(t, "VIx", ii.Transpose(symbol.PerfectFifth).WithQuality(symbol.Dominant).String())
	assert.Equal(t, "VIm", ii.TransposeDown(symbol.PerfectFourth).String())
	assert.Equal(t, "bVIm", ii.Transpose(symbol.DiminishedFifth).String())
	assert.Equal(t, "IIx", symbol.MustParse("Vx").Transpose(symbol.PerfectFifth).String())
}

func TestEqual(t *testing.T) {
	assert.True(t, symbol.MustParse("ii").Equal(symbol.MustParse("IIm")))
	assert.False(t, symbol.MustParse("IIm").Equal(symbol.MustParse("IIø")))
	assert.False(t, symbol.MustParse("IIm").Equal(nil))
}

func TestChord(t *testing.T) {
	tests := []struct {
		sym  string
		key  string
		want string
	}{
		{"IIm", "C", "Dm7"},
		{"Vx", "C", "G7"},
		{"IM", "Eb", "EbM7"},
		{"bVIIx", "F", "Eb7"},
		{"VIIø", "C", "Bm7b5"},
		{"bIIIo", "A", "Co7"},
		{"Vs", "D", "A7sus4"},
	}

	for _, tt := range tests {
		t.Run(tt.sym+"@"+tt.key, func(t *testing.T) {
			got, err := symbol.MustParse(tt.sym).Chord(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := symbol.MustParse("IM").Chord("H")
	assert.ErrorIs(t, err, domain.ErrInvalidSymbol)
}

func TestAllWithQualities(t *testing.T) {
	all := symbol.AllWithQualities(symbol.Major, symbol.Minor)
	require.Len(t, all, 24)
	assert.Equal(t, "IM", all[0].String())
	assert.Equal(t, "Im", all[1].String())
	assert.Equal(t, "VIIm", all[23].String())
}

func TestTable(t *testing.T) {
	table := symbol.NewTable()

	a, err := table.Parse("ii")
	require.NoError(t, err)
	b, err := table.Parse("ii")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, 1, table.Len())

	s, err := table.Of("bVII", "x")
	require.NoError(t, err)
	assert.True(t, s.Equal(symbol.MustParse("bVIIx")))

	_, err = table.Of("V", "")
	assert.ErrorIs(t, err, domain.ErrInvalidSymbol)

	_, err = table.Of("v", "m")
	assert.ErrorIs(t, err, domain.ErrInvalidSymbol)

	syms, err := table.ParseAll("I", "vi", "ii", "V")
	require.NoError(t, err)
	require.Len(t, syms, 4)
	assert.Equal(t, "VIm", syms[1].String())
}
