package symbol

import (
	"fmt"
	"strings"

	"github.com/aretw0/jza/pkg/domain"
)

// Quality is a chord quality classification.
type Quality string

const (
	Major          Quality = "M"
	Minor          Quality = "m"
	Dominant       Quality = "x"
	HalfDiminished Quality = "ø"
	Diminished     Quality = "o"
	Suspended      Quality = "s"
)

// Qualities lists every known quality.
var Qualities = []Quality{Major, Minor, Dominant, HalfDiminished, Diminished, Suspended}

// Valid reports whether q is a known quality.
func (q Quality) Valid() bool {
	for _, known := range Qualities {
		if q == known {
			return true
		}
	}
	return false
}

// Interval is a distance in semitones.
type Interval int

const (
	Unison          Interval = 0
	MinorSecond     Interval = 1
	MajorSecond     Interval = 2
	MinorThird      Interval = 3
	MajorThird      Interval = 4
	PerfectFourth   Interval = 5
	DiminishedFifth Interval = 6
	PerfectFifth    Interval = 7
	MinorSixth      Interval = 8
	MajorSixth      Interval = 9
	MinorSeventh    Interval = 10
	MajorSeventh    Interval = 11
)

// Numerals is the canonical spelling of the twelve scale degrees.
var Numerals = [12]string{"I", "bII", "II", "bIII", "III", "IV", "bV", "V", "bVI", "VI", "bVII", "VII"}

var romanDegrees = map[string]int{
	"I":   0,
	"II":  2,
	"III": 4,
	"IV":  5,
	"V":   7,
	"VI":  9,
	"VII": 11,
}

// Mehegan is a roman-numeral chord symbol.
type Mehegan struct {
	degree  int
	quality Quality
}

var _ domain.Symbol = Mehegan{}
var _ domain.ChordRenderer = Mehegan{}

// New creates a symbol from a semitone degree above the tonic and a quality.
func New(degree int, quality Quality) Mehegan {
	return Mehegan{degree: mod12(degree), quality: quality}
}

// FromParts builds a symbol from its persisted numeral and quality.
func FromParts(numeral, quality string) (Mehegan, error) {
	q := Quality(quality)
	if !q.Valid() {
		return Mehegan{}, fmt.Errorf("%w: unknown quality %q", domain.ErrInvalidSymbol, quality)
	}
	degree, rest, lower, err := parseNumeral(numeral)
	if err != nil {
		return Mehegan{}, err
	}
	if rest != "" || lower {
		return Mehegan{}, fmt.Errorf("%w: malformed numeral %q", domain.ErrInvalidSymbol, numeral)
	}
	return New(degree, q), nil
}

// Parse reads a symbol such as "bVIIx", "IVM", "ii" or "V".
func Parse(s string) (Mehegan, error) {
	s = strings.TrimSpace(s)
	degree, rest, lower, err := parseNumeral(s)
	if err != nil {
		return Mehegan{}, err
	}

	var q Quality
	switch {
	case rest != "":
		q = Quality(rest)
		if !q.Valid() {
			return Mehegan{}, fmt.Errorf("%w: unknown quality %q in %q", domain.ErrInvalidSymbol, rest, s)
		}
	case lower && mod12(degree) == romanDegrees["VII"]:
		q = HalfDiminished
	case lower:
		q = Minor
	case mod12(degree) == romanDegrees["V"]:
		q = Dominant
	default:
		q = Major
	}
	return New(degree, q), nil
}

// MustParse is like Parse but panics on malformed input.
func MustParse(s string) Mehegan {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

func parseNumeral(s string) (degree int, rest string, lower bool, err error) {
	i := 0
	offset := 0
	for i < len(s) && (s[i] == 'b' || s[i] == '#') {
		if s[i] == 'b' {
			offset--
		} else {
			offset++
		}
		i++
	}

	j := i
	for j < len(s) && strings.IndexByte("IViv", s[j]) >= 0 {
		j++
	}
	roman := s[i:j]
	if roman == "" {
		return 0, "", false, fmt.Errorf("%w: missing numeral in %q", domain.ErrInvalidSymbol, s)
	}

	upper := strings.ToUpper(roman)
	lower = roman == strings.ToLower(roman)
	if roman != upper && !lower {
		return 0, "", false, fmt.Errorf("%w: mixed-case numeral %q", domain.ErrInvalidSymbol, roman)
	}

	base, ok := romanDegrees[upper]
	if !ok {
		return 0, "", false, fmt.Errorf("%w: unknown numeral %q", domain.ErrInvalidSymbol, roman)
	}
	return base + offset, s[j:], lower, nil
}

// Degree returns the number of semitones above the tonic (0-11).
func (m Mehegan) Degree() int { return m.degree }

// Numeral returns the canonical numeral, e.g. "bVII".
func (m Mehegan) Numeral() string { return Numerals[m.degree] }

// Quality returns the quality as a string.
func (m Mehegan) Quality() string { return string(m.quality) }

// ChordQuality returns the typed quality.
func (m Mehegan) ChordQuality() Quality { return m.quality }

func (m Mehegan) String() string { return m.Numeral() + string(m.quality) }

// Equal reports whether other denotes the same numeral and quality.
func (m Mehegan) Equal(other domain.Symbol) bool {
	if other == nil {
		return false
	}
	if o, ok := other.(Mehegan); ok {
		return m == o
	}
	o, err := FromParts(other.Numeral(), other.Quality())
	if err != nil {
		return false
	}
	return m == o
}

// Transpose moves the symbol up by the given interval, keeping its quality.
func (m Mehegan) Transpose(i Interval) Mehegan {
	return New(m.degree+int(i), m.quality)
}

// TransposeDown moves the symbol down by the given interval, keeping its quality.
func (m Mehegan) TransposeDown(i Interval) Mehegan {
	return New(m.degree-int(i), m.quality)
}

// WithQuality returns the same degree with another quality.
func (m Mehegan) WithQuality(q Quality) Mehegan {
	return Mehegan{degree: m.degree, quality: q}
}

// AllWithQualities returns every numeral combined with every given quality,
// numeral-major order.
func AllWithQualities(qualities ...Quality) []Mehegan {
	out := make([]Mehegan, 0, len(Numerals)*len(qualities))
	for degree := range Numerals {
		for _, q := range qualities {
			out = append(out, New(degree, q))
		}
	}
	return out
}

func mod12(n int) int {
	return ((n % 12) + 12) % 12
}
