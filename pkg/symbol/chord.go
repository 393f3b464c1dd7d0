package symbol

import (
	"fmt"
	"strings"

	"github.com/aretw0/jza/pkg/domain"
)

var noteNames = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

var letterPitches = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

var chordSuffixes = map[Quality]string{
	Major:          "M7",
	Minor:          "m7",
	Dominant:       "7",
	HalfDiminished: "m7b5",
	Diminished:     "o7",
	Suspended:      "7sus4",
}

// Chord renders the symbol as a chord name in the given key, e.g. IIm in "C" is "Dm7".
func (m Mehegan) Chord(key string) (string, error) {
	tonic, err := parseKey(key)
	if err != nil {
		return "", err
	}
	return noteNames[mod12(tonic+m.degree)] + chordSuffixes[m.quality], nil
}

func parseKey(key string) (int, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return 0, fmt.Errorf("%w: empty key", domain.ErrInvalidSymbol)
	}
	// Minor and major keys share the tonic degree.
	for _, mode := range []string{"min", "maj", "m", "M", "-"} {
		if len(key) > len(mode) {
			if trimmed, found := strings.CutSuffix(key, mode); found {
				key = trimmed
				break
			}
		}
	}
	pitch, ok := letterPitches[strings.ToUpper(key[:1])[0]]
	if !ok {
		return 0, fmt.Errorf("%w: unknown key %q", domain.ErrInvalidSymbol, key)
	}
	for _, acc := range key[1:] {
		switch acc {
		case 'b':
			pitch--
		case '#':
			pitch++
		default:
			return 0, fmt.Errorf("%w: unknown key %q", domain.ErrInvalidSymbol, key)
		}
	}
	return mod12(pitch), nil
}

var chordNameQualities = map[string]Quality{
	"": Major, "M": Major, "M7": Major, "maj": Major, "maj7": Major, "Δ": Major, "Δ7": Major, "6": Major, "69": Major,
	"m": Minor, "-": Minor, "m7": Minor, "-7": Minor, "m6": Minor, "m9": Minor, "m11": Minor, "mM7": Minor,
	"7": Dominant, "9": Dominant, "11": Dominant, "13": Dominant, "alt": Dominant, "7alt": Dominant,
	"m7b5": HalfDiminished, "-7b5": HalfDiminished, "ø": HalfDiminished, "ø7": HalfDiminished,
	"o": Diminished, "o7": Diminished, "dim": Diminished, "dim7": Diminished,
	"sus": Suspended, "sus4": Suspended, "7sus": Suspended, "7sus4": Suspended, "9sus4": Suspended,
}

// FromChord reads a chord name such as "Dm7" or "Bb7" relative to key.
func FromChord(chord, key string) (Mehegan, error) {
	tonic, err := parseKey(key)
	if err != nil {
		return Mehegan{}, err
	}
	chord = strings.TrimSpace(chord)
	if chord == "" {
		return Mehegan{}, fmt.Errorf("%w: empty chord", domain.ErrInvalidSymbol)
	}
	root, ok := letterPitches[chord[0]]
	if !ok {
		return Mehegan{}, fmt.Errorf("%w: unknown chord root in %q", domain.ErrInvalidSymbol, chord)
	}
	i := 1
	for ; i < len(chord) && (chord[i] == 'b' || chord[i] == '#'); i++ {
		if chord[i] == 'b' {
			root--
		} else {
			root++
		}
	}

	q, ok := chordQuality(chord[i:])
	if !ok {
		return Mehegan{}, fmt.Errorf("%w: unknown chord quality in %q", domain.ErrInvalidSymbol, chord)
	}
	return New(root-tonic, q), nil
}

func chordQuality(suffix string) (Quality, bool) {
	if slash := strings.IndexByte(suffix, '/'); slash >= 0 {
		suffix = suffix[:slash]
	}
	if q, ok := chordNameQualities[suffix]; ok {
		return q, true
	}
	switch {
	case strings.Contains(suffix, "sus"):
		return Suspended, true
	case strings.HasPrefix(suffix, "m7b5"):
		return HalfDiminished, true
	case strings.HasPrefix(suffix, "maj"), strings.HasPrefix(suffix, "M"):
		return Major, true
	case strings.HasPrefix(suffix, "dim"), strings.HasPrefix(suffix, "o"):
		return Diminished, true
	case strings.HasPrefix(suffix, "m"), strings.HasPrefix(suffix, "-"):
		return Minor, true
	case strings.HasPrefix(suffix, "7"), strings.HasPrefix(suffix, "9"), strings.HasPrefix(suffix, "13"):
		return Dominant, true
	}
	return "", false
}
