package builder

import (
	"regexp"
	"slices"
	"strings"

	"github.com/aretw0/jza/pkg/automaton"
	"github.com/aretw0/jza/pkg/domain"
	"github.com/aretw0/jza/pkg/symbol"
)

// Operation names.
const (
	OpPrimitive            = "primitive"
	OpTonicization         = "tonicization"
	OpApplied              = "applied"
	OpDiminished           = "diminished"
	OpTritoneSubstitutions = "tritone-substitutions"
	OpUnpacked             = "unpacked"
	OpSus                  = "sus"
	OpChromaticApproach    = "chromatic-approach"
	OpNeighbors            = "neighbors"
	OpPassing              = "passing"
)

type functionalGroup struct {
	bass   string
	chords []string
}

var (
	tonicChords = []functionalGroup{
		{"1", []string{"IM", "Im", "Ix", "Iø"}},
		{"b3", []string{"bIIIM", "bIIIm", "bIIIx", "bIIIø"}},
		{"3", []string{"IIIM", "IIIm", "IIIx", "IIIø"}},
		{"6", []string{"VIM", "VIm", "VIx", "VIø"}},
	}
	subdominantChords = []functionalGroup{
		{"2", []string{"IIM", "IIm", "IIx", "IIø"}},
		{"4", []string{"IVM", "IVm", "IVx", "IVø"}},
		{"b6", []string{"bVIM", "bVIm", "bVIx", "bVIø"}},
		{"6", []string{"VIM", "VIm", "VIx", "VIø"}},
	}
	dominantChords = []functionalGroup{
		{"3", []string{"IIIm", "IIIx"}},
		{"5", []string{"Vx"}},
		{"b7", []string{"bVIIx"}},
	}
)

// States whose dominant already has its tritone substitute in the same function.
var tritoneCovered = []string{
	"Tonic b3", "Tonic 6",
	"Subdominant 2", "Subdominant b6",
	"Dominant 3", "Dominant b7",
}

var functionalName = regexp.MustCompile(`^(Tonic|Subdominant|Dominant)`)

// passingLines are diatonic three-chord lines; the last element names the
// function shared by the chords being passed between.
var passingLines = [][4]string{
	{"I", "ii", "iii", "Tonic"},
	{"ii", "iii", "IV", "Subdominant"},
	{"iii", "IV", "V", "Dominant"},
	{"IV", "V", "vi", "Subdominant"},
	{"V", "vi", "vii", "Dominant"},
	{"vi", "vii", "I", "Tonic"},
}

func mehegan(sym domain.Symbol) (symbol.Mehegan, error) {
	if m, ok := sym.(symbol.Mehegan); ok {
		return m, nil
	}
	return symbol.FromParts(sym.Numeral(), sym.Quality())
}

func name(a *automaton.Automaton, id automaton.StateID) string {
	return a.State(id).Name
}

// link adds a zero-count transition; duplicates are ignored.
func link(a *automaton.Automaton, sym domain.Symbol, from, to automaton.StateID) {
	a.AddTransition(sym, from, to, 0)
}

type functionalState struct {
	state  *automaton.State
	chords []domain.Symbol
}

func addFunction(a *automaton.Automaton, fn string, groups []functionalGroup) ([]functionalState, error) {
	out := make([]functionalState, 0, len(groups))
	for _, g := range groups {
		chords := make([]domain.Symbol, 0, len(g.chords))
		for _, c := range g.chords {
			m, err := symbol.Parse(c)
			if err != nil {
				return nil, err
			}
			chords = append(chords, m)
		}
		out = append(out, functionalState{state: a.AddState(fn+" "+g.bass, true, true), chords: chords})
	}
	return out, nil
}

func connect(a *automaton.Automaton, from, to []functionalState) {
	for _, f := range from {
		for _, t := range to {
			for _, chord := range t.chords {
				link(a, chord, f.state.ID, t.state.ID)
			}
		}
	}
}

// AddPrimitiveChords creates one start/end state per function and bass note
// and connects tonic to subdominant to dominant to tonic, with each function
// also allowed to follow itself.
func AddPrimitiveChords(a *automaton.Automaton) error {
	tonic, err := addFunction(a, "Tonic", tonicChords)
	if err != nil {
		return err
	}
	subdominant, err := addFunction(a, "Subdominant", subdominantChords)
	if err != nil {
		return err
	}
	dominant, err := addFunction(a, "Dominant", dominantChords)
	if err != nil {
		return err
	}

	connect(a, tonic, tonic)
	connect(a, tonic, subdominant)
	connect(a, subdominant, subdominant)
	connect(a, subdominant, dominant)
	connect(a, dominant, dominant)
	connect(a, dominant, tonic)
	return nil
}

// AddTonicization lets non-tonic major, minor and half-diminished targets be
// approached by their own ii-V.
func AddTonicization(a *automaton.Automaton) error {
	var targets []*automaton.Transition
	for _, q := range []symbol.Quality{symbol.Major, symbol.Minor, symbol.HalfDiminished} {
		tonic := symbol.New(0, q)
		for _, t := range a.TransitionsByQuality(string(q)) {
			if !t.Symbol.Equal(tonic) {
				targets = append(targets, t)
			}
		}
	}

	for _, t := range targets {
		m, err := mehegan(t.Symbol)
		if err != nil {
			return err
		}
		v := a.GetOrCreateStateByNameAndTransition("V / "+m.String(), t.To, false, false)
		ii := a.GetOrCreateStateByNameAndTransition("ii / "+m.String(), v.ID, true, false)

		two := m.Transpose(symbol.MajorSecond)
		for _, q := range []symbol.Quality{symbol.Minor, symbol.HalfDiminished, symbol.Dominant} {
			link(a, two.WithQuality(q), t.From, ii.ID)
		}
		link(a, m.Transpose(symbol.PerfectFifth).WithQuality(symbol.Dominant), ii.ID, v.ID)
		link(a, m, v.ID, t.To)
	}
	return nil
}

func majorAndMinor(a *automaton.Automaton) []*automaton.Transition {
	return append(a.TransitionsByQuality(string(symbol.Major)), a.TransitionsByQuality(string(symbol.Minor))...)
}

// approach routes t through a helper state entered with the approach chord.
func approach(a *automaton.Automaton, t *automaton.Transition, helper string, chord domain.Symbol, isStart bool) {
	s := a.GetOrCreateStateByNameAndTransition(helper, t.To, isStart, false)
	link(a, chord, t.From, s.ID)
	link(a, t.Symbol, s.ID, t.To)
}

// AddAppliedChords lets major and minor chords be set up by their dominant.
func AddAppliedChords(a *automaton.Automaton) error {
	for _, t := range majorAndMinor(a) {
		m, err := mehegan(t.Symbol)
		if err != nil {
			return err
		}
		approach(a, t, "V / "+m.String(), m.Transpose(symbol.PerfectFifth).WithQuality(symbol.Dominant), true)
	}
	return nil
}

// AddChromaticApproachingChords lets major and minor chords be set up by the
// dominant a half step below.
func AddChromaticApproachingChords(a *automaton.Automaton) error {
	for _, t := range majorAndMinor(a) {
		m, err := mehegan(t.Symbol)
		if err != nil {
			return err
		}
		approach(a, t, "Chromatic approaching "+m.String(), m.Transpose(symbol.MajorSeventh).WithQuality(symbol.Dominant), true)
	}
	return nil
}

// AddTritoneSubstitutions pairs every dominant seventh with its tritone substitute.
func AddTritoneSubstitutions(a *automaton.Automaton) error {
	for _, t := range a.TransitionsByQuality(string(symbol.Dominant)) {
		if slices.Contains(tritoneCovered, name(a, t.To)) {
			continue
		}
		m, err := mehegan(t.Symbol)
		if err != nil {
			return err
		}
		link(a, m.Transpose(symbol.DiminishedFifth), t.From, t.To)
	}
	return nil
}

// AddDiminishedChords lets a diminished seventh stand in for any dominant and
// approach minor chords from a half step above.
func AddDiminishedChords(a *automaton.Automaton) error {
	dominants := a.TransitionsByQuality(string(symbol.Dominant))
	minors := a.TransitionsByQuality(string(symbol.Minor))

	for _, t := range dominants {
		m, err := mehegan(t.Symbol)
		if err != nil {
			return err
		}
		link(a, m.Transpose(symbol.MajorThird).WithQuality(symbol.Diminished), t.From, t.To)
	}
	for _, t := range minors {
		m, err := mehegan(t.Symbol)
		if err != nil {
			return err
		}
		approach(a, t, "Diminished approaching "+m.String(), m.Transpose(symbol.MinorSecond).WithQuality(symbol.Diminished), true)
	}
	return nil
}

// AddUnpackedChords splits dominants into ii-V and minors into ii-V pairs that
// resolve where the original chord did.
func AddUnpackedChords(a *automaton.Automaton) error {
	var dominants, minors []*automaton.Transition
	for _, t := range a.TransitionsByQuality(string(symbol.Dominant)) {
		if !strings.HasPrefix(name(a, t.To), "V / ") {
			dominants = append(dominants, t)
		}
	}
	for _, t := range a.TransitionsByQuality(string(symbol.Minor)) {
		if name(a, t.From) != "V / "+t.Symbol.String() {
			minors = append(minors, t)
		}
	}

	for _, t := range dominants {
		m, err := mehegan(t.Symbol)
		if err != nil {
			return err
		}
		approach(a, t, "Unpacked "+m.String(), m.TransposeDown(symbol.PerfectFourth).WithQuality(symbol.Minor), true)
	}
	for _, t := range minors {
		m, err := mehegan(t.Symbol)
		if err != nil {
			return err
		}
		s := a.GetOrCreateStateByNameAndTransition("Unpacked "+m.String(), t.To, true, false)
		link(a, m, t.From, s.ID)
		link(a, m.Transpose(symbol.PerfectFourth).WithQuality(symbol.Dominant), s.ID, t.To)
	}
	return nil
}

// AddSusChords lets a sus chord replace any dominant seventh.
func AddSusChords(a *automaton.Automaton) error {
	for _, t := range a.TransitionsByQuality(string(symbol.Dominant)) {
		m, err := mehegan(t.Symbol)
		if err != nil {
			return err
		}
		link(a, m.WithQuality(symbol.Suspended), t.From, t.To)
	}
	return nil
}

// AddNeighborChords lets functional major, minor and dominant chords be
// decorated by any neighbor chord before returning to themselves.
func AddNeighborChords(a *automaton.Automaton) error {
	var neighbors []domain.Symbol
	for _, m := range symbol.AllWithQualities(symbol.Qualities...) {
		neighbors = append(neighbors, m)
	}

	for _, candidate := range symbol.AllWithQualities(symbol.Major, symbol.Minor, symbol.Dominant) {
		for _, t := range a.TransitionsBySymbol(candidate) {
			if !functionalName.MatchString(name(a, t.To)) {
				continue
			}
			pre := a.AddState(t.Symbol.String()+" with neighbor", true, false)
			neighbor := a.AddState("Neighbor of "+t.Symbol.String(), false, false)
			link(a, t.Symbol, t.From, pre.ID)
			link(a, t.Symbol, neighbor.ID, t.To)
			for _, n := range neighbors {
				link(a, n, pre.ID, neighbor.ID)
			}
		}
	}
	return nil
}

// AddPassingChords inserts diatonic stepwise lines, ascending and descending,
// between chords of the same function.
func AddPassingChords(a *automaton.Automaton) error {
	lines := make([][4]string, 0, 2*len(passingLines))
	lines = append(lines, passingLines...)
	for _, l := range passingLines {
		lines = append(lines, [4]string{l[2], l[1], l[0], l[3]})
	}

	for _, line := range lines {
		var chords [3]domain.Symbol
		for i, c := range line[:3] {
			m, err := symbol.Parse(c)
			if err != nil {
				return err
			}
			chords[i] = m
		}
		fn := line[3]

		for _, t := range a.TransitionsBySymbol(chords[2]) {
			if !strings.Contains(name(a, t.To), fn) {
				continue
			}
			pre := a.AddState(fn+" with passing chord", true, false)
			passing := a.AddState("Passing chord", false, false)
			link(a, chords[0], t.From, pre.ID)
			link(a, chords[1], pre.ID, passing.ID)
			link(a, chords[2], passing.ID, t.To)
		}
	}
	return nil
}
