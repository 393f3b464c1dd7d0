// Package corpus loads chord charts used to train an automaton.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/jza/pkg/domain"
	"github.com/aretw0/jza/pkg/symbol"
)

// Section is a named part of a chart. Chords are Mehegan symbols ("IIm",
// "bVIIx") or, when the chart has a key, chord names ("Dm7").
type Section struct {
	Name   string   `yaml:"name" json:"name"`
	Chords []string `yaml:"chords" json:"chords"`

	symbols []domain.Symbol
}

// Symbols returns the parsed chords of the section.
func (s Section) Symbols() []domain.Symbol {
	return s.symbols
}

// Chart is one song.
type Chart struct {
	Title    string    `yaml:"title" json:"title"`
	Key      string    `yaml:"key" json:"key"`
	Sections []Section `yaml:"sections" json:"sections"`
}

// Symbols returns every chord of the chart in order. With wrapAround the first
// chord is repeated at the end, closing the form.
func (c Chart) Symbols(wrapAround bool) []domain.Symbol {
	var out []domain.Symbol
	for _, s := range c.Sections {
		out = append(out, s.symbols...)
	}
	if wrapAround && len(out) > 0 {
		out = append(out, out[0])
	}
	return out
}

// SectionSymbols returns one list per section. With wrapAround each list is
// followed by the first chord of the next section, the last section wrapping
// to the first.
func (c Chart) SectionSymbols(wrapAround bool) [][]domain.Symbol {
	out := make([][]domain.Symbol, 0, len(c.Sections))
	for i, s := range c.Sections {
		syms := append([]domain.Symbol(nil), s.symbols...)
		if wrapAround {
			next := c.Sections[(i+1)%len(c.Sections)].symbols
			if len(next) > 0 {
				syms = append(syms, next[0])
			}
		}
		out = append(out, syms)
	}
	return out
}

// Corpus is a collection of charts.
type Corpus struct {
	Charts []Chart `yaml:"charts" json:"charts"`
}

// SongSymbols returns one symbol list per chart.
func (c *Corpus) SongSymbols(wrapAround bool) [][]domain.Symbol {
	out := make([][]domain.Symbol, 0, len(c.Charts))
	for _, chart := range c.Charts {
		out = append(out, chart.Symbols(wrapAround))
	}
	return out
}

// SectionSymbols returns one symbol list per section of every chart.
func (c *Corpus) SectionSymbols(wrapAround bool) [][]domain.Symbol {
	var out [][]domain.Symbol
	for _, chart := range c.Charts {
		out = append(out, chart.SectionSymbols(wrapAround)...)
	}
	return out
}

// TitlesWithSequence returns the titles of charts containing seq contiguously.
func (c *Corpus) TitlesWithSequence(seq []domain.Symbol) []string {
	var out []string
	for _, chart := range c.Charts {
		if containsRun(chart.Symbols(false), seq) {
			out = append(out, chart.Title)
		}
	}
	return out
}

func containsRun(haystack, needle []domain.Symbol) bool {
	if len(needle) == 0 {
		return false
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j, sym := range needle {
			if !haystack[i+j].Equal(sym) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// Parse decodes a YAML or JSON corpus and resolves every chord.
func Parse(data []byte, table *symbol.Table) (*Corpus, error) {
	var c Corpus
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse corpus: %w", err)
	}
	if err := c.resolve(table); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads a corpus file. Files ending in .json are decoded as JSON, anything
// else as YAML.
func Load(path string, table *symbol.Table) (*Corpus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}
	if strings.ToLower(filepath.Ext(path)) != ".json" {
		return Parse(data, table)
	}

	var c Corpus
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse corpus: %w", err)
	}
	if err := c.resolve(table); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Corpus) resolve(table *symbol.Table) error {
	if table == nil {
		table = symbol.NewTable()
	}
	for i := range c.Charts {
		chart := &c.Charts[i]
		for j := range chart.Sections {
			section := &chart.Sections[j]
			section.symbols = make([]domain.Symbol, 0, len(section.Chords))
			for _, chord := range section.Chords {
				sym, err := resolveChord(table, chord, chart.Key)
				if err != nil {
					return fmt.Errorf("chart %q section %q: %w", chart.Title, section.Name, err)
				}
				section.symbols = append(section.symbols, sym)
			}
		}
	}
	return nil
}

func resolveChord(table *symbol.Table, chord, key string) (domain.Symbol, error) {
	chord = strings.TrimSpace(chord)
	if chord != "" && chord[0] >= 'A' && chord[0] <= 'G' {
		if key == "" {
			return nil, fmt.Errorf("%w: chord name %q needs a chart key", domain.ErrInvalidSymbol, chord)
		}
		return symbol.FromChord(chord, key)
	}
	return table.Parse(chord)
}
