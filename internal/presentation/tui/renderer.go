// Package tui renders sequences and probability tables for the terminal.
package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/aretw0/jza/pkg/automaton"
)

const defaultWidth = 80

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func width(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			return cols
		}
	}
	return defaultWidth
}

// Printer writes styled output. Styling and markdown rendering are enabled
// only when the destination is a terminal.
type Printer struct {
	w      io.Writer
	out    *termenv.Output
	styled bool
}

// NewPrinter creates a printer for w.
func NewPrinter(w io.Writer) *Printer {
	styled := IsTerminal(w)
	profile := termenv.Ascii
	if styled {
		profile = termenv.EnvColorProfile()
	}
	return &Printer{
		w:      w,
		out:    termenv.NewOutput(w, termenv.WithProfile(profile)),
		styled: styled,
	}
}

// Styled reports whether colours and markdown are rendered.
func (p *Printer) Styled() bool {
	return p.styled
}

// Sequence writes the symbols of seq on one line and, when verbose, one
// "symbol: state" line per step.
func (p *Printer) Sequence(seq *automaton.Sequence, verbose bool) {
	symbols := make([]string, 0, seq.Len())
	for _, s := range seq.Symbols() {
		symbols = append(symbols, p.out.String(s.String()).Bold().Foreground(p.out.Color("#c084fc")).String())
	}
	fmt.Fprintln(p.w, strings.Join(symbols, " "))
	if !verbose {
		return
	}
	for _, line := range seq.SymbolStateStrings() {
		fmt.Fprintln(p.w, "  "+p.out.String(line).Faint().String())
	}
}

// Success writes msg in green.
func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.w, p.out.String(msg).Foreground(p.out.Color("#22c55e")))
}

// Failure writes msg in red.
func (p *Printer) Failure(msg string) {
	fmt.Fprintln(p.w, p.out.String(msg).Foreground(p.out.Color("#ef4444")))
}

// Markdown writes md, rendered with glamour on a terminal and verbatim otherwise.
func (p *Printer) Markdown(md string) error {
	if !p.styled {
		_, err := io.WriteString(p.w, md)
		return err
	}
	render, err := NewRenderer(width(p.w))
	if err != nil {
		return err
	}
	out, err := render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(p.w, out)
	return err
}

// NewRenderer returns a function that renders markdown using glamour,
// detecting a light or dark background.
func NewRenderer(wordWrap int) (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return r.Render, nil
}

// DistributionTable renders d as a markdown table under title.
func DistributionTable(title, keyHeader string, d automaton.Distribution) string {
	var sb strings.Builder
	if title != "" {
		fmt.Fprintf(&sb, "## %s\n\n", title)
	}
	fmt.Fprintf(&sb, "| %s | Probability |\n|---|---:|\n", keyHeader)
	for _, kp := range d {
		fmt.Fprintf(&sb, "| %s | %.4f |\n", strings.ReplaceAll(kp.Key, "|", `\|`), kp.Probability)
	}
	if len(d) == 0 {
		sb.WriteString("| _none_ | |\n")
	}
	return sb.String()
}

// CountTable renders generated sequence frequencies as a markdown table.
func CountTable(title string, counts []automaton.SequenceCount) string {
	var sb strings.Builder
	if title != "" {
		fmt.Fprintf(&sb, "## %s\n\n", title)
	}
	sb.WriteString("| Sequence | Count |\n|---|---:|\n")
	for _, c := range counts {
		fmt.Fprintf(&sb, "| %s | %d |\n", c.Symbols, c.Count)
	}
	return sb.String()
}
