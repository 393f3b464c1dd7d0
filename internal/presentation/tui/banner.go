package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the jza banner to w, coloured when w is a terminal.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	lines := []struct{ text, color string }{
		{"     _", "#818cf8"},
		{"    (_)______ _", "#a78bfa"},
		{"    | |_  / _` |", "#c084fc"},
		{"    | |/ / (_| |", "#e879f9"},
		{"   _/ /___\\__,_|", "#f472b6"},
		{"  |__/", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
