package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/jza/pkg/automaton"
)

// Overlay highlights a walk on the rendered graph.
type Overlay struct {
	Sequence *automaton.Sequence
}

// Options controls which edges are drawn.
type Options struct {
	// TrainedOnly drops edges whose count is zero.
	TrainedOnly bool
	// Probabilities appends the outgoing probability to each symbol.
	Probabilities bool
}

type edgeKey struct {
	from, to automaton.StateID
}

// GenerateMermaid produces a Mermaid flowchart of the automaton.
// Parallel edges between the same pair of states are merged into one arrow
// whose label lists every symbol. Shapes follow state flags:
// - Start and end: ((Circle))
// - Start: ([Stadium])
// - End: [[Subroutine]]
// - Default: [Rectangle]
func GenerateMermaid(a *automaton.Automaton, opts Options, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	drawn := make(map[automaton.StateID]bool)
	var order []edgeKey
	labels := make(map[edgeKey][]string)
	for _, t := range a.Transitions() {
		if opts.TrainedOnly && t.Count <= 0 {
			continue
		}
		k := edgeKey{t.From, t.To}
		if _, ok := labels[k]; !ok {
			order = append(order, k)
		}
		label := t.Symbol.String()
		if opts.Probabilities {
			label = fmt.Sprintf("%s %.2f", label, a.Probability(t))
		}
		labels[k] = append(labels[k], label)
		drawn[t.From] = true
		drawn[t.To] = true
	}

	for _, s := range a.States() {
		if opts.TrainedOnly && !drawn[s.ID] {
			continue
		}
		opener, closer := "[", "]"
		switch {
		case s.IsStart && s.IsEnd:
			opener, closer = "((", "))"
		case s.IsStart:
			opener, closer = "([", "])"
		case s.IsEnd:
			opener, closer = "[[", "]]"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", nodeID(s.ID), opener, escape(s.Name), closer)
	}

	for _, k := range order {
		fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", nodeID(k.from), escape(strings.Join(labels[k], ", ")), nodeID(k.to))
	}

	if overlay != nil && overlay.Sequence != nil && overlay.Sequence.Len() > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text keeps contrast on light fills in both themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		ts := overlay.Sequence.Transitions()
		seen := make(map[automaton.StateID]bool)
		// Walks are connected, so every From is a visited state.
		for _, t := range ts {
			if !seen[t.From] {
				seen[t.From] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", nodeID(t.From))
			}
		}
		fmt.Fprintf(&sb, "    class %s current;\n", nodeID(ts[len(ts)-1].To))
	}

	return sb.String()
}

func nodeID(id automaton.StateID) string {
	return fmt.Sprintf("s%d", id)
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
