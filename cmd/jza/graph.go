package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jza/internal/presentation/graph"
	"github.com/aretw0/jza/pkg/automaton"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [symbols]...",
	Short: "Export the model as a Mermaid flowchart",
	Long: `Outputs a Mermaid diagram (graph LR) of the model. When a progression is given its
walk is highlighted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		trained, _ := cmd.Flags().GetBool("trained")
		probabilities, _ := cmd.Flags().GetBool("probabilities")

		a, err := newApp(cmd, true)
		if err != nil {
			return err
		}
		defer a.close()

		var overlay *graph.Overlay
		if len(args) > 0 {
			syms, err := a.symbols(args)
			if err != nil {
				return err
			}
			seq, err := a.engine.Realize(syms)
			if err != nil {
				return err
			}
			overlay = &graph.Overlay{Sequence: seq}
		}

		opts := graph.Options{TrainedOnly: trained, Probabilities: probabilities}
		return a.engine.Read(func(m *automaton.Automaton) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(m, opts, overlay))
			return err
		})
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("trained", false, "Only draw transitions with a positive count")
	graphCmd.Flags().Bool("probabilities", false, "Label edges with their probability")
}
