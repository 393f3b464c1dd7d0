package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/jza/internal/presentation/tui"
	"github.com/aretw0/jza/pkg/automaton"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the stored model",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, true)
		if err != nil {
			return err
		}
		defer a.close()

		st := a.engine.Stats()
		var sb strings.Builder
		fmt.Fprintf(&sb, "# Model %s\n\n", a.cfg.Model)
		sb.WriteString("| | |\n|---|---:|\n")
		fmt.Fprintf(&sb, "| States | %d |\n| Transitions | %d |\n| Trained transitions | %d |\n| Total count | %.2f |\n\n",
			st.States, st.Transitions, st.Trained, st.TotalCount)
		return a.out.Markdown(sb.String())
	},
}

var probabilitiesCmd = &cobra.Command{
	Use:   "probabilities [symbol]",
	Short: "Show trained probability distributions",
	Long: `With a symbol, shows which states the symbol leads to. With --pattern, shows the
transitions leaving (or, with --arriving, the symbols entering) every state whose
name matches the regular expression.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern, _ := cmd.Flags().GetString("pattern")
		arriving, _ := cmd.Flags().GetBool("arriving")
		groupBy, _ := cmd.Flags().GetString("by")
		if (len(args) == 0) == (pattern == "") {
			return fmt.Errorf("pass either a symbol or --pattern")
		}

		a, err := newApp(cmd, true)
		if err != nil {
			return err
		}
		defer a.close()

		if len(args) == 1 {
			syms, err := a.engine.Parse(args[0])
			if err != nil {
				return err
			}
			d := a.engine.StateProbabilities(syms[0])
			return a.out.Markdown(tui.DistributionTable("States reached by "+syms[0].String(), "State", d))
		}

		if arriving {
			d, err := a.engine.ArrivalProbabilities(pattern)
			if err != nil {
				return err
			}
			return a.out.Markdown(tui.DistributionTable("Symbols arriving at /"+pattern+"/", "Symbol", d))
		}

		key, header := automaton.KeySymbolState, "Transition"
		switch groupBy {
		case "symbol":
			key, header = automaton.KeySymbol, "Symbol"
		case "state":
			key, header = automaton.KeyState, "State"
		case "transition", "":
		default:
			return fmt.Errorf("unknown grouping %q", groupBy)
		}
		d, err := a.engine.PatternProbabilities(pattern, key)
		if err != nil {
			return err
		}
		return a.out.Markdown(tui.DistributionTable("Leaving /"+pattern+"/", header, d))
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(probabilitiesCmd)
	probabilitiesCmd.Flags().StringP("pattern", "p", "", "Regular expression over state names, e.g. \"^Dominant\"")
	probabilitiesCmd.Flags().Bool("arriving", false, "With --pattern, show the symbols entering the states")
	probabilitiesCmd.Flags().String("by", "transition", "With --pattern, group by symbol, state or transition")
}
