package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <symbols>...",
	Short: "Check whether the model accepts a progression",
	Long:  `Reads the progression through the model and reports the first symbol at which no state is reachable.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, true)
		if err != nil {
			return err
		}
		defer a.close()

		syms, err := a.symbols(args)
		if err != nil {
			return err
		}

		report := a.engine.Diagnose(syms)
		if report == nil {
			a.out.Success("Progression is valid! ✅")
			return nil
		}

		previous := report.PreviousStates
		if report.InvalidEndState {
			a.out.Failure(fmt.Sprintf("Progression does not end on an end state (reached: %s)", strings.Join(previous, ", ")))
		} else {
			a.out.Failure(fmt.Sprintf("No path reaches %s at index %d (from: %s)", report.Symbol, report.Index, strings.Join(previous, ", ")))
		}
		return fmt.Errorf("progression rejected")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
