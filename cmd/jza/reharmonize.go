package main

import (
	"github.com/spf13/cobra"
)

var reharmonizeCmd = &cobra.Command{
	Use:   "reharmonize <symbols>...",
	Short: "Replace the phrase around one chord of a progression",
	Long: `Reads the progression as a walk through the model and regenerates the phrase that
contains the chord at --index, keeping the chords on either side.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, _ := cmd.Flags().GetInt("index")
		verbose, _ := cmd.Flags().GetBool("verbose")

		a, err := newApp(cmd, true)
		if err != nil {
			return err
		}
		defer a.close()

		syms, err := a.symbols(args)
		if err != nil {
			return err
		}
		seq, err := a.engine.Reharmonize(syms, index)
		if err != nil {
			return err
		}
		a.out.Sequence(seq, verbose)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reharmonizeCmd)
	reharmonizeCmd.Flags().IntP("index", "i", 0, "Index of the chord to reharmonize")
	reharmonizeCmd.Flags().BoolP("verbose", "v", false, "Show the state reached by every chord")
}
