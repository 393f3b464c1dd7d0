package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/jza/pkg/corpus"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <symbols>...",
	Short: "List every functional reading of a progression",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		corpusPath, _ := cmd.Flags().GetString("corpus")

		a, err := newApp(cmd, true)
		if err != nil {
			return err
		}
		defer a.close()

		syms, err := a.symbols(args)
		if err != nil {
			return err
		}

		paths := a.engine.Analyze(syms)
		if len(paths) == 0 {
			a.out.Failure("No reading found")
		}
		w := cmd.OutOrStdout()
		for i, path := range paths {
			fmt.Fprintf(w, "%d. %s\n", i+1, strings.Join(path, " → "))
		}

		if corpusPath != "" {
			c, err := corpus.Load(corpusPath, nil)
			if err != nil {
				return err
			}
			titles := c.TitlesWithSequence(syms)
			fmt.Fprintf(w, "\nFound in %d of %d charts\n", len(titles), len(c.Charts))
			for _, t := range titles {
				fmt.Fprintln(w, "- "+t)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().String("corpus", "", "Also list the charts of this corpus that contain the progression")
}
