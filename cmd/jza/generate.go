package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/jza"
	"github.com/aretw0/jza/internal/presentation/tui"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Sample a new progression from the trained model",
	Long: `Samples a walk that opens with --start and closes with --end. With --length the walk
has exactly that many chords; otherwise it runs until it reaches --end. With --count
the walk is sampled that many times and the most common results are tabulated.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		length, _ := cmd.Flags().GetInt("length")
		start, _ := cmd.Flags().GetString("start")
		end, _ := cmd.Flags().GetString("end")
		key, _ := cmd.Flags().GetString("key")
		count, _ := cmd.Flags().GetInt("count")
		verbose, _ := cmd.Flags().GetBool("verbose")

		a, err := newApp(cmd, true)
		if err != nil {
			return err
		}
		defer a.close()

		ends, err := a.engine.Parse(start, end)
		if err != nil {
			return err
		}

		if count > 0 {
			counts := a.engine.MostCommon(ends[0], ends[1], count)
			return a.out.Markdown(tui.CountTable(fmt.Sprintf("%d walks from %s to %s", count, ends[0], ends[1]), counts))
		}

		seq, err := a.engine.Generate(jza.GenerateRequest{Length: length, Start: ends[0], End: ends[1]})
		if err != nil {
			return err
		}
		a.out.Sequence(seq, verbose)
		if key != "" {
			chords, err := seq.Chords(key)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(chords, " | "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().IntP("length", "n", 0, "Number of chords (0 walks until --end)")
	generateCmd.Flags().String("start", "IM", "First symbol")
	generateCmd.Flags().String("end", "IM", "Last symbol")
	generateCmd.Flags().StringP("key", "k", "", "Also render the progression as chords in this key, e.g. Bb")
	generateCmd.Flags().Int("count", 0, "Sample this many walks and tabulate the most common")
	generateCmd.Flags().BoolP("verbose", "v", false, "Show the state reached by every chord")
}
