package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jza"
	"github.com/aretw0/jza/pkg/corpus"
	"github.com/aretw0/jza/pkg/domain"
)

var trainCmd = &cobra.Command{
	Use:   "train [corpus-file]",
	Short: "Train the stored model on a corpus or on progressions",
	Long: `Loads the model, credits every accepted song (or section) of the corpus and every
--line progression, then saves the model back. Rejected sequences are reported but
do not abort training.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lines, _ := cmd.Flags().GetStringArray("line")
		bySection, _ := cmd.Flags().GetBool("by-section")
		wrap, _ := cmd.Flags().GetBool("wrap")
		minSection, _ := cmd.Flags().GetInt("min-section")
		if len(args) == 0 && len(lines) == 0 {
			return fmt.Errorf("nothing to train: pass a corpus file or --line")
		}

		a, err := newApp(cmd, true)
		if err != nil {
			return err
		}
		defer a.close()

		accepted := 0
		var rejected error
		if len(args) == 1 {
			c, err := corpus.Load(args[0], nil)
			if err != nil {
				return err
			}
			n, err := a.engine.TrainCorpus(c, jza.TrainOptions{BySection: bySection, MinSectionSize: minSection, WrapAround: wrap})
			accepted += n
			rejected = err
			a.logger.Info("corpus trained", "file", args[0], "charts", len(c.Charts), "accepted", n)
		}

		var sequences [][]domain.Symbol
		for _, line := range lines {
			syms, err := a.engine.ParseLine(line)
			if err != nil {
				return err
			}
			sequences = append(sequences, syms)
		}
		if len(sequences) > 0 {
			n, err := a.engine.Train(sequences...)
			accepted += n
			rejected = errors.Join(rejected, err)
		}

		if err := a.engine.Save(ctx(cmd)); err != nil {
			return err
		}
		if rejected != nil {
			a.logger.Warn("some sequences were rejected", "err", rejected)
			a.out.Failure("Rejected: " + rejected.Error())
		}
		a.out.Success(fmt.Sprintf("Trained %d sequences into model %q", accepted, a.cfg.Model))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(trainCmd)
	trainCmd.Flags().StringArrayP("line", "l", nil, "A progression to train on, e.g. \"IIm Vx IM\" (repeatable)")
	trainCmd.Flags().Bool("by-section", false, "Train on each section instead of each song")
	trainCmd.Flags().Bool("wrap", false, "Append the first chord of the next section (or of the song) to each list")
	trainCmd.Flags().Int("min-section", 0, "Skip sections shorter than this when training by section")
}
