package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jza"
	"github.com/aretw0/jza/pkg/builder"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build an untrained model and save it to the store",
	Long: `Builds the chord-function topology from the selected operations and saves it
under the model name, replacing any stored model of that name.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ops, _ := cmd.Flags().GetStringSlice("ops")

		a, err := newApp(cmd, false, jza.WithOperations(ops...))
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.engine.Save(ctx(cmd)); err != nil {
			return err
		}
		st := a.engine.Stats()
		a.out.Success(fmt.Sprintf("Built model %q: %d states, %d transitions", a.cfg.Model, st.States, st.Transitions))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringSlice("ops", builder.DefaultOrder, "Builder operations to apply, in order")
}
