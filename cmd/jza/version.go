package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/jza"
	"github.com/aretw0/jza/internal/presentation/tui"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of jza",
	Run: func(cmd *cobra.Command, args []string) {
		if banner, _ := cmd.Flags().GetBool("banner"); banner {
			tui.PrintBanner(cmd.OutOrStdout())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "jza version %s\n", strings.TrimSpace(jza.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().Bool("banner", false, "Print the banner first")
}
