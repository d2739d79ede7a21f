package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/formcheck"
	"github.com/aretw0/formcheck/internal/presentation/tui"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of formcheck",
	Run: func(cmd *cobra.Command, args []string) {
		if tui.IsTerminal(os.Stdout) {
			tui.PrintBanner(cmd.OutOrStdout(), formcheck.Version)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "formcheck version %s\n", formcheck.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
