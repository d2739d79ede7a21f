package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "List the registered schemas",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closeEngine, err := openEngine(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer closeEngine()

		for _, name := range eng.Registry().Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemasCmd)
}
