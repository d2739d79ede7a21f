package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/formcheck/internal/cli"
)

var registerCmd = &cobra.Command{
	Use:   "register <name> <file>",
	Short: "Compile a schema document and save it to the store",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, closeEngine, err := openEngine(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer closeEngine()

		doc, err := cli.ReadFile(args[1], cmd.InOrStdin())
		if err != nil {
			return err
		}
		if _, err := eng.Register(cmd.Context(), args[0], doc); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "registered %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
}
