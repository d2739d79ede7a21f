package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/formcheck/internal/cli"
	"github.com/aretw0/formcheck/internal/presentation/tui"
)

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Check payment card fields",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		number, _ := cmd.Flags().GetString("number")
		month, _ := cmd.Flags().GetString("month")
		year, _ := cmd.Flags().GetString("year")
		cvv, _ := cmd.Flags().GetString("cvv")
		asJSON, _ := cmd.Flags().GetBool("json")

		checks := cli.CheckCard(number, month, year, cvv)
		if len(checks) == 0 {
			return errors.New("nothing to check: pass at least one of --number, --month, --year, --cvv")
		}

		out := cmd.OutOrStdout()
		valid := true
		for _, c := range checks {
			valid = valid && c.Valid
		}
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(checks); err != nil {
				return err
			}
		} else {
			for _, c := range checks {
				fmt.Fprintf(out, "%-7s %-20s %s\n", c.Field, c.Value, tui.Verdict(c.Valid))
			}
		}
		if !valid {
			cmd.SilenceErrors = true
			return errInvalidDocument
		}
		return nil
	},
}

func init() {
	cardCmd.Flags().String("number", "", "Card number")
	cardCmd.Flags().String("month", "", "Expiry month")
	cardCmd.Flags().String("year", "", "Expiry year")
	cardCmd.Flags().String("cvv", "", "Card verification value")
	cardCmd.Flags().Bool("json", false, "Print the results as JSON")
	rootCmd.AddCommand(cardCmd)
}
