package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/formcheck/internal/cli"
	"github.com/aretw0/formcheck/internal/presentation/tui"
	"github.com/aretw0/formcheck/pkg/redact"
	"github.com/aretw0/formcheck/pkg/schema"
	"github.com/aretw0/formcheck/pkg/validation"
)

var errInvalidDocument = errors.New("document is invalid")

var validateCmd = &cobra.Command{
	Use:   "validate <schema> [document]",
	Short: "Validate a JSON or YAML document against a registered schema",
	Long: `Cleans and validates the document (read from stdin when omitted or "-")
and prints a per-field report. Exits with status 1 when the document is invalid.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) > 1 {
			path = args[1]
		}

		pick, _ := cmd.Flags().GetStringSlice("pick")
		autoValues, _ := cmd.Flags().GetBool("auto-values")
		asJSON, _ := cmd.Flags().GetBool("json")
		redactValues, _ := cmd.Flags().GetBool("redact")

		eng, closeEngine, err := openEngine(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer closeEngine()

		doc, err := cli.ReadDocument(path, cmd.InOrStdin())
		if err != nil {
			return err
		}

		opts := []validation.Option{validation.WithPick(pick...)}
		if autoValues {
			opts = append(opts, validation.WithCleanOptions(schema.DefaultCleanOptions()))
		}

		status, err := eng.Validate(args[0], doc, opts...)
		if err != nil {
			return err
		}

		report := status
		if redactValues {
			masker, err := redact.New()
			if err != nil {
				return err
			}
			report = masker.Status(status)
		}

		if err := cli.WriteReport(cmd.OutOrStdout(), args[0], report, asJSON, tui.RendererFor(os.Stdout)); err != nil {
			return err
		}
		if !status.IsValid {
			cmd.SilenceErrors = true
			return errInvalidDocument
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringSlice("pick", nil, "Validate only these keys")
	validateCmd.Flags().Bool("auto-values", false, "Apply schema defaults while cleaning")
	validateCmd.Flags().Bool("json", false, "Print the status as JSON")
	validateCmd.Flags().Bool("redact", true, "Mask card numbers, CVVs and secrets in the report")
	rootCmd.AddCommand(validateCmd)
}
