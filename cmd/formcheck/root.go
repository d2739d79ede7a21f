package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/formcheck"
	"github.com/aretw0/formcheck/internal/cli"
	"github.com/aretw0/formcheck/internal/config"
	"github.com/aretw0/formcheck/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "formcheck",
	Short: "formcheck validates documents against registered schemas",
	Long: `formcheck keeps a registry of named schemas (OpenAPI, JSON Schema or a
compact type map) and validates JSON or YAML documents against them.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags override the FORMCHECK_* environment.
	rootCmd.PersistentFlags().String("dir", "", "Directory holding schema documents (file store)")
	rootCmd.PersistentFlags().String("store", "", "Schema store: file, redis or memory")
	rootCmd.PersistentFlags().String("dialect", "", "Schema dialect: openapi, jsonschema or typemap")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
}

// settings merges the environment with the flags set on cmd.
func settings(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}

	flags := cmd.Flags()
	override := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	override("dir", &cfg.SchemaDir)
	override("store", &cfg.Store)
	override("dialect", &cfg.Dialect)
	override("log-level", &cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logging.New(level), nil
}

// openEngine builds the engine for cmd. The caller must call the returned
// close function.
func openEngine(ctx context.Context, cmd *cobra.Command) (*formcheck.Engine, func() error, error) {
	cfg, logger, err := settings(cmd)
	if err != nil {
		return nil, nil, err
	}
	return cli.NewEngine(ctx, cfg, logger)
}
