package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"oplint/internal/analysis"
	"oplint/internal/config"
)

// loadConfig resolves the effective configuration: an explicit --config
// path wins, otherwise the nearest oplint.toml above the working
// directory, otherwise the defaults.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return config.Default(), nil
	}
	if found, ok := config.Find(wd); ok {
		return config.Load(found)
	}
	return config.Default(), nil
}

// engineOptions folds CLI overrides over the configuration.
func engineOptions(cmd *cobra.Command, cfg config.Config, jobs int) (analysis.Options, error) {
	opts := cfg.EngineOptions()
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return analysis.Options{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if maxDiagnostics > 0 {
		opts.MaxDiagnostics = maxDiagnostics
	}
	if jobs > 0 {
		opts.Jobs = jobs
	}
	return opts, nil
}
