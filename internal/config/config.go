// Package config loads the analyzer configuration from an oplint.toml
// file: per-rule enablement, severity overrides and engine limits.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"oplint/internal/analysis"
	"oplint/internal/diag"
)

// FileName is the canonical configuration file name.
const FileName = "oplint.toml"

// Config mirrors the TOML document.
type Config struct {
	Analysis Analysis          `toml:"analysis"`
	Rules    map[string]bool   `toml:"rules"`
	Severity map[string]string `toml:"severity"`
}

// Analysis holds engine limits.
type Analysis struct {
	MaxDiagnostics int `toml:"max_diagnostics"`
	Jobs           int `toml:"jobs"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Analysis: Analysis{MaxDiagnostics: 1000},
		Rules:    map[string]bool{},
		Severity: map[string]string{},
	}
}

// Load reads and validates a configuration file.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Find walks from dir upwards looking for an oplint.toml.
func Find(dir string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func (c Config) validate() error {
	if c.Analysis.MaxDiagnostics < 0 {
		return fmt.Errorf("analysis.max_diagnostics must not be negative")
	}
	if c.Analysis.Jobs < 0 {
		return fmt.Errorf("analysis.jobs must not be negative")
	}
	for rule, sev := range c.Severity {
		if _, ok := diag.ParseSeverity(sev); !ok {
			return fmt.Errorf("severity.%s: unknown severity %q (info|warning|error)", rule, sev)
		}
	}
	return nil
}

// EngineOptions converts the configuration into engine options.
func (c Config) EngineOptions() analysis.Options {
	opts := analysis.Options{
		MaxDiagnostics: c.Analysis.MaxDiagnostics,
		Jobs:           c.Analysis.Jobs,
	}
	if len(c.Rules) > 0 {
		opts.Enabled = make(map[diag.RuleID]bool, len(c.Rules))
		for rule, enabled := range c.Rules {
			opts.Enabled[diag.RuleID(rule)] = enabled
		}
	}
	if len(c.Severity) > 0 {
		opts.Severity = make(map[diag.RuleID]diag.Severity, len(c.Severity))
		for rule, sev := range c.Severity {
			parsed, _ := diag.ParseSeverity(sev)
			opts.Severity[diag.RuleID(rule)] = parsed
		}
	}
	return opts
}
