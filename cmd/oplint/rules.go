package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"oplint/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the shipped rules and their effective state",
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

type ruleInfo struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Severity    string   `json:"severity"`
	Enabled     bool     `json:"enabled"`
	Tags        []string `json:"tags,omitempty"`
	Description string   `json:"description,omitempty"`
}

func runRules(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts := cfg.EngineOptions()

	infos := make([]ruleInfo, 0, len(rules.All()))
	for _, r := range rules.All() {
		desc := r.Descriptor()

		enabled := desc.EnabledByDefault
		if v, ok := opts.Enabled[desc.ID]; ok {
			enabled = v
		}
		severity := desc.DefaultSeverity
		if sev, ok := opts.Severity[desc.ID]; ok {
			severity = sev
		}

		infos = append(infos, ruleInfo{
			ID:          string(desc.ID),
			Title:       desc.Title,
			Category:    desc.Category,
			Severity:    severity.String(),
			Enabled:     enabled,
			Tags:        desc.Tags,
			Description: desc.Description,
		})
	}

	switch format {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(infos)
	case "pretty":
		renderRulesPretty(infos, useColor(colorFlag))
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func renderRulesPretty(infos []ruleInfo, colorize bool) {
	idColor := color.New(color.FgCyan, color.Bold)
	offColor := color.New(color.FgHiBlack)
	for _, info := range infos {
		id := info.ID
		state := "enabled"
		if !info.Enabled {
			state = "disabled"
		}
		if colorize {
			id = idColor.Sprint(id)
			if !info.Enabled {
				state = offColor.Sprint(state)
			}
		}
		fmt.Fprintf(os.Stdout, "%s [%s, %s, %s] %s\n", id, info.Category, strings.ToLower(info.Severity), state, info.Title)
		if len(info.Tags) > 0 {
			fmt.Fprintf(os.Stdout, "  tags: %s\n", strings.Join(info.Tags, ", "))
		}
	}
}
