package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"oplint/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "oplint",
	Short: "Operation-tree rule engine",
	Long:  `oplint runs security and usage rules over compilation snapshots exported by a host compiler`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("config", "", "path to oplint.toml (default: search upwards from cwd)")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics to collect (0=config or 1000)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether the file is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(colorFlag string) bool {
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))
}
