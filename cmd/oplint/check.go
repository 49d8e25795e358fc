package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"oplint/internal/analysis"
	"oplint/internal/diag"
	"oplint/internal/diagfmt"
	"oplint/internal/rules"
	"oplint/internal/snapshot"
	"oplint/internal/source"
	"oplint/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <snapshot...>",
	Short: "Run rules over compilation snapshots",
	Long:  `Run every enabled rule over one or more compilation snapshot files and report confirmed violations`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|sarif|short)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers across snapshots (0=auto)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("warnings-as-errors", false, "exit non-zero when warnings are reported")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
}

// checkResult is one analyzed snapshot, kept in input order.
type checkResult struct {
	Path    string
	Bag     *diag.Bag
	FileSet *source.FileSet
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	warningsAsErrors, err := cmd.Flags().GetBool("warnings-as-errors")
	if err != nil {
		return fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	opts, err := engineOptions(cmd, cfg, 0)
	if err != nil {
		return err
	}

	engine := analysis.NewEngine(rules.All(), opts)
	results, err := checkSnapshots(cmd.Context(), engine, args, jobs)
	if err != nil {
		return err
	}

	exit := 0
	for _, r := range results {
		if r.Bag.HasErrors() || (warningsAsErrors && r.Bag.HasWarnings()) {
			exit = 1
			break
		}
	}

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	prettyOpts := diagfmt.PrettyOpts{
		Color:     useColor(colorFlag),
		PathMode:  pathMode,
		ShowNotes: withNotes,
	}
	jsonOpts := diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         pathMode,
		IncludeNotes:     withNotes,
	}
	meta := diagfmt.SarifMeta{
		ToolName:       "oplint",
		ToolVersion:    version.Version,
		InvocationArgs: os.Args,
	}

	switch format {
	case "pretty":
		for idx, r := range results {
			if idx > 0 {
				fmt.Fprintln(os.Stdout)
			}
			if len(results) > 1 {
				fmt.Fprintf(os.Stdout, "== %s ==\n", r.Path)
			}
			diagfmt.Pretty(os.Stdout, r.Bag, r.FileSet, prettyOpts)
		}
	case "short":
		for _, r := range results {
			output := diag.FormatStable(r.Bag.Items(), r.FileSet, withNotes)
			if output != "" {
				fmt.Fprintln(os.Stdout, output)
			}
		}
	case "json":
		output := make(map[string]diagfmt.DiagnosticsOutput, len(results))
		for _, r := range results {
			output[r.Path] = diagfmt.BuildDiagnosticsOutput(r.Bag, r.FileSet, jsonOpts)
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			return fmt.Errorf("failed to encode diagnostics output: %w", err)
		}
	case "sarif":
		descriptors := make([]*diag.Descriptor, 0, len(rules.All()))
		for _, r := range rules.All() {
			descriptors = append(descriptors, r.Descriptor())
		}
		for _, r := range results {
			if err := diagfmt.Sarif(os.Stdout, r.Bag, r.FileSet, descriptors, meta); err != nil {
				return fmt.Errorf("failed to format diagnostics: %w", err)
			}
		}
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if exit != 0 {
		// Suppress cobra usage output, the diagnostics are already printed
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}

// checkSnapshots analyzes every snapshot file concurrently. Results land
// in a slice indexed by input position, so output order matches the
// command line regardless of completion order.
func checkSnapshots(ctx context.Context, engine *analysis.Engine, paths []string, jobs int) ([]checkResult, error) {
	if jobs <= 0 {
		jobs = len(paths)
	}

	results := make([]checkResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("failed to open snapshot: %w", err)
			}
			defer f.Close()

			snap, err := snapshot.Read(f)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			comp, fs := snapshot.Materialize(snap)

			bag, err := engine.Run(gctx, comp)
			if err != nil {
				return fmt.Errorf("%s: analysis failed: %w", path, err)
			}
			results[i] = checkResult{Path: path, Bag: bag, FileSet: fs}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
