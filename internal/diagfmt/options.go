// Package diagfmt renders sorted diagnostic bags for the CLI: a pretty
// human-readable form with source context, a machine-readable JSON form
// and SARIF 2.1.0 for code-scanning upload.
package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto keeps the path as the snapshot recorded it.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // add line/col to every location
	PathMode         PathMode
	Max              int // output truncation, the bag itself is untouched
	IncludeNotes     bool
}

// SarifMeta provides run metadata for SARIF output.
type SarifMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
}
