package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"oplint/internal/diag"
	"oplint/internal/source"
)

// Pretty renders diagnostics in a human-readable form. It walks
// bag.Items() as-is, so the caller sorts the bag first. Every entry
// prints as
//
//	<path>:<line>:<col>: <SEVERITY> <RULE>: <message>
//
// followed by the offending source line with a caret underline, and the
// notes in the same layout indented below.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeEntry(w, fs, opts, d.Severity.String(), string(d.Rule), d.Message, d.Primary, "")
		if opts.ShowNotes {
			for _, note := range d.Notes {
				writeEntry(w, fs, opts, "note", "", note.Msg, note.Span, "  ")
			}
		}
	}
}

func writeEntry(w io.Writer, fs *source.FileSet, opts PrettyOpts, label, rule, msg string, span source.Span, indent string) {
	start, _ := fs.Resolve(span)
	head := label
	if rule != "" {
		head += " " + rule
	}
	if opts.Color {
		head = severityColor(label).Sprint(head)
	}
	fmt.Fprintf(w, "%s%s:%d:%d: %s: %s\n", indent, formatPath(fs, span.File, opts.PathMode), start.Line, start.Col, head, msg)
	writeContext(w, fs, span, opts, indent)
}

// writeContext prints the first source line the span covers and a
// ^~~~ underline beneath it. Spans pointing outside the file print
// nothing extra.
func writeContext(w io.Writer, fs *source.FileSet, span source.Span, opts PrettyOpts, indent string) {
	f := fs.Get(span.File)
	if f == nil || span.Empty() {
		return
	}
	start, end := fs.Resolve(span)
	line := f.GetLine(start.Line)
	if line == "" || int(start.Col)-1 > len(line) {
		return
	}
	fmt.Fprintf(w, "%s  %s\n", indent, line)

	prefixWidth := runewidth.StringWidth(line[:min(int(start.Col)-1, len(line))])
	underlineEnd := len(line)
	if end.Line == start.Line {
		underlineEnd = min(int(end.Col)-1, len(line))
	}
	underlineWidth := runewidth.StringWidth(line[min(int(start.Col)-1, len(line)):underlineEnd])
	if underlineWidth < 1 {
		underlineWidth = 1
	}
	underline := "^" + strings.Repeat("~", underlineWidth-1)
	if opts.Color {
		underline = color.New(color.FgHiGreen, color.Bold).Sprint(underline)
	}
	fmt.Fprintf(w, "%s  %s%s\n", indent, strings.Repeat(" ", prefixWidth), underline)
}

func severityColor(label string) *color.Color {
	switch label {
	case "ERROR":
		return color.New(color.FgRed, color.Bold)
	case "WARNING":
		return color.New(color.FgYellow, color.Bold)
	case "INFO":
		return color.New(color.FgCyan)
	default:
		return color.New(color.FgHiBlack)
	}
}

func formatPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	f := fs.Get(id)
	if f == nil {
		return "<unknown>"
	}
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.Path
	}
}
