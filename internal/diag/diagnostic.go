package diag

import (
	"oplint/internal/source"
)

// Note attaches an additional location to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one confirmed rule violation. It is created once and
// never mutated afterwards; the host consumes it for reporting.
type Diagnostic struct {
	Rule     RuleID
	Severity Severity
	Category string
	Message  string
	Primary  source.Span
	Notes    []Note
}

// New constructs a diagnostic from a descriptor, applying the descriptor's
// severity and category.
func New(d *Descriptor, primary source.Span, args ...any) Diagnostic {
	return Diagnostic{
		Rule:     d.ID,
		Severity: d.DefaultSeverity,
		Category: d.Category,
		Message:  d.Message(args...),
		Primary:  primary,
	}
}

// WithSeverity returns a copy with the severity overridden.
func (d Diagnostic) WithSeverity(sev Severity) Diagnostic {
	d.Severity = sev
	return d
}

// WithNote returns a copy carrying an extra location note.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	notes := make([]Note, len(d.Notes), len(d.Notes)+1)
	copy(notes, d.Notes)
	d.Notes = append(notes, Note{Span: sp, Msg: msg})
	return d
}
