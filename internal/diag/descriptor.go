package diag

import "fmt"

// RuleID is the stable identifier of one rule (e.g. "CA5359"). These ids
// are a compatibility surface with existing tooling and never change.
type RuleID string

// Descriptor is the immutable identity of one rule. Descriptors are
// constructed once at process start and passed explicitly to whoever
// reports against them; there is no global registry.
type Descriptor struct {
	ID               RuleID
	Title            string
	MessageFormat    string
	Description      string
	Category         string
	DefaultSeverity  Severity
	EnabledByDefault bool
	Tags             []string
}

// Message renders the descriptor's message format with args.
func (d *Descriptor) Message(args ...any) string {
	if len(args) == 0 {
		return d.MessageFormat
	}
	return fmt.Sprintf(d.MessageFormat, args...)
}

// HasTag reports whether the descriptor carries the given classification tag.
func (d *Descriptor) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
