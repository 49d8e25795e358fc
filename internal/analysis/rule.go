package analysis

import (
	"oplint/internal/diag"
	"oplint/internal/optree"
	"oplint/internal/symbols"
	"oplint/internal/types"
)

// Rule is the contract a detection procedure implements. The engine owns
// registration and dispatch, so rules carry no dependency on any host
// event loop: they declare the node kinds they trigger on, the well-known
// types they require, and evaluate one node at a time.
//
// Evaluate must be a pure function of the snapshot except for reporting
// through the context: no shared mutable state, no I/O. The engine may
// call it concurrently for independent nodes.
type Rule interface {
	Descriptor() *diag.Descriptor
	// Kinds lists the node kinds the rule registers interest in.
	Kinds() []optree.Kind
	// RequiredTypes lists fully qualified metadata names the rule needs
	// resolved. If any is absent from the compilation the rule is inert
	// for the whole compilation: no partial matching.
	RequiredTypes() []string
	Evaluate(rc *Context, n *optree.Node)
}

// Context is the per-rule, per-compilation view handed to Evaluate:
// the snapshot, the resolved well-known types, and the report sink.
type Context struct {
	Comp      *Compilation
	wellKnown map[string]types.TypeID
	severity  diag.Severity
	override  bool
	reporter  diag.Reporter
}

// WellKnown returns the resolved id for a required metadata name.
// Names outside the rule's RequiredTypes yield NoTypeID.
func (rc *Context) WellKnown(fullName string) types.TypeID {
	return rc.wellKnown[fullName]
}

// BodyOf resolves a method's top-level operation block.
func (rc *Context) BodyOf(m symbols.MethodID) (*optree.Node, bool) {
	return rc.Comp.BodyOf(m)
}

// Report emits one confirmed violation, applying any configured severity
// override. A rule either completes and reports, or returns without
// reporting; nothing partial ever becomes visible.
func (rc *Context) Report(d diag.Diagnostic) {
	if rc.reporter == nil {
		return
	}
	if rc.override {
		d = d.WithSeverity(rc.severity)
	}
	rc.reporter.Report(d)
}
