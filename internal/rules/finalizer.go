package rules

import (
	"oplint/internal/analysis"
	"oplint/internal/diag"
	"oplint/internal/optree"
	"oplint/internal/symbols"
)

// Finalizer flags disposable reference types that store a native handle
// obtained from a native-interop call into an instance field while
// declaring no finalizer (rule CA2216). The handle would leak if Dispose
// is never called.
type Finalizer struct {
	desc *diag.Descriptor
}

// NewFinalizer constructs the rule with its immutable descriptor.
func NewFinalizer() *Finalizer {
	return &Finalizer{
		desc: &diag.Descriptor{
			ID:               "CA2216",
			Title:            "Disposable types should declare finalizer",
			MessageFormat:    "type %s stores a native handle but declares no finalizer",
			Description:      "A type that implements the disposal pattern and owns a native resource should declare a finalizer as a safety net for the case where Dispose is never called.",
			Category:         "Usage",
			DefaultSeverity:  diag.SevWarning,
			EnabledByDefault: true,
		},
	}
}

func (r *Finalizer) Descriptor() *diag.Descriptor {
	return r.desc
}

func (r *Finalizer) Kinds() []optree.Kind {
	return []optree.Kind{optree.KindSimpleAssignment}
}

func (r *Finalizer) RequiredTypes() []string {
	return []string{
		typeIntPtr,
		typeUIntPtr,
		typeHandleRef,
		typeIDisposable,
	}
}

// Evaluate is a pure structural/type check at the assignment site; no
// body traversal is needed. Malformed assignments (unresolved targets in
// erroneous code) are skipped silently.
func (r *Finalizer) Evaluate(rc *analysis.Context, n *optree.Node) {
	if n.Kind != optree.KindSimpleAssignment {
		return
	}
	d, ok := n.Data.(optree.AssignmentData)
	if !ok || d.Target == nil || d.Value == nil {
		return
	}

	// Target must be a non-static instance field of a native handle type.
	if d.Target.Kind != optree.KindFieldReference {
		return
	}
	ref, ok := d.Target.Data.(optree.FieldReferenceData)
	if !ok {
		return
	}
	field := rc.Comp.Symbols.Field(ref.Field)
	if field == nil || field.IsStatic {
		return
	}
	if !r.isNativeHandleType(rc, field) {
		return
	}

	// The containing type must be a disposable reference type that has
	// not already declared a finalizer.
	owner := rc.Comp.Types.Get(field.Containing)
	if owner == nil || owner.IsValueType {
		return
	}
	if !rc.Comp.Types.Implements(owner.ID, rc.WellKnown(typeIDisposable)) {
		return
	}
	if owner.HasFinalizer {
		return
	}

	// Only fields populated directly from native resource-acquisition
	// calls are candidates, not arbitrary assignments.
	if d.Value.Kind != optree.KindInvocation {
		return
	}
	inv, ok := d.Value.Data.(optree.InvocationData)
	if !ok || !rc.Comp.Symbols.InteropMarker(inv.Method) {
		return
	}

	rc.Report(diag.New(r.desc, owner.Span, owner.FullName).
		WithNote(n.Span, "native handle assigned here"))
}

// isNativeHandleType matches the fixed set of native handle types: raw
// and unsigned pointer-sized handles plus the OS handle wrapper.
func (r *Finalizer) isNativeHandleType(rc *analysis.Context, field *symbols.FieldSymbol) bool {
	tt := rc.Comp.Types
	return tt.Equal(field.Type, rc.WellKnown(typeIntPtr)) ||
		tt.Equal(field.Type, rc.WellKnown(typeUIntPtr)) ||
		tt.Equal(field.Type, rc.WellKnown(typeHandleRef))
}
