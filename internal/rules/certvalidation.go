package rules

import (
	"iter"

	"oplint/internal/analysis"
	"oplint/internal/diag"
	"oplint/internal/optree"
	"oplint/internal/symbols"
	"oplint/internal/types"
)

// CertValidation flags delegate creations that install a remote
// certificate validation callback unconditionally returning true, which
// disables TLS certificate validation (rule CA5359).
type CertValidation struct {
	desc *diag.Descriptor
}

// NewCertValidation constructs the rule with its immutable descriptor.
func NewCertValidation() *CertValidation {
	return &CertValidation{
		desc: &diag.Descriptor{
			ID:               "CA5359",
			Title:            "Do not disable certificate validation",
			MessageFormat:    "the certificate validation callback always returns true, disabling certificate validation",
			Description:      "A certificate validation callback that unconditionally returns true accepts any server certificate, leaving the connection open to man-in-the-middle attacks.",
			Category:         "Security",
			DefaultSeverity:  diag.SevWarning,
			EnabledByDefault: true,
			Tags:             []string{"CWE-295"},
		},
	}
}

func (r *CertValidation) Descriptor() *diag.Descriptor {
	return r.desc
}

func (r *CertValidation) Kinds() []optree.Kind {
	return []optree.Kind{optree.KindDelegateCreation}
}

func (r *CertValidation) RequiredTypes() []string {
	return []string{
		typeCertCallback,
		typeObject,
		typeX509Certificate,
		typeX509Chain,
		typeSslPolicyErrors,
	}
}

// Evaluate triggers on delegate creations whose declared type is the
// validation callback. The delegate's target must match the callback
// signature exactly; only then is its body examined.
func (r *CertValidation) Evaluate(rc *analysis.Context, n *optree.Node) {
	if n.Kind != optree.KindDelegateCreation {
		return
	}
	if !rc.Comp.Types.Equal(n.Type, rc.WellKnown(typeCertCallback)) {
		return
	}
	d, ok := n.Data.(optree.DelegateCreationData)
	if !ok || d.Target == nil {
		return
	}

	var body iter.Seq[*optree.Node]
	switch d.Target.Kind {
	case optree.KindAnonymousFunction:
		fn, ok := d.Target.Data.(optree.AnonymousFunctionData)
		if !ok {
			return
		}
		if !r.matchesCallbackSignature(rc, rc.Comp.Symbols.Method(fn.Method)) {
			return
		}
		// An inline function is matched over its own subtree.
		body = optree.Descendants(d.Target)
	case optree.KindMethodReference:
		ref, ok := d.Target.Data.(optree.MethodReferenceData)
		if !ok {
			return
		}
		if !r.matchesCallbackSignature(rc, rc.Comp.Symbols.Method(ref.Method)) {
			return
		}
		// A method obtained by symbol alone may carry compiler-inserted
		// wrappers; missing bodies are not violations.
		block, ok := rc.BodyOf(ref.Method)
		if !ok {
			return
		}
		body = optree.WithoutImplicit(optree.Descendants(block))
	default:
		return
	}

	if alwaysReturnsTrue(body) {
		rc.Report(diag.New(r.desc, n.Span))
	}
}

// matchesCallbackSignature requires a boolean return and exactly four
// parameters typed (object, certificate, chain, policy errors) in order.
// Delegate types matched by coincidence fail here and never reach the
// body scan.
func (r *CertValidation) matchesCallbackSignature(rc *analysis.Context, m *symbols.MethodSymbol) bool {
	if m == nil {
		return false
	}
	if !rc.Comp.Types.IsBool(m.Result) {
		return false
	}
	if len(m.Params) != 4 {
		return false
	}
	want := [4]types.TypeID{
		rc.WellKnown(typeObject),
		rc.WellKnown(typeX509Certificate),
		rc.WellKnown(typeX509Chain),
		rc.WellKnown(typeSslPolicyErrors),
	}
	for i, p := range m.Params {
		if !rc.Comp.Types.Equal(p.Type, want[i]) {
			return false
		}
	}
	return true
}

// alwaysReturnsTrue scans every return in the body. Every return node is
// visited before concluding, with one exception: a value-less return can
// never satisfy the predicate, so it short-circuits to false. A body
// with no returns at all is rejected too: the predicate wants at least
// one explicit constant true as evidence of intent, and only literal
// compile-time constants count.
func alwaysReturnsTrue(body iter.Seq[*optree.Node]) bool {
	sawReturn := false
	allTrue := true
	for n := range body {
		if n.Kind != optree.KindReturn {
			continue
		}
		sawReturn = true
		ret, ok := n.Data.(optree.ReturnData)
		if !ok || ret.Value == nil {
			return false
		}
		if !ret.Value.Const.IsTrue() {
			allTrue = false
		}
	}
	return sawReturn && allTrue
}
