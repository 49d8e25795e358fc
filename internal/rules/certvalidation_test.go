package rules

import (
	"testing"

	"oplint/internal/analysis"
	"oplint/internal/optree"
	"oplint/internal/symbols"
	"oplint/internal/types"
)

func TestCertValidationAlwaysTrueLambda(t *testing.T) {
	f := newFixture()
	method := f.callbackMethod("<lambda>")
	delegate := f.lambdaDelegate(method, f.returnTrue())

	bag := f.run(t, f.block(delegate))

	if got := countRule(bag, "CA5359"); got != 1 {
		t.Fatalf("CA5359 count = %d, want 1", got)
	}
	d := bag.Items()[0]
	if d.Primary != delegate.Span {
		t.Fatalf("diagnostic at %v, want the delegate-creation span %v", d.Primary, delegate.Span)
	}
}

func TestCertValidationMultipleTrueReturns(t *testing.T) {
	f := newFixture()
	method := f.callbackMethod("<lambda>")
	delegate := f.lambdaDelegate(method, f.returnTrue(), f.returnTrue())

	bag := f.run(t, f.block(delegate))
	if got := countRule(bag, "CA5359"); got != 1 {
		t.Fatalf("CA5359 count = %d, want exactly 1 per creation site", got)
	}
}

func TestCertValidationMixedReturnsDoNotFire(t *testing.T) {
	cases := []struct {
		name  string
		stmts func(f *fixture) []*optree.Node
	}{
		{"true then unreachable false", func(f *fixture) []*optree.Node {
			return []*optree.Node{f.returnTrue(), f.returnFalse()}
		}},
		{"only false", func(f *fixture) []*optree.Node {
			return []*optree.Node{f.returnFalse()}
		}},
		{"non-constant return", func(f *fixture) []*optree.Node {
			return []*optree.Node{f.returnNonConstant()}
		}},
		{"true then non-constant", func(f *fixture) []*optree.Node {
			return []*optree.Node{f.returnTrue(), f.returnNonConstant()}
		}},
		{"bare return", func(f *fixture) []*optree.Node {
			return []*optree.Node{{Kind: optree.KindReturn, Data: optree.ReturnData{}}}
		}},
		{"no returns at all", func(f *fixture) []*optree.Node {
			throw := &optree.Node{Kind: optree.KindThrow, Data: optree.ThrowData{}}
			return []*optree.Node{throw}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			method := f.callbackMethod("<lambda>")
			delegate := f.lambdaDelegate(method, tc.stmts(f)...)
			bag := f.run(t, f.block(delegate))
			if got := countRule(bag, "CA5359"); got != 0 {
				t.Fatalf("CA5359 count = %d, want 0", got)
			}
		})
	}
}

func TestCertValidationSignatureMismatchNeverFires(t *testing.T) {
	f := newFixture()

	threeParams := f.comp.Symbols.AddMethod(symbols.MethodSymbol{
		Name: "ThreeParams",
		Params: []symbols.Param{
			{Type: f.object}, {Type: f.cert}, {Type: f.chain},
		},
		Result: f.boolean,
	})
	wrongOrder := f.comp.Symbols.AddMethod(symbols.MethodSymbol{
		Name: "WrongOrder",
		Params: []symbols.Param{
			{Type: f.cert}, {Type: f.object}, {Type: f.chain}, {Type: f.policy},
		},
		Result: f.boolean,
	})
	nonBool := f.comp.Symbols.AddMethod(symbols.MethodSymbol{
		Name: "NonBool",
		Params: []symbols.Param{
			{Type: f.object}, {Type: f.cert}, {Type: f.chain}, {Type: f.policy},
		},
		Result: f.object,
	})

	var roots []*optree.Node
	for _, m := range []symbols.MethodID{threeParams, wrongOrder, nonBool} {
		roots = append(roots, f.block(f.lambdaDelegate(m, f.returnTrue())))
	}
	bag := f.run(t, roots...)
	if got := countRule(bag, "CA5359"); got != 0 {
		t.Fatalf("CA5359 count = %d, want 0 for signature mismatches", got)
	}
}

func TestCertValidationWrongDelegateTypeIgnored(t *testing.T) {
	f := newFixture()
	method := f.callbackMethod("<lambda>")
	delegate := f.lambdaDelegate(method, f.returnTrue())
	// Same structure, but the declared delegate type is not the callback.
	delegate.Type = f.object

	bag := f.run(t, f.block(delegate))
	if got := countRule(bag, "CA5359"); got != 0 {
		t.Fatalf("CA5359 count = %d, want 0", got)
	}
}

func TestCertValidationMethodReference(t *testing.T) {
	f := newFixture()
	method := f.callbackMethod("AcceptAll")
	f.comp.SetBody(method, f.block(f.returnTrue()))
	delegate := f.methodRefDelegate(method)

	bag := f.run(t, f.block(delegate))
	if got := countRule(bag, "CA5359"); got != 1 {
		t.Fatalf("CA5359 count = %d, want 1", got)
	}
}

func TestCertValidationMethodReferenceWithoutBody(t *testing.T) {
	f := newFixture()
	method := f.callbackMethod("ExternalValidator") // no body registered
	delegate := f.methodRefDelegate(method)

	bag := f.run(t, f.block(delegate))
	if got := countRule(bag, "CA5359"); got != 0 {
		t.Fatalf("CA5359 count = %d, want 0 when the body is unavailable", got)
	}
}

func TestCertValidationImplicitReturnsFiltered(t *testing.T) {
	// A body obtained by symbol carries a compiler-inserted `return false`
	// wrapper; filtering synthesized nodes must keep the rule firing on
	// the user-written `return true`.
	f := newFixture()
	method := f.callbackMethod("AcceptAll")
	implicitFalse := f.returnFalse()
	implicitFalse.Implicit = true
	f.comp.SetBody(method, f.block(f.returnTrue(), implicitFalse))
	delegate := f.methodRefDelegate(method)

	bag := f.run(t, f.block(delegate))
	if got := countRule(bag, "CA5359"); got != 1 {
		t.Fatalf("CA5359 count = %d, want 1 with synthesized returns filtered", got)
	}
}

func TestCertValidationInertWithoutCallbackType(t *testing.T) {
	// A compilation that lacks a required type leaves the whole rule
	// inert: no partial matching, no diagnostics, no crash.
	bare := &fixture{comp: analysis.NewCompilation(types.NewTable(), symbols.NewTable())}
	method := bare.comp.Symbols.AddMethod(symbols.MethodSymbol{Name: "<lambda>"})
	delegate := bare.lambdaDelegate(method, bare.returnTrue())

	bag := bare.run(t, bare.block(delegate))
	if got := countRule(bag, "CA5359"); got != 0 {
		t.Fatalf("CA5359 count = %d, want 0 when well-known types are missing", got)
	}
}
