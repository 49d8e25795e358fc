package rules

import (
	"context"
	"testing"

	"oplint/internal/analysis"
	"oplint/internal/diag"
	"oplint/internal/optree"
	"oplint/internal/source"
	"oplint/internal/symbols"
	"oplint/internal/types"
)

// fixture assembles a small compilation snapshot with every well-known
// type the shipped rules require, plus helpers to grow trees on top.
type fixture struct {
	comp *analysis.Compilation

	object   types.TypeID
	cert     types.TypeID
	chain    types.TypeID
	policy   types.TypeID
	boolean  types.TypeID
	callback types.TypeID
	intPtr   types.TypeID
	disposal types.TypeID

	nextOffset uint32
}

func newFixture() *fixture {
	tt := types.NewTable()
	f := &fixture{comp: analysis.NewCompilation(tt, symbols.NewTable())}
	f.object = tt.Add(types.TypeSymbol{FullName: typeObject, Special: types.SpecialObject})
	f.cert = tt.Add(types.TypeSymbol{FullName: typeX509Certificate})
	f.chain = tt.Add(types.TypeSymbol{FullName: typeX509Chain})
	f.policy = tt.Add(types.TypeSymbol{FullName: typeSslPolicyErrors, IsValueType: true})
	f.boolean = tt.Add(types.TypeSymbol{FullName: "System.Boolean", Special: types.SpecialBool, IsValueType: true})
	f.callback = tt.Add(types.TypeSymbol{FullName: typeCertCallback})
	f.intPtr = tt.Add(types.TypeSymbol{FullName: typeIntPtr, IsValueType: true})
	tt.Add(types.TypeSymbol{FullName: typeUIntPtr, IsValueType: true})
	tt.Add(types.TypeSymbol{FullName: typeHandleRef, IsValueType: true})
	f.disposal = tt.Add(types.TypeSymbol{FullName: typeIDisposable})
	return f
}

// span hands out non-overlapping spans so location assertions stay exact.
func (f *fixture) span() source.Span {
	start := f.nextOffset
	f.nextOffset += 10
	return source.Span{File: 0, Start: start, End: start + 5}
}

// callbackMethod registers a method matching the validation callback
// signature: (object, certificate, chain, policy errors) -> bool.
func (f *fixture) callbackMethod(name string) symbols.MethodID {
	return f.comp.Symbols.AddMethod(symbols.MethodSymbol{
		Name: name,
		Params: []symbols.Param{
			{Name: "sender", Type: f.object},
			{Name: "certificate", Type: f.cert},
			{Name: "chain", Type: f.chain},
			{Name: "sslPolicyErrors", Type: f.policy},
		},
		Result: f.boolean,
	})
}

// returnTrue builds `return true;`.
func (f *fixture) returnTrue() *optree.Node {
	lit := &optree.Node{
		Kind:  optree.KindLiteral,
		Type:  f.boolean,
		Span:  f.span(),
		Const: optree.TrueConstant(),
		Data:  optree.LiteralData{Text: "true"},
	}
	return &optree.Node{Kind: optree.KindReturn, Span: f.span(), Data: optree.ReturnData{Value: lit}}
}

// returnFalse builds `return false;`.
func (f *fixture) returnFalse() *optree.Node {
	lit := &optree.Node{
		Kind:  optree.KindLiteral,
		Type:  f.boolean,
		Span:  f.span(),
		Const: optree.FalseConstant(),
		Data:  optree.LiteralData{Text: "false"},
	}
	return &optree.Node{Kind: optree.KindReturn, Span: f.span(), Data: optree.ReturnData{Value: lit}}
}

// returnNonConstant builds `return someLocal;`.
func (f *fixture) returnNonConstant() *optree.Node {
	local := &optree.Node{
		Kind: optree.KindLocalReference,
		Type: f.boolean,
		Span: f.span(),
		Data: optree.LocalReferenceData{Name: "ok"},
	}
	return &optree.Node{Kind: optree.KindReturn, Span: f.span(), Data: optree.ReturnData{Value: local}}
}

func (f *fixture) block(stmts ...*optree.Node) *optree.Node {
	return &optree.Node{Kind: optree.KindBlock, Span: f.span(), Data: optree.BlockData{Children: stmts}}
}

// lambdaDelegate builds a delegate creation of the callback type whose
// target is an inline anonymous function with the given body statements.
func (f *fixture) lambdaDelegate(method symbols.MethodID, stmts ...*optree.Node) *optree.Node {
	lambda := &optree.Node{
		Kind: optree.KindAnonymousFunction,
		Span: f.span(),
		Data: optree.AnonymousFunctionData{Method: method, Body: f.block(stmts...)},
	}
	return &optree.Node{
		Kind: optree.KindDelegateCreation,
		Type: f.callback,
		Span: f.span(),
		Data: optree.DelegateCreationData{Target: lambda},
	}
}

// methodRefDelegate builds a delegate creation targeting a named method.
func (f *fixture) methodRefDelegate(method symbols.MethodID) *optree.Node {
	ref := &optree.Node{
		Kind: optree.KindMethodReference,
		Span: f.span(),
		Data: optree.MethodReferenceData{Method: method},
	}
	return &optree.Node{
		Kind: optree.KindDelegateCreation,
		Type: f.callback,
		Span: f.span(),
		Data: optree.DelegateCreationData{Target: ref},
	}
}

func (f *fixture) run(t *testing.T, roots ...*optree.Node) *diag.Bag {
	t.Helper()
	for _, root := range roots {
		owner := f.comp.Symbols.AddMethod(symbols.MethodSymbol{Name: "Container"})
		f.comp.AddRoot(owner, root)
	}
	engine := analysis.NewEngine(All(), analysis.Options{})
	bag, err := engine.Run(context.Background(), f.comp)
	if err != nil {
		t.Fatalf("engine run: %v", err)
	}
	return bag
}

func countRule(bag *diag.Bag, id diag.RuleID) int {
	n := 0
	for _, d := range bag.Items() {
		if d.Rule == id {
			n++
		}
	}
	return n
}
