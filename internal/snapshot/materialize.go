package snapshot

import (
	"oplint/internal/analysis"
	"oplint/internal/optree"
	"oplint/internal/source"
	"oplint/internal/symbols"
	"oplint/internal/types"
)

// Materialize turns a decoded snapshot into the in-memory compilation
// the engine reads, plus the file set for span resolution. Dangling ids
// in the payload materialize as sentinels and are skipped by the rules'
// malformed-node policy rather than failing the build.
func Materialize(snap *Snapshot) (*analysis.Compilation, *source.FileSet) {
	fs := source.NewFileSet()
	for _, f := range snap.Files {
		fs.Add(f.Path, f.Content)
	}

	tt := types.NewTable()
	for _, t := range snap.Types {
		ifaces := make([]types.TypeID, 0, len(t.Ifaces))
		for _, id := range t.Ifaces {
			ifaces = append(ifaces, types.TypeID(id))
		}
		tt.Add(types.TypeSymbol{
			FullName:     t.FullName,
			Special:      types.SpecialType(t.Special),
			IsValueType:  t.ValueType,
			HasFinalizer: t.Finalizer,
			Interfaces:   ifaces,
			Span:         spanOf(t.Span),
		})
	}

	st := symbols.NewTable()
	for _, m := range snap.Methods {
		params := make([]symbols.Param, 0, len(m.Params))
		for _, p := range m.Params {
			params = append(params, symbols.Param{Name: p.Name, Type: types.TypeID(p.Type)})
		}
		st.AddMethod(symbols.MethodSymbol{
			Name:       m.Name,
			Containing: types.TypeID(m.Containing),
			Params:     params,
			Result:     types.TypeID(m.Result),
			IsStatic:   m.Static,
			Interop:    m.Interop,
			Span:       spanOf(m.Span),
		})
	}
	for _, f := range snap.Fields {
		st.AddField(symbols.FieldSymbol{
			Name:       f.Name,
			Containing: types.TypeID(f.Containing),
			Type:       types.TypeID(f.Type),
			IsStatic:   f.Static,
			Span:       spanOf(f.Span),
		})
	}

	comp := analysis.NewCompilation(tt, st)
	for _, b := range snap.Bodies {
		comp.SetBody(symbols.MethodID(b.Method), materializeNode(b.Root))
	}
	for _, r := range snap.Roots {
		comp.AddRoot(symbols.MethodID(r.Method), materializeNode(r.Root))
	}
	return comp, fs
}

func spanOf(s Span) source.Span {
	return source.Span{File: source.FileID(s.File), Start: s.Start, End: s.End}
}

// materializeNode rebuilds one operation node. Unknown kinds become
// KindInvalid with no payload; the engine skips them.
func materializeNode(n *Node) *optree.Node {
	if n == nil {
		return nil
	}
	out := &optree.Node{
		Kind:     kindOf(n.Kind),
		Type:     types.TypeID(n.Type),
		Span:     spanOf(n.Span),
		Implicit: n.Implicit,
		Const: optree.Constant{
			Kind: optree.ConstKind(n.ConstKind),
			Bool: n.ConstBool,
		},
	}
	switch out.Kind {
	case optree.KindBlock:
		children := make([]*optree.Node, 0, len(n.Children))
		for _, c := range n.Children {
			if child := materializeNode(c); child != nil {
				children = append(children, child)
			}
		}
		out.Data = optree.BlockData{Children: children}
	case optree.KindExpressionStatement:
		out.Data = optree.ExprStmtData{Expr: materializeNode(n.Expr)}
	case optree.KindDelegateCreation:
		out.Data = optree.DelegateCreationData{Target: materializeNode(n.Target)}
	case optree.KindAnonymousFunction:
		out.Data = optree.AnonymousFunctionData{
			Method: symbols.MethodID(n.Method),
			Body:   materializeNode(n.Body),
		}
	case optree.KindMethodReference:
		out.Data = optree.MethodReferenceData{
			Method:   symbols.MethodID(n.Method),
			Instance: materializeNode(n.Instance),
		}
	case optree.KindReturn:
		out.Data = optree.ReturnData{Value: materializeNode(n.Value)}
	case optree.KindFieldReference:
		out.Data = optree.FieldReferenceData{
			Field:    symbols.FieldID(n.Field),
			Instance: materializeNode(n.Instance),
		}
	case optree.KindSimpleAssignment:
		out.Data = optree.AssignmentData{
			Target: materializeNode(n.Target),
			Value:  materializeNode(n.Value),
		}
	case optree.KindInvocation:
		args := make([]*optree.Node, 0, len(n.Args))
		for _, a := range n.Args {
			if arg := materializeNode(a); arg != nil {
				args = append(args, arg)
			}
		}
		out.Data = optree.InvocationData{
			Method:   symbols.MethodID(n.Method),
			Instance: materializeNode(n.Instance),
			Args:     args,
		}
	case optree.KindLiteral:
		out.Data = optree.LiteralData{Text: n.Text}
	case optree.KindParameterReference:
		out.Data = optree.ParameterReferenceData{Name: n.Text}
	case optree.KindLocalReference:
		out.Data = optree.LocalReferenceData{Name: n.Text}
	case optree.KindConversion:
		out.Data = optree.ConversionData{Operand: materializeNode(n.Operand)}
	case optree.KindConditional:
		out.Data = optree.ConditionalData{
			Cond: materializeNode(n.Cond),
			Then: materializeNode(n.Then),
			Else: materializeNode(n.Else),
		}
	case optree.KindThrow:
		out.Data = optree.ThrowData{Value: materializeNode(n.Value)}
	case optree.KindInvalid:
		// no payload
	}
	return out
}

func kindOf(k uint8) optree.Kind {
	if k > uint8(optree.KindThrow) {
		return optree.KindInvalid
	}
	return optree.Kind(k)
}
