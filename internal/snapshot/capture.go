package snapshot

import (
	"oplint/internal/analysis"
	"oplint/internal/optree"
	"oplint/internal/source"
	"oplint/internal/symbols"
	"oplint/internal/types"
)

// Capture serializes an in-memory compilation into the wire form. Table
// entries are emitted in id order, so positions round-trip as ids.
func Capture(comp *analysis.Compilation, fs *source.FileSet) *Snapshot {
	snap := &Snapshot{Schema: SchemaVersion}

	for i := 0; i < fs.Len(); i++ {
		f := fs.Get(source.FileID(i))
		snap.Files = append(snap.Files, File{Path: f.Path, Content: f.Content})
	}

	for i := 1; i <= comp.Types.Len(); i++ {
		t := comp.Types.Get(types.TypeID(i))
		ifaces := make([]uint32, 0, len(t.Interfaces))
		for _, id := range t.Interfaces {
			ifaces = append(ifaces, uint32(id))
		}
		snap.Types = append(snap.Types, Type{
			FullName:  t.FullName,
			Special:   uint8(t.Special),
			ValueType: t.IsValueType,
			Finalizer: t.HasFinalizer,
			Ifaces:    ifaces,
			Span:      spanDTO(t.Span),
		})
	}

	for i := 1; i <= comp.Symbols.NumMethods(); i++ {
		m := comp.Symbols.Method(symbols.MethodID(i))
		params := make([]Param, 0, len(m.Params))
		for _, p := range m.Params {
			params = append(params, Param{Name: p.Name, Type: uint32(p.Type)})
		}
		snap.Methods = append(snap.Methods, Method{
			Name:       m.Name,
			Containing: uint32(m.Containing),
			Params:     params,
			Result:     uint32(m.Result),
			Static:     m.IsStatic,
			Interop:    m.Interop,
			Span:       spanDTO(m.Span),
		})
	}

	for i := 1; i <= comp.Symbols.NumFields(); i++ {
		f := comp.Symbols.Field(symbols.FieldID(i))
		snap.Fields = append(snap.Fields, Field{
			Name:       f.Name,
			Containing: uint32(f.Containing),
			Type:       uint32(f.Type),
			Static:     f.IsStatic,
			Span:       spanDTO(f.Span),
		})
	}

	rootMethods := make(map[symbols.MethodID]bool, len(comp.Roots()))
	for _, root := range comp.Roots() {
		rootMethods[root.Method] = true
		snap.Roots = append(snap.Roots, Body{
			Method: uint32(root.Method),
			Root:   captureNode(root.Tree),
		})
	}
	for _, b := range comp.Bodies() {
		if rootMethods[b.Method] {
			continue
		}
		snap.Bodies = append(snap.Bodies, Body{
			Method: uint32(b.Method),
			Root:   captureNode(b.Tree),
		})
	}
	return snap
}

func spanDTO(s source.Span) Span {
	return Span{File: uint32(s.File), Start: s.Start, End: s.End}
}

func captureNode(n *optree.Node) *Node {
	if n == nil {
		return nil
	}
	out := &Node{
		Kind:      uint8(n.Kind),
		Type:      uint32(n.Type),
		Span:      spanDTO(n.Span),
		Implicit:  n.Implicit,
		ConstKind: uint8(n.Const.Kind),
		ConstBool: n.Const.Bool,
	}
	switch d := n.Data.(type) {
	case optree.BlockData:
		for _, c := range d.Children {
			out.Children = append(out.Children, captureNode(c))
		}
	case optree.ExprStmtData:
		out.Expr = captureNode(d.Expr)
	case optree.DelegateCreationData:
		out.Target = captureNode(d.Target)
	case optree.AnonymousFunctionData:
		out.Method = uint32(d.Method)
		out.Body = captureNode(d.Body)
	case optree.MethodReferenceData:
		out.Method = uint32(d.Method)
		out.Instance = captureNode(d.Instance)
	case optree.ReturnData:
		out.Value = captureNode(d.Value)
	case optree.FieldReferenceData:
		out.Field = uint32(d.Field)
		out.Instance = captureNode(d.Instance)
	case optree.AssignmentData:
		out.Target = captureNode(d.Target)
		out.Value = captureNode(d.Value)
	case optree.InvocationData:
		out.Method = uint32(d.Method)
		out.Instance = captureNode(d.Instance)
		for _, a := range d.Args {
			out.Args = append(out.Args, captureNode(a))
		}
	case optree.LiteralData:
		out.Text = d.Text
	case optree.ParameterReferenceData:
		out.Text = d.Name
	case optree.LocalReferenceData:
		out.Text = d.Name
	case optree.ConversionData:
		out.Operand = captureNode(d.Operand)
	case optree.ConditionalData:
		out.Cond = captureNode(d.Cond)
		out.Then = captureNode(d.Then)
		out.Else = captureNode(d.Else)
	case optree.ThrowData:
		out.Value = captureNode(d.Value)
	}
	return out
}
