// Package optree defines the semantic operation tree the engine analyzes.
// The tree is produced by the host compiler per compilation; the engine
// holds only transient references during a traversal and retains no node
// across compilations.
package optree

import (
	"oplint/internal/source"
	"oplint/internal/symbols"
	"oplint/internal/types"
)

// Kind enumerates operation node kinds. The enumeration is closed:
// Children and every matcher switch over it exhaustively, so a new kind
// lands only together with updates to all of them.
type Kind uint8

const (
	// KindInvalid marks a node the host could not bind (erroneous code).
	KindInvalid Kind = iota
	// KindBlock represents a statement list (a method body's top level).
	KindBlock
	// KindExpressionStatement wraps an expression used as a statement.
	KindExpressionStatement
	// KindDelegateCreation represents construction of a delegate value.
	KindDelegateCreation
	// KindAnonymousFunction represents an inline lambda or anonymous method.
	KindAnonymousFunction
	// KindMethodReference represents a reference to a named method.
	KindMethodReference
	// KindReturn represents a return statement.
	KindReturn
	// KindFieldReference represents a reference to a field.
	KindFieldReference
	// KindSimpleAssignment represents a plain assignment (lhs = rhs).
	KindSimpleAssignment
	// KindInvocation represents a method call.
	KindInvocation
	// KindLiteral represents a literal expression.
	KindLiteral
	// KindParameterReference represents a reference to a parameter.
	KindParameterReference
	// KindLocalReference represents a reference to a local variable.
	KindLocalReference
	// KindConversion represents an implicit or explicit conversion.
	KindConversion
	// KindConditional represents an if/ternary operation.
	KindConditional
	// KindThrow represents a throw statement or expression.
	KindThrow
)

// String returns a human-readable name for the node kind.
func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "Invalid"
	case KindBlock:
		return "Block"
	case KindExpressionStatement:
		return "ExpressionStatement"
	case KindDelegateCreation:
		return "DelegateCreation"
	case KindAnonymousFunction:
		return "AnonymousFunction"
	case KindMethodReference:
		return "MethodReference"
	case KindReturn:
		return "Return"
	case KindFieldReference:
		return "FieldReference"
	case KindSimpleAssignment:
		return "SimpleAssignment"
	case KindInvocation:
		return "Invocation"
	case KindLiteral:
		return "Literal"
	case KindParameterReference:
		return "ParameterReference"
	case KindLocalReference:
		return "LocalReference"
	case KindConversion:
		return "Conversion"
	case KindConditional:
		return "Conditional"
	case KindThrow:
		return "Throw"
	default:
		return "Unknown"
	}
}

// Node is one operation in the semantic tree.
type Node struct {
	Kind Kind
	Type types.TypeID // declared type, NoTypeID when the operation has none
	Span source.Span
	// Implicit marks nodes synthesized by the host compiler rather than
	// written by the user (wrapper conversions, generated returns).
	Implicit bool
	Const    Constant // compile-time constant value, if the host computed one
	Data     NodeData // kind-specific payload, nil for malformed nodes
}

// NodeData is the sealed interface for kind-specific payloads.
type NodeData interface {
	nodeData()
}

// BlockData holds data for KindBlock.
type BlockData struct {
	Children []*Node
}

func (BlockData) nodeData() {}

// ExprStmtData holds data for KindExpressionStatement.
type ExprStmtData struct {
	Expr *Node
}

func (ExprStmtData) nodeData() {}

// DelegateCreationData holds data for KindDelegateCreation. Target is
// either an anonymous function or a method reference.
type DelegateCreationData struct {
	Target *Node
}

func (DelegateCreationData) nodeData() {}

// AnonymousFunctionData holds data for KindAnonymousFunction.
type AnonymousFunctionData struct {
	Method symbols.MethodID // synthesized symbol carrying the signature
	Body   *Node            // the function's own block
}

func (AnonymousFunctionData) nodeData() {}

// MethodReferenceData holds data for KindMethodReference.
type MethodReferenceData struct {
	Method   symbols.MethodID
	Instance *Node // nil for static methods
}

func (MethodReferenceData) nodeData() {}

// ReturnData holds data for KindReturn.
type ReturnData struct {
	Value *Node // nil for a bare return
}

func (ReturnData) nodeData() {}

// FieldReferenceData holds data for KindFieldReference.
type FieldReferenceData struct {
	Field    symbols.FieldID
	Instance *Node // nil for static fields
}

func (FieldReferenceData) nodeData() {}

// AssignmentData holds data for KindSimpleAssignment.
type AssignmentData struct {
	Target *Node
	Value  *Node
}

func (AssignmentData) nodeData() {}

// InvocationData holds data for KindInvocation.
type InvocationData struct {
	Method   symbols.MethodID
	Instance *Node // nil for static calls
	Args     []*Node
}

func (InvocationData) nodeData() {}

// LiteralData holds data for KindLiteral.
type LiteralData struct {
	Text string // raw literal text, for printing only
}

func (LiteralData) nodeData() {}

// ParameterReferenceData holds data for KindParameterReference.
type ParameterReferenceData struct {
	Name string
}

func (ParameterReferenceData) nodeData() {}

// LocalReferenceData holds data for KindLocalReference.
type LocalReferenceData struct {
	Name string
}

func (LocalReferenceData) nodeData() {}

// ConversionData holds data for KindConversion.
type ConversionData struct {
	Operand *Node
}

func (ConversionData) nodeData() {}

// ConditionalData holds data for KindConditional.
type ConditionalData struct {
	Cond *Node
	Then *Node
	Else *Node // nil when absent
}

func (ConditionalData) nodeData() {}

// ThrowData holds data for KindThrow.
type ThrowData struct {
	Value *Node // nil for a bare rethrow
}

func (ThrowData) nodeData() {}

// Children returns the node's direct children in a stable order. The
// switch is exhaustive over Kind; malformed payloads yield no children.
func (n *Node) Children() []*Node {
	if n == nil || n.Data == nil {
		return nil
	}
	switch n.Kind {
	case KindInvalid:
		return nil
	case KindBlock:
		d, ok := n.Data.(BlockData)
		if !ok {
			return nil
		}
		return d.Children
	case KindExpressionStatement:
		d, ok := n.Data.(ExprStmtData)
		if !ok {
			return nil
		}
		return childList(d.Expr)
	case KindDelegateCreation:
		d, ok := n.Data.(DelegateCreationData)
		if !ok {
			return nil
		}
		return childList(d.Target)
	case KindAnonymousFunction:
		d, ok := n.Data.(AnonymousFunctionData)
		if !ok {
			return nil
		}
		return childList(d.Body)
	case KindMethodReference:
		d, ok := n.Data.(MethodReferenceData)
		if !ok {
			return nil
		}
		return childList(d.Instance)
	case KindReturn:
		d, ok := n.Data.(ReturnData)
		if !ok {
			return nil
		}
		return childList(d.Value)
	case KindFieldReference:
		d, ok := n.Data.(FieldReferenceData)
		if !ok {
			return nil
		}
		return childList(d.Instance)
	case KindSimpleAssignment:
		d, ok := n.Data.(AssignmentData)
		if !ok {
			return nil
		}
		return childList(d.Target, d.Value)
	case KindInvocation:
		d, ok := n.Data.(InvocationData)
		if !ok {
			return nil
		}
		out := childList(d.Instance)
		for _, arg := range d.Args {
			if arg != nil {
				out = append(out, arg)
			}
		}
		return out
	case KindLiteral:
		return nil
	case KindParameterReference:
		return nil
	case KindLocalReference:
		return nil
	case KindConversion:
		d, ok := n.Data.(ConversionData)
		if !ok {
			return nil
		}
		return childList(d.Operand)
	case KindConditional:
		d, ok := n.Data.(ConditionalData)
		if !ok {
			return nil
		}
		return childList(d.Cond, d.Then, d.Else)
	case KindThrow:
		d, ok := n.Data.(ThrowData)
		if !ok {
			return nil
		}
		return childList(d.Value)
	default:
		return nil
	}
}

func childList(nodes ...*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}
