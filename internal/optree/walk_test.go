package optree

import (
	"testing"
)

// buildSampleTree constructs:
//
//	Block
//	├── Return (implicit)
//	│   └── Literal "true"
//	└── SimpleAssignment
//	    ├── LocalReference x
//	    └── Invocation
//	        └── Literal "1"
func buildSampleTree() *Node {
	litTrue := &Node{Kind: KindLiteral, Const: TrueConstant(), Data: LiteralData{Text: "true"}}
	ret := &Node{Kind: KindReturn, Implicit: true, Data: ReturnData{Value: litTrue}}
	local := &Node{Kind: KindLocalReference, Data: LocalReferenceData{Name: "x"}}
	lit1 := &Node{Kind: KindLiteral, Data: LiteralData{Text: "1"}}
	call := &Node{Kind: KindInvocation, Data: InvocationData{Args: []*Node{lit1}}}
	assign := &Node{Kind: KindSimpleAssignment, Data: AssignmentData{Target: local, Value: call}}
	return &Node{Kind: KindBlock, Data: BlockData{Children: []*Node{ret, assign}}}
}

func kindsOf(seq func(func(*Node) bool)) []Kind {
	var out []Kind
	for n := range seq {
		out = append(out, n.Kind)
	}
	return out
}

func TestDescendantsPreOrder(t *testing.T) {
	root := buildSampleTree()
	got := kindsOf(Descendants(root))
	want := []Kind{
		KindReturn, KindLiteral,
		KindSimpleAssignment, KindLocalReference, KindInvocation, KindLiteral,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d nodes, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("node %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestDescendantsRestartable(t *testing.T) {
	root := buildSampleTree()
	seq := Descendants(root)
	first := kindsOf(seq)
	second := kindsOf(seq)
	if len(first) != len(second) {
		t.Fatalf("iterations differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("iteration diverges at %d: %s vs %s", i, first[i], second[i])
		}
	}
}

func TestDescendantsEarlyStop(t *testing.T) {
	root := buildSampleTree()
	count := 0
	for range Descendants(root) {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Fatalf("early break consumed %d nodes", count)
	}
}

func TestWithoutImplicit(t *testing.T) {
	root := buildSampleTree()
	got := kindsOf(WithoutImplicit(Descendants(root)))
	// The implicit Return is dropped; its child literal stays, since
	// filtering is per node, not per subtree.
	want := []Kind{
		KindLiteral,
		KindSimpleAssignment, KindLocalReference, KindInvocation, KindLiteral,
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("node %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestDescendantsNilAndMalformed(t *testing.T) {
	if got := kindsOf(Descendants(nil)); got != nil {
		t.Fatalf("nil root must yield nothing, got %v", got)
	}
	malformed := &Node{Kind: KindSimpleAssignment} // no payload
	if got := kindsOf(Descendants(malformed)); got != nil {
		t.Fatalf("payload-less node must yield nothing, got %v", got)
	}
	wrongPayload := &Node{Kind: KindReturn, Data: BlockData{}}
	if got := wrongPayload.Children(); got != nil {
		t.Fatalf("mismatched payload must yield no children, got %v", got)
	}
}
