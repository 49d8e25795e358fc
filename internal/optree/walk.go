package optree

import "iter"

// Descendants yields every node in the subtree rooted at n, excluding n
// itself, in stable depth-first pre-order. The sequence is lazy and
// restartable: each range re-walks the tree with its own cursor, so two
// concurrent iterations never interfere.
func Descendants(n *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		if n == nil {
			return
		}
		// Explicit stack, children pushed in reverse to pop in order.
		stack := make([]*Node, 0, 16)
		stack = pushReversed(stack, n.Children())
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(top) {
				return
			}
			stack = pushReversed(stack, top.Children())
		}
	}
}

// WithoutImplicit filters host-synthesized nodes out of seq, preserving
// relative order. A method body obtained by symbol alone may carry
// compiler-inserted wrapper nodes that must not participate in pattern
// matching.
func WithoutImplicit(seq iter.Seq[*Node]) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for n := range seq {
			if n.Implicit {
				continue
			}
			if !yield(n) {
				return
			}
		}
	}
}

func pushReversed(stack, children []*Node) []*Node {
	for i := len(children) - 1; i >= 0; i-- {
		stack = append(stack, children[i])
	}
	return stack
}
