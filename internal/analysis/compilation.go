// Package analysis hosts the rule evaluation engine: the compilation
// snapshot rules read from, the rule registration contract, and the node
// dispatch loop with its per-compilation well-known-type cache.
package analysis

import (
	"cmp"
	"slices"

	"oplint/internal/optree"
	"oplint/internal/symbols"
	"oplint/internal/types"
)

// Root is one analyzable operation tree: a method body the host produced.
type Root struct {
	Method symbols.MethodID
	Tree   *optree.Node
}

// Compilation is the semantic snapshot of one compilation unit: resolved
// type and symbol tables, method bodies, and the root trees to analyze.
// Once assembled it is read-only, so concurrent rule evaluations share it
// without locking. Nothing survives across compilations.
type Compilation struct {
	Types   *types.Table
	Symbols *symbols.Table
	bodies  map[symbols.MethodID]*optree.Node
	roots   []Root
}

// NewCompilation creates an empty snapshot around the given tables.
func NewCompilation(tt *types.Table, st *symbols.Table) *Compilation {
	if tt == nil {
		tt = types.NewTable()
	}
	if st == nil {
		st = symbols.NewTable()
	}
	return &Compilation{
		Types:   tt,
		Symbols: st,
		bodies:  make(map[symbols.MethodID]*optree.Node),
	}
}

// SetBody registers the top-level operation block of a method. Methods
// without an accessible body are simply never registered.
func (c *Compilation) SetBody(m symbols.MethodID, body *optree.Node) {
	if !m.IsValid() || body == nil {
		return
	}
	c.bodies[m] = body
}

// BodyOf returns the top-level operation block of a method, when the
// host produced one.
func (c *Compilation) BodyOf(m symbols.MethodID) (*optree.Node, bool) {
	body, ok := c.bodies[m]
	return body, ok
}

// AddRoot registers a tree for analysis and makes its body resolvable
// through BodyOf.
func (c *Compilation) AddRoot(m symbols.MethodID, tree *optree.Node) {
	if tree == nil {
		return
	}
	c.roots = append(c.roots, Root{Method: m, Tree: tree})
	c.SetBody(m, tree)
}

// Roots returns the registered trees in registration order.
func (c *Compilation) Roots() []Root {
	return c.roots
}

// Bodies returns every registered method body ordered by method id,
// including the ones roots registered.
func (c *Compilation) Bodies() []Root {
	out := make([]Root, 0, len(c.bodies))
	for m, body := range c.bodies {
		out = append(out, Root{Method: m, Tree: body})
	}
	slices.SortFunc(out, func(a, b Root) int {
		return cmp.Compare(a.Method, b.Method)
	})
	return out
}
