package analysis

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"oplint/internal/diag"
	"oplint/internal/optree"
	"oplint/internal/types"
)

// Options configure one engine instance.
type Options struct {
	// Enabled overrides each rule's enabled-by-default flag.
	Enabled map[diag.RuleID]bool
	// Severity overrides each rule's default severity.
	Severity map[diag.RuleID]diag.Severity
	// MaxDiagnostics bounds the collected diagnostics per run.
	MaxDiagnostics int
	// Jobs caps concurrent root evaluation (0 = GOMAXPROCS).
	Jobs int
}

const defaultMaxDiagnostics = 1000

// Engine evaluates a fixed rule set against compilation snapshots. An
// engine is stateless between runs and safe for concurrent use.
type Engine struct {
	rules []Rule
	opts  Options
}

// NewEngine constructs an engine over the given rules.
func NewEngine(rules []Rule, opts Options) *Engine {
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = defaultMaxDiagnostics
	}
	return &Engine{rules: rules, opts: opts}
}

// binding is one rule activated for one compilation: its resolved
// well-known types and the kinds it triggers on. Computed once at
// compilation start, read-only afterwards.
type binding struct {
	rule       Rule
	wellKnown  map[string]types.TypeID
	interested map[optree.Kind]bool
	severity   diag.Severity
	override   bool
}

// bind activates the engine's rules against one compilation. Disabled
// rules and rules whose required types do not resolve are left out
// entirely (rule inert for this compilation, see the error policy).
func (e *Engine) bind(comp *Compilation) []binding {
	bindings := make([]binding, 0, len(e.rules))
	for _, r := range e.rules {
		desc := r.Descriptor()

		enabled := desc.EnabledByDefault
		if v, ok := e.opts.Enabled[desc.ID]; ok {
			enabled = v
		}
		if !enabled {
			continue
		}

		wellKnown := make(map[string]types.TypeID)
		inert := false
		for _, name := range r.RequiredTypes() {
			id, ok := comp.Types.Resolve(name)
			if !ok {
				inert = true
				break
			}
			wellKnown[name] = id
		}
		if inert {
			continue
		}

		interested := make(map[optree.Kind]bool)
		for _, k := range r.Kinds() {
			interested[k] = true
		}

		b := binding{rule: r, wellKnown: wellKnown, interested: interested}
		if sev, ok := e.opts.Severity[desc.ID]; ok {
			b.severity = sev
			b.override = true
		}
		bindings = append(bindings, b)
	}
	return bindings
}

// Run analyzes one compilation snapshot and returns its diagnostics,
// sorted and deduplicated for deterministic output. Root trees are
// evaluated concurrently; per-root results merge in registration order,
// so repeated runs over an unchanged snapshot yield identical sets.
// Cancellation takes effect between node evaluations: an abandoned
// evaluation leaves no diagnostic behind.
func (e *Engine) Run(ctx context.Context, comp *Compilation) (*diag.Bag, error) {
	out := diag.NewBag(e.opts.MaxDiagnostics)
	if comp == nil || len(comp.Roots()) == 0 {
		return out, nil
	}

	bindings := e.bind(comp)
	if len(bindings) == 0 {
		return out, nil
	}

	jobs := e.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	roots := comp.Roots()
	bags := make([]*diag.Bag, len(roots))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(roots)))
	for i, root := range roots {
		g.Go(func() error {
			bag := diag.NewBag(e.opts.MaxDiagnostics)
			if err := e.runRoot(gctx, comp, bindings, root, bag); err != nil {
				return err
			}
			bags[i] = bag // index is unique per goroutine, no mutex needed
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, bag := range bags {
		out.Merge(bag)
	}
	out.Sort()
	out.Dedup()
	return out, nil
}

// runRoot dispatches every node of one tree (the root itself included)
// to the bindings interested in its kind.
func (e *Engine) runRoot(ctx context.Context, comp *Compilation, bindings []binding, root Root, bag *diag.Bag) error {
	reporter := diag.BagReporter{Bag: bag}

	evaluate := func(n *optree.Node) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i := range bindings {
			b := &bindings[i]
			if !b.interested[n.Kind] {
				continue
			}
			rc := &Context{
				Comp:      comp,
				wellKnown: b.wellKnown,
				severity:  b.severity,
				override:  b.override,
				reporter:  reporter,
			}
			b.rule.Evaluate(rc, n)
		}
		return nil
	}

	if err := evaluate(root.Tree); err != nil {
		return err
	}
	for n := range optree.Descendants(root.Tree) {
		if err := evaluate(n); err != nil {
			return err
		}
	}
	return nil
}
