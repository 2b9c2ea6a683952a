package layout

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/anchorlayout/pkg/depgraph"
	"github.com/matzehuels/anchorlayout/pkg/frame"
	"github.com/matzehuels/anchorlayout/pkg/geom"
)

// Resolver computes frame geometry for one frame set. It keeps the last
// known position of every frame, the effective sizes, and a memo of frames
// already resolved in the current pass.
//
// A Resolver is single-threaded and must not be shared between goroutines.
// The frame set must not change while the resolver is in use.
type Resolver struct {
	set  *frame.Set
	opts Options
	log  *log.Logger

	graph  *depgraph.Graph
	order  []string
	cyclic bool

	current map[string]geom.Vec
	sizes   map[string]geom.Size
	slots   map[string]geom.Vec
	memo    map[string]bool

	passes    int
	diags     []Diagnostic
	deepSeen  map[string]bool
	unknownAt map[string]bool
}

// New prepares a resolver: the dependency graph is built, the order is
// computed, and declared geometry seeds the last known positions.
// Structural diagnostics (cycles, ambiguous parents) are recorded here.
func New(set *frame.Set, opts Options) *Resolver {
	opts = opts.withDefaults()
	r := &Resolver{
		set:       set,
		opts:      opts,
		log:       opts.Logger,
		graph:     depgraph.Build(set),
		current:   make(map[string]geom.Vec, set.Len()),
		sizes:     make(map[string]geom.Size, set.Len()),
		slots:     make(map[string]geom.Vec),
		memo:      make(map[string]bool, set.Len()),
		deepSeen:  make(map[string]bool),
		unknownAt: make(map[string]bool),
	}
	for _, f := range set.Frames() {
		r.current[f.Name] = f.DeclaredPosition()
		r.sizes[f.Name] = f.DeclaredSize()
	}

	for _, c := range set.ParentConflicts() {
		r.report(Diagnostic{
			Kind:    DiagAmbiguousParent,
			Frame:   c.Child,
			Related: []string{c.Previous, c.Winner},
			Message: fmt.Sprintf("child claimed by %s and %s, %s wins", c.Previous, c.Winner, c.Winner),
		})
	}

	order, ok := r.graph.Order()
	r.order = order
	r.cyclic = !ok
	if r.cyclic {
		cycles := r.graph.Cycles()
		for _, c := range cycles {
			r.report(Diagnostic{
				Kind:    DiagCycle,
				Frame:   c[0],
				Related: c,
				Message: fmt.Sprintf("dependency cycle of %d frames, falling back to declaration order", len(c)),
			}, "cycle_size", len(c), "members", strings.Join(c, ","))
		}
		if len(cycles) == 0 {
			r.report(Diagnostic{Kind: DiagCycle, Message: "dependency cycle, falling back to declaration order"})
		}
	}
	return r
}

// Order returns the resolution order.
func (r *Resolver) Order() []string { return append([]string(nil), r.order...) }

// Cyclic reports whether the graph had a cycle.
func (r *Resolver) Cyclic() bool { return r.cyclic }

// Graph returns the dependency graph.
func (r *Resolver) Graph() *depgraph.Graph { return r.graph }

// Diagnostics returns the diagnostics recorded so far.
func (r *Resolver) Diagnostics() []Diagnostic { return append([]Diagnostic(nil), r.diags...) }

// BeginPass discards the memo so the next Resolve calls recompute.
func (r *Resolver) BeginPass() {
	clear(r.memo)
}

// Resolve returns the absolute rectangle of name, resolving its anchor
// targets first. Unknown names resolve to the zero rectangle at the origin,
// which is also the screen root. Past the depth bound the last known
// geometry is returned without recursing.
func (r *Resolver) Resolve(name string, depth int) geom.Rect {
	f, ok := r.set.Frame(name)
	if !ok {
		return geom.Rect{}
	}
	if r.memo[name] {
		return r.rect(name)
	}
	if depth > r.opts.MaxDepth {
		if !r.deepSeen[name] {
			r.deepSeen[name] = true
			r.report(Diagnostic{
				Kind:    DiagDepthExceeded,
				Frame:   name,
				Message: fmt.Sprintf("resolution deeper than %d, using last known geometry", r.opts.MaxDepth),
			}, "depth", depth)
		}
		return r.rect(name)
	}

	r.current[name] = r.place(f, depth)
	r.memo[name] = true
	return r.rect(name)
}

func (r *Resolver) rect(name string) geom.Rect {
	p, s := r.current[name], r.sizes[name]
	return geom.Rect{X: p.X, Y: p.Y, Width: s.Width, Height: s.Height}
}

// place computes the position of f. Declared positions win; otherwise the
// first anchor places the frame; otherwise a flow slot inside an inferred
// parent; otherwise the declared (zero) position.
func (r *Resolver) place(f *frame.Frame, depth int) geom.Vec {
	if pos, ok := f.ExplicitPosition(); ok {
		return pos
	}

	if a, ok := f.PlacementAnchor(); ok {
		if a.Target == frame.TargetOffset {
			return geom.Vec{X: a.AbsX + a.OffsetX, Y: a.AbsY + a.OffsetY}
		}
		target := r.target(f.Name, a, depth)
		tdx, tdy := a.RelativePoint.Offset(target.scaled.Width, target.scaled.Height)
		size := r.scaled(f)
		odx, ody := a.Point.Offset(size.Width, size.Height)
		return geom.Vec{
			X: target.rect.X + tdx + a.OffsetX - odx,
			Y: target.rect.Y + tdy + a.OffsetY - ody,
		}
	}

	if slot, ok := r.slots[f.Name]; ok {
		if p, ok := r.set.Parent(f.Name); ok {
			return r.Resolve(p, depth+1).Origin().Add(slot)
		}
	}
	return f.DeclaredPosition()
}

type anchorTarget struct {
	rect   geom.Rect
	scaled geom.Size
}

func (r *Resolver) target(owner string, a frame.Anchor, depth int) anchorTarget {
	if a.Target != frame.TargetFrame {
		return anchorTarget{}
	}
	t, ok := r.set.Frame(a.RelativeTo)
	if !ok {
		key := owner + "\x00" + a.RelativeTo
		if !r.unknownAt[key] {
			r.unknownAt[key] = true
			r.report(Diagnostic{
				Kind:    DiagUnknownTarget,
				Frame:   owner,
				Related: []string{a.RelativeTo},
				Message: fmt.Sprintf("anchor target %s not found, using screen root", a.RelativeTo),
			})
		}
		return anchorTarget{}
	}
	return anchorTarget{rect: r.Resolve(a.RelativeTo, depth+1), scaled: r.scaled(t)}
}

func (r *Resolver) scaled(f *frame.Frame) geom.Size {
	s, k := r.sizes[f.Name], f.EffectiveScale()
	return geom.Size{Width: s.Width * k, Height: s.Height * k}
}

// positionPass resolves every frame once in order with a fresh memo.
func (r *Resolver) positionPass() {
	r.BeginPass()
	for _, name := range r.order {
		r.Resolve(name, 0)
	}
}

// run performs the position pass and the size fixed-point iteration.
func (r *Resolver) run() {
	r.positionPass()
	for pass := 1; pass <= r.opts.MaxPasses; pass++ {
		if !r.inferSizes() {
			return
		}
		r.passes = pass
		r.positionPass()
	}
	if r.sizesChanging() {
		r.report(Diagnostic{
			Kind:    DiagSizeNotConverged,
			Message: fmt.Sprintf("container sizes still changing after %d passes", r.opts.MaxPasses),
		})
	}
}

// ResolveAll resolves every frame of set and applies the configured policy.
// The set is not modified.
func ResolveAll(set *frame.Set, opts Options) *Result {
	r := New(set, opts)
	r.run()
	return r.result()
}
