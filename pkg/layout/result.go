package layout

import (
	"slices"

	"github.com/matzehuels/anchorlayout/pkg/frame"
	"github.com/matzehuels/anchorlayout/pkg/geom"
)

// Result is the outcome of one resolution run.
type Result struct {
	// Frames maps each kept frame to its absolute geometry. Frames rejected
	// by the policy are absent.
	Frames map[string]geom.Rect
	// Order lists every frame in resolution order, rejected ones included.
	Order []string
	// Rejected lists frames dropped by RejectOutside, in resolution order.
	Rejected []string
	// Diagnostics records every degraded-mode event.
	Diagnostics []Diagnostic
	// Passes is the number of size inference passes that changed a size.
	Passes int
	// Cyclic reports a dependency cycle; Order is then declaration order.
	Cyclic bool

	Policy Policy
	Canvas geom.Size
}

func (r *Resolver) result() *Result {
	res := &Result{
		Frames: make(map[string]geom.Rect, len(r.order)),
		Order:  r.Order(),
		Passes: r.passes,
		Cyclic: r.cyclic,
		Policy: r.opts.Policy,
		Canvas: r.opts.Canvas,
	}
	for _, name := range r.order {
		rect, ok := ApplyPolicy(r.rect(name), r.opts.Policy, r.opts.Canvas)
		if !ok {
			res.Rejected = append(res.Rejected, name)
			r.log.Debug("frame outside canvas", "frame", name, "rect", rect)
			continue
		}
		res.Frames[name] = rect
	}
	res.Diagnostics = r.Diagnostics()
	return res
}

// Geometry returns the rectangle of name and whether it was kept.
func (res *Result) Geometry(name string) (geom.Rect, bool) {
	r, ok := res.Frames[name]
	return r, ok
}

// Kept returns the names of kept frames in resolution order.
func (res *Result) Kept() []string {
	out := make([]string, 0, len(res.Frames))
	for _, name := range res.Order {
		if _, ok := res.Frames[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

// IsRejected reports whether the policy dropped name.
func (res *Result) IsRejected(name string) bool {
	return slices.Contains(res.Rejected, name)
}

// Apply returns a copy of set with every kept frame's resolved geometry
// written back as declared geometry. Resolving the copy with the same
// options yields the same result.
func (res *Result) Apply(set *frame.Set) *frame.Set {
	out := frame.NewSet()
	for _, f := range set.Frames() {
		c := *f
		if r, ok := res.Frames[f.Name]; ok {
			c.X, c.Y = frame.Float(r.X), frame.Float(r.Y)
			c.Width, c.Height = frame.Float(r.Width), frame.Float(r.Height)
		}
		_ = out.Add(c)
	}
	return out
}
