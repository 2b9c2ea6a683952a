package layout

import (
	"maps"
	"slices"

	"github.com/matzehuels/anchorlayout/pkg/frame"
	"github.com/matzehuels/anchorlayout/pkg/geom"
)

// Tree stores kept frames in parent-local coordinates. Moving a frame moves
// its descendants because their positions are relative to it.
//
// Scale changes on a parent do not rescale descendant offsets.
type Tree struct {
	order    []string
	parent   map[string]string
	children map[string][]string
	local    map[string]geom.Vec
	size     map[string]geom.Size
}

// Reparent converts the absolute geometry in res into a tree using the
// parent links of set. A frame whose parent was rejected, or whose parent
// chain loops back to itself, becomes a root.
func Reparent(set *frame.Set, res *Result) *Tree {
	t := &Tree{
		parent:   make(map[string]string),
		children: make(map[string][]string),
		local:    make(map[string]geom.Vec, len(res.Frames)),
		size:     make(map[string]geom.Size, len(res.Frames)),
	}
	for _, name := range res.Order {
		if _, ok := res.Frames[name]; ok {
			t.order = append(t.order, name)
		}
	}

	for _, name := range t.order {
		p, ok := set.Parent(name)
		if !ok {
			continue
		}
		if _, kept := res.Frames[p]; !kept || t.reaches(p, name) {
			continue
		}
		t.parent[name] = p
		t.children[p] = append(t.children[p], name)
	}

	for _, name := range t.order {
		r := res.Frames[name]
		abs := r.Origin()
		if p, ok := t.parent[name]; ok {
			abs = abs.Sub(res.Frames[p].Origin())
		}
		t.local[name] = abs
		t.size[name] = r.Size()
	}
	return t
}

// reaches reports whether walking up from start arrives at target.
func (t *Tree) reaches(start, target string) bool {
	for n, ok := start, true; ok; n, ok = t.parent[n] {
		if n == target {
			return true
		}
	}
	return false
}

// Names returns the frames in the tree in resolution order.
func (t *Tree) Names() []string { return slices.Clone(t.order) }

// Parent returns the parent of name within the tree.
func (t *Tree) Parent(name string) (string, bool) {
	p, ok := t.parent[name]
	return p, ok
}

// Children returns the children of name within the tree.
func (t *Tree) Children(name string) []string { return slices.Clone(t.children[name]) }

// Roots returns frames without a parent in the tree.
func (t *Tree) Roots() []string {
	var out []string
	for _, n := range t.order {
		if _, ok := t.parent[n]; !ok {
			out = append(out, n)
		}
	}
	return out
}

// Local returns the position of name relative to its parent, or the
// absolute position for roots.
func (t *Tree) Local(name string) (geom.Vec, bool) {
	v, ok := t.local[name]
	return v, ok
}

// Absolute returns the absolute position of name by summing local offsets up
// the parent chain.
func (t *Tree) Absolute(name string) (geom.Vec, bool) {
	if _, ok := t.local[name]; !ok {
		return geom.Vec{}, false
	}
	var abs geom.Vec
	for n, ok := name, true; ok; n, ok = t.parent[n] {
		abs = abs.Add(t.local[n])
	}
	return abs, true
}

// Rect returns the absolute rectangle of name.
func (t *Tree) Rect(name string) (geom.Rect, bool) {
	abs, ok := t.Absolute(name)
	if !ok {
		return geom.Rect{}, false
	}
	s := t.size[name]
	return geom.Rect{X: abs.X, Y: abs.Y, Width: s.Width, Height: s.Height}, true
}

// Rects returns the absolute rectangles of all frames.
func (t *Tree) Rects() map[string]geom.Rect {
	out := make(map[string]geom.Rect, len(t.order))
	for _, n := range t.order {
		out[n], _ = t.Rect(n)
	}
	return out
}

// Move sets the absolute position of name. Descendants keep their local
// offsets and so move with it.
func (t *Tree) Move(name string, x, y float64) bool {
	if _, ok := t.local[name]; !ok {
		return false
	}
	pos := geom.Vec{X: x, Y: y}
	if p, ok := t.parent[name]; ok {
		pa, _ := t.Absolute(p)
		pos = pos.Sub(pa)
	}
	t.local[name] = pos
	return true
}

// MoveBy translates name by (dx, dy), keeping it inside canvas when canvas
// is non-zero. It returns the new absolute rectangle.
func (t *Tree) MoveBy(name string, dx, dy float64, canvas geom.Size) (geom.Rect, bool) {
	r, ok := t.Rect(name)
	if !ok {
		return geom.Rect{}, false
	}
	r = r.Translate(geom.Vec{X: dx, Y: dy})
	if !canvas.IsZero() {
		r = ClampFrame(r, canvas)
	}
	t.Move(name, r.X, r.Y)
	return r, true
}

// Resize sets the size of name without touching its position or its
// descendants. Negative sizes are treated as zero.
func (t *Tree) Resize(name string, width, height float64) bool {
	if _, ok := t.size[name]; !ok {
		return false
	}
	t.size[name] = geom.Size{Width: max(width, 0), Height: max(height, 0)}
	return true
}

// Locals returns the local position of every frame.
func (t *Tree) Locals() map[string]geom.Vec { return maps.Clone(t.local) }
