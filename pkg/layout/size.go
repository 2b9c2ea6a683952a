package layout

import (
	"slices"
	"strings"

	"github.com/matzehuels/anchorlayout/pkg/frame"
	"github.com/matzehuels/anchorlayout/pkg/geom"
)

// containerLayout is the inferred size of a container and the offsets of
// its children inside it.
type containerLayout struct {
	size  geom.Size
	slots map[string]geom.Vec
}

// isStack reports whether f uses stack layout.
func (r *Resolver) isStack(f *frame.Frame) bool {
	kind, name := strings.ToLower(f.Kind), strings.ToLower(f.Name)
	for _, k := range r.opts.StackKinds {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" && (strings.Contains(kind, k) || strings.Contains(name, k)) {
			return true
		}
	}
	return false
}

// measure computes the layout of an auto-sized container from the current
// sizes of its children. It reports false for frames that are not inferred.
//
// Stack layout: rows of RowHeight (or the child height when RowHeight is
// zero) indented by Indent; width = Indent + max width + Padding.
// Bounding-box layout: width = max width + Padding, height = sum of heights.
// Both add Spacing between children and Padding once to the height. Children
// start at half the padding from the top-left corner.
func (r *Resolver) measure(f *frame.Frame) (containerLayout, bool) {
	if !f.AutoSized() {
		return containerLayout{}, false
	}
	children := r.set.ChildrenOf(f.Name)
	if len(children) == 0 {
		return containerLayout{}, false
	}

	stack := r.isStack(f)
	pad, gap := r.opts.Padding, r.opts.Spacing
	indent := 0.0
	if stack {
		indent = r.opts.Indent
	}

	out := containerLayout{slots: make(map[string]geom.Vec, len(children))}
	var maxW, y float64
	for i, c := range children {
		s := r.sizes[c]
		maxW = max(maxW, s.Width)
		if i > 0 {
			y += gap
		}
		out.slots[c] = geom.Vec{X: pad/2 + indent, Y: pad/2 + y}
		row := s.Height
		if stack && r.opts.RowHeight > 0 {
			row = r.opts.RowHeight
		}
		y += row
	}
	out.size = geom.Size{Width: indent + maxW + pad, Height: y + pad}
	return out, true
}

// inferSizes runs one size inference pass over containers, children before
// parents, and reports whether any size changed.
func (r *Resolver) inferSizes() bool {
	changed := false
	for _, name := range slices.Backward(r.order) {
		f, _ := r.set.Frame(name)
		l, ok := r.measure(f)
		if !ok {
			continue
		}
		if l.size != r.sizes[name] {
			r.sizes[name] = l.size
			changed = true
		}
		for c, slot := range l.slots {
			r.slots[c] = slot
		}
	}
	return changed
}

// sizesChanging reports whether another inference pass would change a size.
func (r *Resolver) sizesChanging() bool {
	for _, name := range r.order {
		f, _ := r.set.Frame(name)
		if l, ok := r.measure(f); ok && l.size != r.sizes[name] {
			return true
		}
	}
	return false
}
