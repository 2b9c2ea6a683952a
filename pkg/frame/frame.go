package frame

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/anchorlayout/pkg/geom"
)

// RootName is the conventional name of the screen root. An anchor whose
// relativeTo is empty, RootName or "root" (any case) anchors to the origin.
const RootName = "UIParent"

// TargetKind tags what an anchor is attached to.
type TargetKind int

const (
	// TargetRoot anchors to the screen root: origin (0, 0), zero size.
	TargetRoot TargetKind = iota
	// TargetFrame anchors to another frame by name. Names that do not match
	// a declared frame fall back to the root when resolved.
	TargetFrame
	// TargetOffset is the numeric shorthand: the frame is placed at an
	// absolute position and point semantics are ignored.
	TargetOffset
)

func (k TargetKind) String() string {
	switch k {
	case TargetFrame:
		return "frame"
	case TargetOffset:
		return "offset"
	default:
		return "root"
	}
}

// Anchor pins Point on the owning frame to RelativePoint on the target,
// displaced by (OffsetX, OffsetY).
type Anchor struct {
	Point         geom.AnchorPoint
	Target        TargetKind
	RelativeTo    string // set when Target == TargetFrame
	RelativePoint geom.AnchorPoint
	AbsX, AbsY    float64 // set when Target == TargetOffset
	OffsetX       float64
	OffsetY       float64
}

// NewAnchor builds a typed anchor from loosely typed fields. Unknown point
// names degrade to TOPLEFT. A relativeTo that parses as a finite number turns
// the anchor into an absolute offset; relativePoint then supplies the y
// coordinate when it is numeric too.
func NewAnchor(point, relativeTo, relativePoint string, offsetX, offsetY float64) Anchor {
	a := Anchor{OffsetX: offsetX, OffsetY: offsetY}
	a.Point, _ = geom.ParsePoint(point)

	ref := strings.TrimSpace(relativeTo)
	if x, ok := parseNumber(ref); ok {
		a.Target = TargetOffset
		a.AbsX = x
		if y, ok := parseNumber(relativePoint); ok {
			a.AbsY = y
		}
		return a
	}

	a.RelativePoint, _ = geom.ParsePoint(relativePoint)
	if IsRootRef(ref) {
		a.Target = TargetRoot
		return a
	}
	a.Target = TargetFrame
	a.RelativeTo = ref
	return a
}

// IsRootRef reports whether ref names the screen root.
func IsRootRef(ref string) bool {
	ref = strings.TrimSpace(ref)
	return ref == "" || strings.EqualFold(ref, RootName) || strings.EqualFold(ref, "root")
}

func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Frame is one declared layout element. Nil geometry pointers mean "unset".
type Frame struct {
	Name     string
	Kind     string // type tag from the producer, e.g. "Frame", "Button"
	Hidden   bool
	X, Y     *float64
	Width    *float64
	Height   *float64
	Scale    float64 // zero means 1
	Anchors  []Anchor
	Children []string
}

// Float returns a pointer to v, for populating optional geometry.
func Float(v float64) *float64 { return &v }

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// ExplicitPosition returns the declared position when the frame pins x or y
// to a non-zero value. Such frames are never moved by anchors.
func (f *Frame) ExplicitPosition() (geom.Vec, bool) {
	x, y := deref(f.X), deref(f.Y)
	if x != 0 || y != 0 {
		return geom.Vec{X: x, Y: y}, true
	}
	return geom.Vec{}, false
}

// DeclaredPosition returns the declared position, zero where unset.
func (f *Frame) DeclaredPosition() geom.Vec {
	return geom.Vec{X: deref(f.X), Y: deref(f.Y)}
}

// DeclaredSize returns the declared size with non-positive values as zero.
func (f *Frame) DeclaredSize() geom.Size {
	return geom.Size{Width: max(deref(f.Width), 0), Height: max(deref(f.Height), 0)}
}

// AutoSized reports whether neither dimension is set to a positive value.
func (f *Frame) AutoSized() bool {
	return deref(f.Width) <= 0 && deref(f.Height) <= 0
}

// EffectiveScale returns Scale, or 1 when Scale is not positive.
func (f *Frame) EffectiveScale() float64 {
	if f.Scale <= 0 {
		return 1
	}
	return f.Scale
}

// PlacementAnchor returns the anchor that positions the frame: the first one.
func (f *Frame) PlacementAnchor() (Anchor, bool) {
	if len(f.Anchors) == 0 {
		return Anchor{}, false
	}
	return f.Anchors[0], true
}

// References returns the frame names referenced by all anchors, in order,
// without duplicates. Root and offset anchors reference nothing.
func (f *Frame) References() []string {
	var refs []string
	seen := make(map[string]bool)
	for _, a := range f.Anchors {
		if a.Target != TargetFrame || seen[a.RelativeTo] {
			continue
		}
		seen[a.RelativeTo] = true
		refs = append(refs, a.RelativeTo)
	}
	return refs
}

func (f Frame) clone() Frame {
	c := f
	c.X, c.Y = clonePtr(f.X), clonePtr(f.Y)
	c.Width, c.Height = clonePtr(f.Width), clonePtr(f.Height)
	c.Anchors = append([]Anchor(nil), f.Anchors...)
	c.Children = append([]string(nil), f.Children...)
	return c
}

func clonePtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	return Float(*p)
}
