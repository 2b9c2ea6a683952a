package geom

import "fmt"

// Vec is a 2D position or displacement.
type Vec struct {
	X float64 `json:"x" bson:"x" toml:"x"`
	Y float64 `json:"y" bson:"y" toml:"y"`
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// Size is a width/height pair. Canvas bounds are expressed as a Size whose
// origin is (0, 0).
type Size struct {
	Width  float64 `json:"width" bson:"width" toml:"width" yaml:"width" validate:"gte=0"`
	Height float64 `json:"height" bson:"height" toml:"height" yaml:"height" validate:"gte=0"`
}

// IsZero reports whether both dimensions are non-positive.
func (s Size) IsZero() bool { return s.Width <= 0 && s.Height <= 0 }

// Rect is an axis-aligned rectangle. X and Y locate the top-left corner.
type Rect struct {
	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// Origin returns the top-left corner.
func (r Rect) Origin() Vec { return Vec{r.X, r.Y} }

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size { return Size{r.Width, r.Height} }

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Point returns the absolute position of an anchor point on r.
func (r Rect) Point(p AnchorPoint) Vec {
	dx, dy := p.Offset(r.Width, r.Height)
	return Vec{r.X + dx, r.Y + dy}
}

// Translate returns r moved by d.
func (r Rect) Translate(d Vec) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// MoveTo returns r with its top-left corner at p.
func (r Rect) MoveTo(p Vec) Rect {
	r.X, r.Y = p.X, p.Y
	return r
}

// Within reports whether r lies fully inside a canvas of the given size
// anchored at the origin. Edges touching the canvas border count as inside.
func (r Rect) Within(canvas Size) bool {
	return r.X >= 0 && r.Y >= 0 && r.Right() <= canvas.Width && r.Bottom() <= canvas.Height
}

// Contains reports whether o lies fully inside r.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.Width, r.Height)
}

// Clamp translates r so that it fits inside a canvas of the given size,
// keeping its width and height. The resulting x lies in
// [0, canvas.Width-r.Width] and y in [0, canvas.Height-r.Height]; when the
// rectangle is larger than the canvas along an axis it is pinned to 0 on
// that axis.
func Clamp(r Rect, canvas Size) Rect {
	r.X = clampAxis(r.X, r.Width, canvas.Width)
	r.Y = clampAxis(r.Y, r.Height, canvas.Height)
	return r
}

func clampAxis(pos, extent, limit float64) float64 {
	hi := limit - extent
	if pos > hi {
		pos = hi
	}
	if pos < 0 {
		pos = 0
	}
	return pos
}
