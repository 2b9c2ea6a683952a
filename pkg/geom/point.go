package geom

import "strings"

// AnchorPoint names one of the nine attachment points of a frame.
type AnchorPoint int

const (
	TopLeft AnchorPoint = iota
	Top
	TopRight
	Left
	Center
	Right
	BottomLeft
	Bottom
	BottomRight
)

var pointNames = [...]string{
	TopLeft:     "TOPLEFT",
	Top:         "TOP",
	TopRight:    "TOPRIGHT",
	Left:        "LEFT",
	Center:      "CENTER",
	Right:       "RIGHT",
	BottomLeft:  "BOTTOMLEFT",
	Bottom:      "BOTTOM",
	BottomRight: "BOTTOMRIGHT",
}

// Points lists every anchor point in declaration order.
var Points = []AnchorPoint{TopLeft, Top, TopRight, Left, Center, Right, BottomLeft, Bottom, BottomRight}

// String returns the canonical upper-case name of the point.
func (p AnchorPoint) String() string {
	if p < TopLeft || p > BottomRight {
		return pointNames[TopLeft]
	}
	return pointNames[p]
}

// ParsePoint converts a point name to an AnchorPoint. Matching ignores case
// and surrounding whitespace. MIDDLE is accepted as CENTER. The second return
// value reports whether the name was recognized; unrecognized names yield
// TopLeft.
func ParsePoint(name string) (AnchorPoint, bool) {
	n := strings.ToUpper(strings.TrimSpace(name))
	if n == "MIDDLE" {
		return Center, true
	}
	for p, s := range pointNames {
		if s == n {
			return AnchorPoint(p), true
		}
	}
	return TopLeft, false
}

// Offset returns the point's position relative to the top-left corner of a
// w x h rectangle.
func (p AnchorPoint) Offset(w, h float64) (dx, dy float64) {
	switch p {
	case Top:
		return w / 2, 0
	case TopRight:
		return w, 0
	case Left:
		return 0, h / 2
	case Center:
		return w / 2, h / 2
	case Right:
		return w, h / 2
	case BottomLeft:
		return 0, h
	case Bottom:
		return w / 2, h
	case BottomRight:
		return w, h
	default:
		return 0, 0
	}
}

// AnchorOffset maps a point name and frame size to the point's offset from
// the frame's top-left corner. Unknown or empty names map to (0, 0).
func AnchorOffset(point string, w, h float64) (dx, dy float64) {
	p, _ := ParsePoint(point)
	return p.Offset(w, h)
}
