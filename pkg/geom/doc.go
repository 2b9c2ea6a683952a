// Package geom provides the geometry primitives shared by the anchor layout
// resolver and its consumers.
//
// # Anchor Points
//
// A frame exposes nine named anchor points. [AnchorOffset] maps a point name
// and a frame size to the point's offset from the frame's top-left corner:
//
//	TOPLEFT     (0, 0)      TOP     (w/2, 0)      TOPRIGHT     (w, 0)
//	LEFT        (0, h/2)    CENTER  (w/2, h/2)    RIGHT        (w, h/2)
//	BOTTOMLEFT  (0, h)      BOTTOM  (w/2, h)      BOTTOMRIGHT  (w, h)
//
// Point names are case-insensitive. MIDDLE is an alias for CENTER. Empty and
// unrecognized names degrade to TOPLEFT; the mapping never fails.
//
// # Rectangles
//
// [Rect] is an axis-aligned rectangle in a y-down coordinate space. [Clamp]
// translates a rectangle into a canvas without resizing it, which is what
// interactive hosts use to keep a dragged frame on screen.
package geom
