package layout

import "github.com/matzehuels/anchorlayout/pkg/geom"

// ApplyPolicy constrains r to canvas. It reports false when the policy
// rejects the rectangle. A zero canvas accepts everything unchanged.
func ApplyPolicy(r geom.Rect, p Policy, canvas geom.Size) (geom.Rect, bool) {
	if canvas.IsZero() {
		return r, true
	}
	switch p {
	case RejectOutside:
		return r, r.Within(canvas)
	case ClampIntoBounds:
		return ClampFrame(r, canvas), true
	}
	return r, true
}

// ClampFrame translates r so it lies inside canvas, keeping its size. A
// frame larger than the canvas on an axis is pinned to 0 on that axis.
// Interactive hosts call it directly when a single frame is dragged.
func ClampFrame(r geom.Rect, canvas geom.Size) geom.Rect {
	return geom.Clamp(r, canvas)
}
