// Package layout resolves the absolute geometry of a frame set.
//
// [ResolveAll] is the entry point. It builds the dependency graph, orders
// frames so every anchor target and parent is placed before the frames that
// depend on it, and places each frame by its first anchor:
//
//	position = target.origin + target.point + offset - own.point
//
// where the point terms come from [geom.AnchorOffset] on the respective
// (scaled) sizes. Frames that pin x or y keep their declared position.
//
// # Size Inference
//
// A frame with declared children and no declared size is sized from its
// children. Frames whose type tag or name contains one of
// [Options.StackKinds] use stack layout: fixed-height rows with a left
// indent. Every other container uses bounding-box layout. Unanchored children
// of an inferred container are flowed top to bottom inside it. Positions are
// re-resolved after each size change until sizes stop changing or
// [Options.MaxPasses] is reached.
//
// # Degraded Modes
//
// Resolution never fails. A dependency cycle falls back to declaration order,
// recursion deeper than [Options.MaxDepth] returns the last known geometry,
// unknown anchor targets resolve against the screen root, and a child claimed
// by several parents belongs to the last one. Each case is logged at warn
// level and recorded as a [Diagnostic] in the [Result].
//
// # Policies
//
// After resolution a [Policy] is applied against the canvas: [RejectOutside]
// drops frames not fully inside it, [ClampIntoBounds] translates them inside.
// [Reparent] then converts absolute geometry into parent-local coordinates so
// moving a parent carries its descendants along.
//
// The input set is never modified; results live in a separate [Result].
package layout
