// Package frame defines the frame graph model consumed by the layout
// resolver: named rectangular frames, their anchor declarations, and the
// explicit parent/child links between them.
//
// # Frames
//
// A [Frame] carries optional explicit geometry (x, y, width, height), a type
// tag, a scale factor, an ordered list of [Anchor] records, and the names of
// its declared children. Unset geometry is represented by nil pointers, not
// by zero, so the resolver can tell "not yet resolved" apart from "placed at
// the origin".
//
// Only the first anchor of a frame determines its placement. Later anchors
// are kept (they still order the frame after its targets) but never move it.
//
// # Sets
//
// A [Set] holds frames in declaration order and indexes them by name. Frame
// names must be unique: [Set.Add] rejects a duplicate with
// [ErrDuplicateFrame], and the decoders reject the whole batch. Parent links
// are derived from children declarations; when several frames claim the same
// child the last declaration wins and the conflict is reported by
// [Set.ParentConflicts].
//
// # Declaration Feeds
//
// Frame declarations arrive as JSON, YAML or TOML documents (see
// [DecodeJSON], [DecodeYAML], [DecodeTOML] and [ReadFile]). Anchors may be
// given as objects or with the compact shorthand parsed by [ParseAnchors]:
//
//	TOPLEFT,UIParent,BOTTOMRIGHT,5,5~CENTER,Header,CENTER
//
// Each anchor is point, relativeTo, relativePoint, x offset, y offset. Any
// field may be empty. A numeric relativeTo is an absolute-offset shortcut:
// "TOPLEFT,10,20" places the frame at (10, 20) regardless of points.
package frame
