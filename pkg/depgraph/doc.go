// Package depgraph builds the dependency graph between frames and derives
// the order in which frames are resolved.
//
// A frame depends on its parent and on every frame any of its anchors
// targets. Edges therefore point from the dependent frame to the frame it
// needs: child to parent, anchored frame to anchor target. Root, numeric and
// unknown targets add no edge.
//
// # Ordering
//
// [Graph.Order] runs Kahn's algorithm with a lexicographic tie-break among
// ready frames, so the order is a pure function of the declarations. When
// the graph contains a cycle the order cannot cover every frame; Order then
// returns declaration order and reports false. [Graph.Cycles] lists the
// offending cycles for diagnostics.
//
// # Export
//
// [ToDOT] and [ToMermaid] render the graph for inspection; [RenderSVG] turns
// DOT into SVG through the embedded Graphviz runtime.
package depgraph
