// Package pkg provides the core libraries of anchorlayout.
//
// # Overview
//
// Anchorlayout turns declarative frame layouts into absolute rectangles. A
// frame is placed by anchoring one of its nine named points to a point on
// another frame (or on the screen) plus a pixel offset; containers without a
// size grow to fit their children. The pkg directory is organized into:
//
//  1. [geom], [frame] - Geometry primitives and the frame model
//  2. [depgraph], [layout] - Dependency ordering and resolution
//  3. [snapshot], [cache], [store] - Results and their persistence
//  4. [pipeline] - Orchestration (decode → resolve → snapshot) with caching
//
// # Architecture
//
// The data flow of one resolution:
//
//	JSON / YAML / TOML declarations
//	         ↓
//	    [frame] package (decode, shorthand anchors, parent links)
//	         ↓
//	    [depgraph] package (anchor and parent edges, ordering, cycles)
//	         ↓
//	    [layout] package (positions, size inference, containment policy)
//	         ↓
//	    [snapshot] package (absolute + parent-local geometry, diagnostics)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/anchorlayout/pkg/frame"
//	    "github.com/matzehuels/anchorlayout/pkg/geom"
//	    "github.com/matzehuels/anchorlayout/pkg/layout"
//	)
//
//	set, _, err := frame.Load("hud.yaml")
//	if err != nil {
//	    return err
//	}
//	res := layout.ResolveAll(set, layout.Options{
//	    Policy: layout.ClampIntoBounds,
//	    Canvas: geom.Size{Width: 1920, Height: 1080},
//	})
//	for _, name := range res.Kept() {
//	    fmt.Println(name, res.Frames[name])
//	}
//
// # Main Packages
//
// [geom] - Points, vectors, sizes and rectangles. The nine anchor points and
// their offsets inside a rectangle. Clamping a rectangle into a canvas.
//
// [frame] - Frames, anchors and ordered frame sets. Declaration documents in
// JSON, YAML and TOML; the "POINT,relativeTo,relativePoint,x,y~..." anchor
// shorthand and "a~b~c" children shorthand.
//
// [depgraph] - The dependency graph between frames. Kahn ordering with a
// lexicographic tie-break, cycle listing, DOT/Mermaid export and SVG
// rendering through Graphviz.
//
// [layout] - The resolver. Resolution never fails: cycles, unknown targets,
// runaway recursion and non-converging sizes become diagnostics on the
// result. Reparenting converts the result into parent-local coordinates.
//
// [snapshot] - Serializable resolution results with IDs.
//
// [cache] - Resolution and graph caches: file, Redis, or none.
//
// [store] - Snapshot persistence: file, MongoDB, or memory.
//
// [pipeline] - The runner shared by the CLI and the HTTP server.
//
// [config] - The TOML configuration file.
//
// [observability] - Hooks for metrics and tracing.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/layout/...             # Specific package
//	go test -run Example                 # Examples only
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/anchorlayout/pkg/geom
// [frame]: https://pkg.go.dev/github.com/matzehuels/anchorlayout/pkg/frame
// [depgraph]: https://pkg.go.dev/github.com/matzehuels/anchorlayout/pkg/depgraph
// [layout]: https://pkg.go.dev/github.com/matzehuels/anchorlayout/pkg/layout
// [snapshot]: https://pkg.go.dev/github.com/matzehuels/anchorlayout/pkg/snapshot
// [cache]: https://pkg.go.dev/github.com/matzehuels/anchorlayout/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/anchorlayout/pkg/store
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/anchorlayout/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/matzehuels/anchorlayout/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/anchorlayout/pkg/observability
package pkg
