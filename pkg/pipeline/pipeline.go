// Package pipeline runs the decode → resolve → snapshot flow for anchorlayout.
//
// The CLI and the HTTP API share this package so both produce identical
// snapshots for identical inputs, and both go through the same cache.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	set, _, err := runner.Load(ctx, "frames.yaml")
//	if err != nil {
//	    return err
//	}
//	snap, hit, err := runner.Resolve(ctx, set, pipeline.Options{
//	    Layout: layout.Options{Policy: layout.ClampIntoBounds, Canvas: canvas},
//	})
//
// Render the dependency graph of a set:
//
//	svg, _, err := runner.Graph(ctx, set, pipeline.GraphOptions{Format: pipeline.FormatSVG})
package pipeline

import (
	"bytes"
	"slices"

	"github.com/matzehuels/anchorlayout/pkg/cache"
	"github.com/matzehuels/anchorlayout/pkg/errors"
	"github.com/matzehuels/anchorlayout/pkg/frame"
	"github.com/matzehuels/anchorlayout/pkg/layout"
)

// Graph output formats.
const (
	FormatDOT     = "dot"
	FormatMermaid = "mermaid"
	FormatSVG     = "svg"
)

// ValidGraphFormats is the set of supported graph formats.
var ValidGraphFormats = []string{FormatDOT, FormatMermaid, FormatSVG}

// Options configures Runner.Resolve.
type Options struct {
	Layout layout.Options
	// Refresh bypasses the cache lookup. The fresh result is still cached.
	Refresh bool
}

// Validate checks the layout options and maps failures to coded errors.
func (o Options) Validate() error {
	if err := o.Layout.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPolicy, err, "invalid layout options")
	}
	return nil
}

// KeyOpts returns the cache key fields for the normalized layout options.
func (o Options) KeyOpts() cache.ResolveKeyOpts {
	l := o.Layout.Normalized()
	return cache.ResolveKeyOpts{
		Policy:     l.Policy.String(),
		Width:      l.Canvas.Width,
		Height:     l.Canvas.Height,
		MaxDepth:   l.MaxDepth,
		MaxPasses:  l.MaxPasses,
		Padding:    l.Padding,
		Spacing:    l.Spacing,
		RowHeight:  l.RowHeight,
		Indent:     l.Indent,
		StackKinds: l.StackKinds,
	}
}

// GraphOptions configures Runner.Graph.
type GraphOptions struct {
	Format    string
	Detailed  bool
	Highlight []string
	Refresh   bool
}

// Validate checks the format and applies the default (dot).
func (o *GraphOptions) Validate() error {
	if o.Format == "" {
		o.Format = FormatDOT
	}
	if !slices.Contains(ValidGraphFormats, o.Format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid graph format %q (want dot, mermaid or svg)", o.Format)
	}
	return nil
}

// DeclarationHash hashes the canonical JSON form of set. Two sets that
// declare the same frames in the same order hash equally regardless of the
// source format.
func DeclarationHash(set *frame.Set) string {
	var buf bytes.Buffer
	if err := frame.EncodeJSON(&buf, frame.NewDocument(set)); err != nil {
		return ""
	}
	return cache.Hash(buf.Bytes())
}
