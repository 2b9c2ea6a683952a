package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/anchorlayout/pkg/frame"
	"github.com/matzehuels/anchorlayout/pkg/layout"
)

// layoutFlags are the resolution flags shared by resolve, watch and inspect.
// Flags the user did not set fall back to the config file.
type layoutFlags struct {
	policy     string
	width      float64
	height     float64
	maxDepth   int
	maxPasses  int
	stackKinds string
	refresh    bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.policy, "policy", "p", "", "containment policy: none, reject, clamp")
	fs.Float64Var(&f.width, "width", 0, "canvas width")
	fs.Float64Var(&f.height, "height", 0, "canvas height")
	fs.IntVar(&f.maxDepth, "max-depth", 0, "anchor recursion bound")
	fs.IntVar(&f.maxPasses, "max-passes", 0, "size inference pass cap")
	fs.StringVar(&f.stackKinds, "stack-kinds", "", "comma-separated type tags that use stack layout")
	fs.BoolVar(&f.refresh, "refresh", false, "ignore cached results")
}

// options merges the flags over the config file. A canvas declared in doc
// applies when neither the flags nor the config set one.
func (f *layoutFlags) options(c *CLI, cmd *cobra.Command, doc *frame.Document) (layout.Options, error) {
	opts, err := c.cfg.LayoutOptions()
	if err != nil {
		return opts, err
	}
	fs := cmd.Flags()
	if fs.Changed("policy") {
		if opts.Policy, err = layout.ParsePolicy(f.policy); err != nil {
			return opts, err
		}
	}
	if fs.Changed("width") {
		opts.Canvas.Width = f.width
	}
	if fs.Changed("height") {
		opts.Canvas.Height = f.height
	}
	if fs.Changed("max-depth") {
		opts.MaxDepth = f.maxDepth
	}
	if fs.Changed("max-passes") {
		opts.MaxPasses = f.maxPasses
	}
	if fs.Changed("stack-kinds") {
		opts.StackKinds = splitList(f.stackKinds)
		if opts.StackKinds == nil {
			opts.StackKinds = []string{}
		}
	}
	if opts.Canvas.IsZero() && doc != nil && doc.Canvas != nil {
		opts.Canvas = *doc.Canvas
	}
	return opts, opts.Validate()
}

// splitList parses a comma-separated flag value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
