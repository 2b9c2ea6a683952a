package depgraph

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-graphviz"
)

// Options configures graph export.
type Options struct {
	// Detailed adds the dependency depth to node labels.
	Detailed bool
	// Highlight marks nodes (for example cycle members) with a red outline.
	Highlight []string
}

// ToDOT converts the graph to Graphviz DOT. Edges are drawn from dependency
// to dependent so the layout reads top-down from roots. Parent edges are
// dashed.
func ToDOT(g *Graph, opts Options) string {
	highlight := make(map[string]bool, len(opts.Highlight))
	for _, n := range opts.Highlight {
		highlight[n] = true
	}
	var depths map[string]int
	if opts.Detailed {
		depths = g.Depths()
	}

	var buf bytes.Buffer
	buf.WriteString("digraph frames {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		label := n
		if opts.Detailed {
			label = fmt.Sprintf("%s\ndepth: %d", n, depths[n])
		}
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if highlight[n] {
			attrs = append(attrs, "color=red", "penwidth=2")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if e.Kind == EdgeParent {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed];\n", e.To, e.From)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.To, e.From)
	}

	buf.WriteString("}\n")
	return buf.String()
}

var mermaidUnsafe = regexp.MustCompile(`[^A-Za-z0-9_]`)

// ToMermaid converts the graph to a Mermaid flowchart.
func ToMermaid(g *Graph) string {
	ids := make(map[string]string, g.NodeCount())
	var buf bytes.Buffer
	buf.WriteString("flowchart TD\n")
	for i, n := range g.Nodes() {
		id := fmt.Sprintf("n%d_%s", i, mermaidUnsafe.ReplaceAllString(n, "_"))
		ids[n] = id
		fmt.Fprintf(&buf, "  %s[\"%s\"]\n", id, strings.ReplaceAll(n, `"`, "#quot;"))
	}
	for _, e := range g.Edges() {
		arrow := "-->"
		if e.Kind == EdgeParent {
			arrow = "-.->"
		}
		fmt.Fprintf(&buf, "  %s %s %s\n", ids[e.To], arrow, ids[e.From])
	}
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
