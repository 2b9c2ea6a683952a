package depgraph

import "slices"

// Order returns a topological order in which every frame follows the frames
// it depends on. Among frames that are ready at the same time the
// lexicographically smallest name goes first.
//
// If the graph has a cycle, Order returns the insertion order and false.
func (g *Graph) Order() ([]string, bool) {
	pending := make(map[string]int, len(g.nodes))
	var ready []string
	for _, n := range g.nodes {
		pending[n] = len(g.deps[n])
		if pending[n] == 0 {
			ready = append(ready, n)
		}
	}
	slices.Sort(ready)

	order := make([]string, 0, len(g.nodes))
	for len(ready) > 0 {
		curr := ready[0]
		ready = ready[1:]
		order = append(order, curr)

		for _, d := range g.dependents[curr] {
			pending[d]--
			if pending[d] == 0 {
				ready = insertSorted(ready, d)
			}
		}
	}

	if len(order) < len(g.nodes) {
		return g.Nodes(), false
	}
	return order, true
}

// Cycles returns the dependency cycles found by a depth-first search over
// nodes in sorted order. Each cycle lists its members starting from the
// node where the search entered it. A frame anchored to itself is a cycle of
// one.
func (g *Graph) Cycles() [][]string {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(g.nodes))
	var stack []string
	var cycles [][]string

	var dfs func(n string)
	dfs = func(n string) {
		color[n] = gray
		stack = append(stack, n)
		for _, d := range g.deps[n] {
			switch color[d] {
			case white:
				dfs(d)
			case gray:
				i := slices.Index(stack, d)
				cycles = append(cycles, slices.Clone(stack[i:]))
			}
		}
		stack = stack[:len(stack)-1]
		color[n] = black
	}

	for _, n := range slices.Sorted(slices.Values(g.nodes)) {
		if color[n] == white {
			dfs(n)
		}
	}
	return cycles
}

// Depths returns, for every node, the length of the longest dependency chain
// below it. Frames with no dependencies are at depth 0. Nodes on or behind a
// cycle keep depth 0.
func (g *Graph) Depths() map[string]int {
	depths := make(map[string]int, len(g.nodes))
	order, ok := g.Order()
	if !ok {
		for _, n := range g.nodes {
			depths[n] = 0
		}
		return depths
	}
	for _, n := range order {
		d := 0
		for _, dep := range g.deps[n] {
			d = max(d, depths[dep]+1)
		}
		depths[n] = d
	}
	return depths
}
