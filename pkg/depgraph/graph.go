package depgraph

import (
	"errors"
	"slices"

	"github.com/matzehuels/anchorlayout/pkg/frame"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] for an empty name.
	ErrInvalidNodeID = errors.New("node name must not be empty")

	// ErrDuplicateNode is returned by [Graph.AddNode] when the name exists.
	ErrDuplicateNode = errors.New("duplicate node")

	// ErrUnknownNode is returned by [Graph.AddEdge] when either endpoint is
	// not in the graph.
	ErrUnknownNode = errors.New("unknown node")
)

// EdgeKind tells why one frame depends on another.
type EdgeKind int

const (
	// EdgeParent links a child to the frame that declares it.
	EdgeParent EdgeKind = iota
	// EdgeAnchor links a frame to an anchor target.
	EdgeAnchor
)

func (k EdgeKind) String() string {
	if k == EdgeParent {
		return "parent"
	}
	return "anchor"
}

// Edge records that From must be resolved after To.
type Edge struct {
	From string
	To   string
	Kind EdgeKind
}

// Graph is a directed dependency graph over frame names. Nodes keep their
// insertion order; adjacency lists are sorted and free of duplicates.
//
// Graph is not safe for concurrent mutation.
type Graph struct {
	nodes      []string
	index      map[string]int
	edges      []Edge
	deps       map[string][]string // frame -> frames it needs
	dependents map[string][]string // frame -> frames that need it
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		index:      make(map[string]int),
		deps:       make(map[string][]string),
		dependents: make(map[string][]string),
	}
}

// Build derives the dependency graph of a frame set. Edges are added for the
// derived parent link and for every anchor that targets a declared frame.
func Build(s *frame.Set) *Graph {
	g := New()
	for _, f := range s.Frames() {
		_ = g.AddNode(f.Name)
	}
	for _, f := range s.Frames() {
		if p, ok := s.Parent(f.Name); ok {
			_ = g.AddEdge(Edge{From: f.Name, To: p, Kind: EdgeParent})
		}
		for _, ref := range f.References() {
			if s.Has(ref) {
				_ = g.AddEdge(Edge{From: f.Name, To: ref, Kind: EdgeAnchor})
			}
		}
	}
	return g
}

// AddNode adds a frame name.
func (g *Graph) AddNode(name string) error {
	if name == "" {
		return ErrInvalidNodeID
	}
	if _, ok := g.index[name]; ok {
		return ErrDuplicateNode
	}
	g.index[name] = len(g.nodes)
	g.nodes = append(g.nodes, name)
	return nil
}

// AddEdge adds a dependency. Repeated edges between the same pair are kept
// in [Graph.Edges] but counted once for ordering.
func (g *Graph) AddEdge(e Edge) error {
	if !g.Has(e.From) || !g.Has(e.To) {
		return ErrUnknownNode
	}
	g.edges = append(g.edges, e)
	g.deps[e.From] = insertSorted(g.deps[e.From], e.To)
	g.dependents[e.To] = insertSorted(g.dependents[e.To], e.From)
	return nil
}

func insertSorted(list []string, v string) []string {
	i, found := slices.BinarySearch(list, v)
	if found {
		return list
	}
	return slices.Insert(list, i, v)
}

// Has reports whether name is a node.
func (g *Graph) Has(name string) bool {
	_, ok := g.index[name]
	return ok
}

// Nodes returns node names in insertion order.
func (g *Graph) Nodes() []string { return slices.Clone(g.nodes) }

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges, duplicates included.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Dependencies returns the sorted names name depends on.
func (g *Graph) Dependencies(name string) []string { return slices.Clone(g.deps[name]) }

// Dependents returns the sorted names that depend on name.
func (g *Graph) Dependents(name string) []string { return slices.Clone(g.dependents[name]) }

// InDegree returns the number of distinct dependencies of name.
func (g *Graph) InDegree(name string) int { return len(g.deps[name]) }
