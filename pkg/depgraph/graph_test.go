package depgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/anchorlayout/pkg/frame"
)

func anchored(name, target string) frame.Frame {
	return frame.Frame{Name: name, Anchors: []frame.Anchor{frame.NewAnchor("TOPLEFT", target, "TOPLEFT", 0, 0)}}
}

func TestBuild(t *testing.T) {
	s := frame.MustFromFrames(
		frame.Frame{Name: "Panel", Children: []string{"Title"}},
		anchored("Title", "Panel"),
		anchored("Footer", "Missing"),
		anchored("Pinned", "10"),
		frame.Frame{Name: "Label", Anchors: []frame.Anchor{
			frame.NewAnchor("TOP", "Title", "BOTTOM", 0, 0),
			frame.NewAnchor("BOTTOM", "Footer", "TOP", 0, 0),
		}},
	)
	g := Build(s)

	assert.Equal(t, []string{"Panel", "Title", "Footer", "Pinned", "Label"}, g.Nodes())
	assert.Equal(t, []string{"Panel"}, g.Dependencies("Title"), "parent and anchor edges collapse")
	assert.Empty(t, g.Dependencies("Footer"), "unknown targets add no edge")
	assert.Empty(t, g.Dependencies("Pinned"), "numeric targets add no edge")
	assert.Equal(t, []string{"Footer", "Title"}, g.Dependencies("Label"), "every anchor adds an edge")
	assert.Equal(t, []string{"Label"}, g.Dependents("Footer"))
	assert.Equal(t, 4, g.EdgeCount())
}

func TestAddErrors(t *testing.T) {
	g := New()
	require.NoError(t, g.AddNode("A"))
	assert.ErrorIs(t, g.AddNode("A"), ErrDuplicateNode)
	assert.ErrorIs(t, g.AddNode(""), ErrInvalidNodeID)
	assert.ErrorIs(t, g.AddEdge(Edge{From: "A", To: "B"}), ErrUnknownNode)
}

func TestOrder(t *testing.T) {
	g := New()
	for _, n := range []string{"d", "c", "b", "a", "root"} {
		require.NoError(t, g.AddNode(n))
	}
	require.NoError(t, g.AddEdge(Edge{From: "a", To: "root", Kind: EdgeAnchor}))
	require.NoError(t, g.AddEdge(Edge{From: "b", To: "root", Kind: EdgeAnchor}))
	require.NoError(t, g.AddEdge(Edge{From: "c", To: "a", Kind: EdgeParent}))
	require.NoError(t, g.AddEdge(Edge{From: "c", To: "b", Kind: EdgeAnchor}))

	order, ok := g.Order()
	assert.True(t, ok)
	assert.Equal(t, []string{"d", "root", "a", "b", "c"}, order)
}

func TestOrderIsDeterministic(t *testing.T) {
	s := frame.MustFromFrames(
		anchored("z", "UIParent"), anchored("y", "z"), anchored("x", "z"), anchored("w", ""),
	)
	first, _ := Build(s).Order()
	for range 20 {
		again, ok := Build(s).Order()
		assert.True(t, ok)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, []string{"w", "z", "x", "y"}, first)
}

func TestOrderCycleFallsBack(t *testing.T) {
	s := frame.MustFromFrames(anchored("B", "A"), anchored("A", "B"), frame.Frame{Name: "C"})
	g := Build(s)

	order, ok := g.Order()
	assert.False(t, ok)
	assert.Equal(t, []string{"B", "A", "C"}, order)

	cycles := g.Cycles()
	require.Len(t, cycles, 1)
	assert.ElementsMatch(t, []string{"A", "B"}, cycles[0])
}

func TestSelfAnchorIsCycle(t *testing.T) {
	g := Build(frame.MustFromFrames(anchored("A", "A")))
	_, ok := g.Order()
	assert.False(t, ok)
	assert.Equal(t, [][]string{{"A"}}, g.Cycles())
}

func TestDepths(t *testing.T) {
	s := frame.MustFromFrames(
		frame.Frame{Name: "A"}, anchored("B", "A"), anchored("C", "B"), anchored("D", "A"),
	)
	assert.Equal(t, map[string]int{"A": 0, "B": 1, "C": 2, "D": 1}, Build(s).Depths())
}
