package mst

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aharonba/mstnet/internal/graphstore"
)

// sevenVertexGraph builds the worked example from spec.md §8 scenario 1.
func sevenVertexGraph() *graphstore.Graph {
	g := graphstore.New(7)
	g.AddEdge(0, 5, 10)
	g.AddEdge(5, 4, 25)
	g.AddEdge(6, 4, 24)
	g.AddEdge(1, 6, 14)
	g.AddEdge(0, 1, 28)
	g.AddEdge(4, 3, 22)
	g.AddEdge(3, 2, 12)
	g.AddEdge(2, 1, 16)
	g.AddEdge(3, 6, 18)
	return g
}

func totalWeight(edges []Edge) int {
	seen := make(map[int]bool)
	sum := 0
	for _, e := range edges {
		if !seen[e.ID] {
			seen[e.ID] = true
			sum += e.Weight
		}
	}
	return sum
}

func idSet(edges []Edge) []int {
	ids := make([]int, len(edges))
	for i, e := range edges {
		ids[i] = e.ID
	}
	sort.Ints(ids)
	return ids
}

func TestKruskalSevenVertexExample(t *testing.T) {
	g := sevenVertexGraph()
	out, err := Kruskal.Solve(g.Edges(), g.VertexCount)
	require.NoError(t, err)

	require.Len(t, out, 6)
	assert.Equal(t, 99, totalWeight(out))

	weights := make([]int, len(out))
	for i, e := range out {
		weights[i] = e.Weight
	}
	sort.Ints(weights)
	assert.Equal(t, []int{10, 12, 14, 16, 22, 25}, weights)
}

func TestPrimAndKruskalAgreeByID(t *testing.T) {
	g := sevenVertexGraph()
	primOut, err := Prim.Solve(g.Edges(), g.VertexCount)
	require.NoError(t, err)
	kruskalOut, err := Kruskal.Solve(g.Edges(), g.VertexCount)
	require.NoError(t, err)

	assert.Equal(t, idSet(kruskalOut), idSet(primOut))
	assert.Equal(t, totalWeight(kruskalOut), totalWeight(primOut))
}

func TestTreePropertyOnConnectedGraph(t *testing.T) {
	g := sevenVertexGraph()
	out, err := Kruskal.Solve(g.Edges(), g.VertexCount)
	require.NoError(t, err)
	assert.Len(t, out, g.VertexCount-1)
}

func TestRemoveThenSolveMatchesScenario3(t *testing.T) {
	g := sevenVertexGraph()
	g.RemoveEdge(3, 6)

	// Edge 3-6 (weight 18) closes the cycle 3-2-1-6 and is not in the
	// MST, so removing it leaves the tree unchanged.
	out, err := Kruskal.Solve(g.Edges(), g.VertexCount)
	require.NoError(t, err)
	assert.Equal(t, 99, totalWeight(out))

	weights := make([]int, len(out))
	for i, e := range out {
		weights[i] = e.Weight
	}
	sort.Ints(weights)
	assert.Equal(t, []int{10, 12, 14, 16, 22, 25}, weights)
}

func TestDisconnectedGraphProducesSpanningForest(t *testing.T) {
	g := graphstore.New(4)
	g.AddEdge(0, 1, 5)
	g.AddEdge(2, 3, 7)

	for _, algo := range []Algorithm{Prim, Kruskal} {
		out, err := algo.Solve(g.Edges(), g.VertexCount)
		require.NoError(t, err)
		assert.Lenf(t, out, 2, "%s should produce one edge per component", algo)
		assert.Equal(t, 12, totalWeight(out))
	}
}

func TestEmptyGraphProducesEmptyForest(t *testing.T) {
	g := graphstore.New(0)
	out, err := Kruskal.Solve(g.Edges(), g.VertexCount)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestParseAlgorithmRejectsUnknown(t *testing.T) {
	_, err := ParseAlgorithm("Dijkstra")
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}

func TestParseAlgorithmAcceptsKnown(t *testing.T) {
	a, err := ParseAlgorithm("Prim")
	require.NoError(t, err)
	assert.Equal(t, Prim, a)
}
