package mst

import (
	"container/heap"
	"math"

	"github.com/Aharonba/mstnet/internal/graphstore"
)

// candidateEdge is one entry in Prim's min-ordered candidate set, tied
// to the vertex it would bring into the tree (to) and the vertex that
// would select it (from). A synthetic seed edge has from == to and
// carries id -1; it never contributes to the result, it only lets the
// growth loop bootstrap a new component.
type candidateEdge struct {
	weight   int
	from, to int
	id       int
}

// candidateHeap orders by (weight, to) ascending, matching spec.md's
// deterministic tie-break rule.
type candidateHeap []candidateEdge

func (h candidateHeap) Len() int { return len(h) }
func (h candidateHeap) Less(i, j int) bool {
	if h[i].weight != h[j].weight {
		return h[i].weight < h[j].weight
	}
	return h[i].to < h[j].to
}
func (h candidateHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x any)        { *h = append(*h, x.(candidateEdge)) }
func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// solvePrim builds an adjacency list from the directed edges and grows
// the tree outward from vertex 0 with a lazily-deleted min-heap of
// candidate edges, pushing an edge only when it lowers minWeight[v] of
// its target. When the candidate set empties
// before every vertex is selected (a disconnected input), it reseeds
// from the lowest-indexed unselected vertex so the result is the union
// of each component's MST, as spec.md §3 requires of MSTEdgeSet.
func solvePrim(edges []graphstore.Edge, vertexCount int) []Edge {
	if vertexCount == 0 {
		return nil
	}

	adj := make([][]candidateEdge, vertexCount)
	for _, e := range edges {
		adj[e.From] = append(adj[e.From], candidateEdge{weight: e.Weight, from: e.From, to: e.To, id: e.ID})
	}

	minWeight := make([]int, vertexCount)
	for i := range minWeight {
		minWeight[i] = math.MaxInt
	}
	selected := make([]bool, vertexCount)

	var out []Edge
	q := &candidateHeap{}
	heap.Init(q)

	seed := func(root int) {
		minWeight[root] = 0
		heap.Push(q, candidateEdge{weight: 0, from: root, to: root, id: -1})
	}
	seed(0)

	for remaining := vertexCount; remaining > 0; {
		for q.Len() > 0 {
			cur := heap.Pop(q).(candidateEdge)
			v := cur.to
			if selected[v] {
				continue
			}
			selected[v] = true
			remaining--
			if cur.from != cur.to {
				out = append(out, Edge{From: cur.from, To: v, Weight: cur.weight, ID: cur.id})
			}
			for _, e := range adj[v] {
				if !selected[e.to] && e.weight < minWeight[e.to] {
					minWeight[e.to] = e.weight
					heap.Push(q, e)
				}
			}
		}
		if remaining == 0 {
			break
		}
		for v := 0; v < vertexCount; v++ {
			if !selected[v] {
				seed(v)
				break
			}
		}
	}

	return out
}
