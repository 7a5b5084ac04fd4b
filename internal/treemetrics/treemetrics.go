// Package treemetrics runs all-pairs Dijkstra over an MST's edge set and
// aggregates the resulting distances into the metrics SolveMST replies
// with: total tree weight, longest shortest path, and the mean finite
// pairwise distance.
package treemetrics

import (
	"container/heap"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/Aharonba/mstnet/internal/mst"
)

// Unreachable is the sentinel distance reported for a vertex pair with no
// path between them in the MST (cross-component pairs of a spanning
// forest). It is reported, never summed into an aggregate.
const Unreachable = math.MaxInt

// ShortestPathMap holds, for every vertex touched by the MST, its
// distance to every other touched vertex. A missing inner key means
// Unreachable.
type ShortestPathMap map[int]map[int]int

// Result is the full set of derived metrics for one SolveMST call,
// computed once and treated as read-only thereafter.
type Result struct {
	Edges           []mst.Edge
	TotalWeight     int
	LongestDistance int
	AverageDistance float64
	Distances       ShortestPathMap
	Vertices        []int // sorted, every vertex touched by at least one MST edge
}

// Compute builds the tree metrics for edges, an MST (or spanning forest)
// over vertexCount vertices.
func Compute(edges []mst.Edge, vertexCount int) Result {
	adj := adjacency(edges, vertexCount)

	vertices := touchedVertices(edges)
	sort.Ints(vertices)
	distances := make(ShortestPathMap, len(vertices))
	for _, v := range vertices {
		distances[v] = dijkstra(adj, vertexCount, v)
	}

	return Result{
		Edges:           edges,
		TotalWeight:     totalWeight(edges),
		LongestDistance: longestDistance(distances, vertices),
		AverageDistance: averageDistance(distances, vertices),
		Distances:       distances,
		Vertices:        vertices,
	}
}

// Distance reports the shortest distance between i and j within the MST,
// or Unreachable if the two vertices lie in different components of the
// spanning forest.
func (r Result) Distance(i, j int) int {
	d, ok := r.Distances[i][j]
	if !ok {
		return Unreachable
	}
	return d
}

func totalWeight(edges []mst.Edge) int {
	seen := make(map[int]bool, len(edges))
	sum := 0
	for _, e := range edges {
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		sum += e.Weight
	}
	return sum
}

func adjacency(edges []mst.Edge, vertexCount int) [][]mst.Edge {
	adj := make([][]mst.Edge, vertexCount)
	for _, e := range edges {
		adj[e.From] = append(adj[e.From], e)
		adj[e.To] = append(adj[e.To], mst.Edge{From: e.To, To: e.From, Weight: e.Weight, ID: e.ID})
	}
	return adj
}

func touchedVertices(edges []mst.Edge) []int {
	seen := make(map[int]bool)
	for _, e := range edges {
		seen[e.From] = true
		seen[e.To] = true
	}
	vertices := make([]int, 0, len(seen))
	for v := range seen {
		vertices = append(vertices, v)
	}
	return vertices
}

// distItem is a (vertex, distance) pair in Dijkstra's lazy-decrease-key
// min-heap: a shorter distance is pushed as a fresh entry rather than
// updating one in place, and stale entries are dropped on pop once the
// vertex is finalized.
type distItem struct {
	vertex, dist int
}

type distHeap []distItem

func (h distHeap) Len() int            { return len(h) }
func (h distHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h distHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *distHeap) Push(x any)         { *h = append(*h, x.(distItem)) }
func (h *distHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// dijkstra runs single-source shortest paths from source over adj, an MST
// adjacency list. Although a tree admits a single DFS/BFS pass, Dijkstra
// is used so the routine stays correct if ever pointed at a non-tree
// graph, per spec.md §4.3.
func dijkstra(adj [][]mst.Edge, vertexCount, source int) map[int]int {
	dist := make([]int, vertexCount)
	visited := make([]bool, vertexCount)
	for i := range dist {
		dist[i] = Unreachable
	}
	dist[source] = 0

	q := &distHeap{{vertex: source, dist: 0}}
	heap.Init(q)

	for q.Len() > 0 {
		cur := heap.Pop(q).(distItem)
		u := cur.vertex
		if visited[u] {
			continue
		}
		visited[u] = true

		for _, e := range adj[u] {
			nd := dist[u] + e.Weight
			if !visited[e.To] && nd < dist[e.To] {
				dist[e.To] = nd
				heap.Push(q, distItem{vertex: e.To, dist: nd})
			}
		}
	}

	out := make(map[int]int, vertexCount)
	for v, d := range dist {
		if !visited[v] {
			continue
		}
		out[v] = d
	}
	return out
}

func longestDistance(distances ShortestPathMap, vertices []int) int {
	longest := 0
	for _, i := range vertices {
		for _, j := range vertices {
			if i == j {
				continue
			}
			d, ok := distances[i][j]
			if !ok {
				continue
			}
			if d > longest {
				longest = d
			}
		}
	}
	return longest
}

// averageDistance is the mean of strictly positive finite distances over
// ordered pairs (i, j) with i != j, computed with gonum's stat.Mean. It
// is 0 when no such pair exists, matching spec.md §3.
func averageDistance(distances ShortestPathMap, vertices []int) float64 {
	var values []float64
	for _, i := range vertices {
		for _, j := range vertices {
			if i == j {
				continue
			}
			d, ok := distances[i][j]
			if !ok || d <= 0 {
				continue
			}
			values = append(values, float64(d))
		}
	}
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}
