package mst

import (
	"sort"

	"github.com/Aharonba/mstnet/internal/dsu"
	"github.com/Aharonba/mstnet/internal/graphstore"
)

// solveKruskal sorts a copy of the directed edge list by ascending
// weight (stable, so ties keep their original insertion order) and adds
// each edge that unites two previously-separate components. Because
// every undirected edge appears twice in edges, the DSU blocks the
// second occurrence once the first has merged the pair, so deduplication
// falls out of the algorithm for free.
func solveKruskal(edges []graphstore.Edge, vertexCount int) []Edge {
	sorted := make([]graphstore.Edge, len(edges))
	copy(sorted, edges)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Weight < sorted[j].Weight
	})

	uf := dsu.New(vertexCount)
	var out []Edge
	for _, e := range sorted {
		if uf.Unite(e.From, e.To) {
			out = append(out, Edge{From: e.From, To: e.To, Weight: e.Weight, ID: e.ID})
		}
	}
	return out
}
