// Package mst computes a Minimum Spanning Tree (or spanning forest, for
// disconnected inputs) over a graphstore.Graph's directed edge list using
// either Prim's or Kruskal's algorithm, selected by Algorithm.
package mst

import (
	"fmt"

	"github.com/Aharonba/mstnet/internal/graphstore"
)

// Edge is one undirected MST edge: each undirected edge of the input
// graph appears at most once here, keyed by the id it was assigned at
// insertion.
type Edge struct {
	From, To int
	Weight   int
	ID       int
}

// Algorithm names one of the two interchangeable MST strategies. It is
// the Go-idiomatic tagged-variant dispatch spec.md §9 asks for in place
// of a polymorphic factory.
type Algorithm string

const (
	Prim    Algorithm = "Prim"
	Kruskal Algorithm = "Kruskal"
)

// ErrUnsupportedAlgorithm is returned by Solve for any Algorithm value
// other than Prim or Kruskal.
var ErrUnsupportedAlgorithm = fmt.Errorf("unsupported MST algorithm")

// ParseAlgorithm validates a user-supplied algorithm token.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case Prim, Kruskal:
		return Algorithm(s), nil
	default:
		return "", ErrUnsupportedAlgorithm
	}
}

// Solve dispatches to the requested algorithm's implementation.
func (a Algorithm) Solve(edges []graphstore.Edge, vertexCount int) ([]Edge, error) {
	switch a {
	case Prim:
		return solvePrim(edges, vertexCount), nil
	case Kruskal:
		return solveKruskal(edges, vertexCount), nil
	default:
		return nil, ErrUnsupportedAlgorithm
	}
}
