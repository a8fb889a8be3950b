// File: methods_adjacent.go
// Role: Neighborhood APIs (Neighbors, NeighborIDs).
// Determinism:
//   - Neighbors() and NeighborIDs() are sorted by neighbour ID asc.
// Concurrency:
//   - Read operations hold muVert then muEdgeAdj read locks.

package core

import (
	"fmt"
	"sort"
)

// Neighbors returns the edges incident to id, oriented so that From == id.
//
// Implementation:
//   - Stage 1: Validate id (ErrEmptyVertexID) and existence (ErrVertexNotFound).
//   - Stage 2: Snapshot adjacencyList[id] under read locks.
//   - Stage 3: Sort by neighbour ID for deterministic iteration.
//
// Complexity:
//   - Time O(d log d), Space O(d), where d is the degree of id.
func (g *Graph) Neighbors(id string) ([]Edge, error) {
	if id == "" {
		return nil, ErrEmptyVertexID
	}

	g.muVert.RLock()
	defer g.muVert.RUnlock()
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	if _, ok := g.vertices[id]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrVertexNotFound, id)
	}

	bucket := g.adjacencyList[id]
	out := make([]Edge, 0, len(bucket))
	for to, eid := range bucket {
		out = append(out, Edge{ID: eid, From: id, To: to, Weight: g.edges[eid].Weight})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].To < out[j].To })

	return out, nil
}

// NeighborIDs returns the IDs adjacent to id, sorted ascending.
// Complexity: O(d log d).
func (g *Graph) NeighborIDs(id string) ([]string, error) {
	edges, err := g.Neighbors(id)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(edges))
	for i, e := range edges {
		ids[i] = e.To
	}

	return ids, nil
}
