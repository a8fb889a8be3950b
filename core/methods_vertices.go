// File: methods_vertices.go
// Role: Vertex lifecycle & queries.
//
// Determinism:
//   - Vertices() returns IDs sorted lexicographically ascending.
//
// Concurrency:
//   - Vertex catalog protected by muVert.
//   - Adjacency bootstrap under muEdgeAdj (to keep adjacency invariants consistent).
package core

import (
	"fmt"
	"sort"
)

// AddVertex inserts a vertex at pos if missing.
//
// Implementation:
//   - Stage 1: Validate non-empty ID (ErrEmptyVertexID).
//   - Stage 2: Under muVert write lock, register the vertex unless present.
//   - Stage 3: Under muEdgeAdj write lock, bootstrap its adjacency bucket.
//
// Behavior highlights:
//   - Idempotent: adding an existing vertex keeps its original position.
//
// Complexity:
//   - Time O(1) amortized, Space O(1) amortized.
func (g *Graph) AddVertex(id string, pos Position) error {
	if id == "" {
		return ErrEmptyVertexID
	}

	g.muVert.Lock()
	defer g.muVert.Unlock()
	if _, ok := g.vertices[id]; ok {
		return nil
	}
	g.vertices[id] = &Vertex{ID: id, Position: pos}

	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()
	if _, ok := g.adjacencyList[id]; !ok {
		g.adjacencyList[id] = make(map[string]string)
	}

	return nil
}

// HasVertex reports whether id is a vertex of g.
// Complexity: O(1).
func (g *Graph) HasVertex(id string) bool {
	if id == "" {
		return false
	}
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	_, ok := g.vertices[id]

	return ok
}

// Vertex returns a copy of the vertex with the given id.
//
// Errors:
//   - ErrEmptyVertexID: if id == "".
//   - ErrVertexNotFound: if the vertex does not exist (wrapped with the id).
//
// Complexity: O(1).
func (g *Graph) Vertex(id string) (Vertex, error) {
	if id == "" {
		return Vertex{}, ErrEmptyVertexID
	}
	g.muVert.RLock()
	defer g.muVert.RUnlock()
	v, ok := g.vertices[id]
	if !ok {
		return Vertex{}, fmt.Errorf("%w: %q", ErrVertexNotFound, id)
	}

	return *v, nil
}

// Vertices returns all vertex IDs sorted ascending.
// Complexity: O(V log V).
func (g *Graph) Vertices() []string {
	g.muVert.RLock()
	ids := make([]string, 0, len(g.vertices))
	for id := range g.vertices {
		ids = append(ids, id)
	}
	g.muVert.RUnlock()
	sort.Strings(ids)

	return ids
}

// VertexCount returns |V|.
// Complexity: O(1).
func (g *Graph) VertexCount() int {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	return len(g.vertices)
}
