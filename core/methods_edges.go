// File: methods_edges.go
// Role: Edge lifecycle & queries: AddEdge/HasEdge/Edges/EdgeCount, plus nextEdgeID().
// Determinism:
//   - Edges() returns edges sorted by numeric Edge.ID asc.
//   - nextEdgeID() is monotonic and stable ("e" + decimal).
// Concurrency:
//   - Mutations under muEdgeAdj write lock.
//   - Read queries under muEdgeAdj read lock.

package core

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"sync/atomic"
)

// edgeIDPrefix is a private textual prefix for edge identifiers.
const edgeIDPrefix = 'e'

// AddEdge creates a new undirected edge between from and to.
//
// Steps:
//  1. Validate IDs, weight and loops.
//  2. Ensure endpoints exist; missing ones are created at the origin.
//  3. Lock muEdgeAdj, reject a second edge between the same endpoints.
//  4. Generate eid atomically, store the edge and mirror it in adjacencyList.
//
// Complexity: O(1) amortized.
func (g *Graph) AddEdge(from, to string, weight float64) (string, error) {
	if from == "" || to == "" {
		return "", ErrEmptyVertexID
	}
	if weight < 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return "", fmt.Errorf("%w: %s-%s weight=%g", ErrBadWeight, from, to, weight)
	}
	if from == to {
		return "", fmt.Errorf("%w: %q", ErrLoopNotAllowed, from)
	}

	if err := g.AddVertex(from, Position{}); err != nil {
		return "", err
	}
	if err := g.AddVertex(to, Position{}); err != nil {
		return "", err
	}

	g.muEdgeAdj.Lock()
	defer g.muEdgeAdj.Unlock()

	if _, ok := g.adjacencyList[from][to]; ok {
		return "", fmt.Errorf("%w: %s-%s", ErrMultiEdgeNotAllowed, from, to)
	}

	eid := nextEdgeID(g)
	g.edges[eid] = &Edge{ID: eid, From: from, To: to, Weight: weight}
	g.adjacencyList[from][to] = eid
	g.adjacencyList[to][from] = eid

	return eid, nil
}

// HasEdge reports whether an edge joins from and to (in either orientation).
// Complexity: O(1).
func (g *Graph) HasEdge(from, to string) bool {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	_, ok := g.adjacencyList[from][to]

	return ok
}

// Edges returns all edges sorted by their numeric ID.
// Complexity: O(E log E).
func (g *Graph) Edges() []*Edge {
	g.muEdgeAdj.RLock()
	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	g.muEdgeAdj.RUnlock()

	sort.Slice(out, func(i, j int) bool { return edgeSeq(out[i].ID) < edgeSeq(out[j].ID) })

	return out
}

// EdgeCount returns |E|.
// Complexity: O(1).
func (g *Graph) EdgeCount() int {
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()

	return len(g.edges)
}

// nextEdgeID returns "e<N>" with N strictly increasing per graph.
func nextEdgeID(g *Graph) string {
	n := atomic.AddUint64(&g.nextEdgeID, 1)
	buf := make([]byte, 0, 21)
	buf = append(buf, edgeIDPrefix)
	buf = strconv.AppendUint(buf, n, 10)

	return string(buf)
}

// edgeSeq extracts the numeric part of an edge ID for ordering.
func edgeSeq(id string) uint64 {
	n, _ := strconv.ParseUint(id[1:], 10, 64)

	return n
}
