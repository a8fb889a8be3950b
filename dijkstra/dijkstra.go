package dijkstra

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/ayshrv/visitron/core"
)

// Dijkstra computes shortest distances from the source vertex (Options.Source)
// to all other vertices in g.
//
// Returns:
//
//   - dist: map from vertex ID to minimum distance (+Inf if unreachable).
//   - prev: optional predecessor map if ReturnPath=true (nil otherwise).
//   - err:  error if inputs are invalid or if a negative weight is detected.
//
// Preconditions and validation (in order):
//  1. Source string must be non-empty (ErrEmptySource).
//  2. g must be non-nil (ErrNilGraph).
//  3. g must contain Source (ErrVertexNotFound).
//  4. No edge in g can have negative weight (ErrNegativeWeight).
//
// Complexity:
//
//   - Time:  O((V + E) log V)
//   - Space: O(V + E)
func Dijkstra(g *core.Graph, opts ...Option) (map[string]float64, map[string]string, error) {
	var cfg Options
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.Source == "" {
		return nil, nil, ErrEmptySource
	}
	if g == nil {
		return nil, nil, ErrNilGraph
	}
	if !g.HasVertex(cfg.Source) {
		return nil, nil, fmt.Errorf("%w: %q", ErrVertexNotFound, cfg.Source)
	}

	// Pre-scan all edges to detect negative weights. core rejects them on
	// insertion, so this only guards graphs built by future constructors.
	for _, e := range g.Edges() {
		if e.Weight < 0 {
			return nil, nil, fmt.Errorf("%w: edge %s-%s weight=%g", ErrNegativeWeight, e.From, e.To, e.Weight)
		}
	}

	V := g.VertexCount()
	r := &runner{
		g:       g,
		source:  cfg.Source,
		dist:    make(map[string]float64, V),
		visited: make(map[string]bool, V),
		pq:      make(nodePQ, 0, V),
	}
	if cfg.ReturnPath {
		r.prev = make(map[string]string, V)
	}

	r.init()
	if err := r.process(); err != nil {
		return nil, nil, err
	}

	return r.dist, r.prev, nil
}

// runner holds the mutable state for a single Dijkstra execution.
type runner struct {
	g       *core.Graph        // The input graph; read-only within Dijkstra.
	source  string             // Source vertex ID.
	dist    map[string]float64 // Maps vertex ID → current best distance from Source.
	prev    map[string]string  // Maps vertex ID → predecessor on the shortest path (nil unless requested).
	visited map[string]bool    // Tracks if a vertex's distance is finalized.
	pq      nodePQ             // Min-heap of *nodeItem for lazy priority queue.
}

// init sets up initial distances and pushes Source=0 into the heap.
func (r *runner) init() {
	for _, v := range r.g.Vertices() {
		r.dist[v] = math.Inf(1)
		if r.prev != nil {
			r.prev[v] = ""
		}
	}
	r.dist[r.source] = 0

	heap.Init(&r.pq)
	heap.Push(&r.pq, &nodeItem{id: r.source, dist: 0})
}

// process repeatedly extracts the vertex with the minimum distance from the
// source and relaxes its edges until the heap is empty.
func (r *runner) process() error {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*nodeItem)
		u := item.id

		// Stale heap entry for an already finalized vertex.
		if r.visited[u] {
			continue
		}
		r.visited[u] = true

		if err := r.relax(u); err != nil {
			return err
		}
	}

	return nil
}

// relax examines each edge incident to u and improves neighbour distances.
// Assumes r.dist[u] is finalized before calling relax(u).
func (r *runner) relax(u string) error {
	neighbors, err := r.g.Neighbors(u)
	if err != nil {
		return fmt.Errorf("dijkstra: failed to get neighbors of %q: %w", u, err)
	}

	for _, e := range neighbors {
		v := e.To
		if r.visited[v] {
			continue
		}
		newDist := r.dist[u] + e.Weight

		// Strictly better only; equal distances would just duplicate heap entries.
		if newDist >= r.dist[v] {
			continue
		}
		r.dist[v] = newDist
		if r.prev != nil {
			r.prev[v] = u
		}
		heap.Push(&r.pq, &nodeItem{id: v, dist: newDist})
	}

	return nil
}

// nodeItem represents a vertex and its current distance from the source.
type nodeItem struct {
	id   string  // vertex ID
	dist float64 // distance from source
}

// nodePQ is a min-heap of *nodeItem ordered by dist ascending. Ties are
// broken by vertex ID so runs are reproducible.
type nodePQ []*nodeItem

// Len returns the number of items in the heap.
func (pq nodePQ) Len() int { return len(pq) }

// Less defines the comparison: smaller dist → higher priority.
func (pq nodePQ) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}

	return pq[i].id < pq[j].id
}

// Swap swaps two elements in the heap.
func (pq nodePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds a new element x onto the heap.
func (pq *nodePQ) Push(x any) { *pq = append(*pq, x.(*nodeItem)) }

// Pop removes and returns the smallest element from the heap.
func (pq *nodePQ) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
