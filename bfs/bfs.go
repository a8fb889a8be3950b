package bfs

import (
	"fmt"
	"sort"

	"github.com/ayshrv/visitron/core"
)

// queueItem pairs a viewpoint with its BFS depth.
type queueItem struct {
	id    string
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph *core.Graph
	opts  Options
	queue []queueItem
	res   *Result
}

// BFS runs breadth-first search on g from startID.
// Returns ErrGraphNil or ErrStartVertexNotFound for invalid input,
// ErrOptionViolation for bad options and the context error on cancellation.
func BFS(g *core.Graph, startID string, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !g.HasVertex(startID) {
		return nil, fmt.Errorf("%w: %q", ErrStartVertexNotFound, startID)
	}

	n := g.VertexCount()
	w := &walker{
		graph: g,
		opts:  o,
		queue: make([]queueItem, 0, n),
		res: &Result{
			Order:  make([]string, 0, n),
			Depth:  make(map[string]int, n),
			Parent: make(map[string]string, n),
		},
	}
	w.enqueue(startID, 0, "")

	return w.res, w.loop()
}

func (w *walker) enqueue(id string, d int, parent string) {
	w.res.Depth[id] = d
	if parent != "" {
		w.res.Parent[id] = parent
	}
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		if err := w.opts.Ctx.Err(); err != nil {
			return err
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, item.id)

		next := item.depth + 1
		if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
			continue
		}
		neighbors, err := w.graph.NeighborIDs(item.id)
		if err != nil {
			return fmt.Errorf("bfs: neighbors of %q: %w", item.id, err)
		}
		for _, nbr := range neighbors {
			if _, seen := w.res.Depth[nbr]; !seen {
				w.enqueue(nbr, next, item.id)
			}
		}
	}

	return nil
}

// Components returns the connected components of g. Each component is
// sorted; components are ordered by their first viewpoint.
// Complexity: O(V + E).
func Components(g *core.Graph) ([][]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}

	seen := make(map[string]bool, g.VertexCount())
	var out [][]string
	// Vertices is sorted, so each component's seed is its smallest id.
	for _, id := range g.Vertices() {
		if seen[id] {
			continue
		}
		res, err := BFS(g, id)
		if err != nil {
			return nil, err
		}
		comp := make([]string, 0, len(res.Order))
		for _, v := range res.Order {
			seen[v] = true
			comp = append(comp, v)
		}
		sort.Strings(comp)
		out = append(out, comp)
	}

	return out, nil
}
