package distance

import (
	"errors"
	"fmt"
	"math"

	"github.com/ayshrv/visitron/core"
	"github.com/ayshrv/visitron/dijkstra"
	"github.com/ayshrv/visitron/matrix"
)

// Sentinel errors for distance queries.
var (
	// ErrUnknownScene indicates a scan without a table.
	ErrUnknownScene = errors.New("distance: unknown scene")

	// ErrUnknownNode indicates a viewpoint that is not in the scene graph.
	ErrUnknownNode = errors.New("distance: unknown node")

	// ErrUnreachable indicates two viewpoints with no connecting path.
	ErrUnreachable = errors.New("distance: viewpoints are not connected")

	// ErrEmptyPath indicates an empty viewpoint sequence.
	ErrEmptyPath = errors.New("distance: empty path")

	// ErrNilGraph indicates a nil scene graph passed to NewTable.
	ErrNilGraph = errors.New("distance: graph is nil")
)

// Table holds the shortest-path distance between every pair of viewpoints
// of one scene.
type Table struct {
	scan  string
	g     *core.Graph
	ids   []string
	index map[string]int
	d     *matrix.Dense
}

// NewTable runs Dijkstra from every vertex of g and stores the results.
//
// Steps:
//  1. Assign row indices in sorted vertex order.
//  2. Fill the matrix with +Inf.
//  3. For each source, copy its distance map into its row.
//
// Complexity: O(V·(V+E) log V) time, O(V²) space.
func NewTable(scan string, g *core.Graph) (*Table, error) {
	if g == nil {
		return nil, ErrNilGraph
	}

	ids := g.Vertices()
	t := &Table{
		scan:  scan,
		g:     g,
		ids:   ids,
		index: make(map[string]int, len(ids)),
	}
	for i, id := range ids {
		t.index[id] = i
	}

	n := len(ids)
	if n == 0 {
		return t, nil
	}
	d, err := matrix.NewFilled(n, n, math.Inf(1))
	if err != nil {
		return nil, err
	}
	t.d = d

	for i, src := range ids {
		dist, _, err := dijkstra.Dijkstra(g, dijkstra.Source(src))
		if err != nil {
			return nil, fmt.Errorf("distance: scan %s source %s: %w", scan, src, err)
		}
		for v, w := range dist {
			if err := d.Set(i, t.index[v], w); err != nil {
				return nil, err
			}
		}
	}

	return t, nil
}

// Scan returns the scene identifier of t.
func (t *Table) Scan() string { return t.scan }

// Viewpoints returns the viewpoint ids of the scene in row order (sorted).
func (t *Table) Viewpoints() []string {
	out := make([]string, len(t.ids))
	copy(out, t.ids)

	return out
}

// Has reports whether id is a viewpoint of the scene.
func (t *Table) Has(id string) bool {
	_, ok := t.index[id]

	return ok
}

// Matrix returns a copy of the underlying distance matrix, rows and columns
// ordered as Viewpoints. It returns nil for an empty scene.
func (t *Table) Matrix() *matrix.Dense {
	if t.d == nil {
		return nil
	}

	return t.d.Clone()
}

func (t *Table) row(id string) (int, error) {
	i, ok := t.index[id]
	if !ok {
		return 0, fmt.Errorf("%w: %q in scan %s", ErrUnknownNode, id, t.scan)
	}

	return i, nil
}

// raw returns the stored distance between u and v, +Inf when unreachable.
func (t *Table) raw(u, v string) (float64, error) {
	i, err := t.row(u)
	if err != nil {
		return 0, err
	}
	j, err := t.row(v)
	if err != nil {
		return 0, err
	}

	return t.d.At(i, j)
}

// Distance returns the shortest-path distance between u and v.
// Complexity: O(1).
func (t *Table) Distance(u, v string) (float64, error) {
	d, err := t.raw(u, v)
	if err != nil {
		return 0, err
	}
	if math.IsInf(d, 1) {
		return 0, fmt.Errorf("%w: %s and %s in scan %s", ErrUnreachable, u, v, t.scan)
	}

	return d, nil
}

// Nearest returns the element of path with the smallest distance to goal.
// Ties keep the earliest element. Elements unreachable from goal never win
// over reachable ones; if none is reachable the first element is returned.
// Complexity: O(len(path)).
func (t *Table) Nearest(path []string, goal string) (string, error) {
	if len(path) == 0 {
		return "", ErrEmptyPath
	}

	best := ""
	bestDist := math.Inf(1)
	for i, vp := range path {
		d, err := t.raw(vp, goal)
		if err != nil {
			return "", err
		}
		if i == 0 || d < bestDist {
			best, bestDist = vp, d
		}
	}

	return best, nil
}

// HasEdge reports whether u and v are directly connected in the scene graph.
func (t *Table) HasEdge(u, v string) bool {
	return t.g.HasEdge(u, v)
}

// PathLength returns the sum of distances between consecutive elements of
// nodes. A single viewpoint has length 0.
// Complexity: O(len(nodes)).
func (t *Table) PathLength(nodes []string) (float64, error) {
	if len(nodes) == 0 {
		return 0, ErrEmptyPath
	}
	if _, err := t.row(nodes[0]); err != nil {
		return 0, err
	}

	var total float64
	for i := 1; i < len(nodes); i++ {
		d, err := t.Distance(nodes[i-1], nodes[i])
		if err != nil {
			return 0, err
		}
		total += d
	}

	return total, nil
}
