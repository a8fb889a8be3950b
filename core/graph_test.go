package core_test

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/ayshrv/visitron/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPosition_Distance(t *testing.T) {
	p := core.Position{X: 1, Y: 2, Z: 3}
	q := core.Position{X: 4, Y: 6, Z: 3}
	assert.InDelta(t, 5.0, p.Distance(q), 1e-12)
	assert.Equal(t, p.Distance(q), q.Distance(p))
	assert.Zero(t, p.Distance(p))
}

func TestAddVertex_Idempotent(t *testing.T) {
	g := core.NewGraph()
	require.NoError(t, g.AddVertex("A", core.Position{X: 1}))
	require.NoError(t, g.AddVertex("A", core.Position{X: 9}))

	v, err := g.Vertex("A")
	require.NoError(t, err)
	assert.Equal(t, 1.0, v.Position.X, "first position must win")
	assert.Equal(t, 1, g.VertexCount())

	assert.ErrorIs(t, g.AddVertex("", core.Position{}), core.ErrEmptyVertexID)
	_, err = g.Vertex("missing")
	assert.ErrorIs(t, err, core.ErrVertexNotFound)
}

func TestAddEdge_Validation(t *testing.T) {
	g := core.NewGraph()

	_, err := g.AddEdge("", "B", 1)
	assert.ErrorIs(t, err, core.ErrEmptyVertexID)

	_, err = g.AddEdge("A", "A", 1)
	assert.ErrorIs(t, err, core.ErrLoopNotAllowed)

	for _, w := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err = g.AddEdge("A", "B", w)
		assert.ErrorIs(t, err, core.ErrBadWeight, "weight %v", w)
	}

	_, err = g.AddEdge("A", "B", 2)
	require.NoError(t, err)
	_, err = g.AddEdge("B", "A", 2)
	assert.ErrorIs(t, err, core.ErrMultiEdgeNotAllowed, "mirror counts as the same edge")
}

func TestAddEdge_Undirected(t *testing.T) {
	g := core.NewGraph(core.WithCapacity(4))
	eid, err := g.AddEdge("A", "B", 2.5)
	require.NoError(t, err)
	assert.Equal(t, "e1", eid)

	assert.True(t, g.HasEdge("A", "B"))
	assert.True(t, g.HasEdge("B", "A"))
	assert.False(t, g.HasEdge("A", "C"))
	assert.Equal(t, 1, g.EdgeCount())
	assert.Equal(t, []string{"A", "B"}, g.Vertices())

	nbs, err := g.Neighbors("B")
	require.NoError(t, err)
	require.Len(t, nbs, 1)
	assert.Equal(t, core.Edge{ID: "e1", From: "B", To: "A", Weight: 2.5}, nbs[0])
}

func TestNeighbors_SortedAndErrors(t *testing.T) {
	g := core.NewGraph()
	for _, to := range []string{"D", "B", "C"} {
		_, err := g.AddEdge("A", to, 1)
		require.NoError(t, err)
	}
	ids, err := g.NeighborIDs("A")
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "D"}, ids)

	_, err = g.Neighbors("")
	assert.ErrorIs(t, err, core.ErrEmptyVertexID)
	_, err = g.Neighbors("Z")
	assert.ErrorIs(t, err, core.ErrVertexNotFound)
}

func TestEdges_NumericOrder(t *testing.T) {
	g := core.NewGraph()
	for i := 0; i < 12; i++ {
		_, err := g.AddEdge("hub", fmt.Sprintf("v%02d", i), float64(i))
		require.NoError(t, err)
	}
	edges := g.Edges()
	require.Len(t, edges, 12)
	for i, e := range edges {
		assert.Equal(t, fmt.Sprintf("e%d", i+1), e.ID)
	}
}

// TestConcurrentAddEdge ensures concurrent AddEdge calls are safe and all
// neighbours appear.
func TestConcurrentAddEdge(t *testing.T) {
	g := core.NewGraph()
	const num = 200
	var wg sync.WaitGroup
	wg.Add(num)
	for i := 0; i < num; i++ {
		go func(id int) {
			defer wg.Done()
			_, err := g.AddEdge("X", fmt.Sprintf("V%d", id), float64(id))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	nbs, err := g.Neighbors("X")
	require.NoError(t, err)
	require.Len(t, nbs, num)
}
