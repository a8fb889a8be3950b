package distance_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayshrv/visitron/core"
	"github.com/ayshrv/visitron/distance"
	"github.com/ayshrv/visitron/telemetry"
)

// lineGraph builds A–B–C–D with every edge weighing 2.
func lineGraph(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	for i, id := range []string{"A", "B", "C", "D"} {
		require.NoError(t, g.AddVertex(id, core.Position{X: float64(2 * i)}))
	}
	for _, e := range [][2]string{{"A", "B"}, {"B", "C"}, {"C", "D"}} {
		_, err := g.AddEdge(e[0], e[1], 2)
		require.NoError(t, err)
	}

	return g
}

// meshGraph builds a small graph with a shortcut and an isolated vertex.
func meshGraph(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph()
	edges := []struct {
		u, v string
		w    float64
	}{
		{"a", "b", 1.5}, {"b", "c", 2}, {"a", "c", 4}, {"c", "d", 0.5}, {"b", "d", 3},
	}
	for _, e := range edges {
		_, err := g.AddEdge(e.u, e.v, e.w)
		require.NoError(t, err)
	}
	require.NoError(t, g.AddVertex("lonely", core.Position{}))

	return g
}

func TestTable_LineDistances(t *testing.T) {
	tab, err := distance.NewTable("line", lineGraph(t))
	require.NoError(t, err)

	d, err := tab.Distance("A", "D")
	require.NoError(t, err)
	assert.Equal(t, 6.0, d)

	d, err = tab.Distance("C", "B")
	require.NoError(t, err)
	assert.Equal(t, 2.0, d)

	assert.Equal(t, []string{"A", "B", "C", "D"}, tab.Viewpoints())
	assert.Equal(t, "line", tab.Scan())
}

func TestTable_MetricProperties(t *testing.T) {
	tab, err := distance.NewTable("mesh", meshGraph(t))
	require.NoError(t, err)

	m := tab.Matrix()
	require.NotNil(t, m)
	assert.True(t, m.IsSymmetric(0))

	ids := tab.Viewpoints()
	raw := func(u, v string) float64 {
		d, err := tab.Distance(u, v)
		if err != nil {
			return math.Inf(1)
		}
		return d
	}
	for _, u := range ids {
		assert.Zero(t, raw(u, u), "diagonal %s", u)
		for _, v := range ids {
			assert.Equal(t, raw(u, v), raw(v, u), "symmetry %s %s", u, v)
			for _, w := range ids {
				assert.LessOrEqual(t, raw(u, w), raw(u, v)+raw(v, w)+1e-9, "triangle %s %s %s", u, v, w)
			}
		}
	}

	d, err := tab.Distance("a", "d")
	require.NoError(t, err)
	assert.InDelta(t, 4.0, d, 1e-12, "a-b-c-d beats a-c-d and a-b-d")
}

func TestTable_Errors(t *testing.T) {
	tab, err := distance.NewTable("mesh", meshGraph(t))
	require.NoError(t, err)

	_, err = tab.Distance("a", "zz")
	assert.ErrorIs(t, err, distance.ErrUnknownNode)
	assert.Contains(t, err.Error(), "zz")

	_, err = tab.Distance("a", "lonely")
	assert.ErrorIs(t, err, distance.ErrUnreachable)

	_, err = tab.Nearest(nil, "a")
	assert.ErrorIs(t, err, distance.ErrEmptyPath)

	_, err = tab.PathLength(nil)
	assert.ErrorIs(t, err, distance.ErrEmptyPath)

	_, err = distance.NewTable("nil", nil)
	assert.ErrorIs(t, err, distance.ErrNilGraph)
}

func TestTable_NearestTieKeepsEarliest(t *testing.T) {
	tab, err := distance.NewTable("line", lineGraph(t))
	require.NoError(t, err)

	// A and C are both 2 from B.
	got, err := tab.Nearest([]string{"A", "C"}, "B")
	require.NoError(t, err)
	assert.Equal(t, "A", got)

	got, err = tab.Nearest([]string{"C", "A"}, "B")
	require.NoError(t, err)
	assert.Equal(t, "C", got)

	got, err = tab.Nearest([]string{"A", "D", "C"}, "D")
	require.NoError(t, err)
	assert.Equal(t, "D", got)
}

func TestTable_NearestSkipsUnreachable(t *testing.T) {
	tab, err := distance.NewTable("mesh", meshGraph(t))
	require.NoError(t, err)

	got, err := tab.Nearest([]string{"lonely", "b"}, "d")
	require.NoError(t, err)
	assert.Equal(t, "b", got)
}

func TestTable_PathLengthAndEdges(t *testing.T) {
	tab, err := distance.NewTable("line", lineGraph(t))
	require.NoError(t, err)

	l, err := tab.PathLength([]string{"A"})
	require.NoError(t, err)
	assert.Zero(t, l)

	l, err = tab.PathLength([]string{"A", "C", "B"})
	require.NoError(t, err)
	assert.Equal(t, 6.0, l)

	_, err = tab.PathLength([]string{"X"})
	assert.ErrorIs(t, err, distance.ErrUnknownNode)

	assert.True(t, tab.HasEdge("B", "A"))
	assert.False(t, tab.HasEdge("A", "C"))
}

func TestTable_EmptyScene(t *testing.T) {
	tab, err := distance.NewTable("empty", core.NewGraph())
	require.NoError(t, err)
	assert.Empty(t, tab.Viewpoints())
	assert.Nil(t, tab.Matrix())
	_, err = tab.Distance("a", "b")
	assert.ErrorIs(t, err, distance.ErrUnknownNode)
}

func TestBuild_Index(t *testing.T) {
	graphs := map[string]*core.Graph{
		"line": lineGraph(t),
		"mesh": meshGraph(t),
	}
	idx, err := distance.Build(context.Background(), graphs,
		distance.WithWorkers(2), distance.WithRecorder(telemetry.New()))
	require.NoError(t, err)

	assert.Equal(t, []string{"line", "mesh"}, idx.Scans())

	d, err := idx.Distance("line", "A", "C")
	require.NoError(t, err)
	assert.Equal(t, 4.0, d)

	nearest, err := idx.Nearest("mesh", []string{"a", "c"}, "d")
	require.NoError(t, err)
	assert.Equal(t, "c", nearest)

	l, err := idx.PathLength("line", []string{"A", "B", "C"})
	require.NoError(t, err)
	assert.Equal(t, 4.0, l)

	assert.True(t, idx.HasEdge("mesh", "a", "c"))
	assert.False(t, idx.HasEdge("nowhere", "a", "c"))

	_, err = idx.Distance("nowhere", "A", "B")
	assert.ErrorIs(t, err, distance.ErrUnknownScene)
	_, err = idx.Table("nowhere")
	assert.ErrorIs(t, err, distance.ErrUnknownScene)
}

func TestBuild_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := distance.Build(ctx, map[string]*core.Graph{"line": lineGraph(t)}, distance.WithWorkers(1))
	assert.ErrorIs(t, err, context.Canceled)
}
