package metrics_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayshrv/visitron/core"
	"github.com/ayshrv/visitron/distance"
	"github.com/ayshrv/visitron/groundtruth"
	"github.com/ayshrv/visitron/metrics"
	"github.com/ayshrv/visitron/trajectory"
)

const tol = 1e-3

// lineIndex indexes scan "line": A–B–C–D with every edge weighing 2, plus
// an unconnected viewpoint Z.
func lineIndex(t *testing.T) *distance.Index {
	t.Helper()
	g := core.NewGraph()
	for _, e := range [][2]string{{"A", "B"}, {"B", "C"}, {"C", "D"}} {
		_, err := g.AddEdge(e[0], e[1], 2)
		require.NoError(t, err)
	}
	require.NoError(t, g.AddVertex("Z", core.Position{}))
	idx, err := distance.Build(context.Background(), map[string]*core.Graph{"line": g})
	require.NoError(t, err)

	return idx
}

func lineRecord() *groundtruth.Record {
	return &groundtruth.Record{
		InstrID:     "1",
		Scan:        "line",
		Reference:   []string{"A", "B", "C", "D"},
		PlannerGoal: "C",
		EndPanos:    []string{"D"},
	}
}

func walk(vps ...string) trajectory.Trajectory {
	out := make(trajectory.Trajectory, len(vps))
	for i, vp := range vps {
		out[i] = trajectory.Step{Viewpoint: vp}
	}
	return out
}

func score(t *testing.T, idx *distance.Index, rec *groundtruth.Record, traj trajectory.Trajectory) metrics.ScoreRecord {
	t.Helper()
	m, err := trajectory.Validate(idx, rec, traj)
	require.NoError(t, err)
	out, err := metrics.NewComputer(idx).Compute(rec, traj, m)
	require.NoError(t, err)
	return out
}

func TestCompute_StopsShort(t *testing.T) {
	idx := lineIndex(t)
	got := score(t, idx, lineRecord(), walk("A", "B"))

	assert.Equal(t, groundtruth.InstrID("1"), got.InstrID)
	assert.Equal(t, 4.0, got.NavError)
	assert.False(t, got.Success)
	assert.Equal(t, 4.0, got.OracleError)
	assert.False(t, got.OracleSuccess)
	assert.Equal(t, 2.0, got.OraclePlanError)
	assert.True(t, got.OraclePlanSuccess)
	assert.Equal(t, 2.0, got.TrajectoryLength)
	assert.Equal(t, 1, got.Hops)
	assert.Equal(t, 6.0, got.ShortestPathLength)
	assert.Equal(t, 2.0, got.DistToEndReduction)
	assert.Zero(t, got.SPL)
	assert.InDelta(t, 0.607, got.NDTW, tol)
	assert.InDelta(t, 0.457, got.CLS, tol)
}

func TestCompute_Identity(t *testing.T) {
	idx := lineIndex(t)
	got := score(t, idx, lineRecord(), walk("A", "B", "C", "D"))

	assert.Zero(t, got.NavError)
	assert.True(t, got.Success)
	assert.True(t, got.OracleSuccess)
	assert.InDelta(t, 1.0, got.SPL, 1e-12)
	assert.InDelta(t, 1.0, got.NDTW, 1e-12)
	assert.InDelta(t, 1.0, got.CLS, 1e-12)
	assert.Equal(t, 6.0, got.DistToEndReduction)
}

func TestCompute_DetourLowersSPL(t *testing.T) {
	idx := lineIndex(t)
	got := score(t, idx, lineRecord(), walk("A", "B", "A", "B", "C", "D"))

	assert.True(t, got.Success)
	assert.Equal(t, 10.0, got.TrajectoryLength)
	assert.InDelta(t, 0.6, got.SPL, 1e-12)
	assert.Less(t, got.NDTW, 1.0)
	assert.LessOrEqual(t, got.SPL, 1.0)
}

func TestCompute_OracleNearest(t *testing.T) {
	idx := lineIndex(t)
	got := score(t, idx, lineRecord(), walk("A", "B", "C", "D", "C", "B"))

	assert.Equal(t, 4.0, got.NavError)
	assert.False(t, got.Success)
	assert.Zero(t, got.OracleError)
	assert.True(t, got.OracleSuccess)
}

func TestCompute_Errors(t *testing.T) {
	idx := lineIndex(t)
	rec := lineRecord()
	rec.Scan = "missing"
	_, err := metrics.NewComputer(idx).Compute(rec, walk("A"), trajectory.Measurement{})
	assert.ErrorIs(t, err, distance.ErrUnknownScene)

	rec = lineRecord()
	c := &metrics.Computer{Index: idx}
	_, err = c.Compute(rec, walk("A"), trajectory.Measurement{})
	assert.ErrorIs(t, err, metrics.ErrBadMargin)

	rec.Reference = []string{"A", "Z"}
	_, err = metrics.NewComputer(idx).Compute(rec, walk("A"), trajectory.Measurement{})
	assert.ErrorIs(t, err, distance.ErrUnreachable)
}

func TestSPL(t *testing.T) {
	tests := []struct {
		name             string
		success          bool
		shortest, length float64
		want             float64
	}{
		{"failure", false, 5, 5, 0},
		{"optimal", true, 5, 5, 1},
		{"detour", true, 4, 8, 0.5},
		{"shorter than shortest", true, 4, 2, 1},
		{"already at goal and stayed", true, 0, 0, 1},
		{"already at goal and wandered", true, 0, 3, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, metrics.SPL(tc.success, tc.shortest, tc.length))
		})
	}
}

func TestNDTWAndCLS_Direct(t *testing.T) {
	idx := lineIndex(t)
	tab, err := idx.Table("line")
	require.NoError(t, err)

	ndtw, err := metrics.NDTW(tab, []string{"A", "B"}, []string{"A", "B", "C", "D"}, 3)
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-0.5), ndtw, 1e-12)

	cls, err := metrics.CLS(tab, []string{"A"}, []string{"A"}, 3)
	require.NoError(t, err)
	assert.Equal(t, 1.0, cls, "zero expected and zero predicted length")

	ndtw, err = metrics.NDTW(tab, []string{"Z"}, []string{"A"}, 3)
	require.NoError(t, err)
	assert.Zero(t, ndtw, "unreachable pairs score 0")

	_, err = metrics.NDTW(tab, nil, []string{"A"}, 3)
	assert.ErrorIs(t, err, distance.ErrEmptyPath)
	_, err = metrics.CLS(tab, []string{"A"}, nil, 3)
	assert.ErrorIs(t, err, distance.ErrEmptyPath)
}
