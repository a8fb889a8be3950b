package connectivity_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayshrv/visitron/connectivity"
	"github.com/ayshrv/visitron/core"
	"github.com/ayshrv/visitron/telemetry"
)

func pose(x, y, z float64) []float64 {
	return []float64{1, 0, 0, x, 0, 1, 0, y, 0, 0, 1, z, 0, 0, 0, 1}
}

func TestBuild_LineScene(t *testing.T) {
	g, err := connectivity.LoadScene(filepath.Join("testdata", "line_connectivity.json"))
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C", "D"}, g.Vertices(), "excluded E must not appear")
	assert.Equal(t, 3, g.EdgeCount())
	assert.True(t, g.HasEdge("A", "B"))
	assert.True(t, g.HasEdge("C", "B"))
	assert.False(t, g.HasEdge("A", "C"))
	assert.False(t, g.HasEdge("A", "E"))

	nbs, err := g.Neighbors("B")
	require.NoError(t, err)
	for _, e := range nbs {
		assert.InDelta(t, 2.0, e.Weight, 1e-12)
	}

	v, err := g.Vertex("D")
	require.NoError(t, err)
	assert.Equal(t, core.Position{X: 6, Y: 0, Z: 1.5}, v.Position)
}

func TestBuild_EuclideanWeight(t *testing.T) {
	nodes := []connectivity.Node{
		{ImageID: "p", Included: true, Unobstructed: []bool{false, true}, Pose: pose(0, 0, 0)},
		{ImageID: "q", Included: true, Unobstructed: []bool{true, false}, Pose: pose(3, 4, 12)},
	}
	g, err := connectivity.Build(nodes)
	require.NoError(t, err)
	nbs, err := g.Neighbors("p")
	require.NoError(t, err)
	require.Len(t, nbs, 1)
	assert.InDelta(t, 13.0, nbs[0].Weight, 1e-12)
}

func TestBuild_Asymmetric(t *testing.T) {
	nodes := []connectivity.Node{
		{ImageID: "p", Included: true, Unobstructed: []bool{false, true}, Pose: pose(0, 0, 0)},
		{ImageID: "q", Included: true, Unobstructed: []bool{false, false}, Pose: pose(1, 0, 0)},
	}
	_, err := connectivity.Build(nodes)
	require.ErrorIs(t, err, connectivity.ErrDataIntegrity)
	assert.Contains(t, err.Error(), `"p" sees "q"`)
}

func TestBuild_AsymmetryToExcludedNodeIgnored(t *testing.T) {
	nodes := []connectivity.Node{
		{ImageID: "p", Included: true, Unobstructed: []bool{false, true}, Pose: pose(0, 0, 0)},
		{ImageID: "q", Included: false, Unobstructed: []bool{false, false}, Pose: pose(1, 0, 0)},
	}
	g, err := connectivity.Build(nodes)
	require.NoError(t, err)
	assert.Equal(t, []string{"p"}, g.Vertices())
	assert.Zero(t, g.EdgeCount())
}

func TestBuild_SelfFlagIgnored(t *testing.T) {
	nodes := []connectivity.Node{
		{ImageID: "p", Included: true, Unobstructed: []bool{true}, Pose: pose(0, 0, 0)},
	}
	g, err := connectivity.Build(nodes)
	require.NoError(t, err)
	assert.Zero(t, g.EdgeCount())
}

func TestBuild_Malformed(t *testing.T) {
	tests := map[string][]connectivity.Node{
		"short pose": {
			{ImageID: "p", Included: true, Unobstructed: []bool{false}, Pose: []float64{1, 2, 3}},
		},
		"misaligned unobstructed": {
			{ImageID: "p", Included: true, Unobstructed: []bool{false, true}, Pose: pose(0, 0, 0)},
		},
		"duplicate id": {
			{ImageID: "p", Included: true, Unobstructed: []bool{false, false}, Pose: pose(0, 0, 0)},
			{ImageID: "p", Included: true, Unobstructed: []bool{false, false}, Pose: pose(1, 0, 0)},
		},
		"missing id": {
			{Included: true, Unobstructed: []bool{false}, Pose: pose(0, 0, 0)},
		},
	}
	for name, nodes := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := connectivity.Build(nodes)
			assert.ErrorIs(t, err, connectivity.ErrDataIntegrity)
		})
	}
}

func TestDecode_BadJSON(t *testing.T) {
	_, err := connectivity.Decode(strings.NewReader(`{"not": "an array"}`))
	assert.Error(t, err)
}

func TestLoadScenes(t *testing.T) {
	dir := t.TempDir()
	data, err := os.ReadFile(filepath.Join("testdata", "line_connectivity.json"))
	require.NoError(t, err)
	for _, scan := range []string{"s1", "s2"} {
		require.NoError(t, os.WriteFile(connectivity.FileName(dir, scan), data, 0o644))
	}

	rec := telemetry.New()
	graphs, err := connectivity.LoadScenes(context.Background(), dir, []string{"s1", "s2", "s1"},
		connectivity.WithWorkers(2), connectivity.WithRecorder(rec))
	require.NoError(t, err)
	require.Len(t, graphs, 2)
	assert.Equal(t, 4, graphs["s2"].VertexCount())
}

func TestLoadScenes_FailureNamesScan(t *testing.T) {
	dir := t.TempDir()
	bad := []connectivity.Node{
		{ImageID: "p", Included: true, Unobstructed: []bool{false, true}, Pose: pose(0, 0, 0)},
		{ImageID: "q", Included: true, Unobstructed: []bool{false, false}, Pose: pose(1, 0, 0)},
	}
	data, err := json.Marshal(bad)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(connectivity.FileName(dir, "broken"), data, 0o644))

	_, err = connectivity.LoadScenes(context.Background(), dir, []string{"broken"})
	require.ErrorIs(t, err, connectivity.ErrDataIntegrity)
	assert.Contains(t, err.Error(), "scan broken")

	_, err = connectivity.LoadScenes(context.Background(), dir, []string{"absent"})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadScenes_WarnsOnDisconnectedScene(t *testing.T) {
	dir := t.TempDir()
	nodes := []connectivity.Node{
		{ImageID: "p", Included: true, Unobstructed: []bool{false, false}, Pose: pose(0, 0, 0)},
		{ImageID: "q", Included: true, Unobstructed: []bool{false, false}, Pose: pose(1, 0, 0)},
	}
	data, err := json.Marshal(nodes)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(connectivity.FileName(dir, "split"), data, 0o644))

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	graphs, err := connectivity.LoadScenes(context.Background(), dir, []string{"split"}, connectivity.WithLogger(logger))
	require.NoError(t, err)
	assert.Equal(t, 2, graphs["split"].VertexCount())
	assert.Contains(t, buf.String(), "scene graph is disconnected")
	assert.Contains(t, buf.String(), "components=2")
}
