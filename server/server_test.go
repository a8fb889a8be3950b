package server_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayshrv/visitron/core"
	"github.com/ayshrv/visitron/distance"
	"github.com/ayshrv/visitron/eval"
	"github.com/ayshrv/visitron/groundtruth"
	"github.com/ayshrv/visitron/server"
	"github.com/ayshrv/visitron/telemetry"
)

func newServer(t *testing.T) *server.Server {
	t.Helper()
	g := core.NewGraph()
	for _, e := range [][2]string{{"A", "B"}, {"B", "C"}} {
		_, err := g.AddEdge(e[0], e[1], 2)
		require.NoError(t, err)
	}
	idx, err := distance.Build(context.Background(), map[string]*core.Graph{"s": g})
	require.NoError(t, err)
	set, err := groundtruth.NewSet(groundtruth.R2R, groundtruth.Path, []*groundtruth.Record{
		{InstrID: "1", Scan: "s", Reference: []string{"A", "B", "C"}, PlannerGoal: "C", EndPanos: []string{"C"}},
	})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rec := telemetry.New()
	ev, err := eval.NewEvaluator(set, idx, eval.WithLogger(logger), eval.WithRecorder(rec))
	require.NoError(t, err)

	return server.New(ev, rec, logger)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestScore_OK(t *testing.T) {
	h := newServer(t)
	rr := do(t, h, http.MethodPost, "/v1/score", `[{"inst_idx": 1, "trajectory": [["A",0,0],["B",0,0],["C",0,0]]}]`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var rep eval.Report
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rep))
	assert.Equal(t, 1, rep.Summary.Count)
	assert.Equal(t, 1.0, rep.Summary.SuccessRate)
	assert.Equal(t, 1.0, rep.Summary.SPL)
}

func TestScore_StatusMapping(t *testing.T) {
	h := newServer(t)
	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{`, http.StatusBadRequest},
		{"bad step", `[{"inst_idx": 1, "trajectory": [[1]]}]`, http.StatusBadRequest},
		{"missing edge", `[{"inst_idx": 1, "trajectory": [["A",0,0],["C",0,0]]}]`, http.StatusUnprocessableEntity},
		{"start mismatch", `[{"inst_idx": 1, "trajectory": [["B",0,0]]}]`, http.StatusUnprocessableEntity},
		{"incomplete", `[]`, http.StatusUnprocessableEntity},
		{"duplicate", `[{"inst_idx": 1, "trajectory": [["A",0,0]]}, {"inst_idx": "1", "trajectory": [["A",0,0]]}]`, http.StatusUnprocessableEntity},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, "/v1/score", tc.body)
			assert.Equal(t, tc.want, rr.Code, rr.Body.String())
			assert.Contains(t, rr.Body.String(), `"error"`)
		})
	}
}

func TestInstructionsHealthMetrics(t *testing.T) {
	h := newServer(t)

	rr := do(t, h, http.MethodGet, "/v1/instructions", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"instructions": ["1"], "error_margin": 3}`, rr.Body.String())

	rr = do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)

	do(t, h, http.MethodPost, "/v1/score", `[{"inst_idx": 1, "trajectory": [["A",0,0]]}]`)
	rr = do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `vlneval_instructions_total{outcome="scored"} 1`)

	rr = do(t, h, http.MethodGet, "/v1/score", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	h := newServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()
	assert.NoError(t, <-done)
}
