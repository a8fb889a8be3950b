package distance

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ayshrv/visitron/core"
	"github.com/ayshrv/visitron/telemetry"
)

// Index maps scene identifiers to their distance Tables.
type Index struct {
	tables map[string]*Table
}

// Option configures Build.
type Option func(*buildOptions)

type buildOptions struct {
	workers  int
	logger   *slog.Logger
	recorder *telemetry.Recorder
}

// WithWorkers bounds the number of tables built concurrently.
// Non-positive values fall back to GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *buildOptions) { o.workers = n }
}

// WithLogger sets the logger used for per-scene progress.
func WithLogger(l *slog.Logger) Option {
	return func(o *buildOptions) { o.logger = l }
}

// WithRecorder reports table build durations to r.
func WithRecorder(r *telemetry.Recorder) Option {
	return func(o *buildOptions) { o.recorder = r }
}

// Build computes one Table per scene graph. Scenes are fanned out over an
// errgroup limited to the configured worker count; the first failure
// cancels the remaining scenes.
func Build(ctx context.Context, graphs map[string]*core.Graph, opts ...Option) (*Index, error) {
	o := buildOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers <= 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}

	idx := &Index{tables: make(map[string]*Table, len(graphs))}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for scan, sg := range graphs {
		scan, sg := scan, sg
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			t, err := NewTable(scan, sg)
			if err != nil {
				return fmt.Errorf("scan %s: %w", scan, err)
			}
			elapsed := time.Since(start)
			o.logger.Debug("distance table built",
				"scan", scan,
				"viewpoints", len(t.ids),
				"duration", elapsed)
			o.recorder.ObserveTableBuild(elapsed)

			mu.Lock()
			idx.tables[scan] = t
			mu.Unlock()

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return idx, nil
}

// Table returns the distance table of scan.
func (x *Index) Table(scan string) (*Table, error) {
	t, ok := x.tables[scan]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, scan)
	}

	return t, nil
}

// Scans returns the indexed scene identifiers, sorted.
func (x *Index) Scans() []string {
	out := make([]string, 0, len(x.tables))
	for scan := range x.tables {
		out = append(out, scan)
	}
	sort.Strings(out)

	return out
}

// Distance returns the shortest-path distance between u and v in scan.
func (x *Index) Distance(scan, u, v string) (float64, error) {
	t, err := x.Table(scan)
	if err != nil {
		return 0, err
	}

	return t.Distance(u, v)
}

// Nearest returns the element of path closest to goal in scan.
func (x *Index) Nearest(scan string, path []string, goal string) (string, error) {
	t, err := x.Table(scan)
	if err != nil {
		return "", err
	}

	return t.Nearest(path, goal)
}

// HasEdge reports whether u and v are adjacent in the graph of scan.
// Unknown scenes have no edges.
func (x *Index) HasEdge(scan, u, v string) bool {
	t, ok := x.tables[scan]
	if !ok {
		return false
	}

	return t.HasEdge(u, v)
}

// PathLength returns the summed consecutive distances of nodes in scan.
func (x *Index) PathLength(scan string, nodes []string) (float64, error) {
	t, err := x.Table(scan)
	if err != nil {
		return 0, err
	}

	return t.PathLength(nodes)
}
