package connectivity

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ayshrv/visitron/bfs"
	"github.com/ayshrv/visitron/core"
	"github.com/ayshrv/visitron/telemetry"
)

// FileName returns the connectivity file path for scan under dir.
func FileName(dir, scan string) string {
	return filepath.Join(dir, scan+"_connectivity.json")
}

// LoadOption configures LoadScenes.
type LoadOption func(*loadOptions)

type loadOptions struct {
	workers  int
	logger   *slog.Logger
	recorder *telemetry.Recorder
}

// WithWorkers bounds the number of scenes read concurrently.
// Non-positive values fall back to GOMAXPROCS.
func WithWorkers(n int) LoadOption {
	return func(o *loadOptions) { o.workers = n }
}

// WithLogger sets the logger used for per-scene progress.
func WithLogger(l *slog.Logger) LoadOption {
	return func(o *loadOptions) { o.logger = l }
}

// WithRecorder reports loaded scenes to r.
func WithRecorder(r *telemetry.Recorder) LoadOption {
	return func(o *loadOptions) { o.recorder = r }
}

// LoadScenes builds the scene graph of every scan in scans from files in
// dir, one errgroup task per scene. Duplicate scans are loaded once. The
// first failure cancels the remaining tasks and is returned.
func LoadScenes(ctx context.Context, dir string, scans []string, opts ...LoadOption) (map[string]*core.Graph, error) {
	o := loadOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers <= 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}

	var mu sync.Mutex
	graphs := make(map[string]*core.Graph, len(scans))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	queued := make(map[string]bool, len(scans))
	for _, scan := range scans {
		if queued[scan] {
			continue
		}
		queued[scan] = true
		scan := scan
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			sg, err := LoadScene(FileName(dir, scan))
			if err != nil {
				return fmt.Errorf("scan %s: %w", scan, err)
			}
			comps, err := bfs.Components(sg)
			if err != nil {
				return fmt.Errorf("scan %s: %w", scan, err)
			}
			o.logger.Debug("scene loaded",
				"scan", scan,
				"viewpoints", sg.VertexCount(),
				"edges", sg.EdgeCount(),
				"components", len(comps),
				"duration", time.Since(start))
			if len(comps) > 1 {
				o.logger.Warn("scene graph is disconnected",
					"scan", scan,
					"components", len(comps),
					"largest", largest(comps))
			}
			o.recorder.SceneLoaded()

			mu.Lock()
			graphs[scan] = sg
			mu.Unlock()

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return graphs, nil
}

// largest returns the size of the biggest component.
func largest(comps [][]string) int {
	n := 0
	for _, c := range comps {
		n = max(n, len(c))
	}

	return n
}
