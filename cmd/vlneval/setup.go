package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ayshrv/visitron/config"
	"github.com/ayshrv/visitron/connectivity"
	"github.com/ayshrv/visitron/distance"
	"github.com/ayshrv/visitron/eval"
	"github.com/ayshrv/visitron/groundtruth"
	"github.com/ayshrv/visitron/telemetry"
)

// buildEvaluator loads ground truth, the scenes it references and their
// distance tables.
func buildEvaluator(ctx context.Context, cfg config.Config, logger *slog.Logger, rec *telemetry.Recorder) (*eval.Evaluator, error) {
	start := time.Now()

	gt, err := groundtruth.Load(cfg.DataRoot, cfg.DatasetValue(), cfg.Splits, cfg.PathTypeValue())
	if err != nil {
		return nil, fmt.Errorf("load ground truth: %w", err)
	}
	logger.Info("ground truth loaded",
		"dataset", cfg.Dataset,
		"path_type", cfg.PathType,
		"instructions", gt.Len(),
		"scans", len(gt.Scans()))

	graphs, err := connectivity.LoadScenes(ctx, cfg.ConnectivityDir, gt.Scans(),
		connectivity.WithWorkers(cfg.Workers),
		connectivity.WithLogger(logger),
		connectivity.WithRecorder(rec))
	if err != nil {
		return nil, fmt.Errorf("load scenes: %w", err)
	}

	idx, err := distance.Build(ctx, graphs,
		distance.WithWorkers(cfg.Workers),
		distance.WithLogger(logger),
		distance.WithRecorder(rec))
	if err != nil {
		return nil, fmt.Errorf("build distance index: %w", err)
	}
	logger.Info("distance index ready", "scans", len(idx.Scans()), "duration", time.Since(start))

	return eval.NewEvaluator(gt, idx,
		eval.WithErrorMargin(cfg.ErrorMargin),
		eval.WithWorkers(cfg.Workers),
		eval.WithMode(cfg.ModeValue()),
		eval.WithLogger(logger),
		eval.WithRecorder(rec))
}
