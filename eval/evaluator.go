package eval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ayshrv/visitron/distance"
	"github.com/ayshrv/visitron/groundtruth"
	"github.com/ayshrv/visitron/metrics"
	"github.com/ayshrv/visitron/telemetry"
	"github.com/ayshrv/visitron/trajectory"
)

// Mode selects how per-instruction errors are handled.
type Mode string

// Supported modes.
const (
	ModeStrict     Mode = "strict"
	ModePermissive Mode = "permissive"
)

// ParseMode validates s as a Mode. The empty string means ModeStrict.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case "":
		return ModeStrict, nil
	case ModeStrict, ModePermissive:
		return m, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Evaluator scores submissions against fixed ground truth.
type Evaluator struct {
	gt       *groundtruth.Set
	idx      *distance.Index
	computer *metrics.Computer
	workers  int
	mode     Mode
	logger   *slog.Logger
	recorder *telemetry.Recorder
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithErrorMargin sets the success radius. Defaults to
// metrics.DefaultErrorMargin.
func WithErrorMargin(m float64) Option {
	return func(e *Evaluator) { e.computer.ErrorMargin = m }
}

// WithWorkers bounds concurrent scoring. Non-positive values fall back to
// GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(e *Evaluator) { e.workers = n }
}

// WithMode sets the failure policy.
func WithMode(m Mode) Option {
	return func(e *Evaluator) { e.mode = m }
}

// WithLogger sets the run logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Evaluator) { e.logger = l }
}

// WithRecorder reports instruction outcomes and run results to r.
func WithRecorder(r *telemetry.Recorder) Option {
	return func(e *Evaluator) { e.recorder = r }
}

// NewEvaluator binds gt to idx. Every scan referenced by gt must be indexed.
func NewEvaluator(gt *groundtruth.Set, idx *distance.Index, opts ...Option) (*Evaluator, error) {
	if gt == nil || idx == nil {
		return nil, errors.New("eval: nil ground truth or index")
	}
	for _, scan := range gt.Scans() {
		if _, err := idx.Table(scan); err != nil {
			return nil, err
		}
	}

	e := &Evaluator{
		gt:       gt,
		idx:      idx,
		computer: metrics.NewComputer(idx),
		mode:     ModeStrict,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers <= 0 {
		e.workers = runtime.GOMAXPROCS(0)
	}
	if !(e.computer.ErrorMargin > 0) {
		return nil, fmt.Errorf("%w: %g", metrics.ErrBadMargin, e.computer.ErrorMargin)
	}
	if _, err := ParseMode(string(e.mode)); err != nil {
		return nil, err
	}

	return e, nil
}

// Instructions returns the expected instruction ids in load order.
func (e *Evaluator) Instructions() []groundtruth.InstrID {
	return e.gt.IDs()
}

// ErrorMargin returns the success radius in use.
func (e *Evaluator) ErrorMargin() float64 {
	return e.computer.ErrorMargin
}

type job struct {
	rec  *groundtruth.Record
	traj trajectory.Trajectory
}

// Score evaluates subs.
//
// Stages:
//  1. Claim every submission in order; duplicates abort the run.
//  2. Validate and score claimed trajectories on the worker pool.
//  3. Finish the aggregate and publish run metrics.
func (e *Evaluator) Score(ctx context.Context, subs []trajectory.Submission) (*Report, error) {
	runID := uuid.New()
	log := e.logger.With("run_id", runID.String())
	start := time.Now()

	rep, err := e.score(ctx, log, subs)
	elapsed := time.Since(start)
	if err != nil {
		e.recorder.RunFinished(elapsed, 0, 0, err)
		log.Error("scoring run failed", "error", err, "duration", elapsed)

		return nil, err
	}
	rep.RunID = runID
	e.recorder.RunFinished(elapsed, rep.Summary.SuccessRate, rep.Summary.SPL, nil)
	log.Info("scoring run finished",
		"scored", rep.Summary.Count,
		"failed", len(rep.Failures),
		"ignored", rep.Ignored,
		"success_rate", rep.Summary.SuccessRate,
		"spl", rep.Summary.SPL,
		"duration", elapsed)

	return rep, nil
}

func (e *Evaluator) score(ctx context.Context, log *slog.Logger, subs []trajectory.Submission) (*Report, error) {
	agg := NewAggregator(e.gt.IDs())

	jobs := make([]job, 0, len(subs))
	for _, sub := range subs {
		ok, err := agg.Claim(sub.InstrID)
		if err != nil {
			return nil, err
		}
		if !ok {
			e.recorder.Instruction(telemetry.OutcomeIgnored)
			log.Debug("ignoring unknown instruction", "instr_id", sub.InstrID)
			continue
		}
		rec, _ := e.gt.Get(sub.InstrID)
		jobs = append(jobs, job{rec: rec, traj: sub.Trajectory})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for _, j := range jobs {
		j := j
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sr, err := e.scoreOne(j.rec, j.traj)
			if err != nil {
				err = fmt.Errorf("instruction %s (scan %s): %w", j.rec.InstrID, j.rec.Scan, err)
				e.recorder.Instruction(telemetry.OutcomeFailed)
				if e.mode == ModeStrict {
					return err
				}
				log.Warn("instruction not scored", "instr_id", j.rec.InstrID, "scan", j.rec.Scan, "error", err)
				agg.Fail(j.rec.InstrID, j.rec.Scan, err)

				return nil
			}
			e.recorder.Instruction(telemetry.OutcomeScored)
			agg.Put(sr)

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return agg.Finish()
}

func (e *Evaluator) scoreOne(rec *groundtruth.Record, traj trajectory.Trajectory) (metrics.ScoreRecord, error) {
	m, err := trajectory.Validate(e.idx, rec, traj)
	if err != nil {
		return metrics.ScoreRecord{}, err
	}

	return e.computer.Compute(rec, traj, m)
}

// ScoreOne validates and scores a single trajectory for id without
// aggregation.
func (e *Evaluator) ScoreOne(id groundtruth.InstrID, traj trajectory.Trajectory) (metrics.ScoreRecord, error) {
	rec, ok := e.gt.Get(id)
	if !ok {
		return metrics.ScoreRecord{}, fmt.Errorf("%w: %s", ErrUnknownInstruction, id)
	}

	return e.scoreOne(rec, traj)
}
