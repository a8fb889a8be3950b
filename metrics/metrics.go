package metrics

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ayshrv/visitron/distance"
	"github.com/ayshrv/visitron/dtw"
	"github.com/ayshrv/visitron/groundtruth"
	"github.com/ayshrv/visitron/trajectory"
)

// DefaultErrorMargin is the success radius in meters.
const DefaultErrorMargin = 3.0

// ErrBadMargin indicates a non-positive error margin.
var ErrBadMargin = errors.New("metrics: error margin must be positive")

// Space answers distance queries within one scene. *distance.Table
// satisfies it.
type Space interface {
	Distance(u, v string) (float64, error)
	Nearest(path []string, goal string) (string, error)
	PathLength(nodes []string) (float64, error)
}

// ScoreRecord holds every metric of one scored instruction.
type ScoreRecord struct {
	InstrID groundtruth.InstrID `json:"instr_id"`
	Scan    string              `json:"scan"`

	NavError           float64 `json:"nav_error"`
	OracleError        float64 `json:"oracle_error"`
	OraclePlanError    float64 `json:"oracle_plan_error"`
	TrajectoryLength   float64 `json:"trajectory_length"`
	Hops               int     `json:"hops"`
	ShortestPathLength float64 `json:"shortest_path_length"`
	DistToEndReduction float64 `json:"dist_to_end_reduction"`
	SPL                float64 `json:"spl"`
	NDTW               float64 `json:"ndtw"`
	CLS                float64 `json:"cls"`

	Success           bool `json:"success"`
	OracleSuccess     bool `json:"oracle_success"`
	OraclePlanSuccess bool `json:"oracle_plan_success"`
}

// Computer scores trajectories against an Index.
type Computer struct {
	Index       *distance.Index
	ErrorMargin float64
}

// NewComputer returns a Computer using DefaultErrorMargin.
func NewComputer(idx *distance.Index) *Computer {
	return &Computer{Index: idx, ErrorMargin: DefaultErrorMargin}
}

// Compute scores traj, already validated and measured as m, against rec.
func (c *Computer) Compute(rec *groundtruth.Record, traj trajectory.Trajectory, m trajectory.Measurement) (ScoreRecord, error) {
	t, err := c.Index.Table(rec.Scan)
	if err != nil {
		return ScoreRecord{}, err
	}

	return ComputeIn(t, c.ErrorMargin, rec, traj, m)
}

// ComputeIn scores traj against rec inside space.
//
// Stages:
//  1. Goal errors for the final step and the nearest steps.
//  2. Dist-to-end reduction over rec.EndPanos.
//  3. Shortest path, SPL, nDTW and CLS.
func ComputeIn(space Space, margin float64, rec *groundtruth.Record, traj trajectory.Trajectory, m trajectory.Measurement) (ScoreRecord, error) {
	if !(margin > 0) {
		return ScoreRecord{}, fmt.Errorf("%w: %g", ErrBadMargin, margin)
	}
	if len(traj) == 0 {
		return ScoreRecord{}, trajectory.ErrEmptyTrajectory
	}

	vps := traj.Viewpoints()
	start, goal := rec.Start(), rec.Goal()
	final := vps[len(vps)-1]
	out := ScoreRecord{
		InstrID:          rec.InstrID,
		Scan:             rec.Scan,
		TrajectoryLength: m.Length,
		Hops:             m.Hops,
	}

	var err error
	if out.NavError, err = space.Distance(final, goal); err != nil {
		return ScoreRecord{}, fmt.Errorf("nav error: %w", err)
	}
	if out.OracleError, err = nearestError(space, vps, goal); err != nil {
		return ScoreRecord{}, fmt.Errorf("oracle error: %w", err)
	}
	if out.OraclePlanError, err = nearestError(space, vps, rec.PlannerGoal); err != nil {
		return ScoreRecord{}, fmt.Errorf("oracle plan error: %w", err)
	}
	out.Success = out.NavError < margin
	out.OracleSuccess = out.OracleError < margin
	out.OraclePlanSuccess = out.OraclePlanError < margin

	fromStart, err := minDistance(space, start, rec.EndPanos)
	if err != nil {
		return ScoreRecord{}, fmt.Errorf("dist to end: %w", err)
	}
	fromFinal, err := minDistance(space, final, rec.EndPanos)
	if err != nil {
		return ScoreRecord{}, fmt.Errorf("dist to end: %w", err)
	}
	out.DistToEndReduction = fromStart - fromFinal

	if out.ShortestPathLength, err = space.Distance(start, goal); err != nil {
		return ScoreRecord{}, fmt.Errorf("shortest path: %w", err)
	}
	out.SPL = SPL(out.Success, out.ShortestPathLength, out.TrajectoryLength)

	if out.NDTW, err = NDTW(space, vps, rec.Reference, margin); err != nil {
		return ScoreRecord{}, err
	}
	if out.CLS, err = CLS(space, vps, rec.Reference, margin); err != nil {
		return ScoreRecord{}, err
	}

	return out, nil
}

func nearestError(space Space, path []string, goal string) (float64, error) {
	near, err := space.Nearest(path, goal)
	if err != nil {
		return 0, err
	}

	return space.Distance(near, goal)
}

// minDistance returns the smallest distance from u to any of targets.
// Unreachable targets are skipped unless all of them are unreachable.
func minDistance(space Space, u string, targets []string) (float64, error) {
	ds := make([]float64, len(targets))
	for i, v := range targets {
		d, err := reach(space, u, v)
		if err != nil {
			return 0, err
		}
		ds[i] = d
	}
	best := floats.Min(ds)
	if math.IsInf(best, 1) {
		return 0, fmt.Errorf("%w: %s to end panos", distance.ErrUnreachable, u)
	}

	return best, nil
}

// reach returns d(u, v), +Inf when the two are not connected.
func reach(space Space, u, v string) (float64, error) {
	d, err := space.Distance(u, v)
	if errors.Is(err, distance.ErrUnreachable) {
		return math.Inf(1), nil
	}

	return d, err
}

// SPL returns success weighted by path length. A zero shortest path scores
// 1 only when the agent did not move.
func SPL(success bool, shortest, length float64) float64 {
	switch {
	case !success:
		return 0
	case shortest > 0:
		return shortest / math.Max(length, shortest)
	case length == 0:
		return 1
	default:
		return 0
	}
}

// NDTW returns the normalized dynamic time warping score of prediction
// against reference. Unreachable pairs cost +Inf.
func NDTW(space Space, prediction, reference []string, margin float64) (float64, error) {
	if len(prediction) == 0 || len(reference) == 0 {
		return 0, distance.ErrEmptyPath
	}

	cost := func(i, j int) (float64, error) {
		return reach(space, prediction[i], reference[j])
	}
	d, err := dtw.DTW(len(prediction), len(reference), cost, &dtw.Options{
		Window:     dtw.NoWindow,
		MemoryMode: dtw.TwoRows,
	})
	if err != nil {
		return 0, fmt.Errorf("ndtw: %w", err)
	}

	return math.Exp(-d / (margin * float64(len(reference)))), nil
}

// CLS returns the coverage weighted by length score of prediction against
// reference. When both expected and predicted lengths are 0 the length
// score is 1.
func CLS(space Space, prediction, reference []string, margin float64) (float64, error) {
	if len(prediction) == 0 || len(reference) == 0 {
		return 0, distance.ErrEmptyPath
	}

	cover := make([]float64, len(reference))
	row := make([]float64, len(prediction))
	for i, u := range reference {
		for j, v := range prediction {
			d, err := reach(space, u, v)
			if err != nil {
				return 0, fmt.Errorf("cls: %w", err)
			}
			row[j] = d
		}
		cover[i] = math.Exp(-floats.Min(row) / margin)
	}
	coverage := stat.Mean(cover, nil)

	refLen, err := space.PathLength(reference)
	if err != nil {
		return 0, fmt.Errorf("cls: reference length: %w", err)
	}
	predLen, err := space.PathLength(prediction)
	if err != nil {
		return 0, fmt.Errorf("cls: prediction length: %w", err)
	}

	expected := coverage * refLen
	denom := expected + math.Abs(expected-predLen)
	score := 1.0
	if denom > 0 {
		score = expected / denom
	}

	return coverage * score, nil
}
