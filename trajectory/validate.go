package trajectory

import (
	"github.com/ayshrv/visitron/groundtruth"
)

// Graph is the scene query surface needed for validation.
// *distance.Index satisfies it.
type Graph interface {
	Distance(scan, u, v string) (float64, error)
	HasEdge(scan, u, v string) bool
}

// Measurement is the travelled extent of a valid trajectory.
type Measurement struct {
	// Length is the summed graph distance between distinct consecutive
	// viewpoints.
	Length float64

	// Hops counts every consecutive pair of steps.
	Hops int
}

// Validate checks traj against rec's start and the graph of rec.Scan, and
// measures it.
// Complexity: O(len(traj)).
func Validate(g Graph, rec *groundtruth.Record, traj Trajectory) (Measurement, error) {
	if len(traj) == 0 {
		return Measurement{}, ErrEmptyTrajectory
	}
	if start := rec.Start(); traj[0].Viewpoint != start {
		return Measurement{}, &StartMismatchError{Want: start, Got: traj[0].Viewpoint}
	}

	var m Measurement
	for i := 1; i < len(traj); i++ {
		prev, curr := traj[i-1].Viewpoint, traj[i].Viewpoint
		m.Hops++
		if prev == curr {
			continue
		}
		if !g.HasEdge(rec.Scan, prev, curr) {
			return Measurement{}, &MissingEdgeError{From: prev, To: curr}
		}
		d, err := g.Distance(rec.Scan, prev, curr)
		if err != nil {
			return Measurement{}, err
		}
		m.Length += d
	}

	return m, nil
}
