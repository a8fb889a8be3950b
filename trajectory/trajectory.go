package trajectory

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Sentinel errors for trajectory validation.
var (
	// ErrEmptyTrajectory indicates a trajectory with no steps.
	ErrEmptyTrajectory = errors.New("trajectory: empty trajectory")

	// ErrStartMismatch indicates a trajectory not starting at the reference start.
	ErrStartMismatch = errors.New("trajectory: trajectory must include the start position")

	// ErrMissingEdge indicates a move between viewpoints that are not adjacent.
	ErrMissingEdge = errors.New("trajectory: navigation graph has no edge for move")

	// ErrBadStep indicates a malformed step on the wire.
	ErrBadStep = errors.New("trajectory: malformed step")
)

// Step is one agent pose: a viewpoint plus camera angles in radians.
type Step struct {
	Viewpoint string
	Heading   float64
	Elevation float64
}

// UnmarshalJSON decodes [viewpoint, heading, elevation]. The angles are
// optional.
func (s *Step) UnmarshalJSON(b []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(b, &parts); err != nil {
		return fmt.Errorf("%w: %w", ErrBadStep, err)
	}
	if len(parts) == 0 || len(parts) > 3 {
		return fmt.Errorf("%w: %d elements", ErrBadStep, len(parts))
	}

	var out Step
	if err := json.Unmarshal(parts[0], &out.Viewpoint); err != nil {
		return fmt.Errorf("%w: viewpoint: %w", ErrBadStep, err)
	}
	if out.Viewpoint == "" {
		return fmt.Errorf("%w: empty viewpoint", ErrBadStep)
	}
	angles := []*float64{&out.Heading, &out.Elevation}
	for i, raw := range parts[1:] {
		if err := json.Unmarshal(raw, angles[i]); err != nil {
			return fmt.Errorf("%w: angle %d: %w", ErrBadStep, i, err)
		}
	}
	*s = out

	return nil
}

// MarshalJSON encodes s as [viewpoint, heading, elevation].
func (s Step) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{s.Viewpoint, s.Heading, s.Elevation})
}

// Trajectory is an ordered sequence of steps.
type Trajectory []Step

// Viewpoints returns the viewpoint of every step.
func (t Trajectory) Viewpoints() []string {
	out := make([]string, len(t))
	for i, s := range t {
		out[i] = s.Viewpoint
	}

	return out
}

// StartMismatchError reports a trajectory whose first viewpoint is not the
// reference start.
type StartMismatchError struct {
	Want string
	Got  string
}

func (e *StartMismatchError) Error() string {
	return fmt.Sprintf("%v: want %s, got %s", ErrStartMismatch, e.Want, e.Got)
}

// Unwrap returns ErrStartMismatch.
func (e *StartMismatchError) Unwrap() error { return ErrStartMismatch }

// MissingEdgeError reports a move between two non-adjacent viewpoints.
type MissingEdgeError struct {
	From string
	To   string
}

func (e *MissingEdgeError) Error() string {
	return fmt.Sprintf("%v: %s to %s", ErrMissingEdge, e.From, e.To)
}

// Unwrap returns ErrMissingEdge.
func (e *MissingEdgeError) Unwrap() error { return ErrMissingEdge }
