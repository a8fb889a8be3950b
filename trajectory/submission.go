package trajectory

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ayshrv/visitron/groundtruth"
)

// ErrMissingID indicates a submission entry without an instruction id.
var ErrMissingID = errors.New("trajectory: submission has no instruction id")

// Submission is one submitted trajectory.
type Submission struct {
	InstrID    groundtruth.InstrID `json:"inst_idx"`
	Trajectory Trajectory          `json:"trajectory"`
}

// UnmarshalJSON accepts inst_idx or its alias instr_id.
func (s *Submission) UnmarshalJSON(b []byte) error {
	var raw struct {
		InstIdx    *groundtruth.InstrID `json:"inst_idx"`
		InstrID    *groundtruth.InstrID `json:"instr_id"`
		Trajectory Trajectory           `json:"trajectory"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch {
	case raw.InstIdx != nil:
		s.InstrID = *raw.InstIdx
	case raw.InstrID != nil:
		s.InstrID = *raw.InstrID
	default:
		return ErrMissingID
	}
	s.Trajectory = raw.Trajectory

	return nil
}

// DecodeSubmissions reads a JSON array of submissions.
func DecodeSubmissions(r io.Reader) ([]Submission, error) {
	var subs []Submission
	if err := json.NewDecoder(r).Decode(&subs); err != nil {
		return nil, fmt.Errorf("trajectory: decode submissions: %w", err)
	}

	return subs, nil
}

// LoadSubmissions reads the submission file at path.
func LoadSubmissions(path string) ([]Submission, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("trajectory: %w", err)
	}
	defer f.Close()

	return DecodeSubmissions(f)
}
