package eval

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ayshrv/visitron/groundtruth"
)

// Sentinel errors for a scoring run.
var (
	// ErrDuplicateSubmission indicates an instruction submitted twice.
	ErrDuplicateSubmission = errors.New("eval: duplicate submission")

	// ErrIncompleteSubmission indicates expected instructions with no submission.
	ErrIncompleteSubmission = errors.New("eval: trajectories not provided for every instruction")

	// ErrConsistency indicates a summary where mean SPL exceeds the success rate.
	ErrConsistency = errors.New("eval: inconsistent summary")

	// ErrUnknownInstruction indicates an id absent from the ground truth.
	ErrUnknownInstruction = errors.New("eval: unknown instruction")

	// ErrUnknownMode indicates an unsupported failure mode name.
	ErrUnknownMode = errors.New("eval: unknown mode")
)

// DuplicateSubmissionError names the repeated instruction.
type DuplicateSubmissionError struct {
	InstrID groundtruth.InstrID
}

func (e *DuplicateSubmissionError) Error() string {
	return fmt.Sprintf("%v: %s", ErrDuplicateSubmission, e.InstrID)
}

// Unwrap returns ErrDuplicateSubmission.
func (e *DuplicateSubmissionError) Unwrap() error { return ErrDuplicateSubmission }

// IncompleteSubmissionError lists the instructions left without a
// trajectory, sorted.
type IncompleteSubmissionError struct {
	Missing []groundtruth.InstrID
}

func (e *IncompleteSubmissionError) Error() string {
	const shown = 10
	ids := make([]string, 0, shown)
	for i, id := range e.Missing {
		if i == shown {
			ids = append(ids, "...")
			break
		}
		ids = append(ids, string(id))
	}

	return fmt.Sprintf("%v: %d missing [%s]", ErrIncompleteSubmission, len(e.Missing), strings.Join(ids, " "))
}

// Unwrap returns ErrIncompleteSubmission.
func (e *IncompleteSubmissionError) Unwrap() error { return ErrIncompleteSubmission }

// ConsistencyError reports a summary with SPL above the success rate.
type ConsistencyError struct {
	SPL         float64
	SuccessRate float64
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("%v: spl %g > success rate %g", ErrConsistency, e.SPL, e.SuccessRate)
}

// Unwrap returns ErrConsistency.
func (e *ConsistencyError) Unwrap() error { return ErrConsistency }
