package groundtruth

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator for records.
var validate = validator.New()

// resolve turns raw into a Record for dataset ds with reference pt.
//
// Steps:
//  1. Apply CVDN field names.
//  2. Compute the trusted path when requested.
//  3. Select the reference and derive the planner goal and end panos.
//  4. Validate the result.
func resolve(raw *rawRecord, ds Dataset, pt PathType) (*Record, error) {
	rec := &Record{
		InstrID:     raw.id(),
		Scan:        raw.Scan,
		Path:        raw.Path,
		PlannerPath: raw.PlannerPath,
		PlayerPath:  raw.PlayerPath,
	}
	if ds == CVDN {
		if rec.PlannerPath == nil {
			rec.PlannerPath = raw.PlannerNavSteps
		}
		if rec.PlayerPath == nil {
			rec.PlayerPath = raw.NavSteps
		}
	}

	if pt == TrustedPath {
		rec.TrustedPath = trusted(rec, ds)
	}

	switch pt {
	case PlannerPath:
		rec.Reference = rec.PlannerPath
	case PlayerPath:
		rec.Reference = rec.PlayerPath
	case TrustedPath:
		rec.Reference = rec.TrustedPath
	case Path:
		rec.Reference = rec.Path
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPathType, pt)
	}
	if len(rec.Reference) == 0 {
		return nil, fmt.Errorf("%w: instruction %s has no %s", ErrEmptyPath, rec.InstrID, pt)
	}

	if n := len(rec.PlannerPath); n > 0 {
		rec.PlannerGoal = rec.PlannerPath[n-1]
	} else {
		rec.PlannerGoal = rec.Goal()
	}

	rec.EndPanos = raw.EndPanos
	if len(rec.EndPanos) == 0 {
		rec.EndPanos = []string{rec.Goal()}
	}

	if err := validate.Struct(rec); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("%w: instruction %q field %s failed %q",
				ErrInvalidRecord, rec.InstrID, verrs[0].Namespace(), verrs[0].Tag())
		}

		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	return rec, nil
}

// trusted returns the player path if the planner goal is reached after the
// first player step, else the dataset's fallback path.
func trusted(rec *Record, ds Dataset) []string {
	fallback := rec.Path
	if ds.dialog() {
		fallback = rec.PlannerPath
	}
	if len(rec.PlannerPath) == 0 || len(rec.PlayerPath) < 2 {
		return fallback
	}
	goal := rec.PlannerPath[len(rec.PlannerPath)-1]
	if slices.Contains(rec.PlayerPath[1:], goal) {
		return rec.PlayerPath
	}

	return fallback
}
