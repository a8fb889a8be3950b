package groundtruth

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Sentinel errors for ground-truth loading.
var (
	// ErrUnknownDataset indicates an unsupported dataset name.
	ErrUnknownDataset = errors.New("groundtruth: unknown dataset")

	// ErrUnknownPathType indicates an unsupported path type.
	ErrUnknownPathType = errors.New("groundtruth: unknown path type")

	// ErrUnknownSplit indicates a split name outside train/val_seen/val_unseen/test.
	ErrUnknownSplit = errors.New("groundtruth: unknown split")

	// ErrEmptyPath indicates a record whose selected reference path is empty.
	ErrEmptyPath = errors.New("groundtruth: empty reference path")

	// ErrInvalidRecord indicates a record that fails field validation.
	ErrInvalidRecord = errors.New("groundtruth: invalid record")

	// ErrDuplicateID indicates two records sharing an instruction id.
	ErrDuplicateID = errors.New("groundtruth: duplicate instruction id")
)

// Dataset names a family of navigation records.
type Dataset string

// Supported datasets.
const (
	NDH  Dataset = "NDH"
	CVDN Dataset = "CVDN"
	R2R  Dataset = "R2R"
	R4R  Dataset = "R4R"
)

// ParseDataset validates s as a Dataset.
func ParseDataset(s string) (Dataset, error) {
	switch d := Dataset(s); d {
	case NDH, CVDN, R2R, R4R:
		return d, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownDataset, s)
}

// dialog reports whether records of d carry planner and player paths.
func (d Dataset) dialog() bool { return d == NDH || d == CVDN }

// PathType selects which path of a record is the reference.
type PathType string

// Supported path types.
const (
	PlannerPath PathType = "planner_path"
	PlayerPath  PathType = "player_path"
	TrustedPath PathType = "trusted_path"
	Path        PathType = "path"
)

// ParsePathType validates s as a PathType.
func ParsePathType(s string) (PathType, error) {
	switch p := PathType(s); p {
	case PlannerPath, PlayerPath, TrustedPath, Path:
		return p, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownPathType, s)
}

// Splits lists the recognised split names.
var Splits = []string{"train", "val_seen", "val_unseen", "test"}

// InstrID is an instruction identifier. JSON numbers and strings both
// decode into the same canonical string.
type InstrID string

// UnmarshalJSON accepts 12, 12.0 and "12" alike.
func (id *InstrID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = InstrID(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("groundtruth: instruction id %s: %w", b, err)
	}
	if i, err := n.Int64(); err == nil {
		*id = InstrID(strconv.FormatInt(i, 10))

		return nil
	}
	f, err := n.Float64()
	if err != nil {
		return fmt.Errorf("groundtruth: instruction id %s: %w", b, err)
	}
	if f == float64(int64(f)) {
		*id = InstrID(strconv.FormatInt(int64(f), 10))
	} else {
		*id = InstrID(n.String())
	}

	return nil
}

// String returns the id as a string.
func (id InstrID) String() string { return string(id) }

// Record is one ground-truth instruction with its resolved reference.
type Record struct {
	InstrID InstrID `json:"inst_idx" validate:"required"`
	Scan    string  `json:"scan" validate:"required"`

	Path        []string `json:"path,omitempty"`
	PlannerPath []string `json:"planner_path,omitempty"`
	PlayerPath  []string `json:"player_path,omitempty"`
	TrustedPath []string `json:"trusted_path,omitempty"`

	// EndPanos lists the viewpoints of the goal region; never empty.
	EndPanos []string `json:"end_panos" validate:"min=1,dive,required"`

	// Reference is the path selected by the loader's PathType.
	Reference []string `json:"reference" validate:"min=1,dive,required"`

	// PlannerGoal is the last planner viewpoint, or the reference goal when
	// the record has no planner path.
	PlannerGoal string `json:"planner_goal" validate:"required"`
}

// Start returns the first reference viewpoint.
func (r *Record) Start() string { return r.Reference[0] }

// Goal returns the last reference viewpoint.
func (r *Record) Goal() string { return r.Reference[len(r.Reference)-1] }

// rawRecord is the on-disk form shared by every dataset.
type rawRecord struct {
	InstIdx *InstrID `json:"inst_idx"`
	Idx     *InstrID `json:"idx"`
	InstrID *InstrID `json:"instr_id"`
	PathID  *InstrID `json:"path_id"`
	Scan    string   `json:"scan"`

	Path            []string `json:"path"`
	PlannerPath     []string `json:"planner_path"`
	PlayerPath      []string `json:"player_path"`
	PlannerNavSteps []string `json:"planner_nav_steps"`
	NavSteps        []string `json:"nav_steps"`
	EndPanos        []string `json:"end_panos"`
}

func (raw *rawRecord) id() InstrID {
	for _, p := range []*InstrID{raw.InstIdx, raw.Idx, raw.InstrID, raw.PathID} {
		if p != nil {
			return *p
		}
	}

	return ""
}
