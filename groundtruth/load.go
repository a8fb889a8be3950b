package groundtruth

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
)

// SplitFile returns the path of split for dataset ds under root.
func SplitFile(root string, ds Dataset, split string) (string, error) {
	if !slices.Contains(Splits, split) {
		return "", fmt.Errorf("%w: %q", ErrUnknownSplit, split)
	}
	switch ds {
	case NDH, CVDN:
		return filepath.Join(root, string(ds), "data", split+".json"), nil
	case R2R, R4R:
		return filepath.Join(root, string(ds), "data", string(ds)+"_"+split+".json"), nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownDataset, ds)
}

// Decode reads a JSON array of records of dataset ds and resolves each with
// reference pt.
func Decode(r io.Reader, ds Dataset, pt PathType) ([]*Record, error) {
	if _, err := ParseDataset(string(ds)); err != nil {
		return nil, err
	}
	if _, err := ParsePathType(string(pt)); err != nil {
		return nil, err
	}

	var raws []rawRecord
	if err := json.NewDecoder(r).Decode(&raws); err != nil {
		return nil, fmt.Errorf("groundtruth: decode: %w", err)
	}

	out := make([]*Record, 0, len(raws))
	for i := range raws {
		rec, err := resolve(&raws[i], ds, pt)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, rec)
	}

	return out, nil
}

// Set is an immutable collection of records keyed by instruction id.
type Set struct {
	dataset  Dataset
	pathType PathType
	ids      []InstrID
	byID     map[InstrID]*Record
}

// NewSet indexes recs. Instruction ids must be unique.
func NewSet(ds Dataset, pt PathType, recs []*Record) (*Set, error) {
	s := &Set{
		dataset:  ds,
		pathType: pt,
		ids:      make([]InstrID, 0, len(recs)),
		byID:     make(map[InstrID]*Record, len(recs)),
	}
	for _, rec := range recs {
		if _, dup := s.byID[rec.InstrID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, rec.InstrID)
		}
		s.byID[rec.InstrID] = rec
		s.ids = append(s.ids, rec.InstrID)
	}

	return s, nil
}

// Load reads every split of dataset ds under root into one Set.
func Load(root string, ds Dataset, splits []string, pt PathType) (*Set, error) {
	var all []*Record
	for _, split := range splits {
		path, err := SplitFile(root, ds, split)
		if err != nil {
			return nil, err
		}
		recs, err := loadFile(path, ds, pt)
		if err != nil {
			return nil, err
		}
		all = append(all, recs...)
	}

	return NewSet(ds, pt, all)
}

func loadFile(path string, ds Dataset, pt PathType) ([]*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("groundtruth: %w", err)
	}
	defer f.Close()

	recs, err := Decode(f, ds, pt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return recs, nil
}

// Dataset returns the dataset the records were loaded as.
func (s *Set) Dataset() Dataset { return s.dataset }

// PathType returns the reference path type.
func (s *Set) PathType() PathType { return s.pathType }

// Len returns the number of records.
func (s *Set) Len() int { return len(s.ids) }

// Get returns the record with the given id.
func (s *Set) Get(id InstrID) (*Record, bool) {
	rec, ok := s.byID[id]

	return rec, ok
}

// IDs returns instruction ids in load order.
func (s *Set) IDs() []InstrID {
	return slices.Clone(s.ids)
}

// Scans returns the distinct scans referenced by the records, sorted.
func (s *Set) Scans() []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, id := range s.ids {
		scan := s.byID[id].Scan
		if !seen[scan] {
			seen[scan] = true
			out = append(out, scan)
		}
	}
	sort.Strings(out)

	return out
}
