package eval

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/ayshrv/visitron/groundtruth"
	"github.com/ayshrv/visitron/metrics"
)

// Summary is the mean of every per-instruction metric. Rates are fractions
// in [0, 1].
type Summary struct {
	Count                 int     `json:"count"`
	Length                float64 `json:"length"`
	Hops                  float64 `json:"hops"`
	NavError              float64 `json:"nav_error"`
	OracleError           float64 `json:"oracle_error"`
	ShortestPathLength    float64 `json:"shortest_path_length"`
	OracleSuccessRate     float64 `json:"oracle_success_rate"`
	SuccessRate           float64 `json:"success_rate"`
	SPL                   float64 `json:"spl"`
	OraclePathSuccessRate float64 `json:"oracle_path_success_rate"`
	DistToEndReduction    float64 `json:"dist_to_end_reduction"`
	NDTW                  float64 `json:"ndtw"`
	CLS                   float64 `json:"cls"`
}

// Failure is an instruction that could not be scored.
type Failure struct {
	InstrID groundtruth.InstrID `json:"instr_id"`
	Scan    string              `json:"scan"`
	Message string              `json:"error"`
	Err     error               `json:"-"`
}

// Report is the outcome of one scoring run.
type Report struct {
	RunID    uuid.UUID             `json:"run_id"`
	Summary  Summary               `json:"summary"`
	Records  []metrics.ScoreRecord `json:"records"`
	Failures []Failure             `json:"failures,omitempty"`
	Ignored  int                   `json:"ignored"`
}

// Aggregator collects per-instruction results of one run. Claim is meant
// to be called from a single goroutine; Put and Fail may be called
// concurrently.
type Aggregator struct {
	mu       sync.Mutex
	pending  map[groundtruth.InstrID]bool
	order    map[groundtruth.InstrID]int
	records  []metrics.ScoreRecord
	failures []Failure
	ignored  int
}

// NewAggregator expects exactly one submission for each id in expected.
func NewAggregator(expected []groundtruth.InstrID) *Aggregator {
	a := &Aggregator{
		pending: make(map[groundtruth.InstrID]bool, len(expected)),
		order:   make(map[groundtruth.InstrID]int, len(expected)),
	}
	for _, id := range expected {
		a.pending[id] = true
	}

	return a
}

// Claim marks id as submitted. Unknown ids return false and are counted as
// ignored; an id claimed twice returns *DuplicateSubmissionError.
func (a *Aggregator) Claim(id groundtruth.InstrID) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, seen := a.order[id]; seen {
		return false, &DuplicateSubmissionError{InstrID: id}
	}
	if !a.pending[id] {
		a.ignored++

		return false, nil
	}
	delete(a.pending, id)
	a.order[id] = len(a.order)

	return true, nil
}

// Put stores the score of a claimed instruction.
func (a *Aggregator) Put(rec metrics.ScoreRecord) {
	a.mu.Lock()
	a.records = append(a.records, rec)
	a.mu.Unlock()
}

// Fail records a claimed instruction that could not be scored.
func (a *Aggregator) Fail(id groundtruth.InstrID, scan string, err error) {
	a.mu.Lock()
	a.failures = append(a.failures, Failure{InstrID: id, Scan: scan, Message: err.Error(), Err: err})
	a.mu.Unlock()
}

// Missing returns the expected ids not yet claimed, sorted.
func (a *Aggregator) Missing() []groundtruth.InstrID {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]groundtruth.InstrID, 0, len(a.pending))
	for id := range a.pending {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Finish checks completeness, summarizes the stored records and checks the
// summary for consistency. Records and failures are returned in claim
// order.
func (a *Aggregator) Finish() (*Report, error) {
	if missing := a.Missing(); len(missing) > 0 {
		return nil, &IncompleteSubmissionError{Missing: missing}
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	byClaim := func(x, y groundtruth.InstrID) bool { return a.order[x] < a.order[y] }
	sort.Slice(a.records, func(i, j int) bool { return byClaim(a.records[i].InstrID, a.records[j].InstrID) })
	sort.Slice(a.failures, func(i, j int) bool { return byClaim(a.failures[i].InstrID, a.failures[j].InstrID) })

	s := Summarize(a.records)
	if s.SPL > s.SuccessRate {
		return nil, &ConsistencyError{SPL: s.SPL, SuccessRate: s.SuccessRate}
	}

	return &Report{
		Summary:  s,
		Records:  append([]metrics.ScoreRecord(nil), a.records...),
		Failures: append([]Failure(nil), a.failures...),
		Ignored:  a.ignored,
	}, nil
}

// Summarize averages recs. An empty input yields a zero Summary.
func Summarize(recs []metrics.ScoreRecord) Summary {
	n := len(recs)
	if n == 0 {
		return Summary{}
	}

	cols := make([][]float64, 12)
	for i := range cols {
		cols[i] = make([]float64, n)
	}
	for i, r := range recs {
		cols[0][i] = r.TrajectoryLength
		cols[1][i] = float64(r.Hops)
		cols[2][i] = r.NavError
		cols[3][i] = r.OracleError
		cols[4][i] = r.ShortestPathLength
		cols[5][i] = indicator(r.OracleSuccess)
		cols[6][i] = indicator(r.Success)
		cols[7][i] = r.SPL
		cols[8][i] = indicator(r.OraclePlanSuccess)
		cols[9][i] = r.DistToEndReduction
		cols[10][i] = r.NDTW
		cols[11][i] = r.CLS
	}
	mean := func(k int) float64 { return stat.Mean(cols[k], nil) }

	return Summary{
		Count:                 n,
		Length:                mean(0),
		Hops:                  mean(1),
		NavError:              mean(2),
		OracleError:           mean(3),
		ShortestPathLength:    mean(4),
		OracleSuccessRate:     mean(5),
		SuccessRate:           mean(6),
		SPL:                   mean(7),
		OraclePathSuccessRate: mean(8),
		DistToEndReduction:    mean(9),
		NDTW:                  mean(10),
		CLS:                   mean(11),
	}
}

func indicator(b bool) float64 {
	if b {
		return 1
	}

	return 0
}
