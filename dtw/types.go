// Package dtw defines options and modes for Dynamic Time Warping.
package dtw

// MemoryMode controls how DTW stores its DP matrix.
//
//   - FullMatrix - keep the entire (n+1)x(m+1) matrix in memory. Memory: O(n·m).
//
//   - TwoRows    - only keep the current and previous row.
//     Memory: O(m). Use when only the distance is needed and sequences are long.
type MemoryMode int

const (
	// FullMatrix mode: store all rows, uses O(N·M) memory.
	FullMatrix MemoryMode = iota

	// TwoRows mode: keep only two rows, uses O(M) memory.
	TwoRows
)

// NoWindow disables the Sakoe–Chiba band.
const NoWindow = -1

// Options configures Dynamic Time Warping.
//
// Fields:
//   - Window     - maximum deviation |i-j| allowed (Sakoe–Chiba band);
//     NoWindow (-1) means unconstrained. Values below -1 are rejected.
//   - MemoryMode - FullMatrix or TwoRows storage.
type Options struct {
	Window     int
	MemoryMode MemoryMode
}

// DefaultOptions returns an unconstrained, full-matrix configuration.
func DefaultOptions() Options {
	return Options{Window: NoWindow, MemoryMode: FullMatrix}
}

// CostFunc returns the pointwise cost between element i of the first
// sequence and element j of the second (both 0-based).
type CostFunc func(i, j int) (float64, error)
