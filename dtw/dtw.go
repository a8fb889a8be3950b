package dtw

import (
	"errors"
	"fmt"
	"math"

	"github.com/ayshrv/visitron/matrix"
)

// DTW - Dynamic Time Warping
//
// Algorithm Outline (Full-Matrix):
//  1. Allocate (n+1)x(m+1) DP matrix D filled with +∞.
//  2. D[0][0] = 0.
//  3. For i = 1..n, j = 1..m (and |i-j| ≤ Window, if constrained):
//     D[i][j] = cost(i-1, j-1) + min(D[i-1][j], D[i][j-1], D[i-1][j-1])
//  4. distance = D[n][m].
//
// Errors:
//   - ErrEmptyInput - if either sequence length is zero.
//   - ErrBadInput   - nil cost function, Window < -1 or an unknown MemoryMode.
var (
	// ErrEmptyInput indicates one or both inputs are empty.
	ErrEmptyInput = errors.New("dtw: input sequences must be non-empty")

	// ErrBadInput indicates invalid options or a nil cost function.
	ErrBadInput = errors.New("dtw: bad input")
)

// DTW computes the Dynamic Time Warping distance between a sequence of
// length n and a sequence of length m under the pointwise cost function.
// A nil opts means DefaultOptions(). Errors returned by cost abort the
// computation and are returned wrapped with the failing cell.
func DTW(n, m int, cost CostFunc, opts *Options) (float64, error) {
	if n <= 0 || m <= 0 {
		return 0, ErrEmptyInput
	}
	if cost == nil {
		return 0, fmt.Errorf("%w: nil cost function", ErrBadInput)
	}
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if o.Window < NoWindow {
		return 0, fmt.Errorf("%w: window %d", ErrBadInput, o.Window)
	}

	switch o.MemoryMode {
	case FullMatrix:
		return fullMatrix(n, m, cost, o.Window)
	case TwoRows:
		return twoRows(n, m, cost, o.Window)
	default:
		return 0, fmt.Errorf("%w: memory mode %d", ErrBadInput, o.MemoryMode)
	}
}

// outside reports whether (i, j) falls outside the Sakoe–Chiba band.
func outside(i, j, window int) bool {
	return window != NoWindow && abs(i-j) > window
}

func fullMatrix(n, m int, cost CostFunc, window int) (float64, error) {
	dp, err := matrix.NewFilled(n+1, m+1, math.Inf(1))
	if err != nil {
		return 0, err
	}
	if err = dp.Set(0, 0, 0); err != nil {
		return 0, err
	}

	var i, j int
	var c, ins, del, match float64
	for i = 1; i <= n; i++ {
		for j = 1; j <= m; j++ {
			if outside(i, j, window) {
				continue
			}
			if c, err = cost(i-1, j-1); err != nil {
				return 0, fmt.Errorf("dtw: cost(%d,%d): %w", i-1, j-1, err)
			}
			ins, _ = dp.At(i-1, j)
			del, _ = dp.At(i, j-1)
			match, _ = dp.At(i-1, j-1)
			if err = dp.Set(i, j, c+min3(ins, del, match)); err != nil {
				return 0, err
			}
		}
	}

	return dp.At(n, m)
}

func twoRows(n, m int, cost CostFunc, window int) (float64, error) {
	inf := math.Inf(1)
	prev := make([]float64, m+1)
	curr := make([]float64, m+1)
	for j := 1; j <= m; j++ {
		prev[j] = inf
	}

	var c float64
	var err error
	for i := 1; i <= n; i++ {
		curr[0] = inf
		for j := 1; j <= m; j++ {
			if outside(i, j, window) {
				curr[j] = inf
				continue
			}
			if c, err = cost(i-1, j-1); err != nil {
				return 0, fmt.Errorf("dtw: cost(%d,%d): %w", i-1, j-1, err)
			}
			curr[j] = c + min3(prev[j], curr[j-1], prev[j-1])
		}
		prev, curr = curr, prev
	}

	return prev[m], nil
}

// abs returns the absolute value of an int.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// min3 returns the minimum of three float64 values.
func min3(a, b, c float64) float64 {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
