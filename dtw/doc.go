// Package dtw computes Dynamic Time Warping (DTW) distances between two
// sequences whose pointwise cost is supplied by the caller.
//
// The scorer aligns a visited-viewpoint sequence against a reference path
// with the scene's shortest-path distance as the cost, but any metric
// works: the package never looks at the elements themselves, only at
// CostFunc(i, j).
//
// Key features:
//   - full-matrix mode: exact O(N·M) time & memory
//   - two-row mode: O(M) memory (choose via MemoryMode)
//   - optional Sakoe–Chiba window (|i−j| ≤ w)
//
// Usage:
//
//	opts := dtw.DefaultOptions()
//	d, err := dtw.DTW(len(a), len(b), func(i, j int) (float64, error) {
//		return math.Abs(a[i] - b[j]), nil
//	}, &opts)
//
// Performance:
//
//   - Time:   O(N·M) cost evaluations
//   - Memory: O(N·M) (FullMatrix) or O(M) (TwoRows)
package dtw
