// Package matrix provides the small dense float64 matrix used for
// per-scene distance tables and dynamic-time-warping cost matrices.
//
// Dense stores elements row-major in a single flat slice. Bounds-checked
// accessors (At, Set) return ErrIndexOutOfBounds wrapped with method and
// coordinates; constructors reject non-positive shapes with
// ErrInvalidDimensions.
//
// A built matrix may be read concurrently by any number of goroutines as long
// as no goroutine writes to it.
package matrix
