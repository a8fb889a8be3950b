// Package matrix provides core primitives for array-based computations.
// Dense is a row-major float64 matrix storing elements in a flat slice for
// performance and cache friendliness.
package matrix

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
var ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

// ErrIndexOutOfBounds indicates that a row or column index is outside valid range.
var ErrIndexOutOfBounds = errors.New("matrix: index out of bounds")

// denseErrorf wraps an underlying error with Dense method context.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major matrix of float64 values.
// r is rows, c is columns, and data holds r*c elements in row-major order.
type Dense struct {
	r, c int       // number of rows and columns
	data []float64 // flat backing storage, length == r*c
}

// NewDense creates an r×c Dense matrix initialized to zeros.
// Stage 1 (Validate): ensure rows and cols > 0.
// Stage 2 (Prepare): allocate flat backing slice.
// Complexity: O(r*c) time and memory.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewFilled creates an r×c Dense matrix with every element set to v.
// Typical use is NewFilled(n, m, math.Inf(1)) for shortest-path style tables.
// Complexity: O(r*c).
func NewFilled(rows, cols int, v float64) (*Dense, error) {
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	m.Fill(v)

	return m, nil
}

// Rows returns the number of rows in the matrix.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns in the matrix.
func (m *Dense) Cols() int { return m.c }

// indexOf computes the flat index for (row, col) or returns ErrIndexOutOfBounds.
// Complexity: O(1).
func (m *Dense) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrIndexOutOfBounds)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf("At", row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns value v at (row, col).
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// Fill assigns v to every element.
// Complexity: O(r*c).
func (m *Dense) Fill(v float64) {
	for i := range m.data {
		m.data[i] = v
	}
}

// Row returns a copy of row i.
// Complexity: O(c).
func (m *Dense) Row(row int) ([]float64, error) {
	if row < 0 || row >= m.r {
		return nil, denseErrorf("Row", row, 0, ErrIndexOutOfBounds)
	}
	out := make([]float64, m.c)
	copy(out, m.data[row*m.c:(row+1)*m.c])

	return out, nil
}

// IsSymmetric reports whether m is square and m[i][j] == m[j][i] within tol
// for every pair. Equal infinities compare as symmetric.
// Complexity: O(r*c).
func (m *Dense) IsSymmetric(tol float64) bool {
	if m.r != m.c {
		return false
	}
	var i, j int
	for i = 0; i < m.r; i++ {
		for j = i + 1; j < m.c; j++ {
			a, b := m.data[i*m.c+j], m.data[j*m.c+i]
			if a == b {
				continue
			}
			if math.Abs(a-b) > tol || math.IsNaN(a-b) {
				return false
			}
		}
	}

	return true
}

// Clone returns a deep copy of the Dense matrix.
// Complexity: O(r*c) time and memory.
func (m *Dense) Clone() *Dense {
	data := make([]float64, len(m.data))
	copy(data, m.data)

	return &Dense{r: m.r, c: m.c, data: data}
}

// String implements fmt.Stringer for easy debugging.
// Complexity: O(r*c).
func (m *Dense) String() string {
	var sb strings.Builder
	var i, j int
	for i = 0; i < m.r; i++ {
		sb.WriteByte('[')
		for j = 0; j < m.c; j++ {
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
			if j < m.c-1 {
				sb.WriteString(", ")
			}
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
