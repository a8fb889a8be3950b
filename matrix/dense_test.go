// Package matrix_test contains unit tests for the Dense matrix.
package matrix_test

import (
	"math"
	"testing"

	"github.com/ayshrv/visitron/matrix"
	"github.com/stretchr/testify/require"
)

// TestNewDenseInvalidDimensions ensures that NewDense rejects non-positive dimensions.
func TestNewDenseInvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 5)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDense(5, 0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewFilled(-1, 1, 0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestRowsCols verifies that Rows() and Cols() return correct dimension values.
func TestRowsCols(t *testing.T) {
	m, err := matrix.NewDense(3, 4)
	require.NoError(t, err)
	require.Equal(t, 3, m.Rows())
	require.Equal(t, 4, m.Cols())
}

// TestAtSetOutOfBounds ensures At() and Set() return ErrIndexOutOfBounds on invalid access.
func TestAtSetOutOfBounds(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	_, err = m.At(-1, 0)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)
	_, err = m.At(0, 2)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)
	require.ErrorIs(t, m.Set(2, 0, 1.23), matrix.ErrIndexOutOfBounds)
	require.ErrorIs(t, m.Set(0, -1, 4.56), matrix.ErrIndexOutOfBounds)
	_, err = m.Row(2)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfBounds)
}

// TestSetGet validates Set() followed by At() on valid indices.
func TestSetGet(t *testing.T) {
	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	require.NoError(t, m.Set(1, 2, 7.89))

	val, err := m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 7.89, val)

	row, err := m.Row(1)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0, 7.89}, row)
}

func TestNewFilled(t *testing.T) {
	inf := math.Inf(1)
	m, err := matrix.NewFilled(2, 2, inf)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			v, err := m.At(i, j)
			require.NoError(t, err)
			require.True(t, math.IsInf(v, 1))
		}
	}
}

func TestIsSymmetric(t *testing.T) {
	m, err := matrix.NewFilled(3, 3, math.Inf(1))
	require.NoError(t, err)
	require.True(t, m.IsSymmetric(0), "all +Inf is symmetric")

	require.NoError(t, m.Set(0, 1, 2))
	require.False(t, m.IsSymmetric(1e-9))
	require.NoError(t, m.Set(1, 0, 2+1e-12))
	require.True(t, m.IsSymmetric(1e-9))

	rect, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	require.False(t, rect.IsSymmetric(0))
}

// TestCloneIndependence ensures Clone() returns a deep copy that does not share storage.
func TestCloneIndependence(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	_ = m.Set(0, 0, 1.0)

	clone := m.Clone()
	_ = clone.Set(0, 0, 3.0)

	origVal, _ := m.At(0, 0)
	require.Equal(t, 1.0, origVal)
	cloneVal, _ := clone.At(0, 0)
	require.Equal(t, 3.0, cloneVal)
}

// TestStringOutput checks that String() formats the matrix as expected.
func TestStringOutput(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	_ = m.Set(0, 0, 1)
	_ = m.Set(0, 1, 2)
	_ = m.Set(1, 0, 3)
	_ = m.Set(1, 1, 4)

	require.Equal(t, "[1, 2]\n[3, 4]\n", m.String())
}
