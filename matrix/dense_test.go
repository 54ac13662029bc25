// SPDX-License-Identifier: MIT
// Package matrix_test covers construction, bounds checks and Combine.

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/netalign/matrix"
)

func TestNewDense_Shape(t *testing.T) {
	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 3, m.Cols())

	_, err = matrix.NewDense(0, 3)
	require.ErrorIs(t, err, matrix.ErrBadShape)
}

func TestAtSet_Bounds(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, m.Set(1, 0, 0.5))

	v, err := m.At(1, 0)
	require.NoError(t, err)
	require.Equal(t, 0.5, v)
	require.Equal(t, 0.5, m.Get(1, 0))
	require.Equal(t, []float64{0.5, 0}, m.Row(1))

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, -1, 1), matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, 0, math.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, m.Fill(math.Inf(1)), matrix.ErrNaNInf)
}

func TestClone_IsDeep(t *testing.T) {
	m, err := matrix.NewFilled(2, 2, 1)
	require.NoError(t, err)
	cp := m.Clone()
	require.NoError(t, cp.Set(0, 0, 7))
	require.Equal(t, 1.0, m.Get(0, 0))
	require.Equal(t, "[1, 1]\n[1, 1]\n", m.String())
}

func TestCombine(t *testing.T) {
	a, _ := matrix.NewFilled(2, 3, 1)
	b, _ := matrix.NewFilled(2, 3, 0)
	c, err := matrix.Combine([]float64{3, 1}, []*matrix.Dense{a, b})
	require.NoError(t, err)
	require.InDelta(t, 0.75, c.Get(1, 2), 1e-12)

	_, err = matrix.Combine([]float64{0, 0}, []*matrix.Dense{a, b})
	require.ErrorIs(t, err, matrix.ErrBadWeights)
	_, err = matrix.Combine([]float64{1}, []*matrix.Dense{a, b})
	require.ErrorIs(t, err, matrix.ErrBadWeights)

	d, _ := matrix.NewDense(3, 2)
	_, err = matrix.Combine([]float64{1, 1}, []*matrix.Dense{a, d})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Combine([]float64{1, 1}, []*matrix.Dense{a, nil})
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}
