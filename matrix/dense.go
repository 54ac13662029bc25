// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// denseErrorf wraps an underlying error with Dense method context.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major matrix of float64 values. Rows index G1 nodes and
// columns G2 nodes; entry (i, j) lives at data[i*c+j].
//
// Checked accessors (At, Set) return ErrOutOfRange and ErrNaNInf. Get and
// Row skip the checks for the annealing loop, whose indices are valid by
// construction.
type Dense struct {
	r, c int       // number of rows and columns
	data []float64 // flat backing storage, length == r*c
}

// NewDense creates an r×c zero matrix.
//
// Stage 1 (Validate): both dimensions must be positive, else ErrBadShape.
// Stage 2 (Allocate): one flat slice of rows*cols zeros.
//
// Complexity: O(r*c) time and memory.
func NewDense(rows, cols int) (*Dense, error) {
	// Stage 1: Validate
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("NewDense(%d,%d): %w", rows, cols, ErrBadShape)
	}

	// Stage 2: Allocate
	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewFilled creates an r×c matrix with every entry equal to v.
func NewFilled(rows, cols int, v float64) (*Dense, error) {
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	if err = m.Fill(v); err != nil {
		return nil, err
	}

	return m, nil
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.c }

func (m *Dense) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col) with bounds checking.
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf("At", row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns a finite value at (row, col).
//
// Stage 1 (Validate): bounds, then finiteness of v.
// Stage 2 (Execute): store v.
//
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return denseErrorf("Set", row, col, ErrNaNInf)
	}
	m.data[idx] = v

	return nil
}

// Get is the unchecked read used in hot loops. Out-of-range indices panic.
func (m *Dense) Get(row, col int) float64 { return m.data[row*m.c+col] }

// Row returns a read-only view of row i.
func (m *Dense) Row(i int) []float64 { return m.data[i*m.c : (i+1)*m.c] }

// Fill sets every entry to v.
// Complexity: O(r*c).
func (m *Dense) Fill(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("Dense.Fill(%g): %w", v, ErrNaNInf)
	}
	for i := range m.data {
		m.data[i] = v
	}

	return nil
}

// Clone returns a deep copy.
// Complexity: O(r*c) time and memory.
func (m *Dense) Clone() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp}
}

// String implements fmt.Stringer for debugging small matrices.
func (m *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteByte('[')
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
