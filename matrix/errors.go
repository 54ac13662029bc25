// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set. Every message is prefixed with
// "matrix: ..." and matched with errors.Is.

package matrix

import "errors"

var (
	// ErrBadShape is returned when requested shape is invalid (r<=0 or c<=0).
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates operands of different shapes.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrBadWeights signals an empty, negative, non-finite or all-zero weight vector.
	ErrBadWeights = errors.New("matrix: invalid combination weights")

	// ErrNilMatrix indicates a nil *Dense argument.
	ErrNilMatrix = errors.New("matrix: nil matrix")
)
