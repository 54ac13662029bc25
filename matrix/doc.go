// SPDX-License-Identifier: MIT

// Package matrix holds dense node-by-node similarity matrices.
//
// A similarity matrix is |G1| rows by |G2| columns, stored row-major in one
// flat []float64 so that the scorer's inner loop reads it without interface
// indirection. Bounds-checked accessors (At, Set) are for construction and
// tests; Get is the unchecked hot-path read.
//
// Matrices are built once before a run and then shared read-only across
// concurrent annealing runs; nothing in this package mutates a matrix after
// it is handed to the aligner.
package matrix
