// SPDX-License-Identifier: MIT
// Package builder: sentinel errors. Match with errors.Is; context is added by
// the constructors as "<Method>: ...: %w".

package builder

import "errors"

var (
	// ErrTooFewVertices signals a size parameter below the topology minimum.
	ErrTooFewVertices = errors.New("builder: parameter too small")

	// ErrInvalidProbability signals an edge probability outside [0, 1].
	ErrInvalidProbability = errors.New("builder: probability out of range")

	// ErrInvalidDegree signals an unrealisable degree for RandomRegular.
	ErrInvalidDegree = errors.New("builder: invalid degree")

	// ErrNeedRandSource signals a stochastic constructor without WithSeed/WithRand.
	ErrNeedRandSource = errors.New("builder: rng is required")

	// ErrConstructFailed signals a construction that could not complete
	// (nil constructor, exhausted retries, invalid permutation).
	ErrConstructFailed = errors.New("builder: construction failed")
)
