// SPDX-License-Identifier: MIT

package sana

import "errors"

var (
	// ErrNilGraph indicates a nil input graph.
	ErrNilGraph = errors.New("sana: graph is nil")

	// ErrGraphTooLarge indicates |G1| > |G2|; no injective alignment exists.
	ErrGraphTooLarge = errors.New("sana: G1 has more nodes than G2")

	// ErrDegenerateGraph indicates a graph without edges or a problem with no legal move.
	ErrDegenerateGraph = errors.New("sana: degenerate alignment problem")

	// ErrTypeMismatch indicates node types that cannot be aligned type-to-type.
	ErrTypeMismatch = errors.New("sana: node types cannot be matched")

	// ErrLockTarget indicates a lock whose target is unknown, reused or violated.
	ErrLockTarget = errors.New("sana: invalid lock target")

	// ErrBudget indicates an invalid termination budget.
	ErrBudget = errors.New("sana: invalid run budget")

	// ErrTemperature indicates a negative or NaN temperature parameter.
	ErrTemperature = errors.New("sana: invalid temperature schedule")

	// ErrInvalidOption indicates an out-of-range option value.
	ErrInvalidOption = errors.New("sana: invalid option")

	// ErrInconsistentState indicates maintained totals diverged from a full recomputation.
	ErrInconsistentState = errors.New("sana: incremental totals diverged from recomputation")
)
