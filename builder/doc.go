// SPDX-License-Identifier: MIT

// Package builder generates deterministic test and benchmark networks for the
// aligner: canonical topologies (cycle, path, complete, star, wheel), random
// models (Erdős–Rényi sparse, d-regular) and relabelled isomorphic copies whose
// hidden permutation is a known perfect alignment.
//
// All constructors are composed through BuildGraph:
//
//	g, err := builder.BuildGraph(
//		[]builder.Option{builder.WithSeed(7)},
//		builder.RandomSparse(40, 0.1),
//	)
//
// Determinism: same options, seed and constructor order ⇒ identical graphs.
// Constructors never panic on user input; they return the sentinels in errors.go.
package builder
