// SPDX-License-Identifier: MIT

// Package netalign aligns two undirected networks by simulated annealing.
//
// Given a smaller network G1 and a larger network G2, netalign searches for
// an injective mapping of G1's nodes into G2's nodes that maximizes a
// weighted objective over topological measures (EC, S3, WEC, SEC) and
// precomputed node similarities.
//
// Under the hood, everything is organized under these subpackages:
//
//	graph/        immutable adjacency structure, node types and locks
//	builder/      deterministic graph constructors for tests and examples
//	matrix/       dense |G1|×|G2| similarity matrices
//	alignment/    injective mappings, validation and (compressed) files
//	measure/      objective, component scores and full re-evaluation
//	sana/         annealer, incremental scorer, moves, control and restarts
//	schedule/     temperature calibration methods and their comparison
//	metrics/      Prometheus observer for live runs
//	config/       flag, environment and file configuration
//	cmd/netalign  command line front end
//
// Quick ASCII example:
//
//	  G1        G2
//	a───b     w───x
//	│   │     │   │
//	d───c     z───y
//
//	a→w b→x c→y d→z conserves all four edges: EC = 1.
//
//	go install github.com/katalvlaran/netalign/cmd/netalign@latest
package netalign
