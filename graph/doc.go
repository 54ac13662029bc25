// SPDX-License-Identifier: MIT

// Package graph provides the static network representation consumed by the
// aligner.
//
// A Graph is assembled once through a Builder (string node names, edges,
// optional node types and locks) and then frozen into an immutable value that
// keeps two mutually consistent views of the same simple undirected graph:
//
//   - a packed n×n adjacency bit matrix for O(1) Adjacent(i, j) lookups;
//   - sorted per-node neighbor lists for O(degree) iteration.
//
// The incremental scorer depends on both views: it walks Neighbors(source)
// while probing Adjacent(target, image) in the other graph, tens of millions
// of times per run.
//
// Invariants of a built Graph:
//   - symmetric adjacency, no self-loops, no duplicate edges;
//   - Neighbors(i) is sorted ascending and len(Neighbors(i)) == Degree(i);
//   - the value is never mutated after Build, so it can be shared read-only
//     between concurrent annealing runs without locks.
//
// Scaling limit: the bit matrix costs n²/8 bytes (about 50 MB at n = 20 000).
// Builders refuse graphs above WithMaxNodes (DefaultMaxNodes) with ErrTooManyNodes.
//
// Node typing (gene / miRNA) and locking follow the bipartite-typed alignment
// model: typed nodes may only be aligned to nodes of the same type, and a
// locked node is pinned to the node named by LockedTargetName in the other graph.
package graph
