// SPDX-License-Identifier: MIT

// Package measure defines the alignment objective and evaluates it from scratch.
//
// An Objective is a set of non-negative weights over five components:
//
//	EC    aligned edges / |E1|
//	S3    aligned edges / (|E1| + induced edges − aligned edges)
//	WEC   Σ over aligned G1 edges (u,v) of w[u][A[u]] + w[v][A[v]], over 2|E1|
//	SEC   aligned edges · (1/(2|E1|) + 1/(2|E2|))
//	Local Σᵢ sim[i][A[i]] / |V1| using the weighted combination of local measures
//
// and a Kind that combines the weighted components (sum, product, max, min).
// The components depend on the alignment only through a handful of totals
// collected in Counts; the annealer maintains those totals incrementally and
// calls Score to turn them into a scalar. Evaluate recomputes the totals in
// O(|E1| + |E2| + |V1|·k) and serves as the reference for sanity checks.
package measure
