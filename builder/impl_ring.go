// SPDX-License-Identifier: MIT
// Package: netalign/builder
//
// impl_ring.go - Cycle(n) and Path(n).
//
// Contract:
//   - Nodes are added in ascending index order (0..n-1) via cfg.idFn.
//   - Edges are emitted i → i+1 (and n-1 → 0 for the cycle).
//
// Complexity: O(n) nodes + O(n) edges.

package builder

import (
	"fmt"

	"github.com/katalvlaran/netalign/graph"
)

const (
	methodCycle   = "Cycle"
	methodPath    = "Path"
	minCycleNodes = 3
	minPathNodes  = 2
)

// Cycle returns a Constructor for the simple cycle C_n (n ≥ 3).
func Cycle(n int) Constructor {
	return func(b *graph.Builder, cfg config) error {
		if n < minCycleNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodCycle, n, minCycleNodes, ErrTooFewVertices)
		}
		if err := addNodes(methodCycle, b, cfg, n); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := addEdge(methodCycle, b, cfg, i, (i+1)%n); err != nil {
				return err
			}
		}

		return nil
	}
}

// Path returns a Constructor for the simple path P_n (n ≥ 2).
func Path(n int) Constructor {
	return func(b *graph.Builder, cfg config) error {
		if n < minPathNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodPath, n, minPathNodes, ErrTooFewVertices)
		}
		if err := addNodes(methodPath, b, cfg, n); err != nil {
			return err
		}
		for i := 0; i+1 < n; i++ {
			if err := addEdge(methodPath, b, cfg, i, i+1); err != nil {
				return err
			}
		}

		return nil
	}
}
