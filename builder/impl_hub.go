// SPDX-License-Identifier: MIT
// Package: netalign/builder
//
// impl_hub.go - Complete(n), Star(n), Wheel(n).
//
// Index conventions:
//   - Star:  index 0 is the hub, 1..n-1 are leaves.
//   - Wheel: indices 0..n-2 form the rim cycle, index n-1 is the hub.

package builder

import (
	"fmt"

	"github.com/katalvlaran/netalign/graph"
)

const (
	methodComplete   = "Complete"
	methodStar       = "Star"
	methodWheel      = "Wheel"
	minCompleteNodes = 2
	minStarNodes     = 2
	minWheelNodes    = 4 // rim cycle needs ≥ 3 nodes
)

// Complete returns a Constructor for K_n (n ≥ 2).
// Complexity: O(n²) edges.
func Complete(n int) Constructor {
	return func(b *graph.Builder, cfg config) error {
		if n < minCompleteNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodComplete, n, minCompleteNodes, ErrTooFewVertices)
		}
		if err := addNodes(methodComplete, b, cfg, n); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if err := addEdge(methodComplete, b, cfg, i, j); err != nil {
					return err
				}
			}
		}

		return nil
	}
}

// Star returns a Constructor for the star S_n with hub 0 (n ≥ 2).
func Star(n int) Constructor {
	return func(b *graph.Builder, cfg config) error {
		if n < minStarNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodStar, n, minStarNodes, ErrTooFewVertices)
		}
		if err := addNodes(methodStar, b, cfg, n); err != nil {
			return err
		}
		for i := 1; i < n; i++ {
			if err := addEdge(methodStar, b, cfg, 0, i); err != nil {
				return err
			}
		}

		return nil
	}
}

// Wheel returns a Constructor for the wheel W_n: a rim C_{n-1} plus a hub
// joined to every rim node (n ≥ 4).
func Wheel(n int) Constructor {
	return func(b *graph.Builder, cfg config) error {
		if n < minWheelNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodWheel, n, minWheelNodes, ErrTooFewVertices)
		}
		if err := Cycle(n-1)(b, cfg); err != nil {
			return fmt.Errorf("%s: rim C_%d: %w", methodWheel, n-1, err)
		}
		hub := n - 1
		if err := addNodes(methodWheel, b, cfg, n); err != nil {
			return err
		}
		for i := 0; i < hub; i++ {
			if err := addEdge(methodWheel, b, cfg, hub, i); err != nil {
				return err
			}
		}

		return nil
	}
}
