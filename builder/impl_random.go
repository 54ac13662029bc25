// SPDX-License-Identifier: MIT
// Package: netalign/builder
//
// impl_random.go - RandomSparse(n, p) and RandomRegular(n, d).
//
// Determinism:
//   - RandomSparse draws one Bernoulli trial per unordered pair in (i asc, j asc) order.
//   - RandomRegular shuffles a stub array and retries a bounded number of times.
// Both require cfg.rng (WithSeed / WithRand), else ErrNeedRandSource.

package builder

import (
	"fmt"

	"github.com/katalvlaran/netalign/graph"
)

const (
	methodRandomSparse      = "RandomSparse"
	methodRandomRegular     = "RandomRegular"
	minRandomNodes          = 1
	maxStubMatchingAttempts = 64
)

// RandomSparse returns a Constructor for an Erdős–Rényi G(n, p) graph.
// Complexity: O(n²) trials.
func RandomSparse(n int, p float64) Constructor {
	return func(b *graph.Builder, cfg config) error {
		if n < minRandomNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodRandomSparse, n, minRandomNodes, ErrTooFewVertices)
		}
		if p < 0 || p > 1 || p != p {
			return fmt.Errorf("%s: p=%g: %w", methodRandomSparse, p, ErrInvalidProbability)
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: %w", methodRandomSparse, ErrNeedRandSource)
		}
		if err := addNodes(methodRandomSparse, b, cfg, n); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				if cfg.rng.Float64() >= p {
					continue
				}
				if err := addEdge(methodRandomSparse, b, cfg, i, j); err != nil {
					return err
				}
			}
		}

		return nil
	}
}

// RandomRegular returns a Constructor for a simple d-regular graph on n nodes
// using the configuration model with rejection (0 ≤ d < n, n·d even).
// Complexity: O(attempts · n·d).
func RandomRegular(n, d int) Constructor {
	return func(b *graph.Builder, cfg config) error {
		if n < minRandomNodes {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodRandomRegular, n, minRandomNodes, ErrTooFewVertices)
		}
		if d < 0 || d >= n || (n*d)%2 != 0 {
			return fmt.Errorf("%s: n=%d d=%d: %w", methodRandomRegular, n, d, ErrInvalidDegree)
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: %w", methodRandomRegular, ErrNeedRandSource)
		}
		if err := addNodes(methodRandomRegular, b, cfg, n); err != nil {
			return err
		}

		stubs := make([]int, 0, n*d)
		for i := 0; i < n; i++ {
			for k := 0; k < d; k++ {
				stubs = append(stubs, i)
			}
		}
		if len(stubs) == 0 {
			return nil
		}

		for attempt := 0; attempt < maxStubMatchingAttempts; attempt++ {
			cfg.rng.Shuffle(len(stubs), func(i, j int) { stubs[i], stubs[j] = stubs[j], stubs[i] })

			seen := make(map[[2]int]struct{}, len(stubs)/2)
			valid := true
			for i := 0; i < len(stubs); i += 2 {
				u, v := stubs[i], stubs[i+1]
				if u == v {
					valid = false
					break
				}
				if u > v {
					u, v = v, u
				}
				if _, dup := seen[[2]int{u, v}]; dup {
					valid = false
					break
				}
				seen[[2]int{u, v}] = struct{}{}
			}
			if !valid {
				continue
			}
			for i := 0; i < len(stubs); i += 2 {
				if err := addEdge(methodRandomRegular, b, cfg, stubs[i], stubs[i+1]); err != nil {
					return err
				}
			}

			return nil
		}

		return fmt.Errorf("%s: no simple matching after %d attempts: %w",
			methodRandomRegular, maxStubMatchingAttempts, ErrConstructFailed)
	}
}
