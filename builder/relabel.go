// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/netalign/graph"
)

const methodRelabel = "Relabel"

// Relabel returns an isomorphic copy h of g where node i of g becomes node
// perm[i] of h (names, types and locks travel with the node). The permutation
// is therefore a perfect alignment g → h.
//
// Complexity: O(n + m).
func Relabel(g *graph.Graph, perm []int) (*graph.Graph, error) {
	n := g.NumNodes()
	if len(perm) != n {
		return nil, fmt.Errorf("%s: len(perm)=%d != n=%d: %w", methodRelabel, len(perm), n, ErrConstructFailed)
	}
	inv := make([]int, n)
	for i := range inv {
		inv[i] = -1
	}
	for i, p := range perm {
		if p < 0 || p >= n || inv[p] != -1 {
			return nil, fmt.Errorf("%s: perm is not a permutation at %d: %w", methodRelabel, i, ErrConstructFailed)
		}
		inv[p] = i
	}

	b := graph.NewBuilder(graph.WithCapacity(n))
	for j := 0; j < n; j++ {
		if _, err := b.AddNode(g.Name(inv[j])); err != nil {
			return nil, fmt.Errorf("%s: %w", methodRelabel, err)
		}
	}
	for _, e := range g.Edges() {
		if err := b.AddEdge(g.Name(e[0]), g.Name(e[1])); err != nil {
			return nil, fmt.Errorf("%s: %w", methodRelabel, err)
		}
	}
	for i := 0; i < n; i++ {
		if t := g.NodeType(i); t != graph.NodeNone {
			if err := b.SetType(g.Name(i), t); err != nil {
				return nil, fmt.Errorf("%s: %w", methodRelabel, err)
			}
		}
		if g.IsLocked(i) {
			if err := b.Lock(g.Name(i), g.LockedTargetName(i)); err != nil {
				return nil, fmt.Errorf("%s: %w", methodRelabel, err)
			}
		}
	}

	return b.Build()
}

// RandomPermutation returns a uniform permutation of 0..n-1 drawn from rng.
func RandomPermutation(n int, rng *rand.Rand) []int {
	return rng.Perm(n)
}
