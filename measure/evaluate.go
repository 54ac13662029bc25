// SPDX-License-Identifier: MIT
// File: evaluate.go
// Role: full recomputation of Counts from an alignment.
// Complexity: O(|E1| + |E2| + |V1|).

package measure

import (
	"fmt"

	"github.com/katalvlaran/netalign/alignment"
	"github.com/katalvlaran/netalign/graph"
	"github.com/katalvlaran/netalign/matrix"
)

// SizesOf returns the normalization constants of a graph pair.
func SizesOf(g1, g2 *graph.Graph) Sizes {
	return Sizes{N1: g1.NumNodes(), E1: g1.NumEdges(), E2: g2.NumEdges()}
}

// Evaluate validates a and recomputes every total from scratch.
func Evaluate(g1, g2 *graph.Graph, a alignment.Alignment, o Objective) (Counts, error) {
	if err := a.Validate(g1.NumNodes(), g2.NumNodes()); err != nil {
		return Counts{}, fmt.Errorf("Evaluate: %w", err)
	}
	local, err := o.LocalMatrix()
	if err != nil {
		return Counts{}, fmt.Errorf("Evaluate: %w", err)
	}
	var wec *matrix.Dense
	if o.Weights.WEC > 0 {
		wec = o.WECSim
	}

	return Recount(g1, g2, a, wec, local), nil
}

// Recount recomputes the totals of a valid alignment against prepared
// matrices. A nil matrix leaves the corresponding sum at zero.
func Recount(g1, g2 *graph.Graph, a alignment.Alignment, wec, local *matrix.Dense) Counts {
	var c Counts
	for _, e := range g1.Edges() {
		u, v := e[0], e[1]
		if !g2.Adjacent(a[u], a[v]) {
			continue
		}
		c.AligEdges++
		if wec != nil {
			c.WECSum += wec.Get(u, a[u]) + wec.Get(v, a[v])
		}
	}

	inImage := make([]bool, g2.NumNodes())
	for _, t := range a {
		inImage[t] = true
	}
	for _, e := range g2.Edges() {
		if inImage[e[0]] && inImage[e[1]] {
			c.InducedEdges++
		}
	}

	c.SECSum = SECSum(c.AligEdges, SizesOf(g1, g2))
	if local != nil {
		for i, t := range a {
			c.LocalSum += local.Get(i, t)
		}
	}

	return c
}
