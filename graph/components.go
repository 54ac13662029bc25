// SPDX-License-Identifier: MIT
// File: components.go
// Role: breadth-first connected components, reported for input diagnostics.
// Complexity: O(V + E) time, O(V) space.

package graph

import "github.com/bits-and-blooms/bitset"

// Components labels every node with the index of its connected component,
// numbered in order of each component's smallest node, and returns the labels
// with the component count. Isolated nodes form their own components.
func (g *Graph) Components() ([]int, int) {
	label := make([]int, g.n)
	seen := bitset.New(uint(g.n))
	queue := make([]int, 0, g.n)
	count := 0

	for root := 0; root < g.n; root++ {
		if seen.Test(uint(root)) {
			continue
		}
		seen.Set(uint(root))
		queue = append(queue[:0], root)
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			label[u] = count
			for _, v := range g.lists[u] {
				if !seen.Test(uint(v)) {
					seen.Set(uint(v))
					queue = append(queue, v)
				}
			}
		}
		count++
	}

	return label, count
}

// LargestComponent returns the size of the largest connected component.
func (g *Graph) LargestComponent() int {
	label, count := g.Components()
	sizes := make([]int, count)
	best := 0
	for _, c := range label {
		sizes[c]++
		best = max(best, sizes[c])
	}

	return best
}
