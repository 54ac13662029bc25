// SPDX-License-Identifier: MIT

package graph_test

import (
	"fmt"

	"github.com/katalvlaran/netalign/graph"
)

// ExampleBuilder builds the 4-cycle A-B-C-D and queries both representations.
func ExampleBuilder() {
	b := graph.NewBuilder()
	_ = b.AddEdge("A", "B")
	_ = b.AddEdge("B", "C")
	_ = b.AddEdge("C", "D")
	_ = b.AddEdge("D", "A")
	g, _ := b.Build()

	fmt.Println(g.NumNodes(), g.NumEdges())
	fmt.Println(g.Adjacent(0, 1), g.Adjacent(0, 2))
	fmt.Println(g.Neighbors(0))
	// Output:
	// 4 4
	// true false
	// [1 3]
}

// ExampleGraph_Components separates a triangle from an edge and an isolated node.
func ExampleGraph_Components() {
	b := graph.NewBuilder()
	_ = b.AddEdge("a", "b")
	_ = b.AddEdge("b", "c")
	_ = b.AddEdge("c", "a")
	_ = b.AddEdge("x", "y")
	_, _ = b.AddNode("z")
	g, _ := b.Build()

	label, count := g.Components()
	fmt.Println(label, count, g.LargestComponent())
	// Output: [0 0 0 1 1 2] 3 3
}
