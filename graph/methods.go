// SPDX-License-Identifier: MIT

package graph

// NumNodes returns |V|.
func (g *Graph) NumNodes() int { return g.n }

// NumEdges returns |E| (undirected edges counted once).
func (g *Graph) NumEdges() int { return g.m }

// Adjacent reports whether {i, j} is an edge. Indices are not range-checked;
// this is the scorer's hot path.
// Complexity: O(1).
func (g *Graph) Adjacent(i, j int) bool {
	return g.adj.Test(uint(i*g.n + j))
}

// Neighbors returns the sorted neighbor list of i. The slice is shared with
// the Graph and must not be modified.
func (g *Graph) Neighbors(i int) []int { return g.lists[i] }

// Degree returns the number of neighbors of i.
func (g *Graph) Degree(i int) int { return len(g.lists[i]) }

// Name returns the name of node i.
func (g *Graph) Name(i int) string { return g.names[i] }

// Index returns the index of the named node.
func (g *Graph) Index(name string) (int, bool) {
	idx, ok := g.index[name]
	return idx, ok
}

// NodeType returns the type of node i (NodeNone for untyped graphs).
func (g *Graph) NodeType(i int) NodeType { return g.types[i] }

// HasTypes reports whether at least one node carries a non-NodeNone type.
func (g *Graph) HasTypes() bool { return g.typed }

// TypeCount returns how many nodes have type t.
func (g *Graph) TypeCount(t NodeType) int {
	if int(t) >= NumNodeTypes {
		return 0
	}
	return g.typeCount[t]
}

// IsLocked reports whether node i is pinned to a fixed image.
func (g *Graph) IsLocked(i int) bool { return g.locked.Contains(uint32(i)) }

// LockedTargetName returns the name of the node in the other graph that i is
// locked to, or "" when i is not locked.
func (g *Graph) LockedTargetName(i int) string { return g.lockedTo[i] }

// LockedCount returns the number of locked nodes.
func (g *Graph) LockedCount() int { return int(g.locked.GetCardinality()) }

// LockedNodes returns the indices of locked nodes in ascending order.
func (g *Graph) LockedNodes() []int {
	raw := g.locked.ToArray()
	out := make([]int, len(raw))
	for i, v := range raw {
		out[i] = int(v)
	}

	return out
}

// Edges returns every edge once as (u, v) with u < v, ordered by u then v.
// Complexity: O(n + m).
func (g *Graph) Edges() [][2]int {
	out := make([][2]int, 0, g.m)
	for u := 0; u < g.n; u++ {
		for _, v := range g.lists[u] {
			if u < v {
				out = append(out, [2]int{u, v})
			}
		}
	}

	return out
}
