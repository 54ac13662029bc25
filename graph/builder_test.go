// SPDX-License-Identifier: MIT
// Package graph_test verifies Builder/Graph contracts: dual representation
// consistency, simple-graph enforcement, typing and locking.

package graph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/netalign/graph"
)

func square(t *testing.T) *graph.Graph {
	t.Helper()
	b := graph.NewBuilder()
	require.NoError(t, b.AddEdge("A", "B"))
	require.NoError(t, b.AddEdge("B", "C"))
	require.NoError(t, b.AddEdge("C", "D"))
	require.NoError(t, b.AddEdge("D", "A"))
	g, err := b.Build()
	require.NoError(t, err)

	return g
}

func TestBuild_MatrixAndListsAgree(t *testing.T) {
	g := square(t)
	require.Equal(t, 4, g.NumNodes())
	require.Equal(t, 4, g.NumEdges())

	for i := 0; i < g.NumNodes(); i++ {
		require.False(t, g.Adjacent(i, i), "self-adjacency at %d", i)
		deg := 0
		for j := 0; j < g.NumNodes(); j++ {
			require.Equal(t, g.Adjacent(i, j), g.Adjacent(j, i), "asymmetry at (%d,%d)", i, j)
			if g.Adjacent(i, j) {
				deg++
				require.Contains(t, g.Neighbors(i), j)
			}
		}
		require.Equal(t, deg, g.Degree(i))
		require.IsIncreasing(t, g.Neighbors(i))
	}
}

func TestBuild_InsertionOrderIndices(t *testing.T) {
	g := square(t)
	for i, name := range []string{"A", "B", "C", "D"} {
		idx, ok := g.Index(name)
		require.True(t, ok)
		require.Equal(t, i, idx)
		require.Equal(t, name, g.Name(i))
	}
	_, ok := g.Index("Z")
	require.False(t, ok)
}

func TestAddEdge_DuplicatesCollapse(t *testing.T) {
	b := graph.NewBuilder()
	require.NoError(t, b.AddEdge("x", "y"))
	require.NoError(t, b.AddEdge("y", "x"))
	require.NoError(t, b.AddEdge("x", "y"))
	g, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, 1, g.NumEdges())
	require.Equal(t, [][2]int{{0, 1}}, g.Edges())
}

func TestAddEdge_Rejections(t *testing.T) {
	b := graph.NewBuilder()
	require.ErrorIs(t, b.AddEdge("x", "x"), graph.ErrLoopNotAllowed)
	require.ErrorIs(t, b.AddEdge("", "x"), graph.ErrEmptyNodeName)
	_, err := b.AddNode("")
	require.ErrorIs(t, err, graph.ErrEmptyNodeName)
}

func TestBuild_EmptyAndTooLarge(t *testing.T) {
	_, err := graph.NewBuilder().Build()
	require.ErrorIs(t, err, graph.ErrEmptyGraph)

	b := graph.NewBuilder(graph.WithMaxNodes(2))
	require.NoError(t, b.AddEdge("a", "b"))
	require.NoError(t, b.AddEdge("b", "c"))
	_, err = b.Build()
	require.ErrorIs(t, err, graph.ErrTooManyNodes)
}

func TestBuild_IsolatedNodes(t *testing.T) {
	b := graph.NewBuilder()
	_, err := b.AddNode("lonely")
	require.NoError(t, err)
	require.NoError(t, b.AddEdge("a", "b"))
	g, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, 3, g.NumNodes())
	require.Zero(t, g.Degree(0))
	require.Empty(t, g.Neighbors(0))
}

func TestTypesAndLocks(t *testing.T) {
	b := graph.NewBuilder()
	require.NoError(t, b.AddEdge("g1", "m1"))
	require.NoError(t, b.AddEdge("g2", "m1"))
	require.NoError(t, b.SetType("g1", graph.NodeGene))
	require.NoError(t, b.SetType("g2", graph.NodeGene))
	require.NoError(t, b.SetType("m1", graph.NodeMiRNA))
	require.ErrorIs(t, b.SetType("nope", graph.NodeGene), graph.ErrNodeNotFound)

	require.NoError(t, b.Lock("g1", "G1"))
	require.NoError(t, b.Lock("g1", "G1"))
	require.ErrorIs(t, b.Lock("g1", "G9"), graph.ErrDuplicateLock)
	require.ErrorIs(t, b.Lock("nope", "G1"), graph.ErrNodeNotFound)

	g, err := b.Build()
	require.NoError(t, err)
	require.True(t, g.HasTypes())
	require.Equal(t, 2, g.TypeCount(graph.NodeGene))
	require.Equal(t, 1, g.TypeCount(graph.NodeMiRNA))
	require.Equal(t, 0, g.TypeCount(graph.NodeNone))
	// Indices follow first appearance: g1=0, m1=1, g2=2.
	require.Equal(t, graph.NodeMiRNA, g.NodeType(1))
	require.Equal(t, graph.NodeGene, g.NodeType(2))
	m1, ok := g.Index("m1")
	require.True(t, ok)
	require.Equal(t, graph.NodeMiRNA, g.NodeType(m1))

	require.True(t, g.IsLocked(0))
	require.False(t, g.IsLocked(1))
	require.Equal(t, "G1", g.LockedTargetName(0))
	require.Equal(t, "", g.LockedTargetName(1))
	require.Equal(t, 1, g.LockedCount())
	require.Equal(t, []int{0}, g.LockedNodes())
}

func TestParseNodeType(t *testing.T) {
	for in, want := range map[string]graph.NodeType{
		"gene": graph.NodeGene, "GENE": graph.NodeGene,
		"miRNA": graph.NodeMiRNA, "mirna": graph.NodeMiRNA,
		"none": graph.NodeNone, "": graph.NodeNone,
	} {
		got, err := graph.ParseNodeType(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
	_, err := graph.ParseNodeType("protein")
	require.ErrorIs(t, err, graph.ErrUnknownNodeType)
}
