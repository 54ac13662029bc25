// SPDX-License-Identifier: MIT

package graph_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/netalign/graph"
)

func TestReadEdgeList(t *testing.T) {
	in := `# comment
a b
b c   extra-ignored

c a
`
	b, err := graph.ReadEdgeList(strings.NewReader(in))
	require.NoError(t, err)
	require.NoError(t, graph.ReadNodeTypes(b, strings.NewReader("a gene\nb gene\nc miRNA\n")))
	require.NoError(t, graph.ReadLocks(b, strings.NewReader("a X\n")))

	g, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, 3, g.NumNodes())
	require.Equal(t, 3, g.NumEdges())
	require.Equal(t, graph.NodeMiRNA, g.NodeType(2))
	require.Equal(t, "X", g.LockedTargetName(0))
}

func TestReadEdgeList_Malformed(t *testing.T) {
	_, err := graph.ReadEdgeList(strings.NewReader("a b\nlonely\n"))
	require.ErrorIs(t, err, graph.ErrMalformedLine)
	require.Contains(t, err.Error(), "line 2")

	_, err = graph.ReadEdgeList(strings.NewReader("a a\n"))
	require.ErrorIs(t, err, graph.ErrLoopNotAllowed)
}

func TestReadNodeTypes_UnknownNode(t *testing.T) {
	b, err := graph.ReadEdgeList(strings.NewReader("a b\n"))
	require.NoError(t, err)
	require.ErrorIs(t, graph.ReadNodeTypes(b, strings.NewReader("z gene\n")), graph.ErrNodeNotFound)
	require.ErrorIs(t, graph.ReadNodeTypes(b, strings.NewReader("a protein\n")), graph.ErrUnknownNodeType)
}
