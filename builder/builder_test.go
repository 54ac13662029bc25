// SPDX-License-Identifier: MIT
// Package builder_test verifies topology shapes, parameter validation and
// determinism of the generators.

package builder_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/netalign/builder"
	"github.com/katalvlaran/netalign/graph"
)

type BuilderSuite struct {
	suite.Suite
}

func TestBuilderSuite(t *testing.T) {
	suite.Run(t, new(BuilderSuite))
}

func (s *BuilderSuite) TestCycle() {
	g, err := builder.BuildGraph(nil, builder.Cycle(4))
	s.Require().NoError(err)
	s.Equal(4, g.NumNodes())
	s.Equal(4, g.NumEdges())
	for i := 0; i < 4; i++ {
		s.Equal(2, g.Degree(i))
	}
	s.True(g.Adjacent(3, 0))
}

func (s *BuilderSuite) TestPathStarComplete() {
	p, err := builder.BuildGraph(nil, builder.Path(5))
	s.Require().NoError(err)
	s.Equal(4, p.NumEdges())

	st, err := builder.BuildGraph(nil, builder.Star(6))
	s.Require().NoError(err)
	s.Equal(5, st.Degree(0))
	s.Equal(5, st.NumEdges())

	k, err := builder.BuildGraph(nil, builder.Complete(5))
	s.Require().NoError(err)
	s.Equal(10, k.NumEdges())
}

func (s *BuilderSuite) TestWheel() {
	w, err := builder.BuildGraph(nil, builder.Wheel(6))
	s.Require().NoError(err)
	s.Equal(6, w.NumNodes())
	s.Equal(10, w.NumEdges()) // rim 5 + spokes 5
	s.Equal(5, w.Degree(5))
}

func (s *BuilderSuite) TestValidation() {
	_, err := builder.BuildGraph(nil, builder.Cycle(2))
	s.ErrorIs(err, builder.ErrTooFewVertices)
	_, err = builder.BuildGraph(nil, builder.Wheel(3))
	s.ErrorIs(err, builder.ErrTooFewVertices)
	_, err = builder.BuildGraph([]builder.Option{builder.WithSeed(1)}, builder.RandomSparse(5, 1.5))
	s.ErrorIs(err, builder.ErrInvalidProbability)
	_, err = builder.BuildGraph(nil, builder.RandomSparse(5, 0.5))
	s.ErrorIs(err, builder.ErrNeedRandSource)
	_, err = builder.BuildGraph([]builder.Option{builder.WithSeed(1)}, builder.RandomRegular(5, 3))
	s.ErrorIs(err, builder.ErrInvalidDegree)
	_, err = builder.BuildGraph(nil, nil)
	s.ErrorIs(err, builder.ErrConstructFailed)
}

func (s *BuilderSuite) TestRandomSparseDeterministic() {
	opts := []builder.Option{builder.WithSeed(42)}
	a, err := builder.BuildGraph(opts, builder.RandomSparse(30, 0.2))
	s.Require().NoError(err)
	b, err := builder.BuildGraph([]builder.Option{builder.WithSeed(42)}, builder.RandomSparse(30, 0.2))
	s.Require().NoError(err)
	s.Equal(a.Edges(), b.Edges())
}

func (s *BuilderSuite) TestRandomRegular() {
	g, err := builder.BuildGraph([]builder.Option{builder.WithSeed(3)}, builder.RandomRegular(20, 3))
	s.Require().NoError(err)
	for i := 0; i < g.NumNodes(); i++ {
		s.Equal(3, g.Degree(i))
	}
}

func (s *BuilderSuite) TestIDScheme() {
	g, err := builder.BuildGraph([]builder.Option{builder.WithIDScheme(builder.PrefixIDFn("n"))}, builder.Path(3))
	s.Require().NoError(err)
	s.Equal("n2", g.Name(2))
}

func TestRelabel_IsIsomorphism(t *testing.T) {
	g, err := builder.BuildGraph([]builder.Option{builder.WithSeed(9)}, builder.RandomSparse(25, 0.25))
	require.NoError(t, err)
	perm := builder.RandomPermutation(g.NumNodes(), rand.New(rand.NewSource(5)))

	h, err := builder.Relabel(g, perm)
	require.NoError(t, err)
	require.Equal(t, g.NumEdges(), h.NumEdges())
	for _, e := range g.Edges() {
		require.True(t, h.Adjacent(perm[e[0]], perm[e[1]]))
	}
	for i := 0; i < g.NumNodes(); i++ {
		require.Equal(t, g.Name(i), h.Name(perm[i]))
	}
}

func TestRelabel_CarriesTypesAndLocks(t *testing.T) {
	b := graph.NewBuilder()
	require.NoError(t, b.AddEdge("a", "b"))
	require.NoError(t, b.SetType("a", graph.NodeGene))
	require.NoError(t, b.Lock("b", "B"))
	g, err := b.Build()
	require.NoError(t, err)

	h, err := builder.Relabel(g, []int{1, 0})
	require.NoError(t, err)
	require.Equal(t, graph.NodeGene, h.NodeType(1))
	require.Equal(t, "B", h.LockedTargetName(0))
}

func TestRelabel_BadPermutation(t *testing.T) {
	g, err := builder.BuildGraph(nil, builder.Cycle(3))
	require.NoError(t, err)
	_, err = builder.Relabel(g, []int{0, 0, 1})
	require.ErrorIs(t, err, builder.ErrConstructFailed)
	_, err = builder.Relabel(g, []int{0, 1})
	require.ErrorIs(t, err, builder.ErrConstructFailed)
}
