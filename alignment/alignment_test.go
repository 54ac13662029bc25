// SPDX-License-Identifier: MIT

package alignment_test

import (
	"bytes"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/netalign/alignment"
	"github.com/katalvlaran/netalign/builder"
	"github.com/katalvlaran/netalign/graph"
)

func TestValidate(t *testing.T) {
	require.NoError(t, alignment.Identity(3).Validate(3, 5))
	require.ErrorIs(t, alignment.Alignment{0, 1}.Validate(3, 5), alignment.ErrLength)
	require.ErrorIs(t, alignment.Alignment{0, 5, 1}.Validate(3, 5), alignment.ErrOutOfRange)
	require.ErrorIs(t, alignment.Alignment{0, 2, 2}.Validate(3, 5), alignment.ErrNotInjective)
	require.ErrorIs(t, alignment.Identity(3).Validate(3, 2), alignment.ErrTooSmall)
}

func TestRandom_IsInjective(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for k := 0; k < 20; k++ {
		a, err := alignment.Random(10, 15, rng)
		require.NoError(t, err)
		require.NoError(t, a.Validate(10, 15))
	}
	_, err := alignment.Random(5, 4, rng)
	require.ErrorIs(t, err, alignment.ErrTooSmall)
}

func TestCloneEqual(t *testing.T) {
	a := alignment.Identity(4)
	b := a.Clone()
	require.True(t, a.Equal(b))
	b[0], b[1] = b[1], b[0]
	require.False(t, a.Equal(b))
	require.Equal(t, 0, a[0])
}

func fixtures(t *testing.T) (*graph.Graph, *graph.Graph) {
	t.Helper()
	g1, err := builder.BuildGraph([]builder.Option{builder.WithIDScheme(builder.PrefixIDFn("a"))}, builder.Cycle(4))
	require.NoError(t, err)
	g2, err := builder.BuildGraph([]builder.Option{builder.WithIDScheme(builder.PrefixIDFn("b"))}, builder.Wheel(6))
	require.NoError(t, err)

	return g1, g2
}

func TestWriteRead_RoundTripByName(t *testing.T) {
	g1, g2 := fixtures(t)
	a := alignment.Alignment{5, 0, 3, 1}

	var buf bytes.Buffer
	require.NoError(t, alignment.Write(&buf, a, g1, g2))
	require.True(t, strings.HasPrefix(buf.String(), "a0\tb5\n"))

	got, err := alignment.Read(&buf, g1, g2)
	require.NoError(t, err)
	require.Equal(t, a, got)
}

func TestRead_Errors(t *testing.T) {
	g1, g2 := fixtures(t)
	_, err := alignment.Read(strings.NewReader("a0 b0\na1 b1\n"), g1, g2)
	require.ErrorIs(t, err, alignment.ErrIncomplete)
	_, err = alignment.Read(strings.NewReader("zz b0\n"), g1, g2)
	require.ErrorIs(t, err, alignment.ErrUnknownNode)
	_, err = alignment.Read(strings.NewReader("a0 b0\na1 b0\na2 b2\na3 b3\n"), g1, g2)
	require.ErrorIs(t, err, alignment.ErrNotInjective)
}

func TestFiles_Compression(t *testing.T) {
	g1, g2 := fixtures(t)
	a := alignment.Alignment{2, 4, 0, 1}
	dir := t.TempDir()
	for _, name := range []string{"plain.align", "packed.align.zst", "packed.align.lz4"} {
		path := filepath.Join(dir, name)
		require.NoError(t, alignment.WriteFile(path, a, g1, g2), name)
		got, err := alignment.ReadFile(path, g1, g2)
		require.NoError(t, err, name)
		require.Equal(t, a, got, name)
	}
}
