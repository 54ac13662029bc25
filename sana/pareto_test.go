// SPDX-License-Identifier: MIT

package sana_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/netalign/builder"
	"github.com/katalvlaran/netalign/measure"
	"github.com/katalvlaran/netalign/sana"
)

var ecS3 = measure.Objective{Weights: measure.Weights{EC: 0.5, S3: 0.5}}

func TestDominates(t *testing.T) {
	w := measure.Weights{EC: 1, S3: 1}
	for _, tc := range []struct {
		name string
		a, b measure.Scores
		want bool
	}{
		{"better on both", measure.Scores{EC: 0.6, S3: 0.5}, measure.Scores{EC: 0.5, S3: 0.4}, true},
		{"better on one", measure.Scores{EC: 0.6, S3: 0.4}, measure.Scores{EC: 0.5, S3: 0.4}, true},
		{"equal", measure.Scores{EC: 0.5, S3: 0.4}, measure.Scores{EC: 0.5, S3: 0.4}, false},
		{"trade-off", measure.Scores{EC: 0.6, S3: 0.3}, measure.Scores{EC: 0.5, S3: 0.4}, false},
		{"disabled component ignored", measure.Scores{EC: 0.5, S3: 0.4, SEC: 0}, measure.Scores{EC: 0.5, S3: 0.4, SEC: 1}, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, sana.Dominates(tc.a, tc.b, w))
		})
	}
}

func TestParetoFront_DropsDominatedAndRepeats(t *testing.T) {
	c4, err := builder.BuildGraph(nil, builder.Cycle(4))
	require.NoError(t, err)
	an, err := sana.New(c4, c4, ecS3)
	require.NoError(t, err)

	rs := []sana.Result{
		{RunID: "a", Components: measure.Scores{EC: 0.5, S3: 0.5}},
		{RunID: "b", Components: measure.Scores{EC: 0.7, S3: 0.2}},
		{RunID: "c", Components: measure.Scores{EC: 0.4, S3: 0.4}},
		{RunID: "d", Components: measure.Scores{EC: 0.5, S3: 0.5}},
		{RunID: "e", Components: measure.Scores{EC: 0.2, S3: 0.8}},
	}
	ids := map[string]bool{}
	for _, r := range an.ParetoFront(rs) {
		ids[r.RunID] = true
	}
	require.Equal(t, map[string]bool{"a": true, "b": true, "e": true}, ids)
}

func (s *AnnealSuite) TestRunPareto() {
	an, err := sana.New(s.g1, s.g2, ecS3,
		sana.WithIterations(5_000), sana.WithSchedule(0.01, 1e-4), sana.WithSeed(4))
	s.Require().NoError(err)

	front, err := an.RunPareto(context.Background(), 6)
	s.Require().NoError(err)
	s.NotEmpty(front)
	s.LessOrEqual(len(front), 6)
	for i, r := range front {
		s.NoError(r.Alignment.Validate(30, 36))
		s.InDelta(1.0, r.Weights.EC+r.Weights.S3, 1e-9)
		s.Zero(r.Weights.WEC + r.Weights.SEC + r.Weights.Local)
		_, score, err := an.Evaluate(r.Alignment)
		s.Require().NoError(err)
		s.InDelta(score, r.Score, 1e-12)
		if i > 0 {
			s.GreaterOrEqual(front[i-1].Score, r.Score)
		}
		for _, o := range front {
			s.False(sana.Dominates(o.Components, r.Components, ecS3.Weights))
		}
	}

	_, err = an.RunPareto(context.Background(), 0)
	s.ErrorIs(err, sana.ErrInvalidOption)
}
