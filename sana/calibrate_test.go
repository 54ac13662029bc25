// SPDX-License-Identifier: MIT

package sana_test

import (
	"bytes"
	"context"
	"log/slog"

	"github.com/katalvlaran/netalign/sana"
	"github.com/katalvlaran/netalign/schedule"
)

// The calibrated TInitial must reproduce the target pBad when sampled again
// on the same problem with a fresh random stream.
func (s *AnnealSuite) TestCalibrate_InitialTemperatureHitsTarget() {
	ctx := context.Background()
	for _, method := range []string{"pbad-binary-search", "linear-regression"} {
		s.Run(method, func() {
			an, err := sana.New(s.g1, s.g2, ecOnly, sana.WithIterations(50_000), sana.WithSeed(12))
			s.Require().NoError(err)
			cfg := schedule.DefaultConfig()
			cfg.TargetInitialPBad, cfg.TargetFinalPBad = 0.5, 0.05
			cfg.SampleBudget = schedule.Budget{Iterations: 20_000}
			strict := cfg
			strict.ErrorTol = cfg.ErrorTol / 2

			c, err := an.Calibrate(ctx, method, strict, schedule.Resources{MaxSamples: 40})
			s.Require().NoError(err)
			s.Greater(c.TInitial, c.TFinal)

			smp, err := an.Sample(ctx, c.TInitial, cfg.SampleBudget, false)
			s.Require().NoError(err)
			s.Positive(smp.Worsening)
			s.True(cfg.WithinTarget(smp.PBad, cfg.TargetInitialPBad),
				"T=%g pBad=%g", c.TInitial, smp.PBad)
		})
	}
}

func (s *AnnealSuite) TestCalibrate_ChecksBudgetWithGreedyClimb() {
	cfg := schedule.DefaultConfig()
	cfg.TargetInitialPBad, cfg.TargetFinalPBad = 0.5, 0.05
	cfg.SampleBudget = schedule.Budget{Iterations: 2_000}
	res := schedule.Resources{MaxSamples: 10}

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	short, err := sana.New(s.g1, s.g2, ecOnly, sana.WithIterations(500), sana.WithLogger(logger))
	s.Require().NoError(err)
	c, err := short.Calibrate(context.Background(), "pbad-binary-search", cfg, res)
	s.Require().NoError(err)
	s.GreaterOrEqual(c.HillClimb, int64(1000))
	s.Contains(buf.String(), "iteration budget is short")

	buf.Reset()
	long, err := sana.New(s.g1, s.g2, ecOnly, sana.WithIterations(5_000_000), sana.WithLogger(logger))
	s.Require().NoError(err)
	c, err = long.Calibrate(context.Background(), "pbad-binary-search", cfg, res)
	s.Require().NoError(err)
	s.Positive(c.HillClimb)
	s.Less(c.HillClimb, int64(500_000))
	s.NotContains(buf.String(), "iteration budget is short")
}
