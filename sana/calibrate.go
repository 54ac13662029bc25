// SPDX-License-Identifier: MIT
// File: calibrate.go
// Role: turn a calibration method into TInitial and TDecay for this run budget.

package sana

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/katalvlaran/netalign/schedule"
)

const (
	// maxThroughputProbe caps the throughput measurement in time mode.
	maxThroughputProbe = time.Second
	// minClimbIdle is the smallest idle window of the greedy climb.
	minClimbIdle int64 = 1000
	// climbsPerBudget is how many greedy climbs a budget should hold.
	climbsPerBudget = 10
)

// Calibration is a calibrated schedule.
type Calibration struct {
	Method     string
	Initial    schedule.Estimate
	Final      schedule.Estimate
	TInitial   float64
	TFinal     float64
	TDecay     float64
	Iterations int64 // iterations TDecay spans
	HillClimb  int64 // iterations of one greedy climb, capped at Iterations/10
}

// Calibrate runs the named method with the annealer as sampler and fits
// TDecay to the configured budget. In time mode the iteration count is
// predicted from measured throughput. Apply the result with WithSchedule.
func (an *Annealer) Calibrate(ctx context.Context, method string, cfg schedule.Config, res schedule.Resources) (Calibration, error) {
	if cfg.Logger == nil {
		cfg.Logger = an.logger
	}
	m, err := schedule.New(method, an, cfg)
	if err != nil {
		return Calibration{}, fmt.Errorf("Calibrate: %w", err)
	}

	began := time.Now()
	ini, err := m.ComputeTInitial(ctx, res)
	if err != nil {
		return Calibration{}, fmt.Errorf("Calibrate: initial: %w", err)
	}
	fin, err := m.ComputeTFinal(ctx, res)
	if err != nil {
		return Calibration{}, fmt.Errorf("Calibrate: final: %w", err)
	}

	c := Calibration{
		Method:   m.Name(),
		Initial:  ini,
		Final:    fin,
		TInitial: ini.Temperature,
		TFinal:   fin.Temperature,
	}
	c.Iterations, err = an.plannedIterations(ctx)
	if err != nil {
		return Calibration{}, fmt.Errorf("Calibrate: %w", err)
	}

	if c.Iterations > 0 {
		if c.HillClimb, err = an.checkBudget(ctx, c.Iterations); err != nil {
			return Calibration{}, fmt.Errorf("Calibrate: %w", err)
		}
	}

	switch {
	case c.Iterations == 0:
		c.TDecay = 0
	case c.TFinal >= c.TInitial:
		an.logger.Warn("calibrated TFinal is not below TInitial; using a constant temperature",
			slog.Float64("t_initial", c.TInitial), slog.Float64("t_final", c.TFinal))
		c.TFinal, c.TDecay = c.TInitial, 0
	default:
		if c.TDecay, err = schedule.Decay(c.TInitial, c.TFinal, c.Iterations); err != nil {
			return Calibration{}, fmt.Errorf("Calibrate: %w", err)
		}
	}

	an.logger.Info("schedule calibrated",
		slog.String("method", c.Method),
		slog.Float64("t_initial", c.TInitial), slog.Float64("pbad_initial", ini.PBad),
		slog.Float64("t_final", c.TFinal), slog.Float64("pbad_final", fin.PBad),
		slog.Float64("t_decay", c.TDecay), slog.Int64("iterations", c.Iterations),
		slog.Int64("greedy_climb", c.HillClimb),
		slog.Duration("elapsed", time.Since(began)))

	return c, nil
}

// checkBudget runs one greedy climb whose idle window grows with the log of
// the search space, and warns when the budget holds fewer than
// climbsPerBudget such climbs.
func (an *Annealer) checkBudget(ctx context.Context, iterations int64) (int64, error) {
	space := an.SearchSpaceLog()
	idle := max(minClimbIdle, int64(math.Ceil(space)))
	limit := max(idle, iterations/climbsPerBudget)
	n, err := an.HillClimbIterations(ctx, idle, limit)
	if err != nil {
		return 0, err
	}
	if n >= limit {
		an.logger.Warn("iteration budget is short for this search space",
			slog.Int64("iterations", iterations), slog.Int64("greedy_climb", n),
			slog.Float64("search_space_log", space))
	}

	return n, nil
}

// plannedIterations is the iteration budget, measured in time mode.
func (an *Annealer) plannedIterations(ctx context.Context) (int64, error) {
	if an.opts.TimeLimit <= 0 {
		return an.opts.MaxIterations, nil
	}
	probe := min(maxThroughputProbe, an.opts.TimeLimit/10)
	if probe <= 0 {
		probe = an.opts.TimeLimit
	}
	ips, err := an.IterationsPerSecond(ctx, probe)
	if err != nil {
		return 0, err
	}

	return int64(ips * an.opts.TimeLimit.Seconds()), nil
}
