// SPDX-License-Identifier: MIT
// File: sampler.go
// Role: fixed-temperature sampling for schedule calibration.

package sana

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/netalign/schedule"
)

// Sample runs the move/accept loop at fixed temperature t from a fresh random
// alignment and reports the empirical pBad. T = +Inf is a random walk.
// It implements schedule.Sampler and is safe for concurrent use.
func (an *Annealer) Sample(ctx context.Context, t float64, b schedule.Budget, collect bool) (schedule.Sample, error) {
	if math.IsNaN(t) || t < 0 {
		return schedule.Sample{}, fmt.Errorf("Sample: T=%g: %w", t, ErrTemperature)
	}
	if b.Iterations <= 0 && b.Duration <= 0 {
		return schedule.Sample{}, fmt.Errorf("Sample: empty budget: %w", ErrBudget)
	}

	rng := streamRNG(an.opts.Seed, streamSample+an.sampleSeq.Add(1))
	r := an.newRun(nil, rng, 0)
	r.keepBest = false
	r.collect = collect

	began := time.Now()
	var done int64
	for {
		if done&2047 == 0 {
			if err := ctx.Err(); err != nil {
				return schedule.Sample{}, fmt.Errorf("Sample: %w", err)
			}
			if b.Duration > 0 && time.Since(began) >= b.Duration {
				break
			}
		}
		if b.Duration <= 0 && done >= b.Iterations {
			break
		}
		r.step(t)
		done++
	}

	s := schedule.Sample{
		Temperature:     t,
		PBad:            1,
		Worsening:       r.worsening,
		Accepted:        r.worseAccepted,
		Iterations:      done,
		EnergyIncreases: r.increases,
		Elapsed:         time.Since(began),
	}
	if r.worsening > 0 {
		s.PBad = float64(r.worseAccepted) / float64(r.worsening)
	}

	return s, nil
}

// IterationsPerSecond measures throughput at TInitial for the probe duration.
func (an *Annealer) IterationsPerSecond(ctx context.Context, probe time.Duration) (float64, error) {
	if probe <= 0 {
		return 0, fmt.Errorf("IterationsPerSecond: probe %v: %w", probe, ErrBudget)
	}
	s, err := an.Sample(ctx, an.opts.TInitial, schedule.Budget{Duration: probe}, false)
	if err != nil {
		return 0, fmt.Errorf("IterationsPerSecond: %w", err)
	}
	secs := s.Elapsed.Seconds()
	if secs <= 0 {
		return 0, fmt.Errorf("IterationsPerSecond: no elapsed time: %w", ErrBudget)
	}

	return float64(s.Iterations) / secs, nil
}

// HillClimbIterations runs at T = 0 from a random alignment until idle
// consecutive iterations pass without a score improvement, and returns the
// iteration count. maxIters bounds the climb.
func (an *Annealer) HillClimbIterations(ctx context.Context, idle, maxIters int64) (int64, error) {
	if idle <= 0 || maxIters <= 0 {
		return 0, fmt.Errorf("HillClimbIterations: idle=%d max=%d: %w", idle, maxIters, ErrBudget)
	}
	r := an.newRun(nil, streamRNG(an.opts.Seed, streamSample+an.sampleSeq.Add(1)), 0)
	r.keepBest = false

	var done, quiet int64
	for done < maxIters && quiet < idle {
		if done&2047 == 0 {
			if err := ctx.Err(); err != nil {
				return done, fmt.Errorf("HillClimbIterations: %w", err)
			}
		}
		before := r.score
		r.step(0)
		done++
		if r.score <= before {
			quiet++
		} else {
			quiet = 0
		}
	}

	return done, nil
}

// SearchSpaceLog returns ln(|G2|! / (|G2|−|G1|)!), the natural logarithm of
// the number of injective alignments.
func (an *Annealer) SearchSpaceLog() float64 {
	n1, n2 := float64(an.g1.NumNodes()), float64(an.g2.NumNodes())
	a, _ := math.Lgamma(n2 + 1)
	b, _ := math.Lgamma(n2 - n1 + 1)

	return a - b
}
