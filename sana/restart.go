// SPDX-License-Identifier: MIT
// File: restart.go
// Role: multi-phase restart scheme and independent parallel runs.
//
// Restart phases:
//  1. NewAlignments random alignments are annealed for IterationsPerStep
//     each; the NumCandidates best survive.
//  2. Every candidate continues for PerCandidate iterations.
//  3. The best candidate continues for Finalist iterations.
//
// Each phase may be bounded by wall-clock time instead; a positive duration
// replaces the iteration count of its phase.
//
// Continuations resume the temperature schedule where the previous phase
// stopped. Candidates within a phase run concurrently.

package sana

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"
)

// RestartOptions configures Restart.
type RestartOptions struct {
	NewAlignments     int
	IterationsPerStep int64
	NumCandidates     int
	PerCandidate      int64
	Finalist          int64
	Parallelism       int // 0 ⇒ GOMAXPROCS

	// Per-phase time budgets; > 0 replaces the matching iteration count.
	NewAlignmentsTime time.Duration
	PerCandidateTime  time.Duration
	FinalistTime      time.Duration
}

// DefaultRestartOptions returns a small restart configuration.
func DefaultRestartOptions() RestartOptions {
	return RestartOptions{
		NewAlignments:     16,
		IterationsPerStep: 100_000,
		NumCandidates:     4,
		PerCandidate:      1_000_000,
		Finalist:          5_000_000,
	}
}

func (ro RestartOptions) validate() error {
	if ro.NewAlignments <= 0 || ro.NumCandidates <= 0 || ro.NumCandidates > ro.NewAlignments {
		return fmt.Errorf("candidates %d of %d: %w", ro.NumCandidates, ro.NewAlignments, ErrInvalidOption)
	}
	if ro.IterationsPerStep < 0 || ro.PerCandidate < 0 || ro.Finalist < 0 || ro.Parallelism < 0 {
		return fmt.Errorf("negative restart budget: %w", ErrBudget)
	}
	if ro.NewAlignmentsTime < 0 || ro.PerCandidateTime < 0 || ro.FinalistTime < 0 {
		return fmt.Errorf("negative restart time: %w", ErrBudget)
	}

	return nil
}

// candidate carries a phase result and the schedule position it reached.
type candidate struct {
	res  Result
	iter int64
}

// Restart runs the restart scheme and returns the finalist's result with
// Iterations summed over its three phases.
func (an *Annealer) Restart(ctx context.Context, ro RestartOptions) (Result, error) {
	if err := ro.validate(); err != nil {
		return Result{}, fmt.Errorf("Restart: %w", err)
	}
	par := ro.Parallelism
	if par == 0 {
		par = runtime.GOMAXPROCS(0)
	}

	// Phase 1.
	starts := make([]candidate, ro.NewAlignments)
	if err := an.phase(ctx, starts, par, phaseBudget(ro.IterationsPerStep, ro.NewAlignmentsTime), 0); err != nil {
		return Result{}, fmt.Errorf("Restart: new alignments: %w", err)
	}
	byScore(starts)
	cands := starts[:ro.NumCandidates]
	an.logger.Info("restart: candidates selected",
		slog.Int("candidates", len(cands)), slog.Float64("best", cands[0].res.Score))

	// Phase 2.
	if err := an.phase(ctx, cands, par, phaseBudget(ro.PerCandidate, ro.PerCandidateTime), len(starts)); err != nil {
		return Result{}, fmt.Errorf("Restart: candidates: %w", err)
	}
	byScore(cands)

	// Phase 3.
	fin := cands[:1]
	if err := an.phase(ctx, fin, par, phaseBudget(ro.Finalist, ro.FinalistTime), len(starts)+len(cands)); err != nil {
		return Result{}, fmt.Errorf("Restart: finalist: %w", err)
	}

	res := fin[0].res
	res.Iterations = fin[0].iter

	return res, nil
}

// phaseBudget prefers a positive duration over the iteration count.
func phaseBudget(iters int64, d time.Duration) budget {
	if d > 0 {
		return budget{dur: d}
	}

	return budget{iters: iters}
}

// phase advances every slot by b. An empty slot starts from a random
// alignment; a filled one continues from its alignment and schedule position.
// streamBase offsets the random streams of the phase.
func (an *Annealer) phase(ctx context.Context, slots []candidate, par int, b budget, streamBase int) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(par)
	for i := range slots {
		g.Go(func() error {
			c := slots[i]
			rng := streamRNG(an.opts.Seed, streamRestart+uint64(streamBase+i))
			res, err := an.runFrom(gctx, c.res.Alignment, rng, c.iter, b)
			if err != nil {
				return err
			}
			slots[i] = candidate{res: res, iter: c.iter + res.Iterations}
			return nil
		})
	}

	return g.Wait()
}

func byScore(cs []candidate) {
	slices.SortStableFunc(cs, func(a, b candidate) int { return cmp.Compare(b.res.Score, a.res.Score) })
}

// RunParallel executes n independent runs with distinct random streams and
// returns their results in run order.
func (an *Annealer) RunParallel(ctx context.Context, n int) ([]Result, error) {
	if n <= 0 {
		return nil, fmt.Errorf("RunParallel: n=%d: %w", n, ErrInvalidOption)
	}
	out := make([]Result, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	b := budget{iters: an.opts.MaxIterations, dur: an.opts.TimeLimit}
	for i := 0; i < n; i++ {
		g.Go(func() error {
			rng := streamRNG(an.opts.Seed, streamParallel+uint64(i))
			res, err := an.runFrom(gctx, an.opts.Start, rng, 0, b)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("RunParallel: %w", err)
	}

	return out, nil
}

// Best returns the highest scoring result; the first wins ties.
func Best(rs []Result) (Result, bool) {
	if len(rs) == 0 {
		return Result{}, false
	}
	best := rs[0]
	for _, r := range rs[1:] {
		if r.Score > best.Score {
			best = r
		}
	}

	return best, true
}
