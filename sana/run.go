// SPDX-License-Identifier: MIT
// File: run.go
// Role: the annealing loop and its state machine.
//
// Per iteration: propose, score the delta, apply the Metropolis rule, commit
// on acceptance, advance the iteration counter, then poll the controller.
// The wall clock is read every 2048 iterations in time mode.

package sana

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/netalign/alignment"
	"github.com/katalvlaran/netalign/measure"
)

// sanityTol is the relative tolerance for floating totals in sanity checks.
const sanityTol = 1e-6

// Result is the outcome of a run.
type Result struct {
	RunID          string
	Alignment      alignment.Alignment // best-so-far with KeepBest, else final
	Counts         measure.Counts      // recomputed for Alignment
	Score          float64
	Components     measure.Scores
	Weights        measure.Weights // component weights the run optimized
	Iterations     int64           // iterations executed by this run
	Elapsed        time.Duration
	TInitial       float64
	TDecay         float64
	TFinal         float64 // temperature at the last iteration
	AcceptanceRate float64
	State          State
	Interrupted    bool // stopped by the controller or the context
}

// budget bounds one loop; dur > 0 selects time mode.
type budget struct {
	iters int64
	dur   time.Duration
}

// run is the per-run mutable context.
type run struct {
	an  *Annealer
	id  string
	rng *rand.Rand
	st  *state

	counts measure.Counts
	score  float64
	iter   int64 // schedule position; continues across restart phases

	keepBest  bool
	best      alignment.Alignment
	bestScore float64

	proposed, accepted       int64
	worsening, worseAccepted int64
	collect                  bool
	increases                []float64
}

func (an *Annealer) newRun(start alignment.Alignment, rng *rand.Rand, startIter int64) *run {
	r := &run{
		an:       an,
		id:       uuid.NewString(),
		rng:      rng,
		iter:     startIter,
		keepBest: an.opts.KeepBest,
	}
	r.st = an.newState(start, rng)
	r.counts = an.mask(measure.Recount(an.g1, an.g2, r.st.a, an.wec, an.local))
	r.score = an.obj.Score(r.counts, an.sizes)
	r.bestScore = r.score
	if r.keepBest {
		r.best = r.st.a.Clone()
	}

	return r
}

// mask zeroes the totals that are not maintained incrementally.
func (an *Annealer) mask(c measure.Counts) measure.Counts {
	if !an.needs.Aligned && !an.needs.WEC {
		c.AligEdges, c.SECSum = 0, 0
	}
	if !an.needs.Induced {
		c.InducedEdges = 0
	}
	if an.wec == nil {
		c.WECSum = 0
	}
	if an.local == nil {
		c.LocalSum = 0
	}

	return c
}

// temperature returns T at schedule position iter.
func temperature(tInitial, tDecay float64, iter int64) float64 {
	if tDecay == 0 || math.IsInf(tInitial, 1) {
		return tInitial
	}

	return tInitial * math.Exp(-tDecay*float64(iter))
}

// step performs one iteration at temperature t.
func (r *run) step(t float64) {
	an := r.an
	m := an.propose(r.st, r.rng)
	d := an.delta(r.st, m)
	nc := r.counts.Add(d)
	ns := an.obj.Score(nc, an.sizes)
	e := ns - r.score
	r.proposed++

	accept := e >= 0
	if !accept {
		r.worsening++
		if r.collect {
			r.increases = append(r.increases, -e)
		}
		if t > 0 && r.rng.Float64() < math.Exp(e/t) {
			accept = true
			r.worseAccepted++
		}
	}
	if !accept {
		return
	}

	r.st.commit(m)
	r.counts, r.score = nc, ns
	r.accepted++
	if r.keepBest && ns > r.bestScore {
		r.bestScore = ns
		copy(r.best, r.st.a)
	}
}

// verify compares maintained totals with a full recomputation.
func (r *run) verify() error {
	an := r.an
	want := an.mask(measure.Recount(an.g1, an.g2, r.st.a, an.wec, an.local))
	got := r.counts
	if got.AligEdges != want.AligEdges || got.InducedEdges != want.InducedEdges ||
		!approxEqual(got.WECSum, want.WECSum) || !approxEqual(got.SECSum, want.SECSum) ||
		!approxEqual(got.LocalSum, want.LocalSum) {
		return fmt.Errorf("verify: iteration %d: have %+v, recomputed %+v: %w",
			r.iter, got, want, ErrInconsistentState)
	}

	return nil
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= sanityTol*math.Max(1, math.Abs(b))
}

// Run executes one annealing run with the configured budget. On stop or
// context cancellation it returns the current result with Interrupted set
// and a nil error.
func (an *Annealer) Run(ctx context.Context) (Result, error) {
	rng := streamRNG(an.opts.Seed, streamRun)

	return an.runFrom(ctx, an.opts.Start, rng, 0, budget{iters: an.opts.MaxIterations, dur: an.opts.TimeLimit})
}

func (an *Annealer) runFrom(ctx context.Context, start alignment.Alignment, rng *rand.Rand, startIter int64, b budget) (Result, error) {
	obs := an.opts.Observer
	ctrl := an.opts.Controller
	if ctrl == nil {
		ctrl = NewController()
	}
	stopOnCancel := context.AfterFunc(ctx, ctrl.Stop)
	defer stopOnCancel()

	r := an.newRun(start, rng, startIter)
	log := an.logger.With(slog.String("run", r.id))
	obs.OnStateChange(r.id, StateInitializing, StateRunning)
	log.Debug("run started", slog.Float64("score", r.score),
		slog.Int64("iterations", b.iters), slog.Duration("time_limit", b.dur))

	tI, tD := an.opts.TInitial, an.opts.TDecay
	report, sanity := an.opts.ReportEvery, an.opts.SanityCheckEvery
	began := time.Now()
	var (
		pausedFor   time.Duration
		done        int64
		interrupted bool
		endFrom     = StateRunning
		t           = temperature(tI, tD, r.iter)
		lastReport  [4]int64
	)
	if ctx.Err() != nil {
		interrupted = true
	}

	for !interrupted {
		if b.dur > 0 {
			if done&2047 == 0 && time.Since(began)-pausedFor >= b.dur {
				break
			}
		} else if done >= b.iters {
			break
		}

		t = temperature(tI, tD, r.iter)
		r.step(t)
		done++
		r.iter++

		if report > 0 && done%report == 0 {
			obs.OnProgress(r.progress(time.Since(began)-pausedFor, t, &lastReport))
		}
		if sanity > 0 && done%sanity == 0 {
			if err := r.verify(); err != nil {
				obs.OnStateChange(r.id, StateRunning, StateFinished)
				return Result{}, fmt.Errorf("Run: %w", err)
			}
		}
		if ctrl.pending() {
			pauseAt := time.Now()
			wasPaused := !ctrl.Stopped()
			if wasPaused {
				obs.OnStateChange(r.id, StateRunning, StatePaused)
				log.Info("run paused", slog.Int64("iteration", r.iter), slog.Float64("score", r.score))
			}
			stop := ctrl.await()
			pausedFor += time.Since(pauseAt)
			if stop {
				interrupted = true
				if wasPaused {
					endFrom = StatePaused
				}
				break
			}
			obs.OnStateChange(r.id, StatePaused, StateRunning)
			log.Info("run resumed", slog.Int64("iteration", r.iter))
		}
	}

	res := r.result(done, time.Since(began)-pausedFor, t, interrupted)
	obs.OnStateChange(r.id, endFrom, StateFinished)
	log.Debug("run finished", slog.Float64("score", res.Score),
		slog.Int64("iterations", done), slog.Bool("interrupted", interrupted))

	return res, nil
}

// progress builds a report; last holds the counters of the previous report.
func (r *run) progress(elapsed time.Duration, t float64, last *[4]int64) Progress {
	p := Progress{
		RunID:       r.id,
		Iteration:   r.iter,
		Elapsed:     elapsed,
		Score:       r.score,
		BestScore:   math.Max(r.bestScore, r.score),
		Temperature: t,
	}
	if dp := r.proposed - last[0]; dp > 0 {
		p.AcceptanceRate = float64(r.accepted-last[1]) / float64(dp)
	}
	p.PBad = 1
	if dw := r.worsening - last[2]; dw > 0 {
		p.PBad = float64(r.worseAccepted-last[3]) / float64(dw)
	}
	*last = [4]int64{r.proposed, r.accepted, r.worsening, r.worseAccepted}

	return p
}

func (r *run) result(done int64, elapsed time.Duration, t float64, interrupted bool) Result {
	an := r.an
	a := r.st.a
	if r.keepBest && r.bestScore > r.score {
		a = r.best
	}
	a = a.Clone()
	c := measure.Recount(an.g1, an.g2, a, an.wec, an.local)
	res := Result{
		RunID:       r.id,
		Alignment:   a,
		Counts:      c,
		Score:       an.obj.Score(c, an.sizes),
		Components:  an.obj.Components(c, an.sizes),
		Weights:     an.obj.Weights,
		Iterations:  done,
		Elapsed:     elapsed,
		TInitial:    an.opts.TInitial,
		TDecay:      an.opts.TDecay,
		TFinal:      t,
		State:       StateFinished,
		Interrupted: interrupted,
	}
	if r.proposed > 0 {
		res.AcceptanceRate = float64(r.accepted) / float64(r.proposed)
	}

	return res
}
