// SPDX-License-Identifier: MIT
// File: pareto.go
// Role: Pareto mode over the enabled objective components.
//
// Run 0 keeps the configured weights. Every other run draws each enabled
// weight from Exp(1) and rescales the draw to the configured total, so the
// enabled set never changes and neither do the maintained totals. The front
// keeps the results no other result dominates on the enabled components.
//
// Complexity: front extraction is O(r²) for r results.

package sana

import (
	"cmp"
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/netalign/measure"
)

// components lists Scores and Weights fields in a fixed order.
func components(s measure.Scores) [5]float64 {
	return [5]float64{s.EC, s.S3, s.WEC, s.SEC, s.Local}
}

func weightVector(w measure.Weights) [5]float64 {
	return [5]float64{w.EC, w.S3, w.WEC, w.SEC, w.Local}
}

// Dominates reports whether a is at least as good as b on every component
// enabled in w and strictly better on one.
func Dominates(a, b measure.Scores, w measure.Weights) bool {
	av, bv, wv := components(a), components(b), weightVector(w)
	better := false
	for k := range wv {
		if wv[k] <= 0 {
			continue
		}
		if av[k] < bv[k] {
			return false
		}
		if av[k] > bv[k] {
			better = true
		}
	}

	return better
}

// sameOn reports whether a and b agree on every component enabled in w.
func sameOn(a, b measure.Scores, w measure.Weights) bool {
	av, bv, wv := components(a), components(b), weightVector(w)
	for k := range wv {
		if wv[k] > 0 && av[k] != bv[k] {
			return false
		}
	}

	return true
}

// randomWeights redistributes the total of base over its enabled components.
func randomWeights(base measure.Weights, rng *rand.Rand) measure.Weights {
	bv := weightVector(base)
	total, drawn := 0.0, 0.0
	var out [5]float64
	for k, v := range bv {
		if v > 0 {
			total += v
			out[k] = rng.ExpFloat64()
			drawn += out[k]
		}
	}
	for k := range out {
		out[k] *= total / drawn
	}

	return measure.Weights{EC: out[0], S3: out[1], WEC: out[2], SEC: out[3], Local: out[4]}
}

// withWeights returns a copy optimizing w; w must enable the same components.
func (an *Annealer) withWeights(w measure.Weights) *Annealer {
	cp := *an
	cp.obj.Weights = w

	return &cp
}

// RunPareto executes n runs under randomized weights and returns the
// non-dominated front of their results, best configured score first.
func (an *Annealer) RunPareto(ctx context.Context, n int) ([]Result, error) {
	if n <= 0 {
		return nil, fmt.Errorf("RunPareto: n=%d: %w", n, ErrInvalidOption)
	}
	out := make([]Result, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	b := budget{iters: an.opts.MaxIterations, dur: an.opts.TimeLimit}
	for i := 0; i < n; i++ {
		g.Go(func() error {
			rng := streamRNG(an.opts.Seed, streamPareto+uint64(i))
			v := an
			if i > 0 {
				v = an.withWeights(randomWeights(an.obj.Weights, rng))
			}
			res, err := v.runFrom(gctx, an.opts.Start, rng, 0, b)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("RunPareto: %w", err)
	}

	return an.ParetoFront(out), nil
}

// ParetoFront drops dominated results and repeats of an earlier result's
// components, then orders the rest by the configured objective. Score is
// rewritten under the configured weights so the front is comparable.
func (an *Annealer) ParetoFront(rs []Result) []Result {
	w := an.obj.Weights
	front := make([]Result, 0, len(rs))
	for i, r := range rs {
		keep := true
		for j, o := range rs {
			if Dominates(o.Components, r.Components, w) ||
				(j < i && sameOn(o.Components, r.Components, w)) {
				keep = false
				break
			}
		}
		if keep {
			r.Score = an.obj.Score(r.Counts, an.sizes)
			front = append(front, r)
		}
	}
	slices.SortStableFunc(front, func(a, b Result) int { return cmp.Compare(b.Score, a.Score) })

	return front
}
