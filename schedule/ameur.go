// SPDX-License-Identifier: MIT
// File: ameur.go
// Role: Ameur's estimator and its iterated variant.
//
// Given energy increases ΔE₁..ΔEₙ of worsening moves, the predicted pBad at
// temperature T is χ(T) = mean(exp(−ΔEᵢ/T)). Ameur's update
// T ← T·ln χ(T)/ln target converges to χ(T) = target. The plain method
// samples the increases once with a random walk (T = +Inf); the iterated
// method resamples at every new guess so the increases follow the
// distribution actually seen at that temperature.

package schedule

import (
	"context"
	"math"
)

const (
	ameurName          = "ameur"
	iteratedAmeurName  = "iterated-ameur"
	ameurSolveSteps    = 100
	iteratedMaxSteps   = 30
	iteratedStep       = 0.6
	iteratedStartGuess = 1.0
)

// Ameur solves the acceptance equation from one random-walk sample.
type Ameur struct {
	s   Sampler
	cfg Config
}

// NewAmeur returns the Ameur method.
func NewAmeur(s Sampler, cfg Config) (*Ameur, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Ameur{s: s, cfg: cfg}, nil
}

// Name implements Method.
func (m *Ameur) Name() string { return ameurName }

// ComputeTInitial implements Method.
func (m *Ameur) ComputeTInitial(ctx context.Context, res Resources) (Estimate, error) {
	return m.compute(ctx, res, m.cfg.TargetInitialPBad, "initial")
}

// ComputeTFinal implements Method.
func (m *Ameur) ComputeTFinal(ctx context.Context, res Resources) (Estimate, error) {
	return m.compute(ctx, res, m.cfg.TargetFinalPBad, "final")
}

func (m *Ameur) compute(ctx context.Context, res Resources, target float64, end string) (Estimate, error) {
	tr := newTracker(m.cfg, res, target, 1)
	smp, err := tr.sample(ctx, m.s, math.Inf(1), true)
	if err != nil {
		return Estimate{}, err
	}
	if len(smp.EnergyIncreases) == 0 {
		return tr.estimate(m.Name(), end, m.cfg.MinTemp, 1, false), nil
	}
	temp, chi := ameurSolve(m.cfg, smp.EnergyIncreases, target, 0)

	return tr.estimate(m.Name(), end, temp, chi, m.cfg.WithinTarget(chi, target)), nil
}

// chi is the predicted acceptance probability of the sampled increases at t.
func chi(increases []float64, t float64) float64 {
	sum := 0.0
	for _, e := range increases {
		sum += math.Exp(-e / t)
	}

	return sum / float64(len(increases))
}

// ameurSolve iterates Ameur's update from t0 (or from the mean-increase
// guess when t0 is 0) and returns the temperature and its predicted pBad.
func ameurSolve(cfg Config, increases []float64, target, t0 float64) (float64, float64) {
	t := t0
	if !(t > 0) {
		mean := 0.0
		for _, e := range increases {
			mean += e
		}
		mean /= float64(len(increases))
		t = -mean / math.Log(target)
	}
	t = clampTemp(cfg, t)

	c := chi(increases, t)
	for k := 0; k < ameurSolveSteps && !cfg.WithinTarget(c, target); k++ {
		switch {
		case c <= 0:
			t *= 10
		case c >= 1:
			t /= 10
		default:
			t *= math.Log(c) / math.Log(target)
		}
		t = clampTemp(cfg, t)
		c = chi(increases, t)
	}

	return t, c
}

func clampTemp(cfg Config, t float64) float64 {
	return math.Max(cfg.MinTemp, math.Min(cfg.MaxTemp, t))
}

// IteratedAmeur resamples at every guess and moves a fixed fraction of the
// way to each Ameur solution. Out of samples it returns its latest guess.
type IteratedAmeur struct {
	s   Sampler
	cfg Config
}

// NewIteratedAmeur returns the iterated Ameur method.
func NewIteratedAmeur(s Sampler, cfg Config) (*IteratedAmeur, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &IteratedAmeur{s: s, cfg: cfg}, nil
}

// Name implements Method.
func (m *IteratedAmeur) Name() string { return iteratedAmeurName }

// ComputeTInitial implements Method.
func (m *IteratedAmeur) ComputeTInitial(ctx context.Context, res Resources) (Estimate, error) {
	return m.compute(ctx, res, m.cfg.TargetInitialPBad, "initial")
}

// ComputeTFinal implements Method.
func (m *IteratedAmeur) ComputeTFinal(ctx context.Context, res Resources) (Estimate, error) {
	return m.compute(ctx, res, m.cfg.TargetFinalPBad, "final")
}

func (m *IteratedAmeur) compute(ctx context.Context, res Resources, target float64, end string) (Estimate, error) {
	tr := newTracker(m.cfg, res, target, iteratedMaxSteps)
	t := clampTemp(m.cfg, iteratedStartGuess)

	// The guess after the last sample is unmeasured; its pBad is predicted
	// from the increases that produced it.
	predicted, guessed := 0.0, false
	for !tr.exhausted() {
		smp, err := tr.sample(ctx, m.s, t, true)
		if err != nil {
			return Estimate{}, err
		}
		if m.cfg.WithinTarget(smp.PBad, target) {
			return tr.estimate(m.Name(), end, t, smp.PBad, true), nil
		}
		if len(smp.EnergyIncreases) == 0 {
			return tr.estimate(m.Name(), end, t, smp.PBad, false), nil
		}
		next, _ := ameurSolve(m.cfg, smp.EnergyIncreases, target, t)
		t = clampTemp(m.cfg, t+iteratedStep*(next-t))
		predicted, guessed = chi(smp.EnergyIncreases, t), true
	}
	if !guessed {
		return tr.fromBest(m.Name(), end), nil
	}

	return tr.estimate(m.Name(), end, t, predicted, false), nil
}
