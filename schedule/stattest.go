// SPDX-License-Identifier: MIT
// File: stattest.go
// Role: calibration driven by one-sample proportion z-tests.
//
// TInitial: bisection on log10 T where each sample is tested against the
// target; a sample the test cannot distinguish from the target ends the
// search, otherwise the sign of z picks the half.
//
// TFinal: geometric cooling (T halves) from TInitial until a one-sided test
// can no longer reject pBad ≤ target. If pBad stops falling for a few steps
// the landscape has stagnated and the current temperature is returned.
//
// Critical values are standard normal quantiles of Config.Confidence.

package schedule

import (
	"context"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat/distuv"
)

const (
	statTestName         = "statistical-test"
	statDefaultSteps     = 60
	statCoolingFactor    = 0.5
	statPlateauPatience  = 2
	statPlateauMinChange = 0.01
)

// StatTest implements the hypothesis-test method.
type StatTest struct {
	s   Sampler
	cfg Config

	mu       sync.Mutex
	tInitial float64
}

// NewStatTest returns the statistical-test method.
func NewStatTest(s Sampler, cfg Config) (*StatTest, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &StatTest{s: s, cfg: cfg}, nil
}

// Name implements Method.
func (m *StatTest) Name() string { return statTestName }

// unitNormal is the null distribution of zScore.
var unitNormal = distuv.Normal{Mu: 0, Sigma: 1}

// twoSided returns the critical |z| at confidence level c.
func twoSided(c float64) float64 { return unitNormal.Quantile(1 - (1-c)/2) }

// oneSided returns the upper critical z at confidence level c.
func oneSided(c float64) float64 { return unitNormal.Quantile(c) }

// zScore is the one-sample proportion statistic of s against target.
func zScore(s Sample, target float64) float64 {
	if s.Worsening == 0 {
		return 0
	}
	se := math.Sqrt(target * (1 - target) / float64(s.Worsening))

	return (s.PBad - target) / se
}

// ComputeTInitial implements Method.
func (m *StatTest) ComputeTInitial(ctx context.Context, res Resources) (Estimate, error) {
	target := m.cfg.TargetInitialPBad
	tr := newTracker(m.cfg, res, target, statDefaultSteps)
	lo, hi := math.Log10(m.cfg.MinTemp), math.Log10(m.cfg.MaxTemp)

	crit := twoSided(m.cfg.Confidence)
	est := Estimate{}
	found := false
	for !tr.exhausted() {
		mid := (lo + hi) / 2
		temp := math.Pow(10, mid)
		smp, err := tr.sample(ctx, m.s, temp, false)
		if err != nil {
			return Estimate{}, err
		}
		z := zScore(smp, target)
		if math.Abs(z) <= crit || m.cfg.WithinTarget(smp.PBad, target) {
			est, found = tr.estimate(m.Name(), "initial", temp, smp.PBad, true), true
			break
		}
		if z > 0 {
			hi = mid
		} else {
			lo = mid
		}
		if hi-lo < bracketCollapseDecs {
			est, found = tr.estimate(m.Name(), "initial", temp, smp.PBad, false), true
			break
		}
	}
	if !found {
		est = tr.fromBest(m.Name(), "initial")
	}

	m.mu.Lock()
	m.tInitial = est.Temperature
	m.mu.Unlock()

	return est, nil
}

// ComputeTFinal implements Method. It starts from the last TInitial, or
// computes one first.
func (m *StatTest) ComputeTFinal(ctx context.Context, res Resources) (Estimate, error) {
	m.mu.Lock()
	start := m.tInitial
	m.mu.Unlock()
	if !(start > 0) {
		e, err := m.ComputeTInitial(ctx, res)
		if err != nil {
			return Estimate{}, err
		}
		start = e.Temperature
	}

	target := m.cfg.TargetFinalPBad
	crit := oneSided(m.cfg.Confidence)
	tr := newTracker(m.cfg, res, target, statDefaultSteps)
	temp := start
	prev := math.Inf(1)
	flat := 0
	for !tr.exhausted() && temp > m.cfg.MinTemp {
		temp = clampTemp(m.cfg, temp*statCoolingFactor)
		smp, err := tr.sample(ctx, m.s, temp, false)
		if err != nil {
			return Estimate{}, err
		}
		// H0: pBad ≤ target. Stop once it cannot be rejected.
		if zScore(smp, target) <= crit {
			return tr.estimate(m.Name(), "final", temp, smp.PBad, true), nil
		}
		if prev-smp.PBad < statPlateauMinChange*prev {
			flat++
		} else {
			flat = 0
		}
		if flat >= statPlateauPatience {
			return tr.estimate(m.Name(), "final", temp, smp.PBad, false), nil
		}
		prev = smp.PBad
	}

	return tr.fromBest(m.Name(), "final"), nil
}
