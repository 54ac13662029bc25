// SPDX-License-Identifier: MIT
// File: binary.go
// Role: bisection on log10 T.
//
// pBad is increasing in T, so a sample above the target moves the upper end
// down and one below it moves the lower end up. The bracket is halved in
// decades, which keeps the step count independent of the temperature scale.

package schedule

import (
	"context"
	"math"
)

const (
	binarySearchName    = "pbad-binary-search"
	binaryDefaultSteps  = 40
	bracketCollapseDecs = 1e-3
)

// BinarySearch bisects the temperature range until pBad is within tolerance.
type BinarySearch struct {
	s   Sampler
	cfg Config
}

// NewBinarySearch returns the bisection method.
func NewBinarySearch(s Sampler, cfg Config) (*BinarySearch, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &BinarySearch{s: s, cfg: cfg}, nil
}

// Name implements Method.
func (m *BinarySearch) Name() string { return binarySearchName }

// ComputeTInitial implements Method.
func (m *BinarySearch) ComputeTInitial(ctx context.Context, res Resources) (Estimate, error) {
	return m.search(ctx, res, m.cfg.TargetInitialPBad, "initial")
}

// ComputeTFinal implements Method.
func (m *BinarySearch) ComputeTFinal(ctx context.Context, res Resources) (Estimate, error) {
	return m.search(ctx, res, m.cfg.TargetFinalPBad, "final")
}

func (m *BinarySearch) search(ctx context.Context, res Resources, target float64, end string) (Estimate, error) {
	tr := newTracker(m.cfg, res, target, binaryDefaultSteps)
	lo, hi := math.Log10(m.cfg.MinTemp), math.Log10(m.cfg.MaxTemp)

	for !tr.exhausted() {
		mid := (lo + hi) / 2
		temp := math.Pow(10, mid)
		smp, err := tr.sample(ctx, m.s, temp, false)
		if err != nil {
			return Estimate{}, err
		}
		if m.cfg.WithinTarget(smp.PBad, target) {
			return tr.estimate(m.Name(), end, temp, smp.PBad, true), nil
		}
		if smp.PBad > target {
			hi = mid
		} else {
			lo = mid
		}
		if hi-lo < bracketCollapseDecs {
			return tr.estimate(m.Name(), end, temp, smp.PBad, false), nil
		}
	}

	return tr.fromBest(m.Name(), end), nil
}
