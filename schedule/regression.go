// SPDX-License-Identifier: MIT
// File: regression.go
// Role: logistic fit of pBad against log10 T.
//
// One pass of samples serves both ends: a decade ladder from MaxTemp down,
// stopping after two samples without accepted worsening moves, then a few
// refinement samples around each solution. Saturated samples (pBad 0 or 1)
// carry no slope information and are excluded from the fit. Each point is
// weighted by the inverse variance of its logit, n·p·(1−p).

package schedule

import (
	"context"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"
)

const (
	regressionName         = "linear-regression"
	regressionDefaultSteps = 48
	refineWindowDecades    = 1.0
)

// refineOffsets are the extra sample positions, in decades, around a solution.
var refineOffsets = [...]float64{-0.5, -0.25, 0.25, 0.5}

// point is one usable sample in regression space.
type point struct{ x, y, w float64 }

// Regression fits logit(pBad) = a + b·log10(T) and solves it for each target.
type Regression struct {
	s   Sampler
	cfg Config

	mu     sync.Mutex
	fitted bool
	points []point
	tr     *tracker
}

// NewRegression returns the regression method.
func NewRegression(s Sampler, cfg Config) (*Regression, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Regression{s: s, cfg: cfg}, nil
}

// Name implements Method.
func (m *Regression) Name() string { return regressionName }

// ComputeTInitial implements Method.
func (m *Regression) ComputeTInitial(ctx context.Context, res Resources) (Estimate, error) {
	return m.solve(ctx, res, m.cfg.TargetInitialPBad, "initial")
}

// ComputeTFinal implements Method.
func (m *Regression) ComputeTFinal(ctx context.Context, res Resources) (Estimate, error) {
	return m.solve(ctx, res, m.cfg.TargetFinalPBad, "final")
}

func (m *Regression) solve(ctx context.Context, res Resources, target float64, end string) (Estimate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.fitted {
		if err := m.ladder(ctx, res); err != nil {
			return Estimate{}, err
		}
		m.fitted = true
	}
	tr := m.tr
	tr.target = target

	a, b, ok := fit(m.points)
	if !ok {
		return m.nearest(tr, target, end), nil
	}
	x := clampLog(m.cfg, (logit(target)-a)/b)

	// Local refit around the solution.
	for _, off := range refineOffsets {
		if tr.exhausted() {
			break
		}
		smp, err := tr.sample(ctx, m.s, math.Pow(10, x+off), false)
		if err != nil {
			return Estimate{}, err
		}
		m.add(smp)
	}
	local := make([]point, 0, len(m.points))
	for _, p := range m.points {
		if math.Abs(p.x-x) <= refineWindowDecades {
			local = append(local, p)
		}
	}
	if la, lb, lok := fit(local); lok {
		x = clampLog(m.cfg, (logit(target)-la)/lb)
		a, b = la, lb
	}

	temp := math.Pow(10, x)
	if tr.exhausted() {
		return tr.estimate(m.Name(), end, temp, logistic(a+b*x), false), nil
	}
	smp, err := tr.sample(ctx, m.s, temp, false)
	if err != nil {
		return Estimate{}, err
	}
	m.add(smp)

	return tr.estimate(m.Name(), end, temp, smp.PBad, m.cfg.WithinTarget(smp.PBad, target)), nil
}

// ladder samples one temperature per decade from MaxTemp downwards.
func (m *Regression) ladder(ctx context.Context, res Resources) error {
	m.tr = newTracker(m.cfg, res, m.cfg.TargetInitialPBad, regressionDefaultSteps)
	lo, hi := math.Log10(m.cfg.MinTemp), math.Log10(m.cfg.MaxTemp)
	zeros := 0
	for x := hi; x >= lo && zeros < 2 && !m.tr.exhausted(); x-- {
		smp, err := m.tr.sample(ctx, m.s, math.Pow(10, x), false)
		if err != nil {
			return err
		}
		m.add(smp)
		if smp.Accepted == 0 && smp.Worsening > 0 {
			zeros++
		} else {
			zeros = 0
		}
	}

	return nil
}

// add records a non-saturated sample.
func (m *Regression) add(s Sample) {
	if s.PBad <= 0 || s.PBad >= 1 {
		return
	}
	m.points = append(m.points, point{
		x: math.Log10(s.Temperature),
		y: logit(s.PBad),
		w: float64(s.Worsening) * s.PBad * (1 - s.PBad),
	})
}

// nearest falls back to the sample closest to target.
func (m *Regression) nearest(tr *tracker, target float64, end string) Estimate {
	best := math.Inf(1)
	var pick point
	for _, p := range m.points {
		if d := math.Abs(logistic(p.y) - target); d < best {
			best, pick = d, p
		}
	}
	if math.IsInf(best, 1) {
		return tr.fromBest(m.Name(), end)
	}

	return tr.estimate(m.Name(), end, math.Pow(10, pick.x), logistic(pick.y), false)
}

// fit is weighted least squares y = a + b·x; ok is false without a finite
// positive slope.
func fit(ps []point) (a, b float64, ok bool) {
	if len(ps) < 2 {
		return 0, 0, false
	}
	xs := make([]float64, len(ps))
	ys := make([]float64, len(ps))
	ws := make([]float64, len(ps))
	for i, p := range ps {
		xs[i], ys[i], ws[i] = p.x, p.y, p.w
	}
	if stat.Variance(xs, ws) == 0 {
		return 0, 0, false
	}
	a, b = stat.LinearRegression(xs, ys, ws, false)
	ok = b > 0 && !math.IsInf(b, 0) && !math.IsNaN(a)

	return a, b, ok
}

func logit(p float64) float64    { return math.Log(p / (1 - p)) }
func logistic(y float64) float64 { return 1 / (1 + math.Exp(-y)) }

func clampLog(cfg Config, x float64) float64 {
	return math.Max(math.Log10(cfg.MinTemp), math.Min(math.Log10(cfg.MaxTemp), x))
}
