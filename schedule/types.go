// SPDX-License-Identifier: MIT
// File: types.go
// Role: the sampling contract, method contract and configuration.

package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"
)

var (
	// ErrUnknownMethod indicates an unregistered method name.
	ErrUnknownMethod = errors.New("schedule: unknown calibration method")

	// ErrInvalidConfig indicates an out-of-range calibration parameter.
	ErrInvalidConfig = errors.New("schedule: invalid configuration")

	// ErrInvalidSchedule indicates temperatures or iterations no decay rate fits.
	ErrInvalidSchedule = errors.New("schedule: invalid schedule parameters")
)

// Budget bounds one sample; a positive Duration takes precedence.
type Budget struct {
	Iterations int64
	Duration   time.Duration
}

// Sample is the outcome of a fixed-temperature run.
type Sample struct {
	Temperature     float64
	PBad            float64   // accepted worsening / proposed worsening; 1 when none was proposed
	Worsening       int64     // proposed worsening moves
	Accepted        int64     // accepted worsening moves
	Iterations      int64     // iterations executed
	EnergyIncreases []float64 // magnitudes of worsening deltas, when collected
	Elapsed         time.Duration
}

// Sampler runs the annealing loop at a fixed temperature. collect asks for
// the energy increases of every proposed worsening move. Implementations
// must be safe for concurrent use.
type Sampler interface {
	Sample(ctx context.Context, temperature float64, b Budget, collect bool) (Sample, error)
}

// Resources bound a calibration; zero fields select method defaults.
type Resources struct {
	MaxSamples  int
	MaxDuration time.Duration
}

// Estimate is a calibrated temperature.
type Estimate struct {
	Temperature float64
	PBad        float64 // pBad observed or predicted at Temperature
	Converged   bool
	Samples     int
	Elapsed     time.Duration
}

// Method computes the two ends of the schedule.
type Method interface {
	Name() string
	ComputeTInitial(ctx context.Context, res Resources) (Estimate, error)
	ComputeTFinal(ctx context.Context, res Resources) (Estimate, error)
}

// Config tunes every method.
type Config struct {
	TargetInitialPBad float64 // default 0.95
	TargetFinalPBad   float64 // default 1e-4
	ErrorTol          float64 // tolerance as a fraction of min(target, 1−target)
	SampleBudget      Budget  // per-sample budget
	MinTemp           float64 // search floor
	MaxTemp           float64 // search ceiling
	Confidence        float64 // confidence level of the statistical test, in (0, 1)
	Logger            *slog.Logger
}

// DefaultConfig returns the standard targets and search range.
func DefaultConfig() Config {
	return Config{
		TargetInitialPBad: 0.95,
		TargetFinalPBad:   1e-4,
		ErrorTol:          0.2,
		SampleBudget:      Budget{Iterations: 200_000},
		MinTemp:           1e-12,
		MaxTemp:           1e3,
		Confidence:        0.95,
	}
}

func (c *Config) validate() error {
	in := func(v float64) bool { return v > 0 && v < 1 }
	switch {
	case !in(c.TargetInitialPBad) || !in(c.TargetFinalPBad):
		return fmt.Errorf("targets %g/%g: %w", c.TargetInitialPBad, c.TargetFinalPBad, ErrInvalidConfig)
	case c.TargetFinalPBad >= c.TargetInitialPBad:
		return fmt.Errorf("final target %g ≥ initial %g: %w", c.TargetFinalPBad, c.TargetInitialPBad, ErrInvalidConfig)
	case !(c.ErrorTol > 0):
		return fmt.Errorf("error tolerance %g: %w", c.ErrorTol, ErrInvalidConfig)
	case !(c.MinTemp > 0) || !(c.MaxTemp > c.MinTemp) || math.IsInf(c.MaxTemp, 0):
		return fmt.Errorf("range [%g,%g]: %w", c.MinTemp, c.MaxTemp, ErrInvalidConfig)
	case c.SampleBudget.Iterations <= 0 && c.SampleBudget.Duration <= 0:
		return fmt.Errorf("empty sample budget: %w", ErrInvalidConfig)
	case !in(c.Confidence):
		return fmt.Errorf("confidence %g: %w", c.Confidence, ErrInvalidConfig)
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}

	return nil
}

// WithinTarget reports whether p is close enough to target.
func (c Config) WithinTarget(p, target float64) bool {
	return math.Abs(p-target) <= c.ErrorTol*math.Min(target, 1-target)
}

// Decay returns the rate that takes TInitial to TFinal in the given number
// of iterations under T = TInitial·exp(−decay·iter).
func Decay(tInitial, tFinal float64, iterations int64) (float64, error) {
	if !(tFinal > 0) || math.IsInf(tInitial, 0) || tInitial < tFinal || iterations <= 0 {
		return 0, fmt.Errorf("Decay(%g,%g,%d): %w", tInitial, tFinal, iterations, ErrInvalidSchedule)
	}

	return math.Log(tInitial/tFinal) / float64(iterations), nil
}

// tracker enforces Resources and remembers the sample closest to a target.
type tracker struct {
	cfg      Config
	res      Resources
	target   float64
	began    time.Time
	samples  int
	best     Sample
	haveBest bool
}

func newTracker(cfg Config, res Resources, target float64, defaultSamples int) *tracker {
	if res.MaxSamples <= 0 {
		res.MaxSamples = defaultSamples
	}

	return &tracker{cfg: cfg, res: res, target: target, began: time.Now()}
}

// exhausted reports whether another sample would exceed the resources.
func (t *tracker) exhausted() bool {
	if t.samples >= t.res.MaxSamples {
		return true
	}

	return t.res.MaxDuration > 0 && time.Since(t.began) >= t.res.MaxDuration
}

// sample draws one sample and keeps the closest to the target.
func (t *tracker) sample(ctx context.Context, s Sampler, temp float64, collect bool) (Sample, error) {
	smp, err := s.Sample(ctx, temp, t.cfg.SampleBudget, collect)
	if err != nil {
		return Sample{}, err
	}
	t.samples++
	if !t.haveBest || math.Abs(smp.PBad-t.target) < math.Abs(t.best.PBad-t.target) {
		t.best, t.haveBest = smp, true
	}

	return smp, nil
}

// estimate packs a temperature into an Estimate and warns if not converged.
func (t *tracker) estimate(method, end string, temp, pbad float64, converged bool) Estimate {
	e := Estimate{
		Temperature: temp,
		PBad:        pbad,
		Converged:   converged,
		Samples:     t.samples,
		Elapsed:     time.Since(t.began),
	}
	if !converged {
		t.cfg.Logger.Warn("calibration did not converge; using estimate",
			slog.String("method", method), slog.String("end", end),
			slog.Float64("temperature", temp), slog.Float64("pbad", pbad),
			slog.Float64("target", t.target), slog.Int("samples", t.samples))
	}

	return e
}

// fromBest returns the closest sample seen as a non-converged estimate.
func (t *tracker) fromBest(method, end string) Estimate {
	return t.estimate(method, end, t.best.Temperature, t.best.PBad, false)
}
