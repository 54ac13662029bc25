// SPDX-License-Identifier: MIT
// File: options.go
// Role: run configuration, defaults and functional options.

package sana

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/katalvlaran/netalign/alignment"
)

const (
	// DefaultMaxIterations is the iteration budget when no time limit is set.
	DefaultMaxIterations int64 = 10_000_000

	// DefaultTInitial is the starting temperature before calibration.
	DefaultTInitial = 1.0

	// DefaultReportEvery is the progress reporting period in iterations.
	DefaultReportEvery int64 = 1 << 20

	// AutoChangeProbability selects the change/swap ratio from the relative
	// sizes of the two move neighborhoods.
	AutoChangeProbability = -1.0
)

// Options configures a run. Use DefaultOptions and functional Option values.
//
// Exactly one budget is active: TimeLimit > 0 selects time mode and requires
// MaxIterations == 0; otherwise MaxIterations bounds the run (0 is a no-op).
type Options struct {
	TInitial          float64             // temperature at iteration 0
	TDecay            float64             // T = TInitial·exp(−TDecay·iter); 0 ⇒ constant
	MaxIterations     int64               // iteration budget
	TimeLimit         time.Duration       // wall-clock budget, excluding paused time
	ChangeProbability float64             // P(change move); AutoChangeProbability ⇒ derived
	Seed              int64               // 0 ⇒ fixed default seed
	Start             alignment.Alignment // seed alignment; nil ⇒ random
	KeepBest          bool                // return the best alignment seen instead of the final one
	ReportEvery       int64               // progress period in iterations; 0 disables
	SanityCheckEvery  int64               // full recomputation period; 0 disables
	Observer          Observer            // progress sink; nil ⇒ NoopObserver
	Controller        *Controller         // external pause/stop; nil ⇒ private controller
	Logger            *slog.Logger        // nil ⇒ discard
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the baseline configuration: iteration mode with
// DefaultMaxIterations, TDecay chosen so T falls by six decades over that
// budget, automatic change probability and best-so-far result.
func DefaultOptions() Options {
	return Options{
		TInitial:          DefaultTInitial,
		TDecay:            math.Log(1e6) / float64(DefaultMaxIterations),
		MaxIterations:     DefaultMaxIterations,
		ChangeProbability: AutoChangeProbability,
		KeepBest:          true,
		ReportEvery:       DefaultReportEvery,
	}
}

// WithSchedule sets TInitial and TDecay.
func WithSchedule(tInitial, tDecay float64) Option {
	return func(o *Options) { o.TInitial, o.TDecay = tInitial, tDecay }
}

// WithIterations selects iteration mode with the given budget.
func WithIterations(n int64) Option {
	return func(o *Options) { o.MaxIterations, o.TimeLimit = n, 0 }
}

// WithTimeLimit selects time mode with the given wall-clock budget.
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) { o.TimeLimit, o.MaxIterations = d, 0 }
}

// WithChangeProbability fixes the probability of proposing a change move.
func WithChangeProbability(p float64) Option {
	return func(o *Options) { o.ChangeProbability = p }
}

// WithSeed sets the base random seed.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithStart seeds the run with an existing alignment.
func WithStart(a alignment.Alignment) Option {
	return func(o *Options) { o.Start = a }
}

// WithKeepBest chooses between best-so-far and final alignment.
func WithKeepBest(keep bool) Option {
	return func(o *Options) { o.KeepBest = keep }
}

// WithReportEvery sets the progress period; 0 disables reporting.
func WithReportEvery(n int64) Option {
	return func(o *Options) { o.ReportEvery = n }
}

// WithSanityCheck enables a full recomputation every n iterations.
func WithSanityCheck(n int64) Option {
	return func(o *Options) { o.SanityCheckEvery = n }
}

// WithObserver installs a progress observer.
func WithObserver(obs Observer) Option {
	return func(o *Options) { o.Observer = obs }
}

// WithController attaches an external controller.
func WithController(c *Controller) Option {
	return func(o *Options) { o.Controller = c }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// validate checks the scalar options; graph-dependent checks live in New.
func (o *Options) validate() error {
	if math.IsNaN(o.TInitial) || o.TInitial < 0 {
		return fmt.Errorf("validate: TInitial=%g: %w", o.TInitial, ErrTemperature)
	}
	if math.IsNaN(o.TDecay) || math.IsInf(o.TDecay, 0) || o.TDecay < 0 {
		return fmt.Errorf("validate: TDecay=%g: %w", o.TDecay, ErrTemperature)
	}
	if o.MaxIterations < 0 || o.TimeLimit < 0 {
		return fmt.Errorf("validate: iterations=%d time=%v: %w", o.MaxIterations, o.TimeLimit, ErrBudget)
	}
	if o.TimeLimit > 0 && o.MaxIterations > 0 {
		return fmt.Errorf("validate: both time and iteration budgets set: %w", ErrBudget)
	}
	if o.ChangeProbability != AutoChangeProbability &&
		(math.IsNaN(o.ChangeProbability) || o.ChangeProbability < 0 || o.ChangeProbability > 1) {
		return fmt.Errorf("validate: ChangeProbability=%g: %w", o.ChangeProbability, ErrInvalidOption)
	}
	if o.ReportEvery < 0 || o.SanityCheckEvery < 0 {
		return fmt.Errorf("validate: negative period: %w", ErrInvalidOption)
	}
	if o.Observer == nil {
		o.Observer = NoopObserver{}
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}

	return nil
}
