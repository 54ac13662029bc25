// SPDX-License-Identifier: MIT
// File: observer.go
// Role: progress reporting sinks.

package sana

import (
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Progress is a periodic snapshot of a run. Rates cover the iterations since
// the previous report.
type Progress struct {
	RunID          string
	Iteration      int64
	Elapsed        time.Duration
	Score          float64
	BestScore      float64
	Temperature    float64
	AcceptanceRate float64 // accepted / proposed
	PBad           float64 // accepted worsening / proposed worsening
}

// Observer receives progress and state transitions. Implementations must be
// safe for concurrent use when shared by parallel runs, and must not block.
type Observer interface {
	OnProgress(p Progress)
	OnStateChange(runID string, from, to State)
}

// NoopObserver discards everything.
type NoopObserver struct{}

func (NoopObserver) OnProgress(Progress)                {}
func (NoopObserver) OnStateChange(string, State, State) {}

// LogObserver writes progress to a slog.Logger at most once per interval and
// every state change unconditionally.
type LogObserver struct {
	logger *slog.Logger
	mu     sync.Mutex
	limit  map[string]*rate.Sometimes
	every  time.Duration
}

// NewLogObserver returns an observer throttled to one progress line per run
// and interval. A non-positive interval logs every report.
func NewLogObserver(logger *slog.Logger, every time.Duration) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}

	return &LogObserver{logger: logger, limit: make(map[string]*rate.Sometimes), every: every}
}

// OnProgress implements Observer.
func (o *LogObserver) OnProgress(p Progress) {
	o.mu.Lock()
	s, ok := o.limit[p.RunID]
	if !ok {
		s = &rate.Sometimes{Interval: o.every}
		if o.every <= 0 {
			s.Every = 1
		}
		o.limit[p.RunID] = s
	}
	o.mu.Unlock()

	s.Do(func() {
		o.logger.Info("progress",
			slog.String("run", p.RunID),
			slog.Int64("iteration", p.Iteration),
			slog.Duration("elapsed", p.Elapsed),
			slog.Float64("score", p.Score),
			slog.Float64("best", p.BestScore),
			slog.Float64("temperature", p.Temperature),
			slog.Float64("acceptance", p.AcceptanceRate),
			slog.Float64("pbad", p.PBad))
	})
}

// OnStateChange implements Observer.
func (o *LogObserver) OnStateChange(runID string, from, to State) {
	o.logger.Info("state", slog.String("run", runID),
		slog.String("from", from.String()), slog.String("to", to.String()))
	if to == StateFinished {
		o.mu.Lock()
		delete(o.limit, runID)
		o.mu.Unlock()
	}
}

// Observers fans every event out to each member in order.
type Observers []Observer

// OnProgress implements Observer.
func (obs Observers) OnProgress(p Progress) {
	for _, o := range obs {
		o.OnProgress(p)
	}
}

// OnStateChange implements Observer.
func (obs Observers) OnStateChange(runID string, from, to State) {
	for _, o := range obs {
		o.OnStateChange(runID, from, to)
	}
}
