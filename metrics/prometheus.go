// SPDX-License-Identifier: MIT

package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/netalign/sana"
)

const namespace = "netalign"

// PrometheusObserver implements sana.Observer. Per-run gauges carry a "run"
// label that is removed when the run finishes.
type PrometheusObserver struct {
	score       *prometheus.GaugeVec
	best        *prometheus.GaugeVec
	temperature *prometheus.GaugeVec
	acceptance  *prometheus.GaugeVec
	pbad        *prometheus.GaugeVec
	iterations  prometheus.Counter
	transitions *prometheus.CounterVec
	active      prometheus.Gauge

	mu   sync.Mutex
	last map[string]int64 // iteration of the previous report per run
}

// NewPrometheusObserver creates the collectors and registers them with reg.
func NewPrometheusObserver(reg prometheus.Registerer) (*PrometheusObserver, error) {
	run := []string{"run"}
	o := &PrometheusObserver{
		score: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "score",
			Help: "Current objective score of a run",
		}, run),
		best: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "best_score",
			Help: "Best objective score seen by a run",
		}, run),
		temperature: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "temperature",
			Help: "Current annealing temperature",
		}, run),
		acceptance: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "acceptance_ratio",
			Help: "Accepted / proposed moves since the previous report",
		}, run),
		pbad: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace, Name: "pbad_ratio",
			Help: "Accepted / proposed worsening moves since the previous report",
		}, run),
		iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "iterations_total",
			Help: "Annealing iterations reported by all runs",
		}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "state_transitions_total",
			Help: "Run state transitions by target state",
		}, []string{"to"}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "runs_active",
			Help: "Runs that have started and not finished",
		}),
		last: make(map[string]int64),
	}

	for _, c := range []prometheus.Collector{
		o.score, o.best, o.temperature, o.acceptance, o.pbad, o.iterations, o.transitions, o.active,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// OnProgress implements sana.Observer.
func (o *PrometheusObserver) OnProgress(p sana.Progress) {
	o.score.WithLabelValues(p.RunID).Set(p.Score)
	o.best.WithLabelValues(p.RunID).Set(p.BestScore)
	o.temperature.WithLabelValues(p.RunID).Set(p.Temperature)
	o.acceptance.WithLabelValues(p.RunID).Set(p.AcceptanceRate)
	o.pbad.WithLabelValues(p.RunID).Set(p.PBad)

	o.mu.Lock()
	prev, ok := o.last[p.RunID]
	o.last[p.RunID] = p.Iteration
	o.mu.Unlock()
	if ok && p.Iteration > prev {
		o.iterations.Add(float64(p.Iteration - prev))
	} else if !ok {
		o.iterations.Add(float64(p.Iteration))
	}
}

// OnStateChange implements sana.Observer.
func (o *PrometheusObserver) OnStateChange(runID string, from, to sana.State) {
	o.transitions.WithLabelValues(to.String()).Inc()
	switch {
	case from == sana.StateInitializing && to == sana.StateRunning:
		o.active.Inc()
	case to == sana.StateFinished:
		o.active.Dec()
		for _, g := range []*prometheus.GaugeVec{o.score, o.best, o.temperature, o.acceptance, o.pbad} {
			g.DeleteLabelValues(runID)
		}
		o.mu.Lock()
		delete(o.last, runID)
		o.mu.Unlock()
	}
}

// Iterations exposes the iteration counter.
func (o *PrometheusObserver) Iterations() prometheus.Counter { return o.iterations }

// Active exposes the active-runs gauge.
func (o *PrometheusObserver) Active() prometheus.Gauge { return o.active }
