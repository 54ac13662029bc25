// SPDX-License-Identifier: MIT

package metrics_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/netalign/builder"
	"github.com/katalvlaran/netalign/measure"
	"github.com/katalvlaran/netalign/metrics"
	"github.com/katalvlaran/netalign/sana"
)

func TestPrometheusObserver_Progress(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := metrics.NewPrometheusObserver(reg)
	require.NoError(t, err)

	obs.OnStateChange("r1", sana.StateInitializing, sana.StateRunning)
	obs.OnProgress(sana.Progress{RunID: "r1", Iteration: 100, Score: 0.5, Temperature: 2})
	obs.OnProgress(sana.Progress{RunID: "r1", Iteration: 250, Score: 0.75, Temperature: 1})

	require.Equal(t, 250.0, testutil.ToFloat64(obs.Iterations()))
	require.Equal(t, 1.0, testutil.ToFloat64(obs.Active()))
	n, err := testutil.GatherAndCount(reg, "netalign_score")
	require.NoError(t, err)
	require.Equal(t, 1, n)

	obs.OnStateChange("r1", sana.StateRunning, sana.StateFinished)
	require.Equal(t, 0.0, testutil.ToFloat64(obs.Active()))
	n, err = testutil.GatherAndCount(reg, "netalign_score")
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestPrometheusObserver_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := metrics.NewPrometheusObserver(reg)
	require.NoError(t, err)
	_, err = metrics.NewPrometheusObserver(reg)
	require.Error(t, err)
}

func TestPrometheusObserver_WithRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := metrics.NewPrometheusObserver(reg)
	require.NoError(t, err)

	c4, err := builder.BuildGraph(nil, builder.Cycle(4))
	require.NoError(t, err)
	an, err := sana.New(c4, c4, measure.Objective{Weights: measure.Weights{EC: 1}},
		sana.WithIterations(5_000), sana.WithReportEvery(1_000), sana.WithObserver(obs))
	require.NoError(t, err)
	_, err = an.Run(context.Background())
	require.NoError(t, err)

	require.Equal(t, 5_000.0, testutil.ToFloat64(obs.Iterations()))
	require.Equal(t, 0.0, testutil.ToFloat64(obs.Active()))
}
