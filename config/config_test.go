// SPDX-License-Identifier: MIT

package config_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/netalign/config"
	"github.com/katalvlaran/netalign/measure"
	"github.com/katalvlaran/netalign/sana"
)

func newViper(t *testing.T, kv map[string]any) *viper.Viper {
	t.Helper()
	v := viper.New()
	config.SetDefaults(v)
	v.Set(config.KeyG1, "g1.el")
	v.Set(config.KeyG2, "g2.el")
	for k, val := range kv {
		v.Set(k, val)
	}

	return v
}

func TestLoad_Defaults(t *testing.T) {
	c, err := config.Load(newViper(t, nil))
	require.NoError(t, err)
	require.Equal(t, measure.Weights{EC: 1}, c.Weights)
	require.Equal(t, measure.Sum, c.Kind)
	require.True(t, c.Calibrate())
	require.True(t, math.IsNaN(c.TInitial))
	require.Equal(t, sana.DefaultMaxIterations, c.Iterations)
	require.Equal(t, sana.AutoChangeProbability, c.ChangeProbability)
	require.True(t, c.KeepBest)
	require.Equal(t, 1, c.Parallel)
	require.Equal(t, "pbad-binary-search", c.Method)
	require.InDelta(t, 0.95, c.Calibration.TargetInitialPBad, 1e-12)
}

func TestLoad_ExplicitSchedule(t *testing.T) {
	c, err := config.Load(newViper(t, map[string]any{
		config.KeyTInitial: "2.5",
		config.KeyTDecay:   "1e-6",
	}))
	require.NoError(t, err)
	require.False(t, c.Calibrate())
	require.Equal(t, 2.5, c.TInitial)
	require.Equal(t, 1e-6, c.TDecay)
}

func TestLoad_TimeReplacesDefaultIterations(t *testing.T) {
	c, err := config.Load(newViper(t, map[string]any{config.KeyTime: "30s"}))
	require.NoError(t, err)
	require.Equal(t, 30*time.Second, c.TimeLimit)
	require.Zero(t, c.Iterations)

	_, err = config.Load(newViper(t, map[string]any{config.KeyTime: "30s", config.KeyIterations: 10}))
	require.ErrorIs(t, err, config.ErrConflict)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("NETALIGN_ITERATIONS", "500")
	t.Setenv("NETALIGN_LOG_FORMAT", "JSON")
	c, err := config.Load(newViper(t, nil))
	require.NoError(t, err)
	require.EqualValues(t, 500, c.Iterations)
	require.Equal(t, "json", c.LogFormat)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ec: 0.5\ns3: 0.5\nobjective: product\nseed: 7\n"), 0o600))
	v := newViper(t, nil)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	c, err := config.Load(v)
	require.NoError(t, err)
	require.Equal(t, measure.Weights{EC: 0.5, S3: 0.5}, c.Weights)
	require.Equal(t, measure.Product, c.Kind)
	require.EqualValues(t, 7, c.Seed)
}

func TestLoad_Errors(t *testing.T) {
	cases := map[string]map[string]any{
		"missing graph": {config.KeyG2: ""},
		"bad kind":      {config.KeyKind: "median"},
		"bad temp":      {config.KeyTInitial: "hot"},
		"negative temp": {config.KeyTDecay: "-1"},
		"wec no sim":    {config.KeyWEC: 1.0},
		"local no sim":  {config.KeyLocal: 1.0},
		"bad local":     {config.KeyLocalSims: []string{"nopath"}},
		"parallel":      {config.KeyParallel: 0},
		"restart+par":   {config.KeyRestart: true, config.KeyParallel: 2},
		"pareto":        {config.KeyPareto: -1},
		"pareto+par":    {config.KeyPareto: 4, config.KeyParallel: 2},
		"restart time":  {config.KeyRestartFinT: "-1s"},
		"log format":    {config.KeyLogFormat: "xml"},
		"log level":     {config.KeyLogLevel: "loud"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(newViper(t, kv))
			require.Error(t, err)
		})
	}
}

func TestParseTemperature(t *testing.T) {
	v, err := config.ParseTemperature(" AUTO ")
	require.NoError(t, err)
	require.True(t, math.IsNaN(v))

	v, err = config.ParseTemperature("0")
	require.NoError(t, err)
	require.Zero(t, v)

	_, err = config.ParseTemperature("NaN")
	require.ErrorIs(t, err, config.ErrInvalid)
}

func write(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))

	return p
}

func TestLoadInputs(t *testing.T) {
	dir := t.TempDir()
	v := newViper(t, map[string]any{
		config.KeyG1:        write(t, dir, "g1.el", "a b\nb c\n"),
		config.KeyG2:        write(t, dir, "g2.el", "x y\ny z\nz x\n"),
		config.KeyLocks:     write(t, dir, "locks", "a x\n"),
		config.KeyLocal:     1.0,
		config.KeyLocalSims: []string{"seq=2:" + write(t, dir, "sim", "a x 1\nb y 0.5\n")},
	})
	c, err := config.Load(v)
	require.NoError(t, err)
	require.Equal(t, []config.LocalSim{{Name: "seq", Weight: 2, Path: filepath.Join(dir, "sim")}}, c.LocalSims)

	in, err := c.LoadInputs()
	require.NoError(t, err)
	require.Equal(t, 3, in.G1.NumNodes())
	require.Equal(t, 3, in.G2.NumEdges())
	require.Equal(t, 1, in.G1.LockedCount())
	require.Len(t, in.Objective.Local, 1)
	require.Equal(t, 0.5, in.Objective.Local[0].Sim.Get(1, 1))
	require.Nil(t, in.Start)

	an, err := sana.New(in.G1, in.G2, in.Objective, c.AnnealOptions(in, nil, nil, nil)...)
	require.NoError(t, err)
	require.Equal(t, c.Iterations, an.Options().MaxIterations)
}

func TestLoad_RestartTimes(t *testing.T) {
	c, err := config.Load(newViper(t, map[string]any{
		config.KeyRestart:     true,
		config.KeyRestartNewT: "150ms",
		config.KeyRestartFinT: "2s",
		config.KeyPareto:      0,
	}))
	require.NoError(t, err)
	require.Equal(t, 150*time.Millisecond, c.Restarts.NewAlignmentsTime)
	require.Zero(t, c.Restarts.PerCandidateTime)
	require.Equal(t, 2*time.Second, c.Restarts.FinalistTime)
	require.Equal(t, sana.DefaultRestartOptions().PerCandidate, c.Restarts.PerCandidate)
}

func TestAnnealOptions_Budget(t *testing.T) {
	dir := t.TempDir()
	g1 := write(t, dir, "g1.el", "a b\nb c\n")
	g2 := write(t, dir, "g2.el", "x y\ny z\nz x\n")

	for _, tc := range []struct {
		name  string
		set   map[string]any
		iters int64
		limit time.Duration
	}{
		{"default", map[string]any{}, sana.DefaultMaxIterations, 0},
		{"iterations", map[string]any{config.KeyIterations: int64(500)}, 500, 0},
		{"time", map[string]any{config.KeyTime: "2s"}, 0, 2 * time.Second},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tc.set[config.KeyG1], tc.set[config.KeyG2] = g1, g2
			c, err := config.Load(newViper(t, tc.set))
			require.NoError(t, err)
			in, err := c.LoadInputs()
			require.NoError(t, err)
			an, err := sana.New(in.G1, in.G2, in.Objective, c.AnnealOptions(in, nil, nil, nil)...)
			require.NoError(t, err)
			require.Equal(t, tc.iters, an.Options().MaxIterations)
			require.Equal(t, tc.limit, an.Options().TimeLimit)
		})
	}
}

func TestLoadInputs_MissingFile(t *testing.T) {
	c, err := config.Load(newViper(t, map[string]any{config.KeyG1: filepath.Join(t.TempDir(), "none")}))
	require.NoError(t, err)
	_, err = c.LoadInputs()
	require.ErrorIs(t, err, os.ErrNotExist)
}
