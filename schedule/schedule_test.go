// SPDX-License-Identifier: MIT

package schedule_test

import (
	"bytes"
	"context"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/netalign/schedule"
)

// analytic is a sampler whose worsening moves all cost delta, so
// pBad(T) = exp(−delta/T), quantized to n proposals.
type analytic struct {
	delta float64
	n     int64
}

func (a analytic) Sample(_ context.Context, t float64, _ schedule.Budget, collect bool) (schedule.Sample, error) {
	p := 0.0
	switch {
	case math.IsInf(t, 1):
		p = 1
	case t > 0:
		p = math.Exp(-a.delta / t)
	}
	acc := int64(math.Round(p * float64(a.n)))
	s := schedule.Sample{
		Temperature: t,
		PBad:        float64(acc) / float64(a.n),
		Worsening:   a.n,
		Accepted:    acc,
		Iterations:  a.n,
	}
	if collect {
		s.EnergyIncreases = make([]float64, 64)
		for i := range s.EnergyIncreases {
			s.EnergyIncreases[i] = a.delta
		}
	}

	return s, nil
}

// exactT solves exp(−delta/T) = target.
func exactT(delta, target float64) float64 { return -delta / math.Log(target) }

func fixture() (analytic, schedule.Config) {
	return analytic{delta: 1, n: 1_000_000}, schedule.DefaultConfig()
}

func TestBinarySearch_HitsBothTargets(t *testing.T) {
	s, cfg := fixture()
	m, err := schedule.New("pbad-binary-search", s, cfg)
	require.NoError(t, err)

	ini, err := m.ComputeTInitial(context.Background(), schedule.Resources{})
	require.NoError(t, err)
	require.True(t, ini.Converged)
	require.True(t, cfg.WithinTarget(ini.PBad, cfg.TargetInitialPBad), "pBad=%g", ini.PBad)

	fin, err := m.ComputeTFinal(context.Background(), schedule.Resources{})
	require.NoError(t, err)
	require.True(t, fin.Converged)
	require.True(t, cfg.WithinTarget(fin.PBad, cfg.TargetFinalPBad), "pBad=%g", fin.PBad)
	require.Less(t, fin.Temperature, ini.Temperature)
}

func TestBinarySearch_RespectsSampleCap(t *testing.T) {
	s, cfg := fixture()
	m, err := schedule.NewBinarySearch(s, cfg)
	require.NoError(t, err)
	est, err := m.ComputeTInitial(context.Background(), schedule.Resources{MaxSamples: 2})
	require.NoError(t, err)
	require.Equal(t, 2, est.Samples)
	require.False(t, est.Converged)
}

// flat accepts half of all worsening moves at every temperature.
type flat struct{}

func (flat) Sample(_ context.Context, t float64, _ schedule.Budget, _ bool) (schedule.Sample, error) {
	return schedule.Sample{Temperature: t, PBad: 0.5, Worsening: 10_000, Accepted: 5000, Iterations: 10_000}, nil
}

func TestBracketCollapse_NotConverged(t *testing.T) {
	cfg := schedule.DefaultConfig()
	for _, name := range []string{"pbad-binary-search", "statistical-test"} {
		t.Run(name, func(t *testing.T) {
			m, err := schedule.New(name, flat{}, cfg)
			require.NoError(t, err)
			est, err := m.ComputeTInitial(context.Background(), schedule.Resources{})
			require.NoError(t, err)
			require.False(t, est.Converged)
			require.InDelta(t, 0.5, est.PBad, 1e-12)
			require.False(t, cfg.WithinTarget(est.PBad, cfg.TargetInitialPBad))
		})
	}
}

func TestRegression_SolvesNearTruth(t *testing.T) {
	s, cfg := fixture()
	m, err := schedule.NewRegression(s, cfg)
	require.NoError(t, err)

	ini, err := m.ComputeTInitial(context.Background(), schedule.Resources{})
	require.NoError(t, err)
	fin, err := m.ComputeTFinal(context.Background(), schedule.Resources{})
	require.NoError(t, err)

	require.InDelta(t, math.Log10(exactT(1, cfg.TargetInitialPBad)), math.Log10(ini.Temperature), 0.2)
	require.InDelta(t, math.Log10(exactT(1, cfg.TargetFinalPBad)), math.Log10(fin.Temperature), 0.2)
}

func TestAmeur_ExactForConstantIncreases(t *testing.T) {
	s, cfg := fixture()
	m, err := schedule.NewAmeur(s, cfg)
	require.NoError(t, err)

	for _, tc := range []struct {
		target  float64
		compute func(context.Context, schedule.Resources) (schedule.Estimate, error)
	}{
		{cfg.TargetInitialPBad, m.ComputeTInitial},
		{cfg.TargetFinalPBad, m.ComputeTFinal},
	} {
		est, err := tc.compute(context.Background(), schedule.Resources{})
		require.NoError(t, err)
		require.True(t, est.Converged)
		require.InDelta(t, exactT(1, tc.target), est.Temperature, 1e-6*exactT(1, tc.target))
	}
}

func TestIteratedAmeur_Converges(t *testing.T) {
	s, cfg := fixture()
	m, err := schedule.NewIteratedAmeur(s, cfg)
	require.NoError(t, err)

	ini, err := m.ComputeTInitial(context.Background(), schedule.Resources{})
	require.NoError(t, err)
	require.True(t, ini.Converged)
	require.True(t, cfg.WithinTarget(ini.PBad, cfg.TargetInitialPBad))

	fin, err := m.ComputeTFinal(context.Background(), schedule.Resources{})
	require.NoError(t, err)
	require.True(t, fin.Converged)
	require.LessOrEqual(t, fin.Samples, 30)
}

// stuck reports pBad 0.5 and unit increases at every temperature, so the
// Ameur solution never holds when sampled.
type stuck struct {
	mu    sync.Mutex
	temps []float64
}

func (s *stuck) Sample(_ context.Context, t float64, _ schedule.Budget, collect bool) (schedule.Sample, error) {
	s.mu.Lock()
	s.temps = append(s.temps, t)
	s.mu.Unlock()
	smp := schedule.Sample{Temperature: t, PBad: 0.5, Worsening: 1000, Accepted: 500, Iterations: 1000}
	if collect {
		smp.EnergyIncreases = []float64{1, 1, 1, 1}
	}

	return smp, nil
}

func TestIteratedAmeur_ReturnsLatestGuessWhenCapped(t *testing.T) {
	s := &stuck{}
	cfg := schedule.DefaultConfig()
	m, err := schedule.NewIteratedAmeur(s, cfg)
	require.NoError(t, err)

	est, err := m.ComputeTInitial(context.Background(), schedule.Resources{MaxSamples: 3})
	require.NoError(t, err)
	require.False(t, est.Converged)
	require.Equal(t, 3, est.Samples)
	require.Len(t, s.temps, 3)

	// Linear damping from 1 toward exact 19.5: 1 → 12.1 → 16.5 → 18.3.
	want := exactT(1, cfg.TargetInitialPBad)
	for _, seen := range s.temps {
		require.Greater(t, est.Temperature, seen)
	}
	require.Less(t, est.Temperature, want)
	require.InDelta(t, want-(want-1)*0.4*0.4*0.4, est.Temperature, 1e-9)
	require.InDelta(t, math.Exp(-1/est.Temperature), est.PBad, 1e-12)
}

func TestStatTest_CoolsUntilTargetHolds(t *testing.T) {
	s, cfg := fixture()
	m, err := schedule.NewStatTest(s, cfg)
	require.NoError(t, err)

	ini, err := m.ComputeTInitial(context.Background(), schedule.Resources{})
	require.NoError(t, err)
	require.True(t, ini.Converged)

	fin, err := m.ComputeTFinal(context.Background(), schedule.Resources{})
	require.NoError(t, err)
	require.True(t, fin.Converged)
	require.Less(t, fin.Temperature, ini.Temperature)
	require.LessOrEqual(t, fin.PBad, 1.5*cfg.TargetFinalPBad)
}

func TestNew_UnknownMethod(t *testing.T) {
	s, cfg := fixture()
	_, err := schedule.New("simplex", s, cfg)
	require.ErrorIs(t, err, schedule.ErrUnknownMethod)
	require.Len(t, schedule.Names(), 5)
}

func TestConfig_Rejects(t *testing.T) {
	s, cfg := fixture()
	cfg.TargetFinalPBad = 0.99
	_, err := schedule.New("ameur", s, cfg)
	require.ErrorIs(t, err, schedule.ErrInvalidConfig)

	cfg = schedule.DefaultConfig()
	cfg.MinTemp = 0
	_, err = schedule.NewBinarySearch(s, cfg)
	require.ErrorIs(t, err, schedule.ErrInvalidConfig)

	cfg = schedule.DefaultConfig()
	cfg.Confidence = 1.96
	_, err = schedule.NewStatTest(s, cfg)
	require.ErrorIs(t, err, schedule.ErrInvalidConfig)
}

func TestDecay(t *testing.T) {
	d, err := schedule.Decay(10, 0.01, 1000)
	require.NoError(t, err)
	require.InDelta(t, math.Log(1000)/1000, d, 1e-15)
	require.InDelta(t, 0.01, 10*math.Exp(-d*1000), 1e-12)

	_, err = schedule.Decay(1, 2, 1000)
	require.ErrorIs(t, err, schedule.ErrInvalidSchedule)
	_, err = schedule.Decay(1, 0, 1000)
	require.ErrorIs(t, err, schedule.ErrInvalidSchedule)
}

func TestCompare_AllMethods(t *testing.T) {
	s, cfg := fixture()
	names := schedule.Names()
	cs, err := schedule.Compare(context.Background(), s, cfg, names, schedule.Resources{},
		schedule.Budget{Iterations: 1000})
	require.NoError(t, err)
	require.Len(t, cs, len(names))
	for i, c := range cs {
		require.Equal(t, names[i], c.Method)
		require.Greater(t, c.Initial.Temperature, c.Final.Temperature, c.Method)
	}
	require.True(t, cs[0].InitialOnTarget)

	var buf bytes.Buffer
	require.NoError(t, schedule.WriteComparison(&buf, cs))
	for _, n := range names {
		require.Contains(t, buf.String(), n)
	}
}
