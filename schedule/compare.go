// SPDX-License-Identifier: MIT
// File: compare.go
// Role: run several methods on one sampler and validate their estimates.

package schedule

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"
)

// Comparison is one method's calibration with independently measured pBad.
type Comparison struct {
	Method          string
	Initial         Estimate
	Final           Estimate
	MeasuredInitial float64 // pBad resampled at Initial.Temperature
	MeasuredFinal   float64 // pBad resampled at Final.Temperature
	InitialOnTarget bool
	FinalOnTarget   bool
	Elapsed         time.Duration
}

// Compare calibrates with every named method concurrently, then resamples
// each estimate with the validation budget. Results follow the order of names.
func Compare(ctx context.Context, s Sampler, cfg Config, names []string, res Resources, validation Budget) ([]Comparison, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("Compare: %w", err)
	}
	methods := make([]Method, len(names))
	for i, n := range names {
		m, err := New(n, s, cfg)
		if err != nil {
			return nil, fmt.Errorf("Compare: %w", err)
		}
		methods[i] = m
	}

	out := make([]Comparison, len(methods))
	g, gctx := errgroup.WithContext(ctx)
	for i, m := range methods {
		g.Go(func() error {
			began := time.Now()
			ini, err := m.ComputeTInitial(gctx, res)
			if err != nil {
				return fmt.Errorf("%s: initial: %w", m.Name(), err)
			}
			fin, err := m.ComputeTFinal(gctx, res)
			if err != nil {
				return fmt.Errorf("%s: final: %w", m.Name(), err)
			}
			si, err := s.Sample(gctx, ini.Temperature, validation, false)
			if err != nil {
				return fmt.Errorf("%s: validate initial: %w", m.Name(), err)
			}
			sf, err := s.Sample(gctx, fin.Temperature, validation, false)
			if err != nil {
				return fmt.Errorf("%s: validate final: %w", m.Name(), err)
			}
			out[i] = Comparison{
				Method:          m.Name(),
				Initial:         ini,
				Final:           fin,
				MeasuredInitial: si.PBad,
				MeasuredFinal:   sf.PBad,
				InitialOnTarget: cfg.WithinTarget(si.PBad, cfg.TargetInitialPBad),
				FinalOnTarget:   cfg.WithinTarget(sf.PBad, cfg.TargetFinalPBad),
				Elapsed:         time.Since(began),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("Compare: %w", err)
	}

	return out, nil
}

// WriteComparison renders comparisons as an aligned text table.
func WriteComparison(w io.Writer, cs []Comparison) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "method\tT_initial\tpBad\tok\tT_final\tpBad\tok\tsamples\telapsed")
	for _, c := range cs {
		fmt.Fprintf(tw, "%s\t%.4g\t%.4g\t%t\t%.4g\t%.3g\t%t\t%d\t%s\n",
			c.Method,
			c.Initial.Temperature, c.MeasuredInitial, c.InitialOnTarget,
			c.Final.Temperature, c.MeasuredFinal, c.FinalOnTarget,
			c.Initial.Samples+c.Final.Samples, c.Elapsed.Round(time.Millisecond))
	}

	return tw.Flush()
}
