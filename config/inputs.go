// SPDX-License-Identifier: MIT

package config

import (
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"github.com/katalvlaran/netalign/alignment"
	"github.com/katalvlaran/netalign/graph"
	"github.com/katalvlaran/netalign/matrix"
	"github.com/katalvlaran/netalign/measure"
	"github.com/katalvlaran/netalign/sana"
)

// Inputs are the loaded graphs, objective and optional start alignment.
type Inputs struct {
	G1, G2    *graph.Graph
	Objective measure.Objective
	Start     alignment.Alignment
}

// withFile opens path and hands it to fn.
func withFile(path string, fn func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "unable to open %s", path)
	}
	defer f.Close()

	return errors.Wrapf(fn(f), "unable to read %s", path)
}

// readGraph loads an edge list plus optional types and locks.
func readGraph(path, types, locks string) (*graph.Graph, error) {
	var b *graph.Builder
	err := withFile(path, func(r io.Reader) error {
		var err error
		b, err = graph.ReadEdgeList(r)
		return err
	})
	if err != nil {
		return nil, err
	}
	if types != "" {
		if err = withFile(types, func(r io.Reader) error { return graph.ReadNodeTypes(b, r) }); err != nil {
			return nil, err
		}
	}
	if locks != "" {
		if err = withFile(locks, func(r io.Reader) error { return graph.ReadLocks(b, r) }); err != nil {
			return nil, err
		}
	}
	g, err := b.Build()
	if err != nil {
		return nil, errors.Wrapf(err, "unable to build %s", path)
	}

	return g, nil
}

// LoadInputs reads every input file named by c.
func (c *Config) LoadInputs() (*Inputs, error) {
	in := &Inputs{}
	var err error
	if in.G1, err = readGraph(c.G1, c.G1Types, c.Locks); err != nil {
		return nil, err
	}
	if in.G2, err = readGraph(c.G2, c.G2Types, ""); err != nil {
		return nil, err
	}

	in.Objective = measure.Objective{Weights: c.Weights, Kind: c.Kind}
	if c.WECSim != "" {
		if in.Objective.WECSim, err = c.readSim(c.WECSim, in); err != nil {
			return nil, err
		}
	}
	for _, ls := range c.LocalSims {
		m, err := c.readSim(ls.Path, in)
		if err != nil {
			return nil, err
		}
		in.Objective.Local = append(in.Objective.Local, measure.LocalMeasure{Name: ls.Name, Weight: ls.Weight, Sim: m})
	}
	if err = in.Objective.Validate(in.G1.NumNodes(), in.G2.NumNodes()); err != nil {
		return nil, errors.Wrap(err, "objective")
	}

	if c.Start != "" {
		if in.Start, err = alignment.ReadFile(c.Start, in.G1, in.G2); err != nil {
			return nil, errors.Wrapf(err, "unable to read start alignment %s", c.Start)
		}
	}

	return in, nil
}

func (c *Config) readSim(path string, in *Inputs) (m *matrix.Dense, err error) {
	err = withFile(path, func(r io.Reader) error {
		m, err = measure.ReadSimilarity(r, in.G1, in.G2)
		return err
	})

	return m, err
}

// AnnealOptions converts c into annealer options. A calibrated schedule is
// applied later with Annealer.WithSchedule.
func (c *Config) AnnealOptions(in *Inputs, logger *slog.Logger, obs sana.Observer, ctrl *sana.Controller) []sana.Option {
	budget := sana.WithIterations(c.Iterations)
	if c.TimeLimit > 0 {
		budget = sana.WithTimeLimit(c.TimeLimit)
	}
	opts := []sana.Option{
		budget,
		sana.WithChangeProbability(c.ChangeProbability),
		sana.WithKeepBest(c.KeepBest),
		sana.WithReportEvery(c.ReportEvery),
		sana.WithLogger(logger),
	}
	if obs != nil {
		opts = append(opts, sana.WithObserver(obs))
	}
	if ctrl != nil {
		opts = append(opts, sana.WithController(ctrl))
	}
	if c.Seed != 0 {
		opts = append(opts, sana.WithSeed(c.Seed))
	}
	if !c.Calibrate() {
		opts = append(opts, sana.WithSchedule(c.TInitial, c.TDecay))
	}
	if in.Start != nil {
		opts = append(opts, sana.WithStart(in.Start))
	}

	return opts
}
