// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/netalign/alignment"
	"github.com/katalvlaran/netalign/config"
	"github.com/katalvlaran/netalign/metrics"
	"github.com/katalvlaran/netalign/sana"
	"github.com/katalvlaran/netalign/schedule"
)

// progressLogInterval throttles progress lines per run.
const progressLogInterval = 10 * time.Second

func newAlignCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "align",
		Short: "Align G1 into G2",
		Long: `Align G1 into G2 by simulated annealing.

The first SIGINT pauses the search; type "continue" to resume or "quit" to
finish early. A second SIGINT finishes early. The best alignment found so far
is written in either case.

With --pareto n, n runs under randomized component weights are reduced to
their non-dominated front. The front member with the best configured score
goes to --output; the others go next to it as NAME.pareto-I.EXT.`,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bind(v, cmd) },
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := config.Load(v)
			if err != nil {
				return err
			}

			return align(cmd.Context(), c, newLogger(c, cmd.ErrOrStderr()))
		},
	}
	fs := cmd.Flags()
	addInputFlags(fs)
	addScheduleFlags(fs)
	fs.StringP(config.KeyOutput, "o", "", "output alignment (.zst or .lz4 compresses); stdout when empty")
	fs.Bool(config.KeyRestart, false, "use the restart scheme")
	fs.Int(config.KeyRestartNew, sana.DefaultRestartOptions().NewAlignments, "restart: random alignments in the first phase")
	fs.Int64(config.KeyRestartStep, sana.DefaultRestartOptions().IterationsPerStep, "restart: iterations per first phase alignment")
	fs.Int(config.KeyRestartCand, sana.DefaultRestartOptions().NumCandidates, "restart: candidates kept after the first phase")
	fs.Int64(config.KeyRestartPer, sana.DefaultRestartOptions().PerCandidate, "restart: iterations per candidate")
	fs.Int64(config.KeyRestartFin, sana.DefaultRestartOptions().Finalist, "restart: iterations for the finalist")
	fs.Duration(config.KeyRestartNewT, 0, "restart: time per first phase alignment (replaces --"+config.KeyRestartStep+")")
	fs.Duration(config.KeyRestartPerT, 0, "restart: time per candidate (replaces --"+config.KeyRestartPer+")")
	fs.Duration(config.KeyRestartFinT, 0, "restart: time for the finalist (replaces --"+config.KeyRestartFin+")")
	fs.Int(config.KeyParallel, 1, "independent runs; the best is written")
	fs.Int(config.KeyPareto, 0, "Pareto mode: runs under randomized weights; the front is written")
	fs.String(config.KeyMetricsAddr, "", "serve Prometheus metrics on this address")

	return cmd
}

func align(ctx context.Context, c *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer stop()

	rs, in, err := search(ctx, c, logger)
	if err != nil {
		return err
	}
	res := rs[0]
	logger.Info("alignment finished",
		slog.String("run", res.RunID),
		slog.Float64("score", res.Score),
		slog.Float64("ec", res.Components.EC),
		slog.Float64("s3", res.Components.S3),
		slog.Int64("iterations", res.Iterations),
		slog.Duration("elapsed", res.Elapsed),
		slog.Bool("interrupted", res.Interrupted))

	if c.Output == "" {
		return errors.Wrap(alignment.Write(os.Stdout, res.Alignment, in.G1, in.G2), "unable to write alignment")
	}
	for i, r := range rs {
		path := c.Output
		if i > 0 {
			path = paretoPath(c.Output, i)
		}
		if err := alignment.WriteFile(path, r.Alignment, in.G1, in.G2); err != nil {
			return errors.Wrapf(err, "unable to write %s", path)
		}
	}

	return nil
}

// search loads the inputs and runs the configured mode. The first result is
// the one to report; Pareto mode returns its whole front.
func search(ctx context.Context, c *config.Config, logger *slog.Logger) ([]sana.Result, *config.Inputs, error) {
	in, err := c.LoadInputs()
	if err != nil {
		return nil, nil, err
	}
	_, cc1 := in.G1.Components()
	_, cc2 := in.G2.Components()
	logger.Info("inputs loaded",
		slog.Int("g1_nodes", in.G1.NumNodes()), slog.Int("g1_edges", in.G1.NumEdges()),
		slog.Int("g1_components", cc1), slog.Int("g1_largest", in.G1.LargestComponent()),
		slog.Int("g2_nodes", in.G2.NumNodes()), slog.Int("g2_edges", in.G2.NumEdges()),
		slog.Int("g2_components", cc2), slog.Int("g2_largest", in.G2.LargestComponent()))

	obs := sana.Observers{sana.NewLogObserver(logger, progressLogInterval)}
	if c.MetricsAddr != "" {
		po, shutdown, err := serveMetrics(c.MetricsAddr, logger)
		if err != nil {
			return nil, nil, err
		}
		defer shutdown()
		obs = append(obs, po)
	}

	ctrl := sana.NewController()
	an, err := sana.New(in.G1, in.G2, in.Objective, c.AnnealOptions(in, logger, obs, ctrl)...)
	if err != nil {
		return nil, nil, errors.Wrap(err, "unable to prepare the search")
	}
	if c.Calibrate() {
		if an, err = calibrated(ctx, an, c); err != nil {
			return nil, nil, err
		}
	}

	go interact(ctx, ctrl, os.Stdin, logger)

	var rs []sana.Result
	switch {
	case c.Pareto > 0:
		if rs, err = an.RunPareto(ctx, c.Pareto); err == nil {
			for i, r := range rs {
				logger.Info("pareto front",
					slog.Int("rank", i), slog.String("run", r.RunID), slog.Float64("score", r.Score),
					slog.Float64("ec", r.Components.EC), slog.Float64("s3", r.Components.S3),
					slog.Float64("wec", r.Components.WEC), slog.Float64("sec", r.Components.SEC),
					slog.Float64("local", r.Components.Local))
			}
		}
	case c.Restart:
		var res sana.Result
		res, err = an.Restart(ctx, c.Restarts)
		rs = []sana.Result{res}
	case c.Parallel > 1:
		var all []sana.Result
		if all, err = an.RunParallel(ctx, c.Parallel); err == nil {
			res, _ := sana.Best(all)
			rs = []sana.Result{res}
		}
	default:
		var res sana.Result
		res, err = an.Run(ctx)
		rs = []sana.Result{res}
	}
	if err != nil {
		return nil, nil, errors.Wrap(err, "search failed")
	}

	return rs, in, nil
}

// paretoPath inserts ".pareto-i" before the first extension of out.
func paretoPath(out string, i int) string {
	dir, base := filepath.Split(out)
	name, ext, ok := strings.Cut(base, ".")
	if ok {
		ext = "." + ext
	}

	return filepath.Join(dir, fmt.Sprintf("%s.pareto-%d%s", name, i, ext))
}

// calibrated fills whichever schedule ends were left to calibration.
func calibrated(ctx context.Context, an *sana.Annealer, c *config.Config) (*sana.Annealer, error) {
	cal, err := an.Calibrate(ctx, c.Method, c.Calibration, schedule.Resources{MaxSamples: c.CalibSamples})
	if err != nil {
		return nil, errors.Wrap(err, "calibration failed")
	}
	tI, tD := cal.TInitial, cal.TDecay
	if !math.IsNaN(c.TInitial) {
		tI = c.TInitial
		tD = 0
		if cal.Iterations > 0 && cal.TFinal < tI {
			if tD, err = schedule.Decay(tI, cal.TFinal, cal.Iterations); err != nil {
				return nil, errors.Wrap(err, "calibration failed")
			}
		}
	}
	if !math.IsNaN(c.TDecay) {
		tD = c.TDecay
	}

	an, err = an.WithSchedule(tI, tD)

	return an, errors.Wrap(err, "calibrated schedule")
}

// serveMetrics exposes a dedicated registry and returns the observer that
// feeds it with a shutdown hook.
func serveMetrics(addr string, logger *slog.Logger) (*metrics.PrometheusObserver, func(), error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	po, err := metrics.NewPrometheusObserver(reg)
	if err != nil {
		return nil, nil, errors.Wrap(err, "unable to register metrics")
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", slog.Any("error", err))
		}
	}()
	logger.Info("metrics available", slog.String("addr", addr), slog.String("path", "/metrics"))

	return po, func() {
		sctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}, nil
}
