// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/netalign/config"
	"github.com/katalvlaran/netalign/sana"
	"github.com/katalvlaran/netalign/schedule"
)

const (
	flagCompare    = "compare"
	flagValidation = "validation-iterations"
)

func newCalibrateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Calibrate the temperature schedule without aligning",
		Long: `Calibrate TInitial and TDecay for the given inputs and budget.

With --compare every calibration method runs and the measured pBad at each
proposed temperature is reported side by side.`,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bind(v, cmd) },
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := config.Load(v)
			if err != nil {
				return err
			}
			all, _ := cmd.Flags().GetBool(flagCompare)
			vi, _ := cmd.Flags().GetInt64(flagValidation)

			return calibrate(cmd.Context(), c, newLogger(c, cmd.ErrOrStderr()), cmd.OutOrStdout(), all, vi)
		},
	}
	fs := cmd.Flags()
	addInputFlags(fs)
	addScheduleFlags(fs)
	fs.Bool(flagCompare, false, "run and compare every calibration method")
	fs.Int64(flagValidation, schedule.DefaultConfig().SampleBudget.Iterations, "iterations used to re-measure each proposed temperature")

	return cmd
}

func calibrate(ctx context.Context, c *config.Config, logger *slog.Logger, out io.Writer, all bool, validation int64) error {
	in, err := c.LoadInputs()
	if err != nil {
		return err
	}
	an, err := sana.New(in.G1, in.G2, in.Objective, c.AnnealOptions(in, logger, nil, nil)...)
	if err != nil {
		return errors.Wrap(err, "unable to prepare the search")
	}
	res := schedule.Resources{MaxSamples: c.CalibSamples}

	if all {
		cfg := c.Calibration
		cfg.Logger = logger
		cs, err := schedule.Compare(ctx, an, cfg, schedule.Names(), res, schedule.Budget{Iterations: validation})
		if err != nil {
			return errors.Wrap(err, "comparison failed")
		}

		return schedule.WriteComparison(out, cs)
	}

	cal, err := an.Calibrate(ctx, c.Method, c.Calibration, res)
	if err != nil {
		return errors.Wrap(err, "calibration failed")
	}
	_, err = fmt.Fprintf(out, "method\t%s\ntinitial\t%g\ntfinal\t%g\ntdecay\t%g\niterations\t%d\n",
		cal.Method, cal.TInitial, cal.TFinal, cal.TDecay, cal.Iterations)

	return err
}
