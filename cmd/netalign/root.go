// SPDX-License-Identifier: MIT

package main

import (
	"io"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/netalign/config"
	"github.com/katalvlaran/netalign/sana"
	"github.com/katalvlaran/netalign/schedule"
)

const flagConfig = "config"

func newRootCmd() *cobra.Command {
	v := viper.New()
	config.SetDefaults(v)

	root := &cobra.Command{
		Use:          "netalign",
		Short:        "Simulated annealing network aligner",
		SilenceUsage: true,
	}
	root.PersistentFlags().String(flagConfig, "", "YAML configuration file")
	root.PersistentFlags().String(config.KeyLogLevel, "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().String(config.KeyLogFormat, "text", "log format (text, json)")

	root.AddCommand(newAlignCmd(v), newCalibrateCmd(v))

	return root
}

// bind loads the config file and binds the command's flags so that flags
// beat environment, which beats the file.
func bind(v *viper.Viper, cmd *cobra.Command) error {
	if path, _ := cmd.Flags().GetString(flagConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return errors.Wrapf(err, "unable to read config %s", path)
		}
	}

	return errors.Wrap(v.BindPFlags(cmd.Flags()), "unable to bind flags")
}

func newLogger(c *config.Config, w io.Writer) *slog.Logger {
	hopts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}

	return slog.New(slog.NewTextHandler(w, hopts))
}

// addInputFlags registers the inputs and objective shared by all commands.
func addInputFlags(fs *pflag.FlagSet) {
	fs.String(config.KeyG1, "", "smaller network edge list")
	fs.String(config.KeyG2, "", "larger network edge list")
	fs.String(config.KeyG1Types, "", "G1 node types (name gene|miRNA)")
	fs.String(config.KeyG2Types, "", "G2 node types (name gene|miRNA)")
	fs.String(config.KeyLocks, "", "locked pairs (g1name g2name)")
	fs.String(config.KeyStart, "", "start alignment file")

	fs.Float64(config.KeyEC, 1, "edge coverage weight")
	fs.Float64(config.KeyS3, 0, "symmetric substructure score weight")
	fs.Float64(config.KeyWEC, 0, "weighted edge coverage weight")
	fs.Float64(config.KeySEC, 0, "symmetric edge coverage weight")
	fs.Float64(config.KeyLocal, 0, "local similarity weight")
	fs.String(config.KeyKind, "sum", "combination of weighted components (sum, product, max, min)")
	fs.String(config.KeyWECSim, "", "node similarity used by WEC (g1name g2name score)")
	fs.StringSlice(config.KeyLocalSims, nil, "local similarity as [name=]weight:path, repeatable")

	fs.Int64(config.KeyIterations, 0, "iteration budget (0 with no --time selects the default)")
	fs.Duration(config.KeyTime, 0, "wall-clock budget")
	fs.Float64(config.KeyChangeProb, sana.AutoChangeProbability, "probability of a change move (-1 derives it)")
	fs.Int64(config.KeySeed, 0, "random seed (0 selects the default)")
	fs.Bool(config.KeyKeepBest, true, "return the best alignment seen instead of the last")
	fs.Int64(config.KeyReportEvery, sana.DefaultReportEvery, "iterations between progress reports")
}

// addScheduleFlags registers the temperature schedule and calibration flags.
func addScheduleFlags(fs *pflag.FlagSet) {
	sc := schedule.DefaultConfig()
	fs.String(config.KeyTInitial, config.Auto, "initial temperature or auto")
	fs.String(config.KeyTDecay, config.Auto, "temperature decay rate or auto")
	fs.String(config.KeyMethod, "pbad-binary-search", "calibration method")
	fs.Float64(config.KeyTargetHigh, sc.TargetInitialPBad, "pBad targeted at the initial temperature")
	fs.Float64(config.KeyTargetLow, sc.TargetFinalPBad, "pBad targeted at the final temperature")
	fs.Float64(config.KeyErrorTol, sc.ErrorTol, "relative tolerance on the pBad targets")
	fs.Int(config.KeySamples, 0, "maximum samples per end (0 selects the method default)")
	fs.Int64(config.KeySampleIters, sc.SampleBudget.Iterations, "iterations per pBad sample")
}
