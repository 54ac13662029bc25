// SPDX-License-Identifier: MIT

package config

import (
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/katalvlaran/netalign/measure"
	"github.com/katalvlaran/netalign/sana"
	"github.com/katalvlaran/netalign/schedule"
)

// EnvPrefix prefixes environment overrides, e.g. NETALIGN_ITERATIONS.
const EnvPrefix = "NETALIGN"

// Auto is the temperature value that requests calibration.
const Auto = "auto"

// Keys shared by flags, environment and file.
const (
	KeyG1          = "g1"
	KeyG2          = "g2"
	KeyG1Types     = "g1-types"
	KeyG2Types     = "g2-types"
	KeyLocks       = "locks"
	KeyStart       = "start"
	KeyOutput      = "output"
	KeyEC          = "ec"
	KeyS3          = "s3"
	KeyWEC         = "wec"
	KeySEC         = "sec"
	KeyLocal       = "local"
	KeyKind        = "objective"
	KeyWECSim      = "wec-sim"
	KeyLocalSims   = "local-sim"
	KeyTInitial    = "tinitial"
	KeyTDecay      = "tdecay"
	KeyMethod      = "method"
	KeyTargetHigh  = "target-initial-pbad"
	KeyTargetLow   = "target-final-pbad"
	KeyErrorTol    = "error-tol"
	KeySamples     = "calibration-samples"
	KeySampleIters = "sample-iterations"
	KeyIterations  = "iterations"
	KeyTime        = "time"
	KeyChangeProb  = "change-probability"
	KeySeed        = "seed"
	KeyKeepBest    = "keep-best"
	KeyReportEvery = "report-every"
	KeyRestart     = "restart"
	KeyRestartNew  = "restart-new"
	KeyRestartStep = "restart-step"
	KeyRestartCand = "restart-candidates"
	KeyRestartPer  = "restart-per-candidate"
	KeyRestartFin  = "restart-finalist"
	KeyRestartNewT = "restart-new-time"
	KeyRestartPerT = "restart-per-candidate-time"
	KeyRestartFinT = "restart-finalist-time"
	KeyPareto      = "pareto"
	KeyParallel    = "parallel"
	KeyLogLevel    = "log-level"
	KeyLogFormat   = "log-format"
	KeyMetricsAddr = "metrics-addr"
)

// LocalSim is one local similarity file with its weight.
type LocalSim struct {
	Name   string
	Weight float64
	Path   string
}

// Config is the validated configuration of one invocation.
type Config struct {
	G1, G2           string
	G1Types, G2Types string
	Locks            string
	Start            string
	Output           string

	Weights   measure.Weights
	Kind      measure.Kind
	WECSim    string
	LocalSims []LocalSim

	TInitial     float64 // NaN when calibrated
	TDecay       float64 // NaN when calibrated
	Method       string
	Calibration  schedule.Config
	CalibSamples int

	Iterations        int64
	TimeLimit         time.Duration
	ChangeProbability float64
	Seed              int64
	KeepBest          bool
	ReportEvery       int64

	Restart  bool
	Restarts sana.RestartOptions
	Parallel int
	Pareto   int // runs in Pareto mode; 0 disables it

	LogLevel    slog.Level
	LogFormat   string
	MetricsAddr string
}

// SetDefaults installs every default on v and enables NETALIGN_* overrides.
func SetDefaults(v *viper.Viper) {
	sd := sana.DefaultOptions()
	sc := schedule.DefaultConfig()
	ro := sana.DefaultRestartOptions()

	v.SetDefault(KeyEC, 1.0)
	v.SetDefault(KeyS3, 0.0)
	v.SetDefault(KeyWEC, 0.0)
	v.SetDefault(KeySEC, 0.0)
	v.SetDefault(KeyLocal, 0.0)
	v.SetDefault(KeyKind, measure.Sum.String())
	v.SetDefault(KeyTInitial, Auto)
	v.SetDefault(KeyTDecay, Auto)
	v.SetDefault(KeyMethod, "pbad-binary-search")
	v.SetDefault(KeyTargetHigh, sc.TargetInitialPBad)
	v.SetDefault(KeyTargetLow, sc.TargetFinalPBad)
	v.SetDefault(KeyErrorTol, sc.ErrorTol)
	v.SetDefault(KeySamples, 0)
	v.SetDefault(KeySampleIters, sc.SampleBudget.Iterations)
	v.SetDefault(KeyIterations, int64(0))
	v.SetDefault(KeyTime, time.Duration(0))
	v.SetDefault(KeyChangeProb, sana.AutoChangeProbability)
	v.SetDefault(KeySeed, int64(0))
	v.SetDefault(KeyKeepBest, sd.KeepBest)
	v.SetDefault(KeyReportEvery, sd.ReportEvery)
	v.SetDefault(KeyRestart, false)
	v.SetDefault(KeyRestartNew, ro.NewAlignments)
	v.SetDefault(KeyRestartStep, ro.IterationsPerStep)
	v.SetDefault(KeyRestartCand, ro.NumCandidates)
	v.SetDefault(KeyRestartPer, ro.PerCandidate)
	v.SetDefault(KeyRestartFin, ro.Finalist)
	v.SetDefault(KeyRestartNewT, time.Duration(0))
	v.SetDefault(KeyRestartPerT, time.Duration(0))
	v.SetDefault(KeyRestartFinT, time.Duration(0))
	v.SetDefault(KeyPareto, 0)
	v.SetDefault(KeyParallel, 1)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// Load reads and validates a Config from v.
func Load(v *viper.Viper) (*Config, error) {
	c := &Config{
		G1:      v.GetString(KeyG1),
		G2:      v.GetString(KeyG2),
		G1Types: v.GetString(KeyG1Types),
		G2Types: v.GetString(KeyG2Types),
		Locks:   v.GetString(KeyLocks),
		Start:   v.GetString(KeyStart),
		Output:  v.GetString(KeyOutput),
		Weights: measure.Weights{
			EC:    v.GetFloat64(KeyEC),
			S3:    v.GetFloat64(KeyS3),
			WEC:   v.GetFloat64(KeyWEC),
			SEC:   v.GetFloat64(KeySEC),
			Local: v.GetFloat64(KeyLocal),
		},
		WECSim:            v.GetString(KeyWECSim),
		Method:            v.GetString(KeyMethod),
		CalibSamples:      v.GetInt(KeySamples),
		Iterations:        v.GetInt64(KeyIterations),
		TimeLimit:         v.GetDuration(KeyTime),
		ChangeProbability: v.GetFloat64(KeyChangeProb),
		Seed:              v.GetInt64(KeySeed),
		KeepBest:          v.GetBool(KeyKeepBest),
		ReportEvery:       v.GetInt64(KeyReportEvery),
		Restart:           v.GetBool(KeyRestart),
		Restarts: sana.RestartOptions{
			NewAlignments:     v.GetInt(KeyRestartNew),
			IterationsPerStep: v.GetInt64(KeyRestartStep),
			NumCandidates:     v.GetInt(KeyRestartCand),
			PerCandidate:      v.GetInt64(KeyRestartPer),
			Finalist:          v.GetInt64(KeyRestartFin),
			NewAlignmentsTime: v.GetDuration(KeyRestartNewT),
			PerCandidateTime:  v.GetDuration(KeyRestartPerT),
			FinalistTime:      v.GetDuration(KeyRestartFinT),
		},
		Parallel:    v.GetInt(KeyParallel),
		Pareto:      v.GetInt(KeyPareto),
		LogFormat:   strings.ToLower(v.GetString(KeyLogFormat)),
		MetricsAddr: v.GetString(KeyMetricsAddr),
	}

	var err error
	if c.Kind, err = measure.ParseKind(v.GetString(KeyKind)); err != nil {
		return nil, errors.Wrap(err, "objective")
	}
	if c.TInitial, err = ParseTemperature(v.GetString(KeyTInitial)); err != nil {
		return nil, errors.Wrap(err, KeyTInitial)
	}
	if c.TDecay, err = ParseTemperature(v.GetString(KeyTDecay)); err != nil {
		return nil, errors.Wrap(err, KeyTDecay)
	}
	if c.LocalSims, err = parseLocalSims(v.GetStringSlice(KeyLocalSims)); err != nil {
		return nil, err
	}
	if err = c.LogLevel.UnmarshalText([]byte(v.GetString(KeyLogLevel))); err != nil {
		return nil, errors.Wrap(err, KeyLogLevel)
	}

	c.Calibration = schedule.DefaultConfig()
	c.Calibration.TargetInitialPBad = v.GetFloat64(KeyTargetHigh)
	c.Calibration.TargetFinalPBad = v.GetFloat64(KeyTargetLow)
	c.Calibration.ErrorTol = v.GetFloat64(KeyErrorTol)
	c.Calibration.SampleBudget = schedule.Budget{Iterations: v.GetInt64(KeySampleIters)}

	// Zero iterations without a time budget selects the default budget.
	switch {
	case c.TimeLimit > 0 && c.Iterations > 0:
		return nil, errors.Wrapf(ErrConflict, "--%s and --%s", KeyTime, KeyIterations)
	case c.TimeLimit <= 0 && c.Iterations == 0:
		c.Iterations = sana.DefaultMaxIterations
	}

	if err = c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// ErrConflict reports mutually exclusive settings.
var ErrConflict = errors.New("config: conflicting settings")

// ErrInvalid reports an out-of-range or missing setting.
var ErrInvalid = errors.New("config: invalid setting")

// Validate checks settings that do not need the input files.
func (c *Config) Validate() error {
	if c.G1 == "" || c.G2 == "" {
		return errors.Wrap(ErrInvalid, "both --g1 and --g2 are required")
	}
	if c.Iterations < 0 || c.TimeLimit < 0 {
		return errors.Wrap(ErrInvalid, "negative budget")
	}
	if c.Weights.WEC > 0 && c.WECSim == "" {
		return errors.Wrapf(ErrInvalid, "--%s needs --%s", KeyWEC, KeyWECSim)
	}
	if c.Weights.Local > 0 && len(c.LocalSims) == 0 {
		return errors.Wrapf(ErrInvalid, "--%s needs --%s", KeyLocal, KeyLocalSims)
	}
	if c.Parallel < 1 {
		return errors.Wrapf(ErrInvalid, "--%s=%d", KeyParallel, c.Parallel)
	}
	if c.Restart && c.Parallel > 1 {
		return errors.Wrapf(ErrConflict, "--%s with --%s", KeyRestart, KeyParallel)
	}
	if c.Pareto < 0 {
		return errors.Wrapf(ErrInvalid, "--%s=%d", KeyPareto, c.Pareto)
	}
	if c.Pareto > 0 && (c.Restart || c.Parallel > 1) {
		return errors.Wrapf(ErrConflict, "--%s with --%s or --%s", KeyPareto, KeyRestart, KeyParallel)
	}
	if r := c.Restarts; r.NewAlignmentsTime < 0 || r.PerCandidateTime < 0 || r.FinalistTime < 0 {
		return errors.Wrap(ErrInvalid, "negative restart time")
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return errors.Wrapf(ErrInvalid, "--%s=%q", KeyLogFormat, c.LogFormat)
	}

	return nil
}

// Calibrate reports whether TInitial or TDecay must be calibrated.
func (c *Config) Calibrate() bool { return math.IsNaN(c.TInitial) || math.IsNaN(c.TDecay) }

// ParseTemperature parses a non-negative number or Auto (returned as NaN).
func ParseTemperature(s string) (float64, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == Auto {
		return math.NaN(), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalid, "temperature %q", s)
	}
	if f < 0 || math.IsNaN(f) {
		return 0, errors.Wrapf(ErrInvalid, "temperature %g", f)
	}

	return f, nil
}

// parseLocalSims parses "[name=]weight:path" entries.
func parseLocalSims(items []string) ([]LocalSim, error) {
	out := make([]LocalSim, 0, len(items))
	for _, it := range items {
		ls := LocalSim{}
		rest := it
		if name, after, ok := strings.Cut(rest, "="); ok {
			ls.Name, rest = name, after
		}
		w, path, ok := strings.Cut(rest, ":")
		if !ok || path == "" {
			return nil, errors.Wrapf(ErrInvalid, "--%s %q: want [name=]weight:path", KeyLocalSims, it)
		}
		f, err := strconv.ParseFloat(w, 64)
		if err != nil || f < 0 {
			return nil, errors.Wrapf(ErrInvalid, "--%s %q: weight", KeyLocalSims, it)
		}
		ls.Weight, ls.Path = f, path
		if ls.Name == "" {
			ls.Name = path
		}
		out = append(out, ls)
	}

	return out, nil
}
