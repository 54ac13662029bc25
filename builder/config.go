// SPDX-License-Identifier: MIT

package builder

import (
	"math/rand"
	"strconv"
)

// config is the resolved, immutable view of the options for one BuildGraph call.
type config struct {
	idFn IDFn       // index → node name
	rng  *rand.Rand // nil unless WithSeed/WithRand
}

// Option configures BuildGraph.
type Option func(*config)

// IDFn maps a constructor-local index to a node name.
type IDFn func(idx int) string

// DefaultIDFn produces decimal names "0", "1", ...
func DefaultIDFn(idx int) string { return strconv.Itoa(idx) }

// PrefixIDFn produces names prefix+"0", prefix+"1", ...
func PrefixIDFn(prefix string) IDFn {
	return func(idx int) string { return prefix + strconv.Itoa(idx) }
}

// WithIDScheme overrides node naming. Panics on nil (programmer error).
func WithIDScheme(fn IDFn) Option {
	if fn == nil {
		panic("builder: WithIDScheme(nil)")
	}
	return func(c *config) { c.idFn = fn }
}

// WithSeed installs a deterministic RNG for stochastic constructors.
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand installs a caller-owned RNG. Panics on nil (programmer error).
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *config) { c.rng = r }
}

func newConfig(opts ...Option) config {
	cfg := config{idFn: DefaultIDFn}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
