// SPDX-License-Identifier: MIT
// File: rng.go
// Role: deterministic random streams for runs, samplers and restarts.
//
// *rand.Rand is not goroutine-safe: every run owns its stream, derived from
// Options.Seed and a stream identifier.

package sana

import "math/rand"

// defaultSeed replaces a zero seed.
const defaultSeed int64 = 1

// Stream identifiers keep the families of derived streams disjoint.
const (
	streamRun      uint64 = 0
	streamParallel uint64 = 1 << 32
	streamSample   uint64 = 2 << 32
	streamRestart  uint64 = 3 << 32
	streamPareto   uint64 = 4 << 32
)

// deriveSeed mixes a parent seed and a stream id with the SplitMix64 finalizer.
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}

// streamRNG returns the stream-th independent generator for seed.
func streamRNG(seed int64, stream uint64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}

	return rand.New(rand.NewSource(deriveSeed(seed, stream)))
}
