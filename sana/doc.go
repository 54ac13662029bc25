// SPDX-License-Identifier: MIT

// Package sana implements simulated annealing network alignment.
//
// An Annealer owns the immutable problem: two graphs, an objective and the
// prepared similarity tables. Every run builds its own alignment state and
// random stream, so one Annealer may serve many concurrent runs.
//
// A run repeatedly proposes one of two moves:
//
//   - change: re-map a G1 node to a G2 node outside the current image;
//   - swap: exchange the images of two G1 nodes.
//
// The incremental scorer computes the exact delta of every maintained total
// (aligned edges, induced edges, WEC sum, SEC sum, local sum) in O(degree),
// and the Metropolis rule accepts the move with probability
// min(1, exp(Δscore/T)), where T = TInitial·exp(−TDecay·iteration).
//
// Runs move through Initializing → Running ⇄ Paused → Finished. A Controller
// pauses, resumes or stops a run from another goroutine; cancelling the run's
// context stops it. A stopped run still returns its best (or final)
// alignment.
//
// The package also provides the fixed-temperature sampler used by schedule
// calibration (Sample, IterationsPerSecond), Calibrate to turn a calibration
// method into TInitial and TDecay, a multi-phase restart scheme and
// independent parallel runs.
//
// Randomness is explicit: the same seed, graphs and options reproduce the
// same alignment. Runs derive independent substreams from the seed.
package sana
