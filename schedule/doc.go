// SPDX-License-Identifier: MIT

// Package schedule calibrates the exponential temperature schedule of a
// simulated annealing run.
//
// Calibration looks for two temperatures: TInitial, where the probability of
// accepting a worsening move (pBad) is close to a high target, and TFinal,
// where it is close to a tiny one. The run then decays from TInitial to
// TFinal with rate Decay(TInitial, TFinal, iterations).
//
// All methods share one primitive, a Sampler that runs the move/accept loop
// at a fixed temperature and reports the empirical pBad. The methods are:
//
//	pbad-binary-search  bisection on log10 T until pBad hits the target
//	linear-regression   fit logit(pBad) against log10 T from a ladder of samples
//	ameur               solve mean(exp(−ΔE/T)) = target from random-walk energy increases
//	iterated-ameur      repeat the Ameur solve, resampling at each new guess
//	statistical-test    proportion z-tests decide direction and stagnation
//
// Methods are interchangeable behind Method and selected by name with New.
// A method that does not converge within its resources returns its best
// estimate with Converged unset and logs a warning.
package schedule
