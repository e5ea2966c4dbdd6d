// Package hybrid - RNG utilities for the multi-trial search.
//
// Every random decision of a trial (list shuffles, coin flips, uniform
// draws) comes from one stream owned by that trial.
//
// Goals:
//   - Determinism: same (Seed, trial) ⇒ identical trial on every platform.
//   - Worker independence: a trial's stream depends on its index only, so
//     the winner does not change with Options.Workers.
//   - No ambient state: nothing reads the global math/rand source or the clock.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. trialRNG builds a fresh stream
//     per trial; streams are never shared between workers.
package hybrid

import "math/rand"

// defaultSeed is used when Options.Seed == 0. Arbitrary but stable.
const defaultSeed int64 = 1

// deriveSeed mixes the search seed with a trial index into a new 64-bit
// seed.
//
// Notes:
//   - SplitMix64 finalizer constants; neighbouring trial indices map to
//     unrelated seeds.
//   - The trial index is offset by the golden-ratio increment before the
//     mix, so trial 0 of seed s differs from seed s itself.
//
// Complexity: O(1).
func deriveSeed(seed int64, trial uint64) int64 {
	x := uint64(seed) ^ (trial + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// trialRNG returns the private random stream of one trial.
// Policy: seed==0 ⇒ defaultSeed; the stream depends only on (seed, trial),
// never on which worker runs the trial.
//
// Complexity: O(1).
func trialRNG(seed int64, trial int) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}
	return rand.New(rand.NewSource(deriveSeed(seed, uint64(trial))))
}
