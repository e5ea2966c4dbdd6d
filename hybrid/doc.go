// Package hybrid implements a randomized multi-trial settlement search that
// mixes max-max greedy matching with uniform random picks.
//
// Every trial starts from the same snapshot with private copies of:
//
//   - a value index per side (exact-match lookup),
//   - a max-priority queue per side (greedy pick),
//   - a shuffled candidate list per side (random pick).
//
// After the shared exact-match phase, each step flips one coin: with
// probability ε both sides take the top of their queue, otherwise both
// draw uniformly among live candidates. Remainders follow the same rule as
// the greedy matcher and are pushed back into all three structures.
// Stale entries are skipped lazily.
//
// The trial with the fewest transfers wins; ties keep the earliest trial.
// Quality improves in expectation with Iterations but is never guaranteed
// optimal.
//
// Determinism: trial t draws from a stream derived from (Seed, t), so a
// fixed seed reproduces the result for any number of Workers. A TimeLimit
// trades that guarantee for a wall-clock bound.
//
// Complexity: O(Iterations · n log n) time, O(Workers · n) space.
package hybrid
