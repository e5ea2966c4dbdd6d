// Package greedy implements the priority-queue settlement matcher.
//
// Given active balances that sum to zero, Solve returns transfers that
// zero every balance:
//
//  1. Debtors and creditors are indexed by absolute balance.
//  2. Exact-match phase: every magnitude present on both sides is settled
//     pairwise with one full transfer per pair.
//  3. Greedy phase: one priority queue per side (largest first for Max,
//     smallest first for Min) with lazy deletion. The top debtor pays the
//     top creditor min(|d|,|c|); the larger keeps the rounded difference.
//  4. A remainder below 0.001 settles the party. A remainder equal to a
//     live opposite balance closes both at once. Anything else goes back
//     into the queue and value index.
//
// The loop stops as soon as either queue has no live entry, so an
// unbalanced input ends with residual balances instead of looping; use
// core.Verify to check coverage.
//
// Transfer count is not minimal in general:
//
//	max(#debtors, #creditors) ≤ len(result) ≤ #debtors + #creditors − 1
//
// Complexity: O(n log n) time, O(n) space.
//
// Output is deterministic: buckets are FIFO in party-id order, magnitudes
// are settled in ascending order, queue ties go to the smaller id.
package greedy
