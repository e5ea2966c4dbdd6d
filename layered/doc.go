// Package layered implements a settlement reducer that strips exact
// zero-sum groups of two, three and four parties before falling back to
// the max-max greedy matcher.
//
// Stages run strictly in order. Each one takes the working pool, removes
// the parties it settled and hands the rest to the next:
//
//  1. k=2: the greedy matcher's exact-match phase.
//  2. k=3: entries sorted by (balance, id); each unused negative anchor
//     runs a two-pointer scan for two partners closing the trio within
//     0.001. A trio is settled on its own with greedy Max.
//  3. k=4 (WithK4): every unordered pair is bucketed by its rounded sum.
//     For each positive sum S, in ascending order, disjoint pairs from the
//     S and −S buckets form a quad, settled with greedy Max.
//  4. Fallback: one greedy Max pass over whatever is left.
//
// A closed group of m parties never costs more than m−1 transfers, so the
// result keeps the greedy bounds and often beats plain greedy on inputs
// made of many small cycles.
//
// Complexity: O(n log n) for k=2, O(n²) for k=3, O(n²) time and space for
// k=4 on the pool left after k=3.
//
// Output is deterministic. The k=4 stage walks sums in ascending order and
// pairs in generation order, so map iteration never leaks into the result.
package layered
