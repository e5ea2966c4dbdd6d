// Package layered - stage pipeline.
//
// Ownership:
//   - Each stage receives the pool as a slice it may read, and returns a
//     new slice of the parties it did not settle. No stage keeps or mutates
//     state seen by another; the pipeline itself only threads the slices.
//   - Entries handed between stages are sorted by party id.
//
// Groups:
//   - A k=3 or k=4 group is closed on its own through greedy.Solve with Max,
//     which never spends more than m−1 transfers on m parties.
//
// Logging:
//   - One debug entry per stage ("layered stage done") with the same
//     numbers as the StageReport.
package layered

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/katalvlaran/settleup/core"
	"github.com/katalvlaran/settleup/greedy"
	"github.com/katalvlaran/settleup/internal/workset"
)

// stageFunc consumes the working pool and returns the transfers it emitted
// together with the parties it left unsettled. Entries stay sorted by id.
type stageFunc func(pool []core.Entry) ([]core.Transfer, []core.Entry)

type step struct {
	stage Stage
	run   stageFunc
}

// Reduce settles b in layers: exact pairs, zero-sum triples, zero-sum
// quads (unless disabled), then a max-max greedy pass over the rest.
//
// Errors: core.ErrNegativeParty, core.ErrInvalidBalance.
func Reduce(b core.Balances, opts ...Option) (Result, error) {
	if err := core.Validate(b); err != nil {
		return Result{}, err
	}
	cfg := newConfig(opts)

	stages := []step{{StagePairs, pairs}, {StageTriples, triples}}
	if cfg.k4 {
		stages = append(stages, step{StageQuads, quads})
	}
	stages = append(stages, step{StageFallback, fallback})

	var (
		res  Result
		pool = core.Active(b)
		txs  []core.Transfer
		left []core.Entry
	)
	for _, st := range stages {
		txs, left = st.run(pool)
		rep := StageReport{
			Stage:     st.stage,
			In:        len(pool),
			Settled:   len(pool) - len(left),
			Transfers: len(txs),
		}
		res.Stages = append(res.Stages, rep)
		res.Transfers = append(res.Transfers, txs...)
		cfg.logger.Debug("layered stage done",
			zap.Stringer("stage", rep.Stage),
			zap.Int("in", rep.In),
			zap.Int("settled", rep.Settled),
			zap.Int("transfers", rep.Transfers),
		)
		pool = left
	}
	return res, nil
}

// pairs is the k=2 layer: the greedy matcher's exact-match phase.
func pairs(pool []core.Entry) ([]core.Transfer, []core.Entry) {
	if len(pool) == 0 {
		return nil, pool
	}
	p := workset.New(pool)
	txs := p.SettleExact()
	return txs, p.Remaining()
}

// triples is the k=3 layer. Entries are sorted by (balance, id); every
// unused negative anchor runs a two-pointer scan over the entries after it
// for two partners that bring the sum within core.SettleEpsilon of zero.
// A found trio is settled internally by the max-max greedy matcher.
//
// Complexity: O(n²).
func triples(pool []core.Entry) ([]core.Transfer, []core.Entry) {
	if len(pool) < 3 {
		return nil, pool
	}
	sorted := make([]core.Entry, len(pool))
	copy(sorted, pool)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Balance != sorted[j].Balance {
			return sorted[i].Balance < sorted[j].Balance
		}
		return sorted[i].ID < sorted[j].ID
	})

	var (
		out  []core.Transfer
		used = make(map[core.PartyID]bool)
		n    = len(sorted)
	)
	for i, anchor := range sorted {
		if anchor.Balance > 0 {
			break
		}
		if used[anchor.ID] {
			continue
		}
		l, r := i+1, n-1
		for l < r {
			if used[sorted[l].ID] {
				l++
				continue
			}
			if used[sorted[r].ID] {
				r--
				continue
			}
			sum := anchor.Balance + sorted[l].Balance + sorted[r].Balance
			if sum > core.SettleEpsilon {
				r--
				continue
			}
			if sum < -core.SettleEpsilon {
				l++
				continue
			}
			group := []core.Entry{anchor, sorted[l], sorted[r]}
			out = append(out, settleGroup(group)...)
			for _, e := range group {
				used[e.ID] = true
			}
			break
		}
	}
	return out, without(pool, used)
}

// pairSum is an unordered pair of pool indices (a < b).
type pairSum struct {
	a, b int
}

// quads is the k=4 layer. All unordered pairs are bucketed by their rounded
// balance sum; for each positive sum S (ascending) with a bucket at −S,
// disjoint unused pairs from both buckets are joined into zero-sum quads
// and settled internally by the max-max greedy matcher. Pairs are taken in
// generation order, so the result never depends on map iteration.
//
// Complexity: O(n²) time and space; run it on a pool already shrunk by the
// earlier layers.
func quads(pool []core.Entry) ([]core.Transfer, []core.Entry) {
	n := len(pool)
	if n < 4 {
		return nil, pool
	}
	buckets := make(map[float64][]pairSum)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			s := core.Round2(pool[i].Balance + pool[j].Balance)
			buckets[s] = append(buckets[s], pairSum{a: i, b: j})
		}
	}
	sums := make([]float64, 0)
	for s := range buckets {
		if s <= 0 {
			continue
		}
		if _, ok := buckets[-s]; ok {
			sums = append(sums, s)
		}
	}
	sort.Float64s(sums)

	var (
		out   []core.Transfer
		used  = make([]bool, n)
		taken = func(p pairSum) bool { return used[p.a] || used[p.b] }
	)
	for _, s := range sums {
		pos, neg := buckets[s], buckets[-s]
		head := 0
		for _, p1 := range pos {
			if taken(p1) {
				continue
			}
			// Pairs at the head of neg that are used stay used.
			for head < len(neg) && taken(neg[head]) {
				head++
			}
			for k := head; k < len(neg); k++ {
				p2 := neg[k]
				if taken(p2) || p2.a == p1.a || p2.a == p1.b || p2.b == p1.a || p2.b == p1.b {
					continue
				}
				group := []core.Entry{pool[p1.a], pool[p1.b], pool[p2.a], pool[p2.b]}
				out = append(out, settleGroup(group)...)
				used[p1.a], used[p1.b], used[p2.a], used[p2.b] = true, true, true, true
				break
			}
		}
	}

	left := make([]core.Entry, 0, n)
	for i, e := range pool {
		if !used[i] {
			left = append(left, e)
		}
	}
	return out, left
}

// fallback settles everything left with one max-max greedy pass.
func fallback(pool []core.Entry) ([]core.Transfer, []core.Entry) {
	if len(pool) == 0 {
		return nil, pool
	}
	txs := settleGroup(pool)
	return txs, nil
}

// settleGroup resolves a closed group with the max-max greedy matcher.
// Group entries are already validated and rounded.
func settleGroup(group []core.Entry) []core.Transfer {
	sub := make(core.Balances, len(group))
	for _, e := range group {
		sub[e.ID] = e.Balance
	}
	txs, _ := greedy.Solve(sub, greedy.Max)
	return txs
}

// without returns the entries of pool whose ids are not in used, keeping
// their order.
func without(pool []core.Entry, used map[core.PartyID]bool) []core.Entry {
	if len(used) == 0 {
		return pool
	}
	left := make([]core.Entry, 0, len(pool)-len(used))
	for _, e := range pool {
		if !used[e.ID] {
			left = append(left, e)
		}
	}
	return left
}

// Reducer adapts Reduce to core.Solver.
type Reducer struct {
	opts []Option
}

// NewReducer returns a Reducer that applies opts on every call.
func NewReducer(opts ...Option) Reducer {
	return Reducer{opts: opts}
}

// Solve implements core.Solver. The context is not consulted.
func (r Reducer) Solve(_ context.Context, b core.Balances) ([]core.Transfer, error) {
	res, err := Reduce(b, r.opts...)
	return res.Transfers, err
}
