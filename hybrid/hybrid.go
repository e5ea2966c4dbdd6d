package hybrid

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/settleup/core"
	"github.com/katalvlaran/settleup/internal/workset"
)

// Search runs opts.Iterations randomized trials over b and keeps the one
// with the fewest transfers (the lowest trial index on ties).
//
// Stopping early: when the caller's ctx ends, Search returns the best plan
// found so far together with ctx.Err(), or an error wrapping ErrNoTrial if
// nothing finished. An expired opts.TimeLimit is a budget, not a failure:
// the best plan so far is returned with a nil error.
//
// Errors: option sentinels (see Options.Validate), core.ErrNegativeParty,
// core.ErrInvalidBalance, ErrNoTrial, context errors.
func Search(ctx context.Context, b core.Balances, opts Options) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	if err := core.Validate(b); err != nil {
		return Result{}, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	started := time.Now()

	// The exact-match phase is deterministic, so every trial would start
	// with the same prefix and the same leftover pool.
	base := workset.FromBalances(b)
	prefix := base.SettleExact()
	rest := base.Remaining()
	if len(rest) == 0 {
		// Every trial would replay the prefix alone.
		counts := make([]int, opts.Iterations)
		for i := range counts {
			counts[i] = len(prefix)
		}
		return Result{Transfers: prefix, Counts: counts, Completed: opts.Iterations}, nil
	}
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrNoTrial, err)
	}

	budget := ctx
	if opts.TimeLimit > 0 {
		var cancel context.CancelFunc
		budget, cancel = context.WithTimeout(ctx, opts.TimeLimit)
		defer cancel()
	}

	n := opts.Iterations
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	counts := make([]int, n)
	for i := range counts {
		counts[i] = -1
	}
	bests := make([]candidate, workers)

	g, gctx := errgroup.WithContext(budget)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			bests[w] = runWorker(ctx, gctx, w, workers, rest, prefix, opts, counts, logger)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var (
		win       = candidate{trial: -1}
		completed int
	)
	for _, c := range bests {
		if c.trial < 0 {
			continue
		}
		if win.trial < 0 || len(c.transfers) < len(win.transfers) ||
			(len(c.transfers) == len(win.transfers) && c.trial < win.trial) {
			win = c
		}
	}
	for _, c := range counts {
		if c >= 0 {
			completed++
		}
	}
	if win.trial < 0 {
		return Result{}, fmt.Errorf("%w: %w", ErrNoTrial, ctx.Err())
	}

	res := Result{
		Transfers: win.transfers,
		BestTrial: win.trial,
		Counts:    counts,
		Completed: completed,
	}
	logger.Info("hybrid search finished",
		zap.Int("parties", len(rest)+2*len(prefix)),
		zap.Int("trials", completed),
		zap.Int("transfers", len(res.Transfers)),
		zap.Int("best_trial", res.BestTrial),
		zap.Duration("elapsed", time.Since(started)),
	)
	if err := ctx.Err(); err != nil {
		return res, err
	}
	return res, nil
}

// candidate is a worker's best trial so far.
type candidate struct {
	trial     int
	transfers []core.Transfer
}

// runWorker runs trials w, w+stride, ... in ascending order.
//
// Concurrency:
//   - Each worker owns its Pool, queues, lists and RNG streams.
//   - counts is the only shared slice; index t is written by the worker
//     that owns trial t and read after errgroup.Wait.
//
// Budget:
//   - Trial 0 runs even if the time budget is already spent.
//   - Every trial stops once the caller's context ends.
func runWorker(
	ctx, budget context.Context,
	w, stride int,
	rest []core.Entry,
	prefix []core.Transfer,
	opts Options,
	counts []int,
	logger *zap.Logger,
) candidate {
	best := candidate{trial: -1}
	for t := w; t < opts.Iterations; t += stride {
		if ctx.Err() != nil || (t > 0 && budget.Err() != nil) {
			break
		}
		txs := runTrial(rest, prefix, opts.GreedyProbability, trialRNG(opts.Seed, t))
		counts[t] = len(txs)
		if best.trial < 0 || len(txs) < len(best.transfers) {
			best = candidate{trial: t, transfers: txs}
			logger.Debug("hybrid trial improved",
				zap.Int("worker", w),
				zap.Int("trial", t),
				zap.Int("transfers", len(txs)),
			)
		}
	}
	return best
}

// runTrial plays one randomized trial on a private copy of rest. At every
// step a single coin flip with probability eps decides, for both sides,
// whether to take the top of the max-queue or a uniform draw from the
// shuffled candidate list. An exhausted queue falls back to the list.
func runTrial(rest []core.Entry, prefix []core.Transfer, eps float64, rng *rand.Rand) []core.Transfer {
	p := workset.New(rest)
	out := make([]core.Transfer, len(prefix), len(prefix)+len(rest))
	copy(out, prefix)

	var (
		queues [2]*workset.Queue
		lists  [2]*workset.Candidates
		items  []workset.Item
	)
	for _, side := range []core.Side{core.Debtor, core.Creditor} {
		items = p.Items(side)
		queues[side] = workset.NewQueue(side, true, items)
		lists[side] = workset.NewCandidates(side, items, rng)
	}

	var (
		d, c       core.PartyID
		ok         bool
		useGreedy  bool
		t          core.Transfer
		remD, remC float64
	)
	for p.Len() > 0 {
		useGreedy = rng.Float64() < eps
		if d, ok = pick(p, queues[core.Debtor], lists[core.Debtor], useGreedy, rng); !ok {
			break
		}
		if c, ok = pick(p, queues[core.Creditor], lists[core.Creditor], useGreedy, rng); !ok {
			break
		}

		t, remD, remC = p.Match(d, c)
		out = append(out, t)
		out = absorb(p, &queues, &lists, d, core.Debtor, remD, out)
		out = absorb(p, &queues, &lists, c, core.Creditor, remC, out)
	}
	return out
}

func pick(p *workset.Pool, q *workset.Queue, l *workset.Candidates, greedy bool, rng *rand.Rand) (core.PartyID, bool) {
	if greedy {
		if id, ok := q.Pop(p); ok {
			return id, true
		}
	}
	return l.Draw(p, rng)
}

// absorb applies the remainder rule and re-registers a reinserted party in
// both selection structures.
func absorb(
	p *workset.Pool,
	queues *[2]*workset.Queue,
	lists *[2]*workset.Candidates,
	id core.PartyID,
	side core.Side,
	rem float64,
	out []core.Transfer,
) []core.Transfer {
	t, res := p.Absorb(id, side, rem)
	switch res {
	case workset.Matched:
		out = append(out, t)
	case workset.Reinserted:
		queues[side].Push(id, rem)
		lists[side].Push(id, rem)
	}
	return out
}

// Searcher adapts Search to core.Solver.
type Searcher struct {
	Options Options
}

// Solve implements core.Solver.
func (s Searcher) Solve(ctx context.Context, b core.Balances) ([]core.Transfer, error) {
	res, err := Search(ctx, b, s.Options)
	return res.Transfers, err
}
