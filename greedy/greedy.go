// Package greedy - matcher loop.
//
// Steps:
//  1. Build a workset.Pool from the rounded snapshot.
//  2. Settle exact pairs (Pool.SettleExact).
//  3. Build one workset.Queue per side over the leftovers.
//  4. Repeat: pop the top debtor and creditor, Match them, feed both
//     remainders through Absorb (debtor first), re-queue reinserted parties.
//
// Termination:
//   - Every iteration removes at least one party for good, so the loop runs
//     at most n times. It also stops as soon as either queue has no live
//     entry, which is how unbalanced input ends.
//
// Determinism:
//   - No randomness. Ties follow the Pool and Queue orders (party id).
package greedy

import (
	"context"

	"github.com/katalvlaran/settleup/core"
	"github.com/katalvlaran/settleup/internal/workset"
)

// Solve settles b with strategy s. b is read, never modified.
//
// Errors: core.ErrNegativeParty, core.ErrInvalidBalance, ErrUnknownStrategy.
func Solve(b core.Balances, s Strategy) ([]core.Transfer, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	if err := core.Validate(b); err != nil {
		return nil, err
	}
	return settle(workset.FromBalances(b), s), nil
}

// settle runs both phases on pool p, consuming it.
func settle(p *workset.Pool, s Strategy) []core.Transfer {
	out := p.SettleExact()
	if p.Len() == 0 {
		return out
	}

	largest := s == Max
	queues := [2]*workset.Queue{
		core.Debtor:   workset.NewQueue(core.Debtor, largest, p.Items(core.Debtor)),
		core.Creditor: workset.NewQueue(core.Creditor, largest, p.Items(core.Creditor)),
	}

	var (
		d, c       core.PartyID
		okD, okC   bool
		t          core.Transfer
		remD, remC float64
	)
	for {
		d, okD = queues[core.Debtor].Pop(p)
		if !okD {
			break
		}
		c, okC = queues[core.Creditor].Pop(p)
		if !okC {
			break
		}

		t, remD, remC = p.Match(d, c)
		out = append(out, t)
		out = absorb(p, queues, d, core.Debtor, remD, out)
		out = absorb(p, queues, c, core.Creditor, remC, out)
	}
	return out
}

// absorb applies the remainder rule and re-queues a reinserted party.
func absorb(p *workset.Pool, queues [2]*workset.Queue, id core.PartyID, side core.Side, rem float64, out []core.Transfer) []core.Transfer {
	t, res := p.Absorb(id, side, rem)
	switch res {
	case workset.Matched:
		out = append(out, t)
	case workset.Reinserted:
		queues[side].Push(id, rem)
	}
	return out
}

// Matcher adapts Solve to core.Solver.
type Matcher struct {
	Strategy Strategy
}

// Solve implements core.Solver. The context is not consulted: the work is
// bounded by O(n log n).
func (m Matcher) Solve(_ context.Context, b core.Balances) ([]core.Transfer, error) {
	return Solve(b, m.Strategy)
}
