// Package workset holds the private, mutable working balance set that a
// single solve call operates on.
//
// A Pool owns the signed balances of the still-active parties and a
// value-bucketed index per side. Priority queues (Queue) and randomized
// candidate lists (Candidates) live next to it and refer to the same
// parties. None of these structures support cheap arbitrary deletion, so
// they all rely on lazy deletion: an entry (id, magnitude, side) is live
// only while the pool still holds id on that side with exactly that
// magnitude. Magnitudes strictly decrease over a solve, so a party never
// has two live entries in the same structure.
//
// Goals:
//   - One implementation of the exact-match phase and the remainder rule,
//     shared by greedy, hybrid and the k=2 layer.
//   - Determinism: value buckets are FIFO in insertion (party-id) order and
//     common magnitudes are settled in ascending order.
//   - Cent-exact keys: every stored magnitude goes through core.Round2, so
//     equal cent values hit the same bucket.
//
// Remainder rule (Absorb), applied after every partial match:
//   - below core.SettleEpsilon: the party is settled;
//   - equal to a live opposite magnitude: one closing transfer settles both;
//   - otherwise: the party goes back with the remainder.
//
// Concurrency:
//   - A Pool is not safe for concurrent use; each solve (or each hybrid
//     trial) builds its own.
package workset

import (
	"math"
	"sort"

	"github.com/katalvlaran/settleup/core"
)

// Item is a (party, magnitude) pair as stored in queues, lists and buckets.
type Item struct {
	ID  core.PartyID
	Mag float64
}

// Outcome tells what Absorb did with a remainder.
type Outcome int8

const (
	// Settled means the remainder was below core.SettleEpsilon.
	Settled Outcome = iota
	// Matched means the remainder closed against an exact opposite value.
	Matched
	// Reinserted means the party is back in the pool with the remainder;
	// the caller must push it into its own queues and lists.
	Reinserted
)

// bucket is a FIFO of party ids sharing one magnitude on one side.
type bucket struct {
	ids  []core.PartyID
	head int
}

// Pool is the working balance set of one solve.
type Pool struct {
	bal   map[core.PartyID]float64
	index [2]map[float64]*bucket
}

// New builds a pool from active entries. Entries are indexed in the order
// given; core.Active yields them sorted by party id.
//
// Complexity: O(n).
func New(entries []core.Entry) *Pool {
	p := &Pool{
		bal: make(map[core.PartyID]float64, len(entries)),
		index: [2]map[float64]*bucket{
			make(map[float64]*bucket),
			make(map[float64]*bucket),
		},
	}
	for _, e := range entries {
		p.Set(e.ID, core.SideOf(e.Balance), math.Abs(e.Balance))
	}
	return p
}

// FromBalances rounds b, drops settled parties and builds a pool.
func FromBalances(b core.Balances) *Pool {
	return New(core.Active(b))
}

// Len returns the number of active parties.
func (p *Pool) Len() int { return len(p.bal) }

// Balance returns the signed balance of id and whether it is active.
func (p *Pool) Balance(id core.PartyID) (float64, bool) {
	b, ok := p.bal[id]
	return b, ok
}

// Live reports whether id is active on side with magnitude mag.
func (p *Pool) Live(id core.PartyID, side core.Side, mag float64) bool {
	b, ok := p.bal[id]
	if !ok || core.SideOf(b) != side {
		return false
	}
	return math.Abs(b) == mag
}

// Set makes id active on side with magnitude mag and indexes it.
func (p *Pool) Set(id core.PartyID, side core.Side, mag float64) {
	mag = core.Round2(mag)
	if side == core.Debtor {
		p.bal[id] = -mag
	} else {
		p.bal[id] = mag
	}
	bk, ok := p.index[side][mag]
	if !ok {
		bk = &bucket{}
		p.index[side][mag] = bk
	}
	bk.ids = append(bk.ids, id)
}

// Remove drops id from the pool. Index entries become stale.
func (p *Pool) Remove(id core.PartyID) {
	delete(p.bal, id)
}

// peek returns the first live id in the bucket for (side, mag) without
// consuming it. Stale ids in front are discarded; an exhausted bucket is
// deleted from the index.
func (p *Pool) peek(side core.Side, mag float64) (core.PartyID, bool) {
	bk, ok := p.index[side][mag]
	if !ok {
		return 0, false
	}
	for bk.head < len(bk.ids) {
		id := bk.ids[bk.head]
		if p.Live(id, side, mag) {
			return id, true
		}
		bk.head++
	}
	delete(p.index[side], mag)
	return 0, false
}

// PopValue removes and returns a live party on side with exactly mag from
// the value index. The party stays in the pool; callers Remove it.
func (p *Pool) PopValue(side core.Side, mag float64) (core.PartyID, bool) {
	id, ok := p.peek(side, mag)
	if !ok {
		return 0, false
	}
	p.index[side][mag].head++
	return id, true
}

// SettleExact runs the exact-match phase: for every magnitude present on
// both sides, in ascending order, pair debtors with creditors of that
// magnitude (FIFO within a bucket) until one side runs out. Matched
// parties leave the pool. Running it again on the result is a no-op.
//
// Complexity: O(n log n) for the magnitude sort, O(1) amortized per match.
func (p *Pool) SettleExact() []core.Transfer {
	common := make([]float64, 0)
	for mag := range p.index[core.Debtor] {
		if _, ok := p.index[core.Creditor][mag]; ok {
			common = append(common, mag)
		}
	}
	sort.Float64s(common)

	var out []core.Transfer
	for _, mag := range common {
		for {
			d, okD := p.peek(core.Debtor, mag)
			c, okC := p.peek(core.Creditor, mag)
			if !okD || !okC {
				break
			}
			p.PopValue(core.Debtor, mag)
			p.PopValue(core.Creditor, mag)
			p.Remove(d)
			p.Remove(c)
			out = append(out, core.Transfer{Payer: d, Payee: c, Amount: mag})
		}
	}
	return out
}

// Match settles debtor d against creditor c for min(|d|,|c|). Both leave
// the pool; the returned remainders (rounded, one of them zero) must be fed
// back through Absorb, debtor first.
func (p *Pool) Match(d, c core.PartyID) (t core.Transfer, remD, remC float64) {
	dv := math.Abs(p.bal[d])
	cv := math.Abs(p.bal[c])
	amt := math.Min(dv, cv)
	p.Remove(d)
	p.Remove(c)
	return core.Transfer{Payer: d, Payee: c, Amount: core.Round2(amt)},
		core.Round2(dv - amt),
		core.Round2(cv - amt)
}

// Absorb applies the remainder rule to a party that just left the pool
// through Match:
//
//   - rem < core.SettleEpsilon: the party is settled.
//   - a live opposite party holds exactly rem: one closing transfer, both
//     settled (the transfer is returned with outcome Matched).
//   - otherwise the party re-enters the pool with rem (Reinserted).
func (p *Pool) Absorb(id core.PartyID, side core.Side, rem float64) (core.Transfer, Outcome) {
	if rem < core.SettleEpsilon {
		p.Remove(id)
		return core.Transfer{}, Settled
	}
	if other, ok := p.PopValue(side.Opposite(), rem); ok {
		p.Remove(id)
		p.Remove(other)
		if side == core.Debtor {
			return core.Transfer{Payer: id, Payee: other, Amount: rem}, Matched
		}
		return core.Transfer{Payer: other, Payee: id, Amount: rem}, Matched
	}
	p.Set(id, side, rem)
	return core.Transfer{}, Reinserted
}

// Items returns the live parties on side as items sorted by party id.
func (p *Pool) Items(side core.Side) []Item {
	out := make([]Item, 0, len(p.bal))
	for id, b := range p.bal {
		if core.SideOf(b) == side {
			out = append(out, Item{ID: id, Mag: math.Abs(b)})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Remaining returns the active entries sorted by party id.
func (p *Pool) Remaining() []core.Entry {
	out := make([]core.Entry, 0, len(p.bal))
	for id, b := range p.bal {
		out = append(out, core.Entry{ID: id, Balance: b})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Clone returns an independent pool holding the same active parties,
// indexed afresh in party-id order.
func (p *Pool) Clone() *Pool {
	return New(p.Remaining())
}
