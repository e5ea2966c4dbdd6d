// Package workset - randomized candidate lists for hybrid trials.
//
// A Candidates list is the random counterpart of Queue: hybrid trials draw
// from it when the coin says "random".
//
// Goals:
//   - Uniform pick among live parties: each live party owns exactly one
//     live entry, and Draw picks uniformly among all stored entries,
//     discarding stale ones, so the first live hit is uniform.
//   - O(1) per draw: swap-remove instead of shifting the slice.
//   - Explicit randomness: the caller passes the *rand.Rand; nothing reads
//     the global source.
//
// Concurrency:
//   - Not goroutine-safe, and neither is the *rand.Rand it is given.
package workset

import (
	"math/rand"

	"github.com/katalvlaran/settleup/core"
)

// Candidates is a randomized candidate list for one side. Draw picks
// uniformly among the stored entries and discards stale ones, which makes
// the pick uniform among live parties: each live party owns exactly one
// live entry.
type Candidates struct {
	side  core.Side
	items []Item
}

// NewCandidates copies items and shuffles them with rng (Fisher-Yates).
func NewCandidates(side core.Side, items []Item, rng *rand.Rand) *Candidates {
	c := &Candidates{side: side, items: make([]Item, len(items))}
	copy(c.items, items)
	for i := len(c.items) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		c.items[i], c.items[j] = c.items[j], c.items[i]
	}
	return c
}

// Push appends (id, mag).
func (c *Candidates) Push(id core.PartyID, mag float64) {
	c.items = append(c.items, Item{ID: id, Mag: mag})
}

// Draw removes and returns a uniformly chosen live party, or false once
// the list holds no live entry.
//
// Complexity: O(1) per drawn or discarded entry (swap-remove).
func (c *Candidates) Draw(p *Pool, rng *rand.Rand) (core.PartyID, bool) {
	for len(c.items) > 0 {
		last := len(c.items) - 1
		j := rng.Intn(len(c.items))
		it := c.items[j]
		c.items[j] = c.items[last]
		c.items = c.items[:last]
		if p.Live(it.ID, c.side, it.Mag) {
			return it.ID, true
		}
	}
	return 0, false
}

// Len returns the number of entries, stale ones included.
func (c *Candidates) Len() int { return len(c.items) }
