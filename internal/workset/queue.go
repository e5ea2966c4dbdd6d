// Package workset - per-side priority queue with lazy deletion.
//
// The greedy matcher and every greedy step of a hybrid trial pick the
// extreme debtor and creditor from one Queue per side.
//
// Goals:
//   - Determinism: equal magnitudes pop in party-id order.
//   - No arbitrary deletion: entries that no longer describe the pool are
//     dropped when they reach the top (see Pool.Live).
//   - O(n) build from a snapshot (heap.Init), O(log n) per push or pop.
//
// Invariants:
//   - A party has at most one live entry per queue: its magnitude only
//     shrinks, and each change pushes a new entry while the old one turns
//     stale.
//
// Concurrency:
//   - Not goroutine-safe. A Queue belongs to the solve that built it.
package workset

import (
	"container/heap"

	"github.com/katalvlaran/settleup/core"
)

// Queue is a per-side priority queue keyed by magnitude with lazy
// deletion. With largest set the largest magnitude pops first, otherwise the
// smallest; ties go to the smaller party id so results are deterministic.
type Queue struct {
	side core.Side
	h    itemHeap
}

// NewQueue builds a queue over items in O(n).
func NewQueue(side core.Side, largest bool, items []Item) *Queue {
	q := &Queue{side: side, h: itemHeap{max: largest, items: make([]Item, len(items))}}
	copy(q.h.items, items)
	heap.Init(&q.h)
	return q
}

// Push adds (id, mag). Older entries for id become stale on their own.
func (q *Queue) Push(id core.PartyID, mag float64) {
	heap.Push(&q.h, Item{ID: id, Mag: mag})
}

// Pop returns the top live party, discarding stale entries on the way.
// It reports false once no live entry is left.
//
// Complexity: O(log n) amortized per discarded or returned entry.
func (q *Queue) Pop(p *Pool) (core.PartyID, bool) {
	for q.h.Len() > 0 {
		it := heap.Pop(&q.h).(Item)
		if p.Live(it.ID, q.side, it.Mag) {
			return it.ID, true
		}
	}
	return 0, false
}

// Len returns the number of entries, stale ones included.
func (q *Queue) Len() int { return q.h.Len() }

// itemHeap implements heap.Interface over Item.
type itemHeap struct {
	max   bool
	items []Item
}

func (h itemHeap) Len() int { return len(h.items) }

func (h itemHeap) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.Mag != b.Mag {
		if h.max {
			return a.Mag > b.Mag
		}
		return a.Mag < b.Mag
	}
	return a.ID < b.ID
}

func (h itemHeap) Swap(i, j int) { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *itemHeap) Push(x any) { h.items = append(h.items, x.(Item)) }

func (h *itemHeap) Pop() any {
	old := h.items
	n := len(old)
	it := old[n-1]
	h.items = old[:n-1]
	return it
}
