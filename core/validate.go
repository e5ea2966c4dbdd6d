package core

import (
	"fmt"
	"math"
	"sort"
)

// Entry is one (party, signed balance) pair of an active snapshot.
type Entry struct {
	ID      PartyID
	Balance float64
}

// Validate checks that every key is a non-negative party id and every
// balance is finite. It does not check the zero-sum property; see CheckZeroSum.
//
// Complexity: O(n).
func Validate(b Balances) error {
	for id, bal := range b {
		if id < 0 {
			return fmt.Errorf("%w: %d", ErrNegativeParty, id)
		}
		if math.IsNaN(bal) || math.IsInf(bal, 0) {
			return fmt.Errorf("%w: party %d has %v", ErrInvalidBalance, id, bal)
		}
	}
	return nil
}

// Active returns the entries of b rounded to two decimals, dropping those
// that round to zero, sorted by party id. The result is a fresh slice and
// never aliases b.
//
// Complexity: O(n log n).
func Active(b Balances) []Entry {
	out := make([]Entry, 0, len(b))
	var bal float64
	for id, raw := range b {
		bal = Round2(raw)
		if bal == 0 {
			continue
		}
		out = append(out, Entry{ID: id, Balance: bal})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Sum returns the sum of all balances, accumulated in party-id order and
// rounded to two decimals.
//
// Complexity: O(n log n).
func Sum(b Balances) float64 {
	var total float64
	for _, e := range Active(b) {
		total = Round2(total + e.Balance)
	}
	return total
}

// CheckZeroSum returns ErrUnbalanced when |Sum(b)| exceeds ActiveThreshold.
func CheckZeroSum(b Balances) error {
	s := Sum(b)
	if math.Abs(s) > ActiveThreshold {
		return fmt.Errorf("%w: sum is %.2f", ErrUnbalanced, s)
	}
	return nil
}

// Split counts debtors and creditors among the active entries of b.
func Split(b Balances) (debtors, creditors int) {
	for _, e := range Active(b) {
		if e.Balance < 0 {
			debtors++
		} else {
			creditors++
		}
	}
	return debtors, creditors
}
