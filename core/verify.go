package core

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ClosureError reports the parties a transfer list failed to settle.
// It matches ErrIncompleteSettlement under errors.Is.
type ClosureError struct {
	// Residual maps party id to the balance left after applying the transfers.
	Residual Balances
}

func (e *ClosureError) Error() string {
	ids := make([]int, 0, len(e.Residual))
	for id := range e.Residual {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)
	return fmt.Sprintf("%v: %d parties left unsettled %v", ErrIncompleteSettlement, len(ids), ids)
}

// Is makes errors.Is(err, ErrIncompleteSettlement) succeed.
func (e *ClosureError) Is(target error) bool {
	return errors.Is(target, ErrIncompleteSettlement)
}

// Residual applies transfers to b and returns the balances that remain
// beyond ActiveThreshold. A leftover of exactly one cent is within
// tolerance, the same bound CheckZeroSum accepts for the whole input.
// A payer's balance rises by the amount it sends, a payee's falls by the
// amount it receives.
//
// Complexity: O(n + t).
func Residual(b Balances, transfers []Transfer) Balances {
	left := make(Balances, len(b))
	for id, bal := range b {
		left[id] = Round2(bal)
	}
	for _, t := range transfers {
		left[t.Payer] = Round2(left[t.Payer] + t.Amount)
		left[t.Payee] = Round2(left[t.Payee] - t.Amount)
	}
	for id, bal := range left {
		if math.Abs(bal) <= ActiveThreshold {
			delete(left, id)
		}
	}
	return left
}

// Verify checks that transfers settle b completely and that every transfer
// is well formed: positive amount, distinct endpoints, payer a debtor and
// payee a creditor in b.
//
// Errors: ErrIncompleteSettlement (as *ClosureError) for residual balances,
// or a wrapped ErrIncompleteSettlement naming the malformed transfer.
func Verify(b Balances, transfers []Transfer) error {
	for i, t := range transfers {
		if !(t.Amount > 0) {
			return fmt.Errorf("%w: transfer %d (%s) has non-positive amount", ErrIncompleteSettlement, i, t)
		}
		if t.Payer == t.Payee {
			return fmt.Errorf("%w: transfer %d (%s) is a self transfer", ErrIncompleteSettlement, i, t)
		}
		if !(b[t.Payer] < 0) || !(b[t.Payee] > 0) {
			return fmt.Errorf("%w: transfer %d (%s) runs against the balance signs", ErrIncompleteSettlement, i, t)
		}
	}
	if left := Residual(b, transfers); len(left) > 0 {
		return &ClosureError{Residual: left}
	}
	return nil
}

// Bounds returns the transfer-count range for settling b:
// lower = max(#debtors, #creditors), upper = #debtors + #creditors - 1.
// Both are zero for an empty snapshot.
func Bounds(b Balances) (lower, upper int) {
	d, c := Split(b)
	if d+c == 0 {
		return 0, 0
	}
	lower = d
	if c > lower {
		lower = c
	}
	return lower, d + c - 1
}
