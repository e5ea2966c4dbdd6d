package core

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for settlement inputs and outputs.
var (
	// ErrNegativeParty indicates a balance keyed by a negative party id.
	ErrNegativeParty = errors.New("core: negative party id")

	// ErrInvalidBalance indicates a NaN or infinite balance.
	ErrInvalidBalance = errors.New("core: balance is not a finite number")

	// ErrUnbalanced indicates that balances do not sum to zero within ActiveThreshold.
	ErrUnbalanced = errors.New("core: balances do not sum to zero")

	// ErrIncompleteSettlement indicates that a transfer list leaves residual balances.
	ErrIncompleteSettlement = errors.New("core: transfers do not settle every balance")
)

// PartyID is a dense, non-negative party index in [0,N).
type PartyID int

// Side tells which side of the settlement a party is on.
type Side int8

const (
	// Debtor is a party with a negative balance.
	Debtor Side = iota
	// Creditor is a party with a positive balance.
	Creditor
)

// String returns "debtor" or "creditor".
func (s Side) String() string {
	if s == Debtor {
		return "debtor"
	}
	return "creditor"
}

// Opposite returns the other side.
func (s Side) Opposite() Side {
	return 1 - s
}

// SideOf classifies a signed balance. Zero is reported as Creditor;
// callers drop settled balances before classifying.
func SideOf(balance float64) Side {
	if balance < 0 {
		return Debtor
	}
	return Creditor
}

// Transfer is a directed payment from Payer (debtor) to Payee (creditor).
// Amount is positive with two decimal places.
type Transfer struct {
	Payer  PartyID
	Payee  PartyID
	Amount float64
}

// String renders the transfer as "payer->payee: amount".
func (t Transfer) String() string {
	return fmt.Sprintf("%d->%d: %.2f", t.Payer, t.Payee, t.Amount)
}

// Balances maps party id to signed net balance. Parties absent from the map
// are settled.
type Balances map[PartyID]float64

// Clone returns an independent copy of b.
func (b Balances) Clone() Balances {
	out := make(Balances, len(b))
	for id, bal := range b {
		out[id] = bal
	}
	return out
}

// Solver is the contract shared by every settlement algorithm: given a
// zero-sum balance snapshot, return an ordered list of transfers that
// settles it. Implementations must not retain or mutate b.
type Solver interface {
	Solve(ctx context.Context, b Balances) ([]Transfer, error)
}
