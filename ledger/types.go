package ledger

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/katalvlaran/settleup/core"
)

// Sentinel errors returned by the ledger.
var (
	// ErrNegativeSize indicates New was called with n < 0.
	ErrNegativeSize = errors.New("ledger: negative party count")

	// ErrPartyOutOfRange indicates a party id outside [0, Size()).
	ErrPartyOutOfRange = errors.New("ledger: party id out of range")

	// ErrInvalidAmount indicates a NaN, infinite or negative amount.
	ErrInvalidAmount = errors.New("ledger: invalid amount")

	// ErrIntegrity indicates that balances no longer sum to zero.
	ErrIntegrity = errors.New("ledger: zero-sum invariant violated")
)

// IntegrityError carries the offending net sum. It matches ErrIntegrity
// under errors.Is.
type IntegrityError struct {
	Sum decimal.Decimal
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%v: net sum is %s (should be 0.00)", ErrIntegrity, e.Sum.StringFixed(2))
}

// Is makes errors.Is(err, ErrIntegrity) succeed.
func (e *IntegrityError) Is(target error) bool {
	return target == ErrIntegrity
}

// Entry is one recorded transfer. Seq is its zero-based position in the
// history; ID is unique across ledgers.
type Entry struct {
	ID  uuid.UUID
	Seq int
	core.Transfer
}
