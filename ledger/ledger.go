package ledger

import (
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/katalvlaran/settleup/core"
)

var activeThreshold = decimal.NewFromFloat(core.ActiveThreshold)

// Ledger holds the net balance of N parties and the append-only history of
// transfers that produced them.
//
// Balances are decimal values rounded to two places after every mutation,
// so they never drift. Ledger is not safe for concurrent use: callers that
// share one must serialize Record/Snapshot pairs.
type Ledger struct {
	balances []decimal.Decimal
	history  []Entry
	logger   *zap.Logger
	newID    func() uuid.UUID
}

// New returns a ledger of n parties with zero balances.
func New(n int, opts ...Option) (*Ledger, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeSize, n)
	}
	l := &Ledger{
		balances: make([]decimal.Decimal, n),
		logger:   zap.NewNop(),
		newID:    uuid.New,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Size returns the number of parties.
func (l *Ledger) Size() int { return len(l.balances) }

// Len returns the number of recorded transfers.
func (l *Ledger) Len() int { return len(l.history) }

// Record registers that payer paid amount on behalf of payee: the payer's
// balance rises (it is owed more), the payee's falls.
//
// The amount is rounded with core.Round2, the rule every solver applies,
// so a plan computed from a snapshot replays onto the ledger cent for cent.
// A transfer to oneself, or an amount that rounds to 0.00, is a no-op.
//
// Errors: ErrPartyOutOfRange, ErrInvalidAmount.
func (l *Ledger) Record(payer, payee core.PartyID, amount float64) error {
	if err := l.checkParty(payer); err != nil {
		return err
	}
	if err := l.checkParty(payee); err != nil {
		return err
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidAmount, amount)
	}
	if payer == payee {
		return nil
	}

	amt := decimal.NewFromFloat(core.Round2(amount))
	if amt.IsZero() {
		return nil
	}

	l.balances[payer] = l.balances[payer].Add(amt).Round(2)
	l.balances[payee] = l.balances[payee].Sub(amt).Round(2)
	l.history = append(l.history, Entry{
		ID:       l.newID(),
		Seq:      len(l.history),
		Transfer: core.Transfer{Payer: payer, Payee: payee, Amount: amt.InexactFloat64()},
	})
	return nil
}

// Apply records every transfer of a settlement plan in order. Settlement
// transfers flow from debtor to creditor, so applying a complete plan
// brings every balance back to zero.
//
// On error the transfers before the failing one stay recorded.
func (l *Ledger) Apply(transfers []core.Transfer) error {
	for i, t := range transfers {
		if err := l.Record(t.Payer, t.Payee, t.Amount); err != nil {
			return fmt.Errorf("ledger: apply transfer %d (%s): %w", i, t, err)
		}
	}
	l.logger.Debug("settlement applied",
		zap.Int("transfers", len(transfers)),
		zap.Int("history", len(l.history)),
	)
	return nil
}

// Balance returns the balance of id.
func (l *Ledger) Balance(id core.PartyID) (float64, error) {
	if err := l.checkParty(id); err != nil {
		return 0, err
	}
	return l.balances[id].InexactFloat64(), nil
}

// Snapshot returns a fresh map of every party whose |balance| is at least
// core.ActiveThreshold. Smaller balances count as settled.
func (l *Ledger) Snapshot() core.Balances {
	out := make(core.Balances)
	for i, bal := range l.balances {
		if bal.Abs().GreaterThanOrEqual(activeThreshold) {
			out[core.PartyID(i)] = bal.InexactFloat64()
		}
	}
	return out
}

// History returns a copy of the recorded entries, oldest first.
func (l *Ledger) History() []Entry {
	out := make([]Entry, len(l.history))
	copy(out, l.history)
	return out
}

// CheckInvariant verifies that the balances sum to zero within
// core.ActiveThreshold after rounding to two decimals.
//
// Errors: *IntegrityError (matches ErrIntegrity).
func (l *Ledger) CheckInvariant() error {
	sum := decimal.Zero
	for _, bal := range l.balances {
		sum = sum.Add(bal)
	}
	sum = sum.Round(2)
	if sum.Abs().GreaterThan(activeThreshold) {
		l.logger.Error("ledger integrity violated",
			zap.String("sum", sum.StringFixed(2)),
			zap.Int("parties", len(l.balances)),
			zap.Int("history", len(l.history)),
		)
		return &IntegrityError{Sum: sum}
	}
	return nil
}

func (l *Ledger) checkParty(id core.PartyID) error {
	if id < 0 || int(id) >= len(l.balances) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrPartyOutOfRange, id, len(l.balances))
	}
	return nil
}
