// Package ledger keeps per-party net balances and the append-only history
// of transfers that produced them.
//
// Record(payer, payee, amount) means "payer paid amount on behalf of
// payee": the payer's balance increases and the payee's decreases by the
// same rounded amount, so the balances always sum to zero. CheckInvariant
// verifies that sum and fails with an IntegrityError when it drifts by
// more than 0.01.
//
// Snapshot hands solvers an independent copy of the active balances.
// Solvers never write back; Apply records a settlement plan once the
// caller decides to execute it.
//
// Arithmetic uses github.com/shopspring/decimal rounded to two places after
// every update. Entries are tagged with a uuid.
package ledger
