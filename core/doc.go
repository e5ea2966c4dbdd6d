// Package core defines the value types shared by every settlement solver
// and by the ledger: party identifiers, directed transfers, balance
// snapshots and the Solver contract.
//
// Sign convention:
//
//	balance > 0  creditor (is owed money)
//	balance < 0  debtor   (owes money)
//	balance == 0 settled
//
// A Transfer always flows from a debtor (Payer) to a creditor (Payee).
// Downstream consumers read it as "Payer sends Amount to Payee".
//
// Precision:
//
// Every amount and balance carries two decimal places. Round2 is applied
// after each arithmetic update so floating error cannot accumulate across
// long chains of operations. Two tolerances coexist and are deliberately
// kept apart:
//
//   - SettleEpsilon (0.001): local cleanup inside solvers; a remainder below
//     it means the party is settled.
//   - ActiveThreshold (0.01): global accounting; balances below it are
//     excluded from ledger snapshots and sums beyond it break integrity.
//
// Helpers:
//
//   - Validate rejects negative ids and non-finite balances.
//   - CheckZeroSum enforces the zero-sum precondition (ErrUnbalanced).
//   - Verify checks that a transfer list closes every balance.
//   - Bounds returns the max(#debtors,#creditors) .. #active-1 count range.
package core
