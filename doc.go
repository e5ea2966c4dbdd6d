// Package settleup turns a group's net balances into a short list of
// payments that brings every balance back to zero.
//
// The module is organized as one package per concern:
//
//	core/      party ids, balances, transfers, validation and closure checks
//	ledger/    decimal-exact balance book built from bilateral transfers
//	greedy/    priority-queue matcher (max-max or min-min) with exact matching
//	hybrid/    seeded multi-trial search mixing greedy and random picks
//	layered/   zero-sum pair, trio and quad removal before a greedy fallback
//	settle/    YAML-configured dispatcher over all solvers
//
// A minimal round trip:
//
//	l, _ := ledger.New(3)
//	_ = l.Record(0, 1, 60)
//	_ = l.Record(0, 2, 60)
//	res, _ := settle.Solve(ctx, l.Snapshot(), settle.DefaultConfig())
//	_ = l.Apply(res.Transfers)
//
// Amounts carry two decimals. A transfer's Payer is the party whose balance
// was negative; its Payee had the positive balance.
package settleup
