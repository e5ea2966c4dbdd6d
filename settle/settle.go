package settle

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/settleup/core"
	"github.com/katalvlaran/settleup/greedy"
	"github.com/katalvlaran/settleup/hybrid"
	"github.com/katalvlaran/settleup/layered"
)

// New builds the solver cfg names.
//
// Errors: ErrInvalidConfig.
func New(cfg Config, opts ...Option) (core.Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return build(cfg, newOptions(opts)), nil
}

func build(cfg Config, o options) core.Solver {
	switch cfg.Algorithm {
	case GreedyMin:
		return greedy.Matcher{Strategy: greedy.Min}
	case Hybrid:
		h := cfg.Hybrid.options()
		h.Logger = o.logger
		return hybrid.Searcher{Options: h}
	case Layered:
		return layered.NewReducer(layered.WithK4(false), layered.WithLogger(o.logger))
	case LayeredK4:
		return layered.NewReducer(layered.WithK4(true), layered.WithLogger(o.logger))
	default:
		return greedy.Matcher{Strategy: greedy.Max}
	}
}

// Solve checks b, runs the configured solver and, when cfg.Verify is set,
// checks that the plan closes every balance.
//
// A hybrid search cut short by ctx returns its best plan together with the
// context error.
//
// Errors: ErrInvalidConfig, core.ErrNegativeParty, core.ErrInvalidBalance,
// core.ErrUnbalanced, core.ErrIncompleteSettlement.
func Solve(ctx context.Context, b core.Balances, cfg Config, opts ...Option) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if err := core.Validate(b); err != nil {
		return Result{}, err
	}
	if err := core.CheckZeroSum(b); err != nil {
		return Result{}, err
	}
	o := newOptions(opts)

	res := Result{Algorithm: cfg.Algorithm}
	res.LowerBound, res.UpperBound = core.Bounds(b)

	start := time.Now()
	txs, err := build(cfg, o).Solve(ctx, b)
	res.Elapsed = time.Since(start)
	res.Transfers = txs
	if err != nil {
		return res, fmt.Errorf("settle: %s: %w", cfg.Algorithm, err)
	}
	if cfg.Verify {
		if err := core.Verify(b, txs); err != nil {
			return res, fmt.Errorf("settle: %s: %w", cfg.Algorithm, err)
		}
	}

	o.logger.Info("settlement computed",
		zap.Stringer("algorithm", cfg.Algorithm),
		zap.Int("parties", len(core.Active(b))),
		zap.Int("transfers", len(txs)),
		zap.Int("lower_bound", res.LowerBound),
		zap.Int("upper_bound", res.UpperBound),
		zap.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}
