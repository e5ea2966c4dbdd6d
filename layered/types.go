package layered

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/settleup/core"
)

// Stage identifies one layer of the reducer.
type Stage int

const (
	// StagePairs removes exact debtor/creditor pairs (k=2).
	StagePairs Stage = iota
	// StageTriples removes zero-sum groups of three (k=3).
	StageTriples
	// StageQuads removes zero-sum groups of four (k=4).
	StageQuads
	// StageFallback settles whatever is left with the max-max greedy matcher.
	StageFallback
)

// String returns a short stage name.
func (s Stage) String() string {
	switch s {
	case StagePairs:
		return "k2"
	case StageTriples:
		return "k3"
	case StageQuads:
		return "k4"
	case StageFallback:
		return "fallback"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// StageReport describes what one stage did.
type StageReport struct {
	Stage Stage
	// In is the number of active parties handed to the stage.
	In int
	// Settled is the number of parties the stage removed from the pool.
	Settled int
	// Transfers is the number of transfers the stage emitted. They occupy
	// the next Transfers positions of Result.Transfers.
	Transfers int
}

// Result is the outcome of Reduce.
type Result struct {
	Transfers []core.Transfer
	// Stages lists every stage that ran, in order. StageQuads is absent
	// when disabled.
	Stages []StageReport
}

// Option customizes Reduce.
type Option func(*config)

type config struct {
	k4     bool
	logger *zap.Logger
}

func newConfig(opts []Option) config {
	cfg := config{k4: true, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithK4 toggles the quadratic k=4 stage (enabled by default).
func WithK4(on bool) Option {
	return func(c *config) {
		c.k4 = on
	}
}

// WithLogger attaches a zap logger for per-stage debug reports.
// Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("layered: WithLogger(nil)")
	}
	return func(c *config) {
		c.logger = l
	}
}
