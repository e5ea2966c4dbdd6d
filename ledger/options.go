package ledger

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Option customizes a Ledger at construction time.
type Option func(*Ledger)

// WithLogger attaches a zap logger. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("ledger: WithLogger(nil)")
	}
	return func(lg *Ledger) {
		lg.logger = l
	}
}

// WithIDGenerator overrides the entry id source (uuid.New by default).
// Tests use it to get stable ids. Panics on nil.
func WithIDGenerator(fn func() uuid.UUID) Option {
	if fn == nil {
		panic("ledger: WithIDGenerator(nil)")
	}
	return func(lg *Ledger) {
		lg.newID = fn
	}
}
