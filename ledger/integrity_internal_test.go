package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestCheckInvariant_ReportsDrift corrupts a balance directly and checks
// that the violation surfaces as an IntegrityError and an error log.
func TestCheckInvariant_ReportsDrift(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l, err := New(3, WithLogger(zap.New(core)))
	require.NoError(t, err)
	require.NoError(t, l.Record(0, 1, 10))

	l.balances[2] = decimal.RequireFromString("0.01")
	require.NoError(t, l.CheckInvariant(), "0.01 is still within tolerance")

	l.balances[2] = decimal.RequireFromString("0.02")
	err = l.CheckInvariant()
	require.ErrorIs(t, err, ErrIntegrity)

	var ie *IntegrityError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "0.02", ie.Sum.StringFixed(2))
	assert.Contains(t, err.Error(), "net sum is 0.02")

	entries := logs.FilterMessage("ledger integrity violated").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "0.02", entries[0].ContextMap()["sum"])
}
