package core_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/settleup/core"
)

func TestRound2(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{1.004, 1},
		{1.005, 1}, // 1.005 is stored just below the half cent
		{1.006, 1.01},
		{-2.676, -2.68},
		{19.999, 20},
		{100 - 85, 15},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, core.Round2(tc.in), "Round2(%v)", tc.in)
	}
	// Equal cents must produce the identical key.
	assert.Equal(t, core.Round2(23-19), core.Round2(19-15))
	assert.Equal(t, 4.0, core.Abs2(-4.001))
}

func TestValidate(t *testing.T) {
	require.NoError(t, core.Validate(core.Balances{0: -1, 1: 1}))
	require.NoError(t, core.Validate(nil))

	err := core.Validate(core.Balances{-1: 5, 0: -5})
	require.ErrorIs(t, err, core.ErrNegativeParty)

	err = core.Validate(core.Balances{0: math.NaN()})
	require.ErrorIs(t, err, core.ErrInvalidBalance)

	err = core.Validate(core.Balances{0: math.Inf(-1)})
	require.ErrorIs(t, err, core.ErrInvalidBalance)
}

func TestActive_SortsRoundsAndDropsZeros(t *testing.T) {
	got := core.Active(core.Balances{3: 1.004, 1: -0.004, 0: -1.0, 7: 0})
	require.Equal(t, []core.Entry{{ID: 0, Balance: -1}, {ID: 3, Balance: 1}}, got)
}

func TestCheckZeroSum(t *testing.T) {
	require.NoError(t, core.CheckZeroSum(core.Balances{}))
	require.NoError(t, core.CheckZeroSum(core.Balances{0: -10.10, 1: 3.03, 2: 7.07}))
	require.NoError(t, core.CheckZeroSum(core.Balances{0: -10, 1: 10.01}))

	err := core.CheckZeroSum(core.Balances{0: -10, 1: 10.02})
	require.ErrorIs(t, err, core.ErrUnbalanced)
}

func TestBounds(t *testing.T) {
	lo, hi := core.Bounds(core.Balances{})
	assert.Equal(t, 0, lo)
	assert.Equal(t, 0, hi)

	lo, hi = core.Bounds(core.Balances{0: -85, 1: -81, 2: -19, 3: 100, 4: 62, 5: 23})
	assert.Equal(t, 3, lo)
	assert.Equal(t, 5, hi)

	lo, hi = core.Bounds(core.Balances{0: -30, 1: 10, 2: 10, 3: 10})
	assert.Equal(t, 3, lo)
	assert.Equal(t, 3, hi)
}

func TestVerify(t *testing.T) {
	b := core.Balances{0: -50, 1: 30, 2: 20}

	require.NoError(t, core.Verify(b, []core.Transfer{{0, 1, 30}, {0, 2, 20}}))

	err := core.Verify(b, []core.Transfer{{0, 1, 30}})
	require.ErrorIs(t, err, core.ErrIncompleteSettlement)
	var ce *core.ClosureError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, core.Balances{0: -20, 2: 20}, ce.Residual)

	err = core.Verify(b, []core.Transfer{{1, 0, 30}, {0, 2, 20}})
	require.ErrorIs(t, err, core.ErrIncompleteSettlement, "reversed direction")

	err = core.Verify(b, []core.Transfer{{0, 1, 0}, {0, 1, 30}, {0, 2, 20}})
	require.ErrorIs(t, err, core.ErrIncompleteSettlement, "zero amount")

	require.NoError(t, core.Verify(core.Balances{}, nil))
}

// TestVerify_CentTolerance checks that a one-cent leftover, the most
// CheckZeroSum lets through, still counts as settled while two cents do not.
func TestVerify_CentTolerance(t *testing.T) {
	b := core.Balances{0: -10, 1: 10.01}
	require.NoError(t, core.CheckZeroSum(b))

	plan := []core.Transfer{{Payer: 0, Payee: 1, Amount: 10}}
	assert.Empty(t, core.Residual(b, plan))
	require.NoError(t, core.Verify(b, plan))

	b = core.Balances{0: -10, 1: 10.02}
	err := core.Verify(b, plan)
	require.ErrorIs(t, err, core.ErrIncompleteSettlement)
	var ce *core.ClosureError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, core.Balances{1: 0.02}, ce.Residual)
}

func TestSide(t *testing.T) {
	assert.Equal(t, core.Debtor, core.SideOf(-0.01))
	assert.Equal(t, core.Creditor, core.SideOf(0.01))
	assert.Equal(t, core.Creditor, core.Debtor.Opposite())
	assert.Equal(t, "debtor", core.Debtor.String())
	assert.Equal(t, "2->5: 4.00", core.Transfer{Payer: 2, Payee: 5, Amount: 4}.String())
}
