package settle_test

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/settleup/core"
	"github.com/katalvlaran/settleup/settle"
)

func configFor(a settle.Algorithm) settle.Config {
	cfg := settle.DefaultConfig()
	cfg.Algorithm = a
	cfg.Hybrid.Iterations = 50
	cfg.Hybrid.Seed = 3
	return cfg
}

func TestSolve_SinglePairEverySolver(t *testing.T) {
	for _, a := range settle.Algorithms() {
		res, err := settle.Solve(context.Background(), core.Balances{0: -50, 1: 50}, configFor(a))
		require.NoError(t, err, a.String())
		assert.Equal(t, []core.Transfer{{Payer: 0, Payee: 1, Amount: 50}}, res.Transfers, a.String())
		assert.Equal(t, a, res.Algorithm)
		assert.Equal(t, 1, res.LowerBound)
		assert.Equal(t, 1, res.UpperBound)
	}
}

func TestSolve_EmptyEverySolver(t *testing.T) {
	for _, a := range settle.Algorithms() {
		res, err := settle.Solve(context.Background(), core.Balances{}, configFor(a))
		require.NoError(t, err, a.String())
		assert.Empty(t, res.Transfers, a.String())
	}
}

func TestSolve_ClosureEverySolver(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	for i := 0; i < 20; i++ {
		b := randomBalances(rng, 2+rng.Intn(25))
		for _, a := range settle.Algorithms() {
			res, err := settle.Solve(context.Background(), b, configFor(a))
			require.NoError(t, err, "%s on %v", a, b)
			require.GreaterOrEqual(t, len(res.Transfers), res.LowerBound)
			require.LessOrEqual(t, len(res.Transfers), res.UpperBound)
		}
	}
}

// TestSolve_CentImbalanceVerifies checks that input off by one cent, which
// the zero-sum check admits, also passes verification for every solver.
func TestSolve_CentImbalanceVerifies(t *testing.T) {
	b := core.Balances{0: -10, 1: 10.01}
	for _, a := range settle.Algorithms() {
		cfg := configFor(a)
		require.True(t, cfg.Verify)
		res, err := settle.Solve(context.Background(), b, cfg)
		require.NoError(t, err, a.String())
		assert.Equal(t, []core.Transfer{{Payer: 0, Payee: 1, Amount: 10}}, res.Transfers, a.String())
	}
}

func TestSolve_LayeredK4Toggle(t *testing.T) {
	b := core.Balances{0: -30, 1: 10, 2: 10, 3: 10}
	for _, a := range []settle.Algorithm{settle.Layered, settle.LayeredK4} {
		res, err := settle.Solve(context.Background(), b, configFor(a))
		require.NoError(t, err)
		assert.Len(t, res.Transfers, 3, a.String())
	}
}

func TestSolve_Rejects(t *testing.T) {
	ctx := context.Background()
	cfg := settle.DefaultConfig()

	_, err := settle.Solve(ctx, core.Balances{0: -10, 1: 4}, cfg)
	require.ErrorIs(t, err, core.ErrUnbalanced)

	_, err = settle.Solve(ctx, core.Balances{-1: 0}, cfg)
	require.ErrorIs(t, err, core.ErrNegativeParty)

	cfg.Algorithm = "simplex"
	_, err = settle.Solve(ctx, core.Balances{0: -1, 1: 1}, cfg)
	require.ErrorIs(t, err, settle.ErrInvalidConfig)
	require.ErrorIs(t, err, settle.ErrUnknownAlgorithm)
}

func TestSolve_HybridCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := settle.Solve(ctx, core.Balances{0: -5, 1: 2, 2: 3}, configFor(settle.Hybrid))
	require.ErrorIs(t, err, context.Canceled)
}

func TestSolve_LogsSummary(t *testing.T) {
	obsCore, logs := observer.New(zapcore.InfoLevel)
	b := core.Balances{0: -85, 1: -81, 2: -19, 3: 100, 4: 62, 5: 23}

	res, err := settle.Solve(context.Background(), b, configFor(settle.GreedyMax), settle.WithLogger(zap.New(obsCore)))
	require.NoError(t, err)

	entries := logs.FilterMessage("settlement computed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "greedy-max", fields["algorithm"])
	assert.EqualValues(t, 6, fields["parties"])
	assert.EqualValues(t, len(res.Transfers), fields["transfers"])
	assert.EqualValues(t, 3, fields["lower_bound"])
	assert.EqualValues(t, 5, fields["upper_bound"])
}

func TestNew(t *testing.T) {
	s, err := settle.New(configFor(settle.GreedyMin))
	require.NoError(t, err)
	got, err := s.Solve(context.Background(), core.Balances{0: -30, 1: 5, 2: 25})
	require.NoError(t, err)
	assert.Equal(t, []core.Transfer{
		{Payer: 0, Payee: 1, Amount: 5},
		{Payer: 0, Payee: 2, Amount: 25},
	}, got)

	_, err = settle.New(settle.Config{Algorithm: "exact"})
	require.ErrorIs(t, err, settle.ErrInvalidConfig)
}

func TestWithLogger_PanicsOnNil(t *testing.T) {
	require.Panics(t, func() { settle.WithLogger(nil) })
}

func TestParseAlgorithm(t *testing.T) {
	a, err := settle.ParseAlgorithm(" Layered-K4 ")
	require.NoError(t, err)
	assert.Equal(t, settle.LayeredK4, a)

	_, err = settle.ParseAlgorithm("brute")
	require.ErrorIs(t, err, settle.ErrUnknownAlgorithm)

	var parsed settle.Algorithm
	require.NoError(t, parsed.UnmarshalText([]byte("HYBRID")))
	assert.Equal(t, settle.Hybrid, parsed)
	text, err := parsed.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "hybrid", string(text))
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		want    func(*settle.Config)
		wantErr bool
	}{
		{
			name: "empty document keeps defaults",
			yaml: "",
			want: func(*settle.Config) {},
		},
		{
			name: "algorithm only",
			yaml: "algorithm: greedy-min\n",
			want: func(c *settle.Config) { c.Algorithm = settle.GreedyMin },
		},
		{
			name: "full hybrid block",
			yaml: `
algorithm: hybrid
verify: false
hybrid:
  iterations: 2000
  greedy_probability: 0.93
  seed: 7
  workers: 4
  time_limit: 500ms
`,
			want: func(c *settle.Config) {
				c.Algorithm = settle.Hybrid
				c.Verify = false
				c.Hybrid = settle.HybridConfig{
					Iterations:        2000,
					GreedyProbability: 0.93,
					Seed:              7,
					Workers:           4,
					TimeLimit:         500 * time.Millisecond,
				}
			},
		},
		{
			name: "partial hybrid block keeps other defaults",
			yaml: "hybrid:\n  seed: 9\n",
			want: func(c *settle.Config) { c.Hybrid.Seed = 9 },
		},
		{name: "unknown key", yaml: "algorithm: layered\ncolour: red\n", wantErr: true},
		{name: "unknown algorithm", yaml: "algorithm: simplex\n", wantErr: true},
		{name: "probability out of range", yaml: "hybrid:\n  greedy_probability: 1.5\n", wantErr: true},
		{name: "zero iterations", yaml: "hybrid:\n  iterations: 0\n", wantErr: true},
		{name: "malformed", yaml: "algorithm: [\n", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := settle.LoadConfig(strings.NewReader(tc.yaml))
			if tc.wantErr {
				require.ErrorIs(t, err, settle.ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			want := settle.DefaultConfig()
			tc.want(&want)
			assert.Equal(t, want, got)
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settle.yaml")
	require.NoError(t, os.WriteFile(path, []byte("algorithm: layered-k4\nverify: true\n"), 0o600))

	cfg, err := settle.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, settle.LayeredK4, cfg.Algorithm)

	_, err = settle.LoadConfigFile(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

// randomBalances simulates 2n random cent payments among n parties.
func randomBalances(rng *rand.Rand, n int) core.Balances {
	bal := make([]float64, n)
	for k := 0; k < 2*n; k++ {
		u, v := rng.Intn(n), rng.Intn(n)
		if u == v {
			continue
		}
		amt := core.Round2(1 + rng.Float64()*99)
		bal[u] = core.Round2(bal[u] + amt)
		bal[v] = core.Round2(bal[v] - amt)
	}
	out := core.Balances{}
	for i, x := range bal {
		if x != 0 {
			out[core.PartyID(i)] = x
		}
	}
	return out
}
