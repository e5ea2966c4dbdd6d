package settle

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/settleup/core"
)

// Sentinel errors returned by the dispatcher and the config loader.
var (
	// ErrUnknownAlgorithm indicates an algorithm name outside the known set.
	ErrUnknownAlgorithm = errors.New("settle: unknown algorithm")

	// ErrInvalidConfig wraps every config decoding or range error.
	ErrInvalidConfig = errors.New("settle: invalid config")
)

// Algorithm names a settlement solver.
type Algorithm string

// Known algorithms.
const (
	GreedyMax Algorithm = "greedy-max"
	GreedyMin Algorithm = "greedy-min"
	Hybrid    Algorithm = "hybrid"
	Layered   Algorithm = "layered"
	LayeredK4 Algorithm = "layered-k4"
)

// Algorithms lists every known algorithm in a stable order.
func Algorithms() []Algorithm {
	return []Algorithm{GreedyMax, GreedyMin, Hybrid, Layered, LayeredK4}
}

// ParseAlgorithm maps a case-insensitive name to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	a := Algorithm(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Algorithms() {
		if a == known {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// String implements fmt.Stringer.
func (a Algorithm) String() string { return string(a) }

// MarshalText implements encoding.TextMarshaler.
func (a Algorithm) MarshalText() ([]byte, error) {
	return []byte(a), nil
}

// UnmarshalText implements encoding.TextUnmarshaler and rejects unknown
// names.
func (a *Algorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Result is the outcome of Solve.
type Result struct {
	Algorithm Algorithm
	Transfers []core.Transfer
	// LowerBound and UpperBound are core.Bounds of the input.
	LowerBound int
	UpperBound int
	Elapsed    time.Duration
}

// Option customizes Solve and New.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

func newOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger routes dispatcher and solver logs to l. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("settle: WithLogger(nil)")
	}
	return func(o *options) {
		o.logger = l
	}
}
