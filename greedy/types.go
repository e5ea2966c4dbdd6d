package greedy

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownStrategy indicates a Strategy value outside {Max, Min}.
var ErrUnknownStrategy = errors.New("greedy: unknown strategy")

// Strategy selects which end of each priority queue is matched first.
type Strategy int

const (
	// Max pairs the largest debtor with the largest creditor.
	Max Strategy = iota
	// Min pairs the smallest debtor with the smallest creditor.
	Min
)

// String returns "max" or "min".
func (s Strategy) String() string {
	switch s {
	case Max:
		return "max"
	case Min:
		return "min"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps "max"/"min" (case-insensitive) to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "max":
		return Max, nil
	case "min":
		return Min, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

func (s Strategy) validate() error {
	if s != Max && s != Min {
		return fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}
	return nil
}
