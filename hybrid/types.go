package hybrid

import (
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/settleup/core"
)

// Sentinel errors returned by Search.
var (
	// ErrBadIterations indicates Options.Iterations < 1.
	ErrBadIterations = errors.New("hybrid: iterations must be positive")

	// ErrBadProbability indicates GreedyProbability outside [0,1].
	ErrBadProbability = errors.New("hybrid: greedy probability must be within [0,1]")

	// ErrBadWorkers indicates Options.Workers < 0.
	ErrBadWorkers = errors.New("hybrid: workers must be non-negative")

	// ErrBadTimeLimit indicates Options.TimeLimit < 0.
	ErrBadTimeLimit = errors.New("hybrid: time limit must be non-negative")

	// ErrNoTrial indicates the caller's context ended before any trial finished.
	ErrNoTrial = errors.New("hybrid: no trial completed")
)

// Options configures Search.
//
//	Iterations        – number of trials (≥1). Default 1000.
//	GreedyProbability – ε, chance that a step picks from the priority
//	                    queues instead of the random lists. Default 0.90;
//	                    0.85–0.97 works well in practice.
//	Seed              – base seed; 0 selects a fixed default. Trial t uses
//	                    a stream derived from (Seed, t).
//	Workers           – goroutines running trials; 0 or 1 runs them
//	                    sequentially. Output does not depend on it.
//	TimeLimit         – wall-clock budget; 0 means none. Trial 0 always
//	                    runs; later trials are skipped once it expires.
//	Logger            – zap logger; nil means no logging.
type Options struct {
	Iterations        int
	GreedyProbability float64
	Seed              int64
	Workers           int
	TimeLimit         time.Duration
	Logger            *zap.Logger
}

// DefaultOptions returns Iterations=1000, GreedyProbability=0.90, one worker.
func DefaultOptions() Options {
	return Options{
		Iterations:        1000,
		GreedyProbability: 0.90,
		Workers:           1,
	}
}

// Validate checks Options ranges.
func (o Options) Validate() error {
	if o.Iterations < 1 {
		return fmt.Errorf("%w: %d", ErrBadIterations, o.Iterations)
	}
	if math.IsNaN(o.GreedyProbability) || o.GreedyProbability < 0 || o.GreedyProbability > 1 {
		return fmt.Errorf("%w: %v", ErrBadProbability, o.GreedyProbability)
	}
	if o.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrBadWorkers, o.Workers)
	}
	if o.TimeLimit < 0 {
		return fmt.Errorf("%w: %v", ErrBadTimeLimit, o.TimeLimit)
	}
	return nil
}

// Result is the outcome of a search.
type Result struct {
	// Transfers is the plan of the winning trial.
	Transfers []core.Transfer

	// BestTrial is the index of the winning trial: the first trial that
	// reached the minimum count.
	BestTrial int

	// Counts[t] is the transfer count of trial t, or -1 when trial t was
	// skipped because the search stopped early. It always has
	// Options.Iterations entries.
	Counts []int

	// Completed is the number of trials with a known count. When the
	// exact-match phase settles everything, every trial equals that prefix
	// and all of them count as completed without being replayed.
	Completed int
}
