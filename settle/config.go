package settle

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/settleup/hybrid"
)

// HybridConfig holds the hybrid search parameters.
type HybridConfig struct {
	Iterations        int           `yaml:"iterations"`
	GreedyProbability float64       `yaml:"greedy_probability"`
	Seed              int64         `yaml:"seed"`
	Workers           int           `yaml:"workers"`
	TimeLimit         time.Duration `yaml:"time_limit"`
}

// Config selects and tunes a solver. A typical file:
//
//	algorithm: hybrid
//	verify: true
//	hybrid:
//	  iterations: 2000
//	  greedy_probability: 0.93
//	  seed: 7
//	  workers: 4
//	  time_limit: 500ms
type Config struct {
	Algorithm Algorithm    `yaml:"algorithm"`
	Hybrid    HybridConfig `yaml:"hybrid"`
	// Verify runs core.Verify on every plan before returning it.
	Verify bool `yaml:"verify"`
}

// DefaultConfig returns the layered reducer with verification on and the
// hybrid defaults filled in.
func DefaultConfig() Config {
	h := hybrid.DefaultOptions()
	return Config{
		Algorithm: Layered,
		Hybrid: HybridConfig{
			Iterations:        h.Iterations,
			GreedyProbability: h.GreedyProbability,
			Seed:              h.Seed,
			Workers:           h.Workers,
			TimeLimit:         h.TimeLimit,
		},
		Verify: true,
	}
}

// Validate checks the algorithm name and the hybrid ranges.
func (c Config) Validate() error {
	if _, err := ParseAlgorithm(string(c.Algorithm)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Hybrid.options().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (h HybridConfig) options() hybrid.Options {
	return hybrid.Options{
		Iterations:        h.Iterations,
		GreedyProbability: h.GreedyProbability,
		Seed:              h.Seed,
		Workers:           h.Workers,
		TimeLimit:         h.TimeLimit,
	}
}

// LoadConfig decodes YAML from r over DefaultConfig. Unknown keys are
// rejected; an empty document yields the defaults.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: decode: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads and decodes the YAML file at path.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("settle: open %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadConfig(f)
	if err != nil {
		return Config{}, fmt.Errorf("settle: %s: %w", path, err)
	}
	return cfg, nil
}
