package types

import (
	"os"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the search service.
type Config struct {
	// Search configuration
	Search SearchConfig `yaml:"search"`

	// Request queue configuration
	Queue QueueConfig `yaml:"queue"`

	// Logging configuration
	Log LogConfig `yaml:"log"`
}

// SearchConfig holds ranking and parallelism configuration.
type SearchConfig struct {
	MaxResults int     `yaml:"max_results"` // top-K cutoff for ranked results
	Epsilon    float64 `yaml:"epsilon"`     // relevance equality tolerance
	ShardCount int     `yaml:"shard_count"` // buckets in the concurrent relevance map
	Workers    int     `yaml:"workers"`     // goroutines per parallel operation
}

// QueueConfig holds request statistics queue configuration.
type QueueConfig struct {
	WindowWidth int `yaml:"window_width"` // logical ticks retained by the sliding window
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
	Output string `yaml:"output"` // stdout, stderr, file path
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			MaxResults: 5,
			Epsilon:    1e-6,
			ShardCount: 100,
			Workers:    runtime.NumCPU(),
		},
		Queue: QueueConfig{
			WindowWidth: 1440,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
	}
}

// Load reads a YAML config file on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapError("types.Load", ErrInvalidArg, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, WrapError("types.Load", ErrInvalidArg, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the engine cannot run with.
func (c *Config) Validate() error {
	if c.Search.MaxResults <= 0 {
		return Errorf("types.Validate", ErrInvalidArg, "search.max_results must be positive, got %d", c.Search.MaxResults)
	}
	if c.Search.Epsilon <= 0 {
		return Errorf("types.Validate", ErrInvalidArg, "search.epsilon must be positive, got %g", c.Search.Epsilon)
	}
	if c.Search.ShardCount <= 0 {
		return Errorf("types.Validate", ErrInvalidArg, "search.shard_count must be positive, got %d", c.Search.ShardCount)
	}
	if c.Search.Workers <= 0 {
		c.Search.Workers = runtime.NumCPU()
	}
	if c.Queue.WindowWidth <= 0 {
		return Errorf("types.Validate", ErrInvalidArg, "queue.window_width must be positive, got %d", c.Queue.WindowWidth)
	}
	return nil
}
