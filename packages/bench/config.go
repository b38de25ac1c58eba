// Package bench measures parser throughput by parsing network files
// repeatedly across a pool of workers and collecting latency percentiles.
package bench

import "fmt"

// Config holds the settings for one benchmark run
type Config struct {
	Iterations  int     // parses per input
	Concurrency int     // worker goroutines
	Rate        float64 // parses per second across all workers, 0 for unlimited
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Iterations:  1000,
		Concurrency: 1,
	}
}

// Validate checks if the config is valid
func (c *Config) Validate() error {
	if c.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive")
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive")
	}
	if c.Rate < 0 {
		return fmt.Errorf("rate must not be negative")
	}
	return nil
}
