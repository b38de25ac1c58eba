package config

import "slices"

// DefaultExtensions are the file extensions treated as reaction networks.
var DefaultExtensions = []string{".crn", ".marlea", ".csv"}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Output:        "console",
		OutputFile:    "",
		Extensions:    append([]string(nil), DefaultExtensions...),
		Verbose:       nil,
		NoColor:       nil,
		Database:      "",
		WatchDebounce: 300, // milliseconds
		Bench: BenchConfig{
			Iterations:  1000,
			Concurrency: 1,
			Rate:        0,
		},
	}
}

// IsDefault returns true if the config matches defaults
func (c *Config) IsDefault() bool {
	defaults := DefaultConfig()
	return c.Output == defaults.Output &&
		c.OutputFile == defaults.OutputFile &&
		slices.Equal(c.Extensions, defaults.Extensions) &&
		c.GetVerbose() == defaults.GetVerbose() &&
		c.GetNoColor() == defaults.GetNoColor() &&
		c.Database == defaults.Database &&
		c.WatchDebounce == defaults.WatchDebounce &&
		c.Bench == defaults.Bench
}
