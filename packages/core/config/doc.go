// Package config handles configuration loading and management for marlea.
//
// It provides functionality for:
//   - Loading configuration from .marlea.yaml or marlea.yaml files
//   - Default configuration values
//   - Merging file configuration with command line overrides
package config
