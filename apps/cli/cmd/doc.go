// Package cmd implements the marlea CLI commands using Cobra.
//
// Available commands:
//   - parse: Parse network files and print them in a chosen format
//   - validate: Check syntax, optionally re-checking on every save
//   - list: Summarize the reactions and species of each file
//   - fmt: Print or rewrite files in canonical form
//   - export: Store parsed networks in a SQLite database
//   - query: Evaluate a gjson path against a parsed network
//   - bench: Measure parser throughput
//   - init: Write a .marlea.yaml config file
//   - version: Show version information
package cmd
