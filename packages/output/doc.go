// Package output provides formatters for displaying parsed reaction networks.
//
// Supported output formats:
//   - Console: Human-readable colored terminal output
//   - JSON: Machine-readable JSON output, checked against a JSON schema
//   - YAML: The JSON document model rendered as YAML
//   - Text: Canonical network text, the same format the parser reads
//   - TAP: Test Anything Protocol, one test point per validated file
//
// Each formatter implements the Formatter interface and can optionally
// implement Flushable for formats that accumulate documents before output.
package output
