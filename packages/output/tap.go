package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/nadaso8/MARlea-parser/packages/core/parser"
)

// TAPFormatter reports one TAP test point per file: ok when it parsed
type TAPFormatter struct {
	writer  io.Writer
	results []tapResult
}

type tapResult struct {
	name    string
	summary string
	err     error
}

type TAPOption func(*TAPFormatter)

func NewTAPFormatter(opts ...TAPOption) *TAPFormatter {
	f := &TAPFormatter{
		writer:  os.Stdout,
		results: make([]tapResult, 0),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func TAPWithWriter(w io.Writer) TAPOption {
	return func(f *TAPFormatter) {
		f.writer = w
	}
}

func (f *TAPFormatter) FormatDocument(doc *parser.Document) {
	f.results = append(f.results, tapResult{
		name: doc.Path,
		summary: fmt.Sprintf("%d reactions, %d species counts",
			len(doc.Reactions()), len(doc.SpeciesCounts())),
	})
}

func (f *TAPFormatter) FormatError(path string, err error) {
	f.results = append(f.results, tapResult{name: path, err: err})
}

func (f *TAPFormatter) FormatHeader(version string) {
	// Header is written in Flush
}

// Flush writes the accumulated TAP output
func (f *TAPFormatter) Flush(totalDuration time.Duration) error {
	fmt.Fprintf(f.writer, "TAP version 13\n")
	fmt.Fprintf(f.writer, "1..%d\n", len(f.results))

	for i, r := range f.results {
		if r.err == nil {
			fmt.Fprintf(f.writer, "ok %d - %s # %s\n", i+1, r.name, r.summary)
			continue
		}

		fmt.Fprintf(f.writer, "not ok %d - %s\n", i+1, r.name)
		fmt.Fprintf(f.writer, "  ---\n")
		fmt.Fprintf(f.writer, "  message: %s\n", escapeYAML(r.err.Error()))
		var pe *parser.ParseError
		if errors.As(r.err, &pe) {
			fmt.Fprintf(f.writer, "  kind: %s\n", pe.Kind)
			fmt.Fprintf(f.writer, "  line: %d\n", pe.Line)
			fmt.Fprintf(f.writer, "  column: %d\n", pe.Column)
		}
		fmt.Fprintf(f.writer, "  severity: error\n")
		fmt.Fprintf(f.writer, "  ...\n")
	}

	fmt.Fprintf(f.writer, "# %d files in %dms\n", len(f.results), totalDuration.Milliseconds())
	return nil
}

func escapeYAML(s string) string {
	// Simple YAML escaping - wrap in quotes if contains special chars
	if strings.ContainsAny(s, ":\n\"'[]{}#&*!|>%@`") {
		s = strings.ReplaceAll(s, "\"", "\\\"")
		return "\"" + s + "\""
	}
	return s
}
