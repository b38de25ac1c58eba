package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/nadaso8/MARlea-parser/packages/core/parser"
)

// Formatter is implemented by every output format
type Formatter interface {
	FormatDocument(doc *parser.Document)
	FormatError(path string, err error)
	FormatHeader(version string)
}

// Flushable is implemented by formatters that write everything at the end
type Flushable interface {
	Flush(totalDuration time.Duration) error
}

// Formats lists the names accepted by NewFormatter
var Formats = []string{"console", "json", "yaml", "text", "tap"}

// NewFormatter returns the formatter registered under name
func NewFormatter(name string, w io.Writer, verbose, noColor bool) (Formatter, error) {
	switch strings.ToLower(name) {
	case "", "console":
		return NewConsoleFormatter(WithWriter(w), WithVerbose(verbose), WithNoColor(noColor)), nil
	case "json":
		return NewJSONFormatter(JSONWithWriter(w)), nil
	case "yaml", "yml":
		return NewYAMLFormatter(YAMLWithWriter(w)), nil
	case "text":
		return NewTextFormatter(w), nil
	case "tap":
		return NewTAPFormatter(TAPWithWriter(w)), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want one of %s)", name, strings.Join(Formats, ", "))
	}
}
