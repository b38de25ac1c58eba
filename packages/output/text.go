package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/nadaso8/MARlea-parser/packages/core/parser"
)

// TextFormatter writes canonical network text. Errors become comment
// lines so the output stays parseable.
type TextFormatter struct {
	writer io.Writer
}

func NewTextFormatter(w io.Writer) *TextFormatter {
	return &TextFormatter{writer: w}
}

func (f *TextFormatter) FormatDocument(doc *parser.Document) {
	if doc.Path != "" {
		fmt.Fprintf(f.writer, "// %s\n", doc.Path)
	}
	fmt.Fprint(f.writer, parser.Format(doc))
}

func (f *TextFormatter) FormatError(path string, err error) {
	for _, line := range strings.Split(err.Error(), "\n") {
		fmt.Fprintf(f.writer, "// error: %s\n", line)
	}
}

func (f *TextFormatter) FormatHeader(version string) {
	fmt.Fprintf(f.writer, "// marlea %s\n", version)
}
