package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/nadaso8/MARlea-parser/packages/core/parser"
)

type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

func (f *ConsoleFormatter) FormatDocument(doc *parser.Document) {
	green := color.New(color.FgGreen).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	name := doc.Path
	if name == "" {
		name = "<input>"
	}
	fmt.Fprintf(f.writer, "%s %s\n", green("✓"), bold(name))
	fmt.Fprintf(f.writer, "  %d reactions, %d species counts, %d species\n",
		len(doc.Reactions()), len(doc.SpeciesCounts()), len(doc.Species()))

	if !f.verbose {
		return
	}
	for _, r := range doc.Records {
		var text string
		switch r.Kind {
		case parser.RecordReaction:
			text = r.Reaction.String()
		case parser.RecordSpeciesCount:
			text = r.Species.String()
		}
		fmt.Fprintf(f.writer, "  %s %-8s %s\n", cyan(fmt.Sprintf("%4d", r.Line)), r.Kind, text)
	}
}

func (f *ConsoleFormatter) FormatError(path string, err error) {
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	if path == "" {
		fmt.Fprintf(f.writer, "%s %v\n", red("Error:"), err)
		return
	}
	fmt.Fprintf(f.writer, "%s %s\n", red("✗"), path)

	var pe *parser.ParseError
	if !errors.As(err, &pe) {
		fmt.Fprintf(f.writer, "  %v\n", err)
		return
	}
	fmt.Fprintf(f.writer, "  %s %s\n", yellow(pe.Kind.String()), strings.TrimPrefix(pe.Error(), pe.File+":"))
	if pe.Snippet != "" {
		fmt.Fprintf(f.writer, "  %4d | %s\n", pe.Line, pe.Snippet)
		fmt.Fprintf(f.writer, "       | %s%s\n", caretPadding(pe.Snippet, pe.Column), red("^"))
	}
}

func (f *ConsoleFormatter) FormatHeader(version string) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(f.writer, "%s %s\n", bold("marlea"), version)
}

// caretPadding keeps tabs from the snippet so the caret lines up.
func caretPadding(snippet string, column int) string {
	var b strings.Builder
	for i := 0; i < column-1 && i < len(snippet); i++ {
		if snippet[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
