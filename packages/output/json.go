package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/nadaso8/MARlea-parser/packages/core/parser"
	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

// JSONOutput represents the complete JSON output structure
type JSONOutput struct {
	Summary   JSONSummary    `json:"summary" yaml:"summary"`
	Documents []JSONDocument `json:"documents" yaml:"documents"`
	Duration  float64        `json:"duration" yaml:"duration"`
	Time      string         `json:"time" yaml:"time"`
}

// JSONSummary counts the files seen by a formatter
type JSONSummary struct {
	Total   int `json:"total" yaml:"total"`
	Valid   int `json:"valid" yaml:"valid"`
	Invalid int `json:"invalid" yaml:"invalid"`
}

// JSONDocument is one parsed file, or the error that stopped it
type JSONDocument struct {
	Path          string             `json:"path,omitempty" yaml:"path,omitempty"`
	Valid         bool               `json:"valid" yaml:"valid"`
	Error         *JSONError         `json:"error,omitempty" yaml:"error,omitempty"`
	Reactions     []JSONReaction     `json:"reactions" yaml:"reactions"`
	SpeciesCounts []JSONSpeciesCount `json:"speciesCounts" yaml:"speciesCounts"`
	Species       []string           `json:"species" yaml:"species"`
}

// JSONReaction represents a reaction record
type JSONReaction struct {
	Line      int        `json:"line" yaml:"line"`
	Reactants []JSONTerm `json:"reactants" yaml:"reactants"`
	Products  []JSONTerm `json:"products" yaml:"products"`
	Rate      uint64     `json:"rate" yaml:"rate"`
}

// JSONTerm represents a (coefficient, species) pair
type JSONTerm struct {
	Coefficient uint64 `json:"coefficient" yaml:"coefficient"`
	Species     string `json:"species" yaml:"species"`
}

// JSONSpeciesCount represents an initial count record
type JSONSpeciesCount struct {
	Line    int    `json:"line" yaml:"line"`
	Species string `json:"species" yaml:"species"`
	Count   uint64 `json:"count" yaml:"count"`
}

// JSONError carries the location of a parse failure
type JSONError struct {
	Kind     string `json:"kind" yaml:"kind"`
	Message  string `json:"message" yaml:"message"`
	Line     int    `json:"line,omitempty" yaml:"line,omitempty"`
	Column   int    `json:"column,omitempty" yaml:"column,omitempty"`
	Offset   int    `json:"offset,omitempty" yaml:"offset,omitempty"`
	Expected string `json:"expected,omitempty" yaml:"expected,omitempty"`
}

// NewJSONDocument converts a parsed document into its JSON model.
// Empty lists are rendered as [] rather than null.
func NewJSONDocument(doc *parser.Document) JSONDocument {
	out := JSONDocument{
		Path:          doc.Path,
		Valid:         true,
		Reactions:     make([]JSONReaction, 0),
		SpeciesCounts: make([]JSONSpeciesCount, 0),
		Species:       doc.Species(),
	}
	if out.Species == nil {
		out.Species = make([]string, 0)
	}
	for _, r := range doc.Records {
		switch r.Kind {
		case parser.RecordReaction:
			out.Reactions = append(out.Reactions, JSONReaction{
				Line:      r.Line,
				Reactants: jsonTerms(r.Reaction.Reactants),
				Products:  jsonTerms(r.Reaction.Products),
				Rate:      r.Reaction.Rate,
			})
		case parser.RecordSpeciesCount:
			out.SpeciesCounts = append(out.SpeciesCounts, JSONSpeciesCount{
				Line:    r.Line,
				Species: r.Species.Name,
				Count:   r.Species.Count,
			})
		}
	}
	return out
}

func newJSONErrorDocument(path string, err error) JSONDocument {
	out := JSONDocument{
		Path:          path,
		Reactions:     make([]JSONReaction, 0),
		SpeciesCounts: make([]JSONSpeciesCount, 0),
		Species:       make([]string, 0),
		Error:         &JSONError{Kind: "IOError", Message: err.Error()},
	}
	var pe *parser.ParseError
	if errors.As(err, &pe) {
		out.Error = &JSONError{
			Kind:     pe.Kind.String(),
			Message:  strings.TrimPrefix(pe.Error(), pe.File+":"),
			Line:     pe.Line,
			Column:   pe.Column,
			Offset:   pe.Offset,
			Expected: pe.Expected,
		}
	}
	return out
}

func jsonTerms(terms []parser.Term) []JSONTerm {
	out := make([]JSONTerm, len(terms))
	for i, t := range terms {
		out[i] = JSONTerm{Coefficient: t.Coefficient, Species: t.Name}
	}
	return out
}

// collector accumulates documents for the JSON and YAML formatters
type collector struct {
	documents []JSONDocument
}

func (c *collector) FormatDocument(doc *parser.Document) {
	c.documents = append(c.documents, NewJSONDocument(doc))
}

func (c *collector) FormatError(path string, err error) {
	c.documents = append(c.documents, newJSONErrorDocument(path, err))
}

func (c *collector) FormatHeader(version string) {
	// No header needed for structured output
}

func (c *collector) output(totalDuration time.Duration) JSONOutput {
	out := JSONOutput{
		Documents: c.documents,
		Duration:  float64(totalDuration.Milliseconds()),
		Time:      time.Now().Format(time.RFC3339),
	}
	if out.Documents == nil {
		out.Documents = make([]JSONDocument, 0)
	}
	for _, d := range c.documents {
		out.Summary.Total++
		if d.Valid {
			out.Summary.Valid++
		} else {
			out.Summary.Invalid++
		}
	}
	return out
}

// JSONFormatter formats parsed documents as JSON
type JSONFormatter struct {
	collector
	writer io.Writer
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

// Flush validates the accumulated output against DocumentSchema and
// writes it.
func (f *JSONFormatter) Flush(totalDuration time.Duration) error {
	data, err := json.MarshalIndent(f.output(totalDuration), "", "  ")
	if err != nil {
		return err
	}
	if err := ValidateJSON(data); err != nil {
		return err
	}
	_, err = f.writer.Write(append(data, '\n'))
	return err
}

// ValidateJSON checks data against DocumentSchema
func ValidateJSON(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(DocumentSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("output does not match schema: %s", strings.Join(msgs, "; "))
}

// Query evaluates a gjson path against the JSON model of doc, for
// example "reactions.#.rate" or "speciesCounts.#(species==\"A\").count".
func Query(doc *parser.Document, path string) (gjson.Result, error) {
	data, err := json.Marshal(NewJSONDocument(doc))
	if err != nil {
		return gjson.Result{}, err
	}
	if !gjson.ValidBytes(data) {
		return gjson.Result{}, fmt.Errorf("invalid JSON rendering of %s", doc.Path)
	}
	result := gjson.GetBytes(data, path)
	if !result.Exists() {
		return result, fmt.Errorf("path %q matched nothing", path)
	}
	return result, nil
}
