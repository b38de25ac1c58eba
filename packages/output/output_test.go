package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/nadaso8/MARlea-parser/packages/core/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

const sampleNetwork = `2 A + B => C, 5
// initialize species
A, 100
NULL => D, 1,,,`

func parseSample(t *testing.T) *parser.Document {
	t.Helper()
	doc, err := parser.Parse(sampleNetwork)
	require.NoError(t, err)
	doc.Path = "sample.crn"
	return doc
}

func TestConsoleFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true), WithVerbose(true))
	f.FormatDocument(parseSample(t))

	out := buf.String()
	assert.Contains(t, out, "sample.crn")
	assert.Contains(t, out, "2 reactions, 1 species counts, 4 species")
	assert.Contains(t, out, "2 A + 1 B => 1 C, 5")
	assert.Contains(t, out, "A, 100")
	assert.Contains(t, out, "NULL => 1 D, 1")
}

func TestConsoleFormatter_Error(t *testing.T) {
	_, err := parser.Parse("A, 1\nA\tB, 0")
	require.Error(t, err)

	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))
	f.FormatError("bad.crn", err)

	out := buf.String()
	assert.Contains(t, out, "bad.crn")
	assert.Contains(t, out, "UnrecognizedLine")
	assert.Contains(t, out, "   2 | A\tB, 0")
	assert.Contains(t, out, "       | ^")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(JSONWithWriter(&buf))
	f.FormatDocument(parseSample(t))
	_, err := parser.Parse("A +")
	require.Error(t, err)
	f.FormatError("broken.crn", err)
	require.NoError(t, f.Flush(12*time.Millisecond))

	data := buf.Bytes()
	require.True(t, gjson.ValidBytes(data))
	require.NoError(t, ValidateJSON(data))

	assert.Equal(t, int64(2), gjson.GetBytes(data, "summary.total").Int())
	assert.Equal(t, int64(1), gjson.GetBytes(data, "summary.invalid").Int())
	assert.Equal(t, "sample.crn", gjson.GetBytes(data, "documents.0.path").String())
	assert.Equal(t, `[5,1]`, gjson.GetBytes(data, "documents.0.reactions.#.rate").Raw)
	assert.Equal(t, `[]`, gjson.GetBytes(data, "documents.0.reactions.1.reactants").Raw)
	assert.Equal(t, int64(3), gjson.GetBytes(data, "documents.0.speciesCounts.0.line").Int())
	assert.Equal(t, "UnrecognizedLine", gjson.GetBytes(data, "documents.1.error.kind").String())
	assert.False(t, gjson.GetBytes(data, "documents.1.valid").Bool())
}

func TestJSONFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(JSONWithWriter(&buf))
	require.NoError(t, f.Flush(0))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.NotNil(t, out.Documents)
	assert.Equal(t, 0, out.Summary.Total)
}

func TestValidateJSON_Rejects(t *testing.T) {
	err := ValidateJSON([]byte(`{"summary": {"total": 1, "valid": 1, "invalid": 0}, "documents": [
		{"valid": true, "reactions": [{"line": 1, "reactants": [], "products": [], "rate": 0}],
		 "speciesCounts": [], "species": []}], "duration": 0, "time": "now"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate")
}

func TestQuery(t *testing.T) {
	doc := parseSample(t)

	result, err := Query(doc, `speciesCounts.#(species=="A").count`)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), result.Uint())

	result, err = Query(doc, "reactions.0.reactants.#.species")
	require.NoError(t, err)
	assert.Equal(t, `["A","B"]`, result.Raw)

	_, err = Query(doc, "reactions.9")
	assert.Error(t, err)
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewYAMLFormatter(YAMLWithWriter(&buf))
	f.FormatDocument(parseSample(t))
	require.NoError(t, f.Flush(time.Millisecond))

	var out JSONOutput
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out.Documents, 1)
	assert.Equal(t, "sample.crn", out.Documents[0].Path)
	require.Len(t, out.Documents[0].Reactions, 2)
	assert.Equal(t, []JSONTerm{{Coefficient: 2, Species: "A"}, {Coefficient: 1, Species: "B"}},
		out.Documents[0].Reactions[0].Reactants)
	assert.Equal(t, []string{"A", "B", "C", "D"}, out.Documents[0].Species)
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewTextFormatter(&buf)
	f.FormatDocument(parseSample(t))
	f.FormatError("bad.crn", errors.New("boom"))

	assert.Equal(t, "// sample.crn\n2 A + 1 B => 1 C, 5\nA, 100\nNULL => 1 D, 1\n// error: boom\n", buf.String())

	doc, err := parser.Parse(buf.String())
	require.NoError(t, err)
	assert.Len(t, doc.Records, 3)
}

func TestTAPFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewTAPFormatter(TAPWithWriter(&buf))
	f.FormatDocument(parseSample(t))
	_, err := parser.Parse("A, 0")
	require.Error(t, err)
	f.FormatError("bad.crn", err)
	require.NoError(t, f.Flush(0))

	out := buf.String()
	assert.Contains(t, out, "TAP version 13\n1..2\n")
	assert.Contains(t, out, "ok 1 - sample.crn # 2 reactions, 1 species counts\n")
	assert.Contains(t, out, "not ok 2 - bad.crn\n")
	assert.Contains(t, out, "  kind: MalformedSpeciesCount\n")
	assert.Contains(t, out, "  column: 4\n")
}

func TestNewFormatter(t *testing.T) {
	var buf bytes.Buffer
	for _, name := range Formats {
		f, err := NewFormatter(name, &buf, false, true)
		require.NoError(t, err, name)
		assert.NotNil(t, f)
	}

	f, err := NewFormatter("json", &buf, false, true)
	require.NoError(t, err)
	_, ok := f.(Flushable)
	assert.True(t, ok)

	_, err = NewFormatter("xml", &buf, false, true)
	assert.Error(t, err)
}
