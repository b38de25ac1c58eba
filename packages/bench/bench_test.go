package bench

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name   string
		config Config
	}{
		{"zero iterations", Config{Iterations: 0, Concurrency: 1}},
		{"zero concurrency", Config{Iterations: 1, Concurrency: 0}},
		{"negative rate", Config{Iterations: 1, Concurrency: 1, Rate: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.config.Validate())
		})
	}
}

func TestMetricsRecord(t *testing.T) {
	m := NewMetrics()
	m.Start()
	m.Record("a.crn", 10, 100*time.Microsecond, nil)
	m.Record("a.crn", 10, 300*time.Microsecond, nil)
	m.Record("b.crn", 5, 200*time.Microsecond, errors.New("bad"))
	m.Stop()

	s := m.GetSummary()
	assert.Equal(t, int64(3), s.Total)
	assert.Equal(t, int64(1), s.Errors)
	assert.Equal(t, int64(25), s.Bytes)
	assert.InDelta(t, float64(100*time.Microsecond), float64(s.Min), float64(time.Microsecond))
	assert.InDelta(t, float64(300*time.Microsecond), float64(s.Max), float64(time.Microsecond))

	require.Len(t, s.Inputs, 2)
	assert.Equal(t, "a.crn", s.Inputs[0].Name)
	assert.Equal(t, int64(2), s.Inputs[0].Total)
	assert.Equal(t, int64(0), s.Inputs[0].Errors)
	assert.Equal(t, "b.crn", s.Inputs[1].Name)
	assert.Equal(t, int64(1), s.Inputs[1].Errors)
}

func TestMetricsClampsLatency(t *testing.T) {
	m := NewMetrics()
	m.Record("x", 0, 0, nil)
	m.Record("x", 0, time.Minute, nil)

	s := m.GetSummary()
	assert.Equal(t, int64(2), s.Total)
	assert.LessOrEqual(t, s.Max, time.Duration(maxLatency)+10*time.Millisecond)
	assert.GreaterOrEqual(t, s.Min, time.Duration(1))
}

func TestRunner_Run(t *testing.T) {
	r, err := NewRunner(&Config{Iterations: 20, Concurrency: 4})
	require.NoError(t, err)

	s, err := r.Run(context.Background(), []Input{
		{Name: "good", Content: "2 A + B => C, 5\nA, 100\n"},
		{Name: "bad", Content: "A => B\n"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(40), s.Total)
	assert.Equal(t, int64(20), s.Errors)
	require.Len(t, s.Inputs, 2)
	assert.Equal(t, "bad", s.Inputs[0].Name)
	assert.Equal(t, int64(20), s.Inputs[0].Errors)
	assert.Equal(t, int64(0), s.Inputs[1].Errors)
}

func TestRunner_NoInputs(t *testing.T) {
	r, err := NewRunner(nil)
	require.NoError(t, err)
	_, err = r.Run(context.Background(), nil)
	assert.Error(t, err)
}

func TestRunner_InvalidConfig(t *testing.T) {
	_, err := NewRunner(&Config{Iterations: 1})
	assert.Error(t, err)
}

func TestRunner_Cancelled(t *testing.T) {
	r, err := NewRunner(&Config{Iterations: 1000, Concurrency: 1, Rate: 10})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s, err := r.Run(ctx, []Input{{Name: "a", Content: "A, 1"}})
	require.Error(t, err)
	require.NotNil(t, s)
	assert.Less(t, s.Total, int64(1000))
}

func TestReporter_Summary(t *testing.T) {
	var buf bytes.Buffer
	rep := NewReporter(WithWriter(&buf), WithNoColor(true), WithVerbose(true))

	rep.Header("v1.0.0", 1, &Config{Iterations: 10, Concurrency: 2, Rate: 50})
	rep.Summary(&Summary{
		Duration: 1500 * time.Millisecond,
		Total:    1234,
		Errors:   0,
		P50:      2 * time.Microsecond,
		Inputs:   []InputSummary{{Name: "net.crn", Total: 1234}},
	})

	out := buf.String()
	assert.Contains(t, out, "marlea bench v1.0.0")
	assert.Contains(t, out, "Workers: 2")
	assert.Contains(t, out, "Target: 50 parses/s")
	assert.Contains(t, out, "1,234")
	assert.Contains(t, out, "p50: 2.0μs")
	assert.Contains(t, out, "net.crn:")
}

func TestReporter_JSONSummary(t *testing.T) {
	var buf bytes.Buffer
	rep := NewReporter(WithWriter(&buf))
	require.NoError(t, rep.JSONSummary(&Summary{Total: 3, Errors: 1, P99: 5 * time.Microsecond}))

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	parses := got["parses"].(map[string]interface{})
	assert.Equal(t, float64(3), parses["total"])
	assert.Equal(t, float64(1), parses["failed"])
	assert.Equal(t, float64(5), got["latencyMicros"].(map[string]interface{})["p99"])
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "999", formatNumber(999))
	assert.Equal(t, "1,000", formatNumber(1000))
	assert.Equal(t, "1,234,567", formatNumber(1234567))
}
