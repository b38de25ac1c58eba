package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Reporter prints benchmark results
type Reporter struct {
	writer  io.Writer
	noColor bool
	verbose bool

	green *color.Color
	red   *color.Color
	cyan  *color.Color
	bold  *color.Color
}

// ReporterOption configures the reporter
type ReporterOption func(*Reporter)

// WithWriter sets the output writer
func WithWriter(w io.Writer) ReporterOption {
	return func(r *Reporter) {
		r.writer = w
	}
}

// WithNoColor disables colored output
func WithNoColor(noColor bool) ReporterOption {
	return func(r *Reporter) {
		r.noColor = noColor
	}
}

// WithVerbose adds a per-input breakdown to the summary
func WithVerbose(verbose bool) ReporterOption {
	return func(r *Reporter) {
		r.verbose = verbose
	}
}

// NewReporter creates a new reporter
func NewReporter(opts ...ReporterOption) *Reporter {
	r := &Reporter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.green = color.New(color.FgGreen)
	r.red = color.New(color.FgRed)
	r.cyan = color.New(color.FgCyan)
	r.bold = color.New(color.Bold)
	if r.noColor {
		for _, c := range []*color.Color{r.green, r.red, r.cyan, r.bold} {
			c.DisableColor()
		}
	}
	return r
}

// Header prints the run settings
func (r *Reporter) Header(version string, inputs int, config *Config) {
	fmt.Fprintln(r.writer)
	r.bold.Fprintf(r.writer, "marlea bench %s\n", version)
	fmt.Fprintln(r.writer)

	details := []string{
		fmt.Sprintf("Inputs: %d", inputs),
		fmt.Sprintf("Iterations: %d", config.Iterations),
		fmt.Sprintf("Workers: %d", config.Concurrency),
	}
	if config.Rate > 0 {
		details = append(details, fmt.Sprintf("Target: %.0f parses/s", config.Rate))
	}
	r.cyan.Fprintln(r.writer, strings.Join(details, " | "))
	fmt.Fprintln(r.writer)
}

// Summary prints the final summary
func (r *Reporter) Summary(s *Summary) {
	r.bold.Fprintln(r.writer, "BENCHMARK SUMMARY")
	fmt.Fprintln(r.writer, strings.Repeat("─", 40))

	fmt.Fprintf(r.writer, "Duration:   %s\n", formatDuration(s.Duration))
	fmt.Fprintf(r.writer, "Parses:     ")
	r.bold.Fprintf(r.writer, "%s", formatNumber(s.Total))
	fmt.Fprintf(r.writer, " (%.1f/s, %s/s)\n", s.ParsesPerSecond, formatBytes(s.BytesPerSecond))

	fmt.Fprintf(r.writer, "Failed:     ")
	if s.Errors > 0 {
		r.red.Fprintf(r.writer, "%s\n", formatNumber(s.Errors))
	} else {
		r.green.Fprintf(r.writer, "%s\n", formatNumber(s.Errors))
	}

	fmt.Fprintln(r.writer)
	r.bold.Fprintln(r.writer, "LATENCY")
	fmt.Fprintf(r.writer, "  p50: %-8s | p95: %-8s | p99: %-8s | max: %s\n",
		formatLatency(s.P50), formatLatency(s.P95), formatLatency(s.P99), formatLatency(s.Max))
	fmt.Fprintf(r.writer, "  min: %-8s | mean: %-7s | stddev: %s\n",
		formatLatency(s.Min), formatLatency(s.Mean), formatLatency(s.StdDev))

	if r.verbose && len(s.Inputs) > 0 {
		fmt.Fprintln(r.writer)
		r.bold.Fprintln(r.writer, "PER-INPUT BREAKDOWN")
		for _, in := range s.Inputs {
			fmt.Fprintf(r.writer, "  %s:\n", in.Name)
			fmt.Fprintf(r.writer, "    Parses: %s | Errors: %s\n", formatNumber(in.Total), formatNumber(in.Errors))
			fmt.Fprintf(r.writer, "    p50: %s | p99: %s | mean: %s\n",
				formatLatency(in.P50), formatLatency(in.P99), formatLatency(in.Mean))
		}
	}
	fmt.Fprintln(r.writer)
}

// JSONSummary outputs the summary as JSON
func (r *Reporter) JSONSummary(s *Summary) error {
	inputs := make([]map[string]interface{}, len(s.Inputs))
	for i, in := range s.Inputs {
		inputs[i] = map[string]interface{}{
			"name":   in.Name,
			"total":  in.Total,
			"errors": in.Errors,
			"p50":    in.P50.Microseconds(),
			"p99":    in.P99.Microseconds(),
			"mean":   in.Mean.Microseconds(),
		}
	}

	output := map[string]interface{}{
		"duration": s.Duration.String(),
		"parses": map[string]interface{}{
			"total":  s.Total,
			"failed": s.Errors,
			"bytes":  s.Bytes,
		},
		"rates": map[string]interface{}{
			"parsesPerSecond": s.ParsesPerSecond,
			"bytesPerSecond":  s.BytesPerSecond,
		},
		"latencyMicros": map[string]interface{}{
			"p50":    s.P50.Microseconds(),
			"p95":    s.P95.Microseconds(),
			"p99":    s.P99.Microseconds(),
			"min":    s.Min.Microseconds(),
			"max":    s.Max.Microseconds(),
			"mean":   s.Mean.Microseconds(),
			"stddev": s.StdDev.Microseconds(),
		},
		"inputs": inputs,
	}

	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	if seconds == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dm %02ds", minutes, seconds)
}

func formatLatency(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1e3)
	case d < time.Second:
		return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1e3)
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func formatBytes(b float64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MiB", b/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KiB", b/(1<<10))
	}
	return fmt.Sprintf("%.0f B", b)
}

// formatNumber formats a number with commas
func formatNumber(n int64) string {
	s := fmt.Sprintf("%d", n)
	if n < 1000 {
		return s
	}

	result := make([]byte, 0, len(s)+(len(s)-1)/3)
	start := len(s) % 3
	if start == 0 {
		start = 3
	}
	result = append(result, s[:start]...)
	for i := start; i < len(s); i += 3 {
		result = append(result, ',')
		result = append(result, s[i:i+3]...)
	}
	return string(result)
}
