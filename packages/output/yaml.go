package output

import (
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter renders the same model as JSONFormatter in YAML
type YAMLFormatter struct {
	collector
	writer io.Writer
}

type YAMLOption func(*YAMLFormatter)

func NewYAMLFormatter(opts ...YAMLOption) *YAMLFormatter {
	f := &YAMLFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func YAMLWithWriter(w io.Writer) YAMLOption {
	return func(f *YAMLFormatter) {
		f.writer = w
	}
}

func (f *YAMLFormatter) Flush(totalDuration time.Duration) error {
	enc := yaml.NewEncoder(f.writer)
	enc.SetIndent(2)
	if err := enc.Encode(f.output(totalDuration)); err != nil {
		return err
	}
	return enc.Close()
}
