package bench

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nadaso8/MARlea-parser/packages/core/parser"
	"golang.org/x/time/rate"
)

// Input is one network source to benchmark
type Input struct {
	Name    string
	Content string
}

// Runner drives a benchmark
type Runner struct {
	config  *Config
	limiter *rate.Limiter
	metrics *Metrics
}

// NewRunner creates a runner for the given config
func NewRunner(config *Config) (*Runner, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	r := &Runner{
		config:  config,
		metrics: NewMetrics(),
	}
	if config.Rate > 0 {
		r.limiter = rate.NewLimiter(rate.Limit(config.Rate), 1)
	}
	return r, nil
}

// Metrics returns the collector the runner records into
func (r *Runner) Metrics() *Metrics {
	return r.metrics
}

// Run parses every input Iterations times. Parse failures are counted,
// not returned; a cancelled context stops the run early and is returned
// together with the partial summary.
func (r *Runner) Run(ctx context.Context, inputs []Input) (*Summary, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no inputs to benchmark")
	}

	jobs := make(chan Input)
	var wg sync.WaitGroup

	r.metrics.Start()
	for w := 0; w < r.config.Concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for in := range jobs {
				r.parse(in)
			}
		}()
	}

	err := r.dispatch(ctx, inputs, jobs)
	close(jobs)
	wg.Wait()
	r.metrics.Stop()

	return r.metrics.GetSummary(), err
}

func (r *Runner) dispatch(ctx context.Context, inputs []Input, jobs chan<- Input) error {
	for i := 0; i < r.config.Iterations; i++ {
		for _, in := range inputs {
			if r.limiter != nil {
				if err := r.limiter.Wait(ctx); err != nil {
					return err
				}
			}
			select {
			case jobs <- in:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}

func (r *Runner) parse(in Input) {
	start := time.Now()
	_, err := parser.Parse(in.Content)
	r.metrics.Record(in.Name, len(in.Content), time.Since(start), err)
}
