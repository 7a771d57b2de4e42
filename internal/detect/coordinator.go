package detect

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// ErrProviderNotFound is returned by DetectOne when no registered
// provider matches the requested name.
var ErrProviderNotFound = errors.New("provider not found")

// Stats reports lifetime detection counters for the metrics collector.
type Stats struct {
	Providers int   `json:"providers"`
	Completed int64 `json:"completed"`
	Failed    int64 `json:"failed"`
}

// CoordinatorOptions configures a Coordinator.
type CoordinatorOptions struct {
	// Providers is the registry, in response order. Names must be unique.
	Providers []Provider

	// Timeout is the optional overall deadline for DetectAll. Zero means
	// no deadline: each provider relies on its own call-level timeout.
	Timeout time.Duration

	Log zerolog.Logger
}

// Coordinator owns a fixed, ordered registry of providers and fans a
// single audio input out to all of them concurrently. The registry is
// read-only after construction, so one Coordinator is safe for
// concurrent use across requests.
type Coordinator struct {
	providers []Provider
	byName    map[string]Provider
	timeout   time.Duration
	log       zerolog.Logger

	completed atomic.Int64
	failed    atomic.Int64
}

// NewCoordinator validates the registry and builds a Coordinator.
func NewCoordinator(opts CoordinatorOptions) (*Coordinator, error) {
	if len(opts.Providers) == 0 {
		return nil, errors.New("no providers registered")
	}

	byName := make(map[string]Provider, len(opts.Providers))
	for _, p := range opts.Providers {
		name := p.Name()
		if name == "" {
			return nil, errors.New("provider with empty name")
		}
		if _, dup := byName[name]; dup {
			return nil, fmt.Errorf("duplicate provider name: %s", name)
		}
		byName[name] = p
	}

	opts.Log.Info().
		Strs("providers", providerNames(opts.Providers)).
		Dur("timeout", opts.Timeout).
		Msg("detection coordinator ready")

	return &Coordinator{
		providers: opts.Providers,
		byName:    byName,
		timeout:   opts.Timeout,
		log:       opts.Log,
	}, nil
}

// DetectAll runs every registered provider concurrently against one
// audio file and aggregates the outcomes. It never fails because of an
// individual provider: the per-provider wrapper guarantees an Outcome
// for every slot, so the response always enumerates the full registry
// in registration order.
func (c *Coordinator) DetectAll(ctx context.Context, audioPath string) *Report {
	start := time.Now()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	results := make([]Outcome, len(c.providers))
	var wg sync.WaitGroup
	for i, p := range c.providers {
		wg.Add(1)
		go func(i int, p Provider) {
			defer wg.Done()
			results[i] = Execute(ctx, p, audioPath)
		}(i, p)
	}
	wg.Wait()

	report := &Report{
		Results:   results,
		TotalTime: time.Since(start),
	}
	for _, out := range results {
		if out.Status == StatusSuccess {
			report.Successful++
		} else {
			report.Failed++
		}
	}
	c.completed.Add(int64(report.Successful))
	c.failed.Add(int64(report.Failed))

	c.log.Debug().
		Str("audio", audioPath).
		Int("successful", report.Successful).
		Int("failed", report.Failed).
		Dur("total_ms", report.TotalTime).
		Msg("detection fan-out complete")

	return report
}

// DetectOne runs a single named provider. Returns ErrProviderNotFound
// (wrapped with the name) when the name is unregistered; no invocation
// occurs in that case.
func (c *Coordinator) DetectOne(ctx context.Context, audioPath, providerName string) (Outcome, error) {
	p, ok := c.byName[providerName]
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %q", ErrProviderNotFound, providerName)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	out := Execute(ctx, p, audioPath)
	if out.Status == StatusSuccess {
		c.completed.Add(1)
	} else {
		c.failed.Add(1)
	}
	return out, nil
}

// ProviderNames returns the registered provider names in registry order.
func (c *Coordinator) ProviderNames() []string {
	return providerNames(c.providers)
}

// Stats returns lifetime invocation counters.
func (c *Coordinator) Stats() Stats {
	return Stats{
		Providers: len(c.providers),
		Completed: c.completed.Load(),
		Failed:    c.failed.Load(),
	}
}

func providerNames(providers []Provider) []string {
	names := make([]string, len(providers))
	for i, p := range providers {
		names[i] = p.Name()
	}
	return names
}
