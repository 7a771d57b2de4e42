package detect

import (
	"context"
	"fmt"
	"time"
)

// Execute runs one provider invocation and normalizes every failure
// mode — returned error, panic, or context deadline — into an Outcome.
// It never returns an error and never propagates a panic; that
// guarantee is what lets the coordinator join N providers with no
// error handling of its own.
func Execute(ctx context.Context, p Provider, audioPath string) Outcome {
	start := time.Now()

	type result struct {
		lang string
		err  error
	}

	// Buffered so an abandoned call can still complete and be collected
	// by the GC after a deadline fires.
	ch := make(chan result, 1)
	go func() {
		defer func() {
			if rv := recover(); rv != nil {
				ch <- result{err: fmt.Errorf("provider panic: %v", rv)}
			}
		}()
		lang, err := p.Detect(ctx, audioPath)
		ch <- result{lang: lang, err: err}
	}()

	select {
	case r := <-ch:
		elapsed := time.Since(start)
		if r.err != nil {
			return errorOutcome(p, audioPath, elapsed, r.err.Error())
		}
		return Outcome{
			Provider:         p.Name(),
			DetectedLanguage: r.lang,
			TimeTaken:        elapsed,
			EstimatedCost:    estimateCost(p, audioPath),
			Status:           StatusSuccess,
		}
	case <-ctx.Done():
		elapsed := time.Since(start)
		msg := fmt.Sprintf("timed out after %s: %v", elapsed.Round(time.Millisecond), ctx.Err())
		return errorOutcome(p, audioPath, elapsed, msg)
	}
}

func errorOutcome(p Provider, audioPath string, elapsed time.Duration, msg string) Outcome {
	return Outcome{
		Provider:      p.Name(),
		TimeTaken:     elapsed,
		EstimatedCost: estimateCost(p, audioPath),
		Status:        StatusError,
		ErrorMessage:  msg,
	}
}

// estimateCost shields Execute from a misbehaving EstimateCost.
// Providers are contractually non-failing here, but a panic must not
// turn into a lost Outcome, so it degrades to a zero estimate.
func estimateCost(p Provider, audioPath string) (ce CostEstimate) {
	defer func() {
		if recover() != nil {
			ce = CostEstimate{}
		}
	}()
	return p.EstimateCost(audioPath)
}
