package detect

import (
	"context"
	"path/filepath"
	"time"
)

// MockProvider is a deterministic stand-in for a real vendor: it
// "detects" the language named by a keyword in the audio file name
// after a simulated API delay. Used when the service runs without API
// keys and in the test suite.
type MockProvider struct {
	name  string
	delay time.Duration
}

// NewMockProvider creates a mock provider with the given name and
// simulated call latency.
func NewMockProvider(name string, delay time.Duration) *MockProvider {
	return &MockProvider{name: name, delay: delay}
}

// Name returns the provider name.
func (mp *MockProvider) Name() string { return mp.name }

// Detect sleeps for the configured delay (honoring ctx) and returns the
// language keyed by the file name, defaulting to "en".
func (mp *MockProvider) Detect(ctx context.Context, audioPath string) (string, error) {
	if mp.delay > 0 {
		select {
		case <-time.After(mp.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return DetectFromFilename(filepath.Base(audioPath)), nil
}

// EstimateCost mirrors a cheap metered vendor: $0.001/MiB, one unit per
// 100 bytes. Default when the file cannot be inspected: 100 units,
// $0.001.
func (mp *MockProvider) EstimateCost(audioPath string) CostEstimate {
	size := fileSize(audioPath)
	if size <= 0 {
		return CostEstimate{UnitCount: 100, MonetaryCost: 0.001}
	}
	return CostEstimate{
		UnitCount:    size / 100,
		MonetaryCost: float64(size) / (1024 * 1024) * 0.001,
	}
}
