package detect

import "context"

// Provider is the interface for language-detection backends.
type Provider interface {
	// Detect returns the ISO-639-1 primary language code spoken in the
	// audio file. It may block on network I/O and must honor ctx.
	Detect(ctx context.Context, audioPath string) (string, error)

	// EstimateCost returns a best-effort cost estimate for one detection
	// call, computed from locally available information (file size).
	// It never fails; implementations return a documented default when
	// the file cannot be inspected.
	EstimateCost(audioPath string) CostEstimate

	Name() string // "elevenlabs", "sarvam", "gemini", ...
}

// CostEstimate describes the resource consumption of one detection call.
type CostEstimate struct {
	UnitCount    int64   `json:"unit_count"`
	MonetaryCost float64 `json:"monetary_cost"` // USD
}
