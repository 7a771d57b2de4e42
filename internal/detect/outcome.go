package detect

import "time"

// Status is the terminal state of one provider invocation.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Outcome is the normalized result of one provider invocation. Exactly
// one of DetectedLanguage / ErrorMessage is set, according to Status.
// Outcomes are built once by Execute and never mutated.
type Outcome struct {
	Provider         string
	DetectedLanguage string // empty unless Status == StatusSuccess
	TimeTaken        time.Duration
	EstimatedCost    CostEstimate
	Status           Status
	ErrorMessage     string // empty unless Status == StatusError
}

// Report is the aggregate result of a fan-out detection call. Results
// are ordered by provider registration order, not completion order.
type Report struct {
	Results    []Outcome
	TotalTime  time.Duration
	Successful int
	Failed     int
}
