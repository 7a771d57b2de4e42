package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/snarg/langdetect/internal/audio"
	"github.com/snarg/langdetect/internal/detect"
	"github.com/snarg/langdetect/internal/metrics"
)

// DetectRequest is the request body for the detection endpoints.
type DetectRequest struct {
	AudioFilePath string `json:"audio_file_path"`
	// GroundTruthLanguage is accepted for caller bookkeeping; it does
	// not influence detection.
	GroundTruthLanguage string `json:"ground_truth_language,omitempty"`
}

// OutcomeResponse is the wire shape of one provider outcome.
// DetectedLanguage and ErrorMessage serialize as explicit nulls when
// absent, per the API contract.
type OutcomeResponse struct {
	ProviderName     string              `json:"provider_name"`
	DetectedLanguage *string             `json:"detected_language"`
	TimeTaken        float64             `json:"time_taken"` // seconds
	EstimatedCost    detect.CostEstimate `json:"estimated_cost"`
	Status           detect.Status       `json:"status"`
	ErrorMessage     *string             `json:"error_message"`
}

// ReportResponse is the wire shape of a fan-out detection result.
type ReportResponse struct {
	Results         []OutcomeResponse `json:"results"`
	TotalTime       float64           `json:"total_time"` // seconds
	SuccessfulCount int               `json:"successful_count"`
	FailedCount     int               `json:"failed_count"`
}

// ProvidersResponse lists the registered providers.
type ProvidersResponse struct {
	Providers []string `json:"providers"`
	Count     int      `json:"count"`
}

// DetectHandler serves the detection endpoints.
type DetectHandler struct {
	coordinator *detect.Coordinator
}

func NewDetectHandler(coordinator *detect.Coordinator) *DetectHandler {
	return &DetectHandler{coordinator: coordinator}
}

// DetectAll handles POST /api/v1/detect — all providers concurrently.
func (h *DetectHandler) DetectAll(w http.ResponseWriter, r *http.Request) {
	var req DetectRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteErrorDetail(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := audio.Validate(req.AudioFilePath); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	report := h.coordinator.DetectAll(r.Context(), req.AudioFilePath)
	observeOutcomes(report.Results)

	WriteJSON(w, http.StatusOK, toReportResponse(report))
}

// DetectOne handles POST /api/v1/detect/{provider} — a single provider.
func (h *DetectHandler) DetectOne(w http.ResponseWriter, r *http.Request) {
	providerName := chi.URLParam(r, "provider")

	var req DetectRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteErrorDetail(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := audio.Validate(req.AudioFilePath); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	outcome, err := h.coordinator.DetectOne(r.Context(), req.AudioFilePath, providerName)
	if err != nil {
		if errors.Is(err, detect.ErrProviderNotFound) {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	observeOutcomes([]detect.Outcome{outcome})

	WriteJSON(w, http.StatusOK, toOutcomeResponse(outcome))
}

// Providers handles GET /api/v1/providers.
func (h *DetectHandler) Providers(w http.ResponseWriter, r *http.Request) {
	names := h.coordinator.ProviderNames()
	WriteJSON(w, http.StatusOK, ProvidersResponse{Providers: names, Count: len(names)})
}

func toReportResponse(report *detect.Report) ReportResponse {
	results := make([]OutcomeResponse, len(report.Results))
	for i, out := range report.Results {
		results[i] = toOutcomeResponse(out)
	}
	return ReportResponse{
		Results:         results,
		TotalTime:       report.TotalTime.Seconds(),
		SuccessfulCount: report.Successful,
		FailedCount:     report.Failed,
	}
}

func toOutcomeResponse(out detect.Outcome) OutcomeResponse {
	resp := OutcomeResponse{
		ProviderName:  out.Provider,
		TimeTaken:     out.TimeTaken.Seconds(),
		EstimatedCost: out.EstimatedCost,
		Status:        out.Status,
	}
	if out.Status == detect.StatusSuccess {
		lang := out.DetectedLanguage
		resp.DetectedLanguage = &lang
	} else {
		msg := out.ErrorMessage
		resp.ErrorMessage = &msg
	}
	return resp
}

func observeOutcomes(outcomes []detect.Outcome) {
	for _, out := range outcomes {
		metrics.DetectionsTotal.WithLabelValues(out.Provider, string(out.Status)).Inc()
		metrics.DetectionDuration.WithLabelValues(out.Provider).Observe(out.TimeTaken.Seconds())
		metrics.EstimatedCostDollars.WithLabelValues(out.Provider).Add(out.EstimatedCost.MonetaryCost)
	}
}
