package api

import (
	"net/http"
	"time"

	"github.com/snarg/langdetect/internal/detect"
)

type HealthResponse struct {
	Status        string       `json:"status"`
	Version       string       `json:"version"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	Detection     detect.Stats `json:"detection"`
}

type HealthHandler struct {
	coordinator *detect.Coordinator
	version     string
	startTime   time.Time
}

func NewHealthHandler(coordinator *detect.Coordinator, version string, startTime time.Time) *HealthHandler {
	return &HealthHandler{
		coordinator: coordinator,
		version:     version,
		startTime:   startTime,
	}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// A coordinator with a non-empty registry is the only hard
	// dependency; provider reachability shows up per-request.
	status := "healthy"
	httpStatus := http.StatusOK
	stats := h.coordinator.Stats()
	if stats.Providers == 0 {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	WriteJSON(w, httpStatus, HealthResponse{
		Status:        status,
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Detection:     stats,
	})
}
