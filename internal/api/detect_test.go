package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/snarg/langdetect/internal/detect"
)

// failingProvider always errors; used to exercise the error path end to end.
type failingProvider struct{ name string }

func (f *failingProvider) Name() string { return f.name }
func (f *failingProvider) Detect(ctx context.Context, audioPath string) (string, error) {
	return "", errors.New("vendor unavailable")
}
func (f *failingProvider) EstimateCost(audioPath string) detect.CostEstimate {
	return detect.CostEstimate{UnitCount: 1, MonetaryCost: 0.001}
}

func testRouter(t *testing.T) (chi.Router, string) {
	t.Helper()

	coordinator, err := detect.NewCoordinator(detect.CoordinatorOptions{
		Providers: []detect.Provider{
			detect.NewMockProvider("mock-a", 0),
			&failingProvider{name: "broken"},
		},
		Log: zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("NewCoordinator: %v", err)
	}

	dh := NewDetectHandler(coordinator)
	r := chi.NewRouter()
	r.Get("/api/v1/providers", dh.Providers)
	r.Post("/api/v1/detect", dh.DetectAll)
	r.Post("/api/v1/detect/{provider}", dh.DetectOne)

	dir := t.TempDir()
	wav := filepath.Join(dir, "hindi_sample.wav")
	if err := os.WriteFile(wav, bytes.Repeat([]byte("a"), 2048), 0o644); err != nil {
		t.Fatal(err)
	}
	return r, wav
}

func postDetect(t *testing.T, r chi.Router, path, audioPath string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(DetectRequest{AudioFilePath: audioPath})
	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestDetectAllEndpoint(t *testing.T) {
	r, wav := testRouter(t)

	rec := postDetect(t, r, "/api/v1/detect", wav)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp ReportResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(resp.Results))
	}
	if resp.SuccessfulCount != 1 || resp.FailedCount != 1 {
		t.Errorf("counts = %d/%d, want 1/1", resp.SuccessfulCount, resp.FailedCount)
	}

	mock := resp.Results[0]
	if mock.ProviderName != "mock-a" {
		t.Errorf("results[0].provider_name = %q, want mock-a (registry order)", mock.ProviderName)
	}
	if mock.DetectedLanguage == nil || *mock.DetectedLanguage != "hi" {
		t.Errorf("mock detected_language = %v, want hi", mock.DetectedLanguage)
	}
	if mock.ErrorMessage != nil {
		t.Errorf("mock error_message = %v, want null", mock.ErrorMessage)
	}

	broken := resp.Results[1]
	if broken.Status != detect.StatusError {
		t.Errorf("broken status = %q, want error", broken.Status)
	}
	if broken.DetectedLanguage != nil {
		t.Errorf("broken detected_language = %v, want null", broken.DetectedLanguage)
	}
	if broken.ErrorMessage == nil || *broken.ErrorMessage != "vendor unavailable" {
		t.Errorf("broken error_message = %v, want vendor unavailable", broken.ErrorMessage)
	}
}

func TestDetectAllEndpoint_MissingFile(t *testing.T) {
	r, _ := testRouter(t)

	rec := postDetect(t, r, "/api/v1/detect", "/nope/missing.wav")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestDetectAllEndpoint_BadExtension(t *testing.T) {
	r, wav := testRouter(t)

	rec := postDetect(t, r, "/api/v1/detect", wav+".txt")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestDetectAllEndpoint_InvalidBody(t *testing.T) {
	r, _ := testRouter(t)

	req := httptest.NewRequest("POST", "/api/v1/detect", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestDetectOneEndpoint(t *testing.T) {
	r, wav := testRouter(t)

	rec := postDetect(t, r, "/api/v1/detect/mock-a", wav)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp OutcomeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ProviderName != "mock-a" {
		t.Errorf("provider_name = %q, want mock-a", resp.ProviderName)
	}
	if resp.DetectedLanguage == nil || *resp.DetectedLanguage != "hi" {
		t.Errorf("detected_language = %v, want hi", resp.DetectedLanguage)
	}
}

func TestDetectOneEndpoint_UnknownProvider(t *testing.T) {
	r, wav := testRouter(t)

	rec := postDetect(t, r, "/api/v1/detect/nonexistent", wav)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestProvidersEndpoint(t *testing.T) {
	r, _ := testRouter(t)

	req := httptest.NewRequest("GET", "/api/v1/providers", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp ProvidersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 2 || len(resp.Providers) != 2 {
		t.Fatalf("count = %d, providers = %v, want 2", resp.Count, resp.Providers)
	}
	if resp.Providers[0] != "mock-a" || resp.Providers[1] != "broken" {
		t.Errorf("providers = %v, want [mock-a broken] in registry order", resp.Providers)
	}
}
