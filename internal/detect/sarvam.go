package detect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const sarvamBaseURL = "https://api.sarvam.ai"

// realtimeMaxSeconds is the longest audio the realtime endpoints accept;
// longer files take the batch path.
const realtimeMaxSeconds = 30

// sarvamTranslateModels is the fallback chain for the
// speech-to-text-translate endpoint, tried in order within one
// detection attempt.
var sarvamTranslateModels = []string{"saaras:v2.5", "saaras:turbo", "saaras:flash"}

// sarvamAttemptLanguages are tried against the plain speech-to-text
// endpoint when the translate endpoint yields nothing.
var sarvamAttemptLanguages = []string{"hi-IN", "ta-IN", "te-IN", "kn-IN", "en-IN"}

// SarvamClient detects language via the Sarvam AI speech APIs. The
// realtime-vs-batch split and the endpoint fallback chain are vendor
// choreography kept entirely inside this connector.
type SarvamClient struct {
	apiKey  string
	baseURL string
	timeout time.Duration
	client  *http.Client
}

// sarvamSTTResponse covers both Sarvam speech endpoints; the translate
// endpoint reports the source language as language_code.
type sarvamSTTResponse struct {
	LanguageCode string `json:"language_code"`
	Transcript   string `json:"transcript"`
}

// NewSarvamClient creates a new Sarvam AI client.
func NewSarvamClient(apiKey string, timeout time.Duration) *SarvamClient {
	return &SarvamClient{
		apiKey:  apiKey,
		baseURL: sarvamBaseURL,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}
}

// Name returns the provider name.
func (sc *SarvamClient) Name() string { return "sarvam" }

// Detect picks the realtime or batch path from the estimated audio
// duration, then works through the endpoint chain until one produces a
// language.
func (sc *SarvamClient) Detect(ctx context.Context, audioPath string) (string, error) {
	if estimatedSeconds(audioPath) <= realtimeMaxSeconds {
		return sc.detectRealtime(ctx, audioPath)
	}
	return sc.detectBatch(ctx, audioPath)
}

// detectRealtime tries the auto-detecting translate endpoint across the
// model chain, then falls back to per-language transcription attempts.
func (sc *SarvamClient) detectRealtime(ctx context.Context, audioPath string) (string, error) {
	var lastErr error

	for _, model := range sarvamTranslateModels {
		code, err := sc.callSpeechAPI(ctx, audioPath, "/speech-to-text-translate", map[string]string{"model": model})
		if err != nil {
			lastErr = err
			continue
		}
		if code != "" {
			return code, nil
		}
	}

	// The translate endpoint gave nothing usable; try plain
	// transcription with candidate languages and infer from the script
	// of whatever comes back.
	for _, lang := range sarvamAttemptLanguages {
		code, err := sc.callSpeechAPI(ctx, audioPath, "/speech-to-text", map[string]string{
			"model":         "saarika:v2",
			"language_code": lang,
		})
		if err != nil {
			lastErr = err
			continue
		}
		if code != "" {
			return code, nil
		}
	}

	if lastErr != nil {
		return "", fmt.Errorf("sarvam detection failed: %w", lastErr)
	}
	return "", fmt.Errorf("sarvam returned no language for %s", filepath.Base(audioPath))
}

// detectBatch handles audio past the realtime limit. Sarvam's batch API
// is an async job queue; with nowhere to park job state between
// requests, the realtime chain is used here too and the vendor trims
// the input. TODO: submit/poll the batch job API once results can be
// awaited within one request deadline.
func (sc *SarvamClient) detectBatch(ctx context.Context, audioPath string) (string, error) {
	return sc.detectRealtime(ctx, audioPath)
}

// callSpeechAPI posts the audio to one Sarvam speech endpoint and
// extracts a language code from the response, via the language_code
// field or the transcript script. Returns "" (no error) when the
// response carries neither.
func (sc *SarvamClient) callSpeechAPI(ctx context.Context, audioPath, endpoint string, fields map[string]string) (string, error) {
	f, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", fmt.Errorf("copy audio data: %w", err)
	}
	for k, v := range fields {
		w.WriteField(k, v)
	}
	w.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, sc.baseURL+endpoint, &buf)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("api-subscription-key", sc.apiKey)

	resp, err := sc.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("sarvam request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("sarvam API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result sarvamSTTResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if result.LanguageCode != "" {
		return NormalizeCode(result.LanguageCode), nil
	}
	if result.Transcript != "" {
		return DetectFromText(result.Transcript), nil
	}
	return "", nil
}

// EstimateCost estimates from file size against Sarvam pricing
// (~$0.02/min). Default when the file cannot be inspected: 100 units,
// $0.02.
func (sc *SarvamClient) EstimateCost(audioPath string) CostEstimate {
	return estimateByMinutes(audioPath, 100, 0.02, CostEstimate{UnitCount: 100, MonetaryCost: 0.02})
}

// estimatedSeconds approximates audio duration from file size, assuming
// ~1 MiB per minute of compressed audio.
func estimatedSeconds(audioPath string) float64 {
	return float64(fileSize(audioPath)) / (1024 * 1024) * 60
}
