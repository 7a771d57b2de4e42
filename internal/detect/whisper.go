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

const openAITranscriptionsURL = "https://api.openai.com/v1/audio/transcriptions"

// WhisperClient detects language through an OpenAI-compatible
// /v1/audio/transcriptions endpoint: verbose_json responses carry the
// language Whisper auto-detected. Works against api.openai.com or any
// self-hosted compatible server (speaches, whisper-server).
type WhisperClient struct {
	url     string
	apiKey  string // empty for unauthenticated self-hosted servers
	model   string
	timeout time.Duration
	client  *http.Client
}

// whisperResponse is the verbose_json response subset we read.
type whisperResponse struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// NewWhisperClient creates a new Whisper transcription client. url ""
// means the OpenAI endpoint.
func NewWhisperClient(url, apiKey, model string, timeout time.Duration) *WhisperClient {
	if url == "" {
		url = openAITranscriptionsURL
	}
	return &WhisperClient{
		url:     url,
		apiKey:  apiKey,
		model:   model,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}
}

// Name returns the provider name.
func (wc *WhisperClient) Name() string { return "whisper" }

// Detect transcribes without a language hint so Whisper auto-detects,
// then normalizes the reported language (verbose_json spells it out,
// e.g. "english").
func (wc *WhisperClient) Detect(ctx context.Context, audioPath string) (string, error) {
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

	if wc.model != "" {
		w.WriteField("model", wc.model)
	}
	w.WriteField("response_format", "verbose_json")
	w.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, wc.url, &buf)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	if wc.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+wc.apiKey)
	}

	resp, err := wc.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("whisper request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("whisper API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result whisperResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if result.Language != "" {
		return NormalizeCode(result.Language), nil
	}
	if result.Text != "" {
		return DetectFromText(result.Text), nil
	}
	return "", fmt.Errorf("whisper returned no language or text")
}

// EstimateCost estimates from file size against Whisper API pricing
// (~$0.006/min). Default when the file cannot be inspected: 600 units,
// $0.006.
func (wc *WhisperClient) EstimateCost(audioPath string) CostEstimate {
	return estimateByMinutes(audioPath, 600, 0.006, CostEstimate{UnitCount: 600, MonetaryCost: 0.006})
}
