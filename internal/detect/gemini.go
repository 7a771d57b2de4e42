package detect

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const geminiEndpointFmt = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"

const geminiPrompt = `Listen to this audio and identify the spoken language.
Respond with only the ISO 639-1 language code (for example "en", "hi", "ta"), nothing else.`

// GeminiClient detects language by asking a Gemini model to classify
// inline audio. Implements the Provider interface.
type GeminiClient struct {
	apiKey   string
	model    string // e.g. "gemini-2.0-flash"
	endpoint string
	timeout  time.Duration
	client   *http.Client
}

// geminiRequest is the generateContent request body with inline audio.
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

// geminiResponse is the subset of the generateContent response we read.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// NewGeminiClient creates a new Gemini language-detection client.
func NewGeminiClient(apiKey, model string, timeout time.Duration) *GeminiClient {
	return &GeminiClient{
		apiKey:   apiKey,
		model:    model,
		endpoint: fmt.Sprintf(geminiEndpointFmt, model),
		timeout:  timeout,
		client:   &http.Client{Timeout: timeout},
	}
}

// Name returns the provider name.
func (gc *GeminiClient) Name() string { return "gemini" }

// Detect uploads the audio inline and reads the model's answer. An
// answer outside the recognized code set falls back to "en", the
// documented default for an unconfident model reply.
func (gc *GeminiClient) Detect(ctx context.Context, audioPath string) (string, error) {
	audio, err := os.ReadFile(audioPath)
	if err != nil {
		return "", fmt.Errorf("read audio file: %w", err)
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{Text: geminiPrompt},
				{InlineData: &geminiInlineData{
					MimeType: audioMimeType(audioPath),
					Data:     base64.StdEncoding.EncodeToString(audio),
				}},
			},
		}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, gc.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", gc.apiKey)

	resp, err := gc.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result geminiResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	code := NormalizeCode(result.Candidates[0].Content.Parts[0].Text)
	if !IsKnownCode(code) {
		return "en", nil
	}
	return code, nil
}

// EstimateCost estimates token usage from file size (~1 token per 4
// bytes of audio, 100 token floor) at approximate Gemini pricing.
// Default when the file cannot be inspected: 100 tokens, $0.01.
func (gc *GeminiClient) EstimateCost(audioPath string) CostEstimate {
	size := fileSize(audioPath)
	if size <= 0 {
		return CostEstimate{UnitCount: 100, MonetaryCost: 0.01}
	}
	tokens := size / 4
	if tokens < 100 {
		tokens = 100
	}
	return CostEstimate{
		UnitCount:    tokens,
		MonetaryCost: float64(tokens) * 0.0001,
	}
}

// audioMimeType maps an audio file extension to its MIME type,
// defaulting to audio/mpeg.
func audioMimeType(audioPath string) string {
	if mt := mime.TypeByExtension(filepath.Ext(audioPath)); mt != "" {
		return mt
	}
	switch filepath.Ext(audioPath) {
	case ".wav":
		return "audio/wav"
	case ".m4a":
		return "audio/m4a"
	case ".flac":
		return "audio/flac"
	case ".ogg":
		return "audio/ogg"
	case ".aac":
		return "audio/aac"
	default:
		return "audio/mpeg"
	}
}
