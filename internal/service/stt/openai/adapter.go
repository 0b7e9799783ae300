// Package openai provides an OpenAI Whisper speech-to-text adapter.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// transcriptionPrompt steers Whisper toward verbatim output. Filler words
// and hesitations matter downstream, so they must not be cleaned up.
const transcriptionPrompt = "Transcribe this interview audio clearly and accurately. " +
	"Focus on capturing the candidate's words verbatim, including " +
	"filler words and hesitations, as these are important for analysis."

// ErrMissingAPIKey is returned when no OpenAI API key is configured.
var ErrMissingAPIKey = errors.New("missing OPENAI_API_KEY or OPEN_AI_API_KEY")

// Adapter implements stt.Transcriber using the OpenAI audio transcriptions API.
type Adapter struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// New creates a new OpenAI Whisper adapter.
func New(apiKey, baseURL, model string, timeout time.Duration) *Adapter {
	return &Adapter{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// Provider returns the adapter name.
func (a *Adapter) Provider() string { return "openai" }

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe uploads the audio as a multipart form and returns the transcript.
func (a *Adapter) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if a.apiKey == "" {
		return "", ErrMissingAPIKey
	}
	if filename == "" {
		filename = "interview.webm"
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if err := mw.WriteField("model", a.model); err != nil {
		return "", err
	}
	if err := mw.WriteField("prompt", transcriptionPrompt); err != nil {
		return "", err
	}
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := fw.Write(audio); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/audio/transcriptions", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("whisper request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("whisper http %d: %s", resp.StatusCode, string(b))
	}

	var tr transcriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("decoding whisper response: %w", err)
	}
	return tr.Text, nil
}
