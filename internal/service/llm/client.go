// Package llm provides an OpenAI-compatible chat completions client and the
// interview review prompt and parser built on top of it. The same client
// serves OpenAI and Groq: only the base URL and key differ.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"interview-coach-service/internal/observability/metrics"
)

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat requests a constrained output mode, e.g. json_object.
type ResponseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

// Options tune a single completion call.
type Options struct {
	Temperature    float64
	ResponseFormat string // "" or "json_object"
}

// Client calls an OpenAI-compatible chat completions endpoint.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	metrics *metrics.Metrics
}

// NewClient creates a chat completions client for the given endpoint.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		metrics: metrics.DefaultMetrics,
	}
}

// ErrMissingAPIKey is returned when the client has no API key configured.
var ErrMissingAPIKey = errors.New("missing API key for chat completions")

// Complete sends a chat completion request and returns the first choice's text.
func (c *Client) Complete(ctx context.Context, model string, messages []Message, opts *Options) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	req := chatRequest{
		Model:    model,
		Messages: messages,
	}
	if opts != nil {
		req.Temperature = opts.Temperature
		if opts.ResponseFormat != "" {
			req.ResponseFormat = &ResponseFormat{Type: opts.ResponseFormat}
		}
	}

	start := time.Now()
	text, err := c.send(ctx, req)
	c.metrics.RecordLLM(model, err, time.Since(start).Seconds())
	return text, err
}

func (c *Client) send(ctx context.Context, req chatRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshaling chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading chat response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat http %d: %s", resp.StatusCode, truncate(respBody, 800))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("decoding chat response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("chat API error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("no choices returned from chat API")
	}
	return parsed.Choices[0].Message.Content, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}
