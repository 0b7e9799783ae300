package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"interview-coach-service/internal/config"
	"interview-coach-service/internal/events"
	"interview-coach-service/internal/models"
	"interview-coach-service/internal/service/jobad"
	"interview-coach-service/internal/service/prompts"
	"interview-coach-service/internal/service/results"
)

func newPromptEnv(t *testing.T, gen *stubGenerator, fetcher *stubFetcher) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.Upload.Dir = t.TempDir()
	cfg.Upload.MaxBytes = 1 << 20

	promptStore, err := prompts.NewStore()
	if err != nil {
		t.Fatalf("loading prompt store: %v", err)
	}

	h := NewHandlers(cfg, results.NewStore(), &stubAnalyzer{record: successAnalysis()},
		promptStore, gen, fetcher, events.New(nil))
	return NewRouter(h, nil)
}

func TestAllPrompts(t *testing.T) {
	handler := newPromptEnv(t, &stubGenerator{}, &stubFetcher{})

	code, payload := doJSON(t, handler, httptest.NewRequest(http.MethodGet, "/prompt/all", nil))
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	count, _ := payload["count"].(float64)
	list, _ := payload["prompts"].([]any)
	if int(count) != len(list) || count == 0 {
		t.Errorf("count %v must match prompts length %d", count, len(list))
	}

	code, payload = doJSON(t, handler, httptest.NewRequest(http.MethodGet, "/prompt/all?type=technical&difficulty=master", nil))
	if code != http.StatusOK {
		t.Fatalf("expected 200 for a populated filter, got %d: %v", code, payload)
	}
	for _, item := range payload["prompts"].([]any) {
		p, _ := item.(map[string]any)
		if p["type"] != "technical" || p["difficulty"] != "master" {
			t.Errorf("filter leaked prompt %v", p)
		}
	}
}

func TestRandomPrompt(t *testing.T) {
	handler := newPromptEnv(t, &stubGenerator{}, &stubFetcher{})

	code, payload := doJSON(t, handler, httptest.NewRequest(http.MethodGet, "/prompt/random?type=behavioral", nil))
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	p, _ := payload["prompt"].(map[string]any)
	if p["type"] != "behavioral" {
		t.Errorf("random prompt escaped the filter: %v", p)
	}
}

func TestPromptFromJobAd_PastedText(t *testing.T) {
	gen := &stubGenerator{prompt: models.Prompt{
		ID:   "jobad_groq_123",
		Type: "technical",
		Text: "How would you design the ingest pipeline?",
	}}
	handler := newPromptEnv(t, gen, &stubFetcher{})

	body := `{"text": "We are hiring a platform engineer to own our ingestion stack.", "type": "technical"}`
	req := httptest.NewRequest(http.MethodPost, "/prompt/from-job-ad", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	code, payload := doJSON(t, handler, req)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", code, payload)
	}
	if payload["ok"] != true {
		t.Errorf("expected ok, got %v", payload)
	}
	p, _ := payload["prompt"].(map[string]any)
	if p["id"] != "jobad_groq_123" {
		t.Errorf("unexpected prompt: %v", p)
	}
}

func TestPromptFromJobAd_FetchesURL(t *testing.T) {
	gen := &stubGenerator{prompt: models.Prompt{ID: "jobad_groq_1", Text: "q"}}
	fetcher := &stubFetcher{text: "Platform engineer role owning deployments and observability."}
	handler := newPromptEnv(t, gen, fetcher)

	body := `{"url": "https://example.com/job/7"}`
	req := httptest.NewRequest(http.MethodPost, "/prompt/from-job-ad", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	code, _ := doJSON(t, handler, req)
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
}

func TestPromptFromJobAd_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		gen      *stubGenerator
		fetcher  *stubFetcher
		wantCode int
	}{
		{
			name:     "invalid json",
			body:     `{not json`,
			gen:      &stubGenerator{},
			fetcher:  &stubFetcher{},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "neither url nor text",
			body:     `{}`,
			gen:      &stubGenerator{},
			fetcher:  &stubFetcher{},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "bad url",
			body:     `{"url": "ftp://example.com/job"}`,
			gen:      &stubGenerator{},
			fetcher:  &stubFetcher{err: errors.New("unsupported URL scheme")},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "too little text",
			body:     `{"url": "https://example.com/job"}`,
			gen:      &stubGenerator{},
			fetcher:  &stubFetcher{err: jobad.ErrTooLittleText},
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name:     "fetch failure",
			body:     `{"url": "https://example.com/job"}`,
			gen:      &stubGenerator{},
			fetcher:  &stubFetcher{err: errors.New("connection refused")},
			wantCode: http.StatusBadGateway,
		},
		{
			name:     "generation failure",
			body:     `{"text": "A long enough job ad description for generation."}`,
			gen:      &stubGenerator{err: errors.New("all model attempts failed")},
			fetcher:  &stubFetcher{},
			wantCode: http.StatusBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newPromptEnv(t, tt.gen, tt.fetcher)
			req := httptest.NewRequest(http.MethodPost, "/prompt/from-job-ad", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")

			code, payload := doJSON(t, handler, req)
			if code != tt.wantCode {
				t.Errorf("expected %d, got %d: %v", tt.wantCode, code, payload)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	handler := newPromptEnv(t, &stubGenerator{}, &stubFetcher{})

	code, payload := doJSON(t, handler, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if payload["status"] != "healthy" {
		t.Errorf("unexpected health payload: %v", payload)
	}
}
