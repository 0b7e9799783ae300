package http

import (
	"context"
	"net/http"

	"interview-coach-service/internal/config"
	"interview-coach-service/internal/events"
	"interview-coach-service/internal/models"
	"interview-coach-service/internal/observability/metrics"
	"interview-coach-service/internal/service/analysis"
	"interview-coach-service/internal/service/jobad"
	"interview-coach-service/internal/service/prompts"
	"interview-coach-service/internal/service/results"
)

// Analyzer runs the full analysis pipeline over one uploaded answer.
type Analyzer interface {
	Analyze(ctx context.Context, audio []byte, req analysis.Request) map[string]any
}

// PromptGenerator synthesizes a prompt from job-ad text.
type PromptGenerator interface {
	Generate(ctx context.Context, in jobad.Input) (models.Prompt, error)
}

// PageFetcher downloads a job-ad page and extracts its visible text.
type PageFetcher interface {
	FetchPageText(ctx context.Context, rawURL string) (string, error)
}

// Handlers holds every dependency the endpoints need.
type Handlers struct {
	cfg       *config.Config
	store     *results.Store
	analyzer  Analyzer
	prompts   *prompts.Store
	generator PromptGenerator
	fetcher   PageFetcher
	publisher *events.Publisher
	metrics   *metrics.Metrics
}

// NewHandlers wires the endpoint handlers.
func NewHandlers(
	cfg *config.Config,
	store *results.Store,
	analyzer Analyzer,
	promptStore *prompts.Store,
	generator PromptGenerator,
	fetcher PageFetcher,
	publisher *events.Publisher,
) *Handlers {
	return &Handlers{
		cfg:       cfg,
		store:     store,
		analyzer:  analyzer,
		prompts:   promptStore,
		generator: generator,
		fetcher:   fetcher,
		publisher: publisher,
		metrics:   metrics.DefaultMetrics,
	}
}

// Health reports liveness.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "healthy"})
}
