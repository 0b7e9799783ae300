// Package app wires configuration, adapters and services into one process.
package app

import (
	"context"
	"fmt"
	nethttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"interview-coach-service/internal/config"
	"interview-coach-service/internal/events"
	httpapi "interview-coach-service/internal/http"
	"interview-coach-service/internal/observability/logging"
	"interview-coach-service/internal/service/analysis"
	"interview-coach-service/internal/service/jobad"
	"interview-coach-service/internal/service/llm"
	"interview-coach-service/internal/service/prompts"
	"interview-coach-service/internal/service/results"
	"interview-coach-service/internal/service/stt"
	sttgoogle "interview-coach-service/internal/service/stt/google"
	sttmock "interview-coach-service/internal/service/stt/mock"
	sttopenai "interview-coach-service/internal/service/stt/openai"
	"interview-coach-service/internal/service/voice"
)

// Application holds process-wide state for the service.
type Application struct {
	StartupTime time.Time
	Cfg         *config.Config
	Logger      zerolog.Logger

	Store     *results.Store
	Publisher *events.Publisher
	Handlers  *httpapi.Handlers
}

// New constructs the application: logging, store, adapters and handlers.
func New(ctx context.Context, cfg *config.Config) (*Application, error) {
	logging.Init(logging.Config{
		Level:      cfg.Observability.LogLevel,
		Format:     cfg.Observability.LogFormat,
		TimeFormat: time.RFC3339,
	})
	logger := logging.WithComponent("application")

	transcriber, err := newTranscriber(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("sttProvider", transcriber.Provider()).Msg("STT adapter selected")

	reviewClient := llm.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Timeout)
	reviewer := llm.NewReviewer(reviewClient, cfg.OpenAI.ChatModel)

	groqClient := llm.NewClient(cfg.Groq.APIKey, cfg.Groq.BaseURL, cfg.Groq.Timeout)
	generator := jobad.NewGenerator(groqClient, cfg.Groq.Model, cfg.Groq.ModelFallbacks)

	promptStore, err := prompts.NewStore()
	if err != nil {
		return nil, err
	}

	store := results.NewStore()
	publisher := events.New(&events.Config{
		Enabled:        cfg.Kafka.Enabled,
		Brokers:        cfg.Kafka.Brokers,
		TopicCompleted: cfg.Kafka.TopicCompleted,
		Principal:      cfg.Kafka.Principal,
	})

	analyzer := analysis.New(transcriber, voice.New(cfg.Upload.FFmpegPath), reviewer)

	handlers := httpapi.NewHandlers(
		cfg,
		store,
		analyzer,
		promptStore,
		generator,
		jobad.NewFetcher(),
		publisher,
	)

	logger.Info().Msg("interview coach application created")
	return &Application{
		StartupTime: time.Now().UTC(),
		Cfg:         cfg,
		Logger:      logging.Logger(),
		Store:       store,
		Publisher:   publisher,
		Handlers:    handlers,
	}, nil
}

// Router returns the HTTP handler for the public API.
func (a *Application) Router() nethttp.Handler {
	return httpapi.NewRouter(a.Handlers, a.Cfg.Service.CORSOrigins)
}

// Shutdown performs a best-effort cleanup before process exit.
func (a *Application) Shutdown() {
	logger := logging.WithComponent("application")
	logger.Info().Msg("interview coach service shutting down")
	if a.Publisher != nil {
		_ = a.Publisher.Close()
	}
}

func newTranscriber(ctx context.Context, cfg *config.Config) (stt.Transcriber, error) {
	switch cfg.STT.Provider {
	case "openai":
		return sttopenai.New(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.WhisperModel, cfg.OpenAI.Timeout), nil
	case "google":
		return sttgoogle.New(ctx, cfg.STT.LanguageCode, cfg.STT.SampleRateHz)
	case "mock":
		return sttmock.New(), nil
	default:
		return nil, fmt.Errorf("unknown STT provider %q", cfg.STT.Provider)
	}
}
