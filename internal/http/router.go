// Package http exposes the service over REST.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter constructs the HTTP router for the service.
func NewRouter(h *Handlers, corsOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", h.Health)

	r.Post("/analyze", h.Analyze)

	r.Route("/results", func(r chi.Router) {
		r.Get("/full", h.FullResults)
		r.Get("/timelines", h.Timelines)
		r.Get("/posture_timeline", h.PostureTimeline)
		r.Get("/eye_timeline", h.EyeTimeline)
		r.Get("/llm_review", h.LLMReview)
		r.Get("/interview/pdf", h.InterviewPDF)
	})

	r.Route("/prompt", func(r chi.Router) {
		r.Get("/all", h.AllPrompts)
		r.Get("/random", h.RandomPrompt)
		r.Post("/from-job-ad", h.PromptFromJobAd)
	})

	return r
}
