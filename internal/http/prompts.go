package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"interview-coach-service/internal/observability/logging"
	"interview-coach-service/internal/service/jobad"
)

// AllPrompts serves the catalog filtered by type and difficulty.
func (h *Handlers) AllPrompts(w http.ResponseWriter, r *http.Request) {
	matches := h.prompts.Filter(r.URL.Query().Get("type"), r.URL.Query().Get("difficulty"))
	if len(matches) == 0 {
		writeError(w, http.StatusNotFound, "no prompts match the requested filters")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(matches),
		"prompts": matches,
	})
}

// RandomPrompt serves one random prompt from the filtered set.
func (h *Handlers) RandomPrompt(w http.ResponseWriter, r *http.Request) {
	prompt, ok := h.prompts.Random(r.URL.Query().Get("type"), r.URL.Query().Get("difficulty"))
	if !ok {
		writeError(w, http.StatusNotFound, "no prompts match the requested filters")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"prompt": prompt})
}

type jobAdRequest struct {
	URL        string `json:"url"`
	Title      string `json:"title"`
	Text       string `json:"text"`
	Type       string `json:"type"`
	Difficulty string `json:"difficulty"`
}

// PromptFromJobAd synthesizes a prompt from a job-ad URL or pasted text.
func (h *Handlers) PromptFromJobAd(w http.ResponseWriter, r *http.Request) {
	logger := logging.WithComponent("jobad")

	var req jobAdRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	jobText := strings.TrimSpace(req.Text)
	if req.URL != "" {
		fetched, err := h.fetcher.FetchPageText(r.Context(), req.URL)
		if err != nil {
			status := http.StatusBadGateway
			if errors.Is(err, jobad.ErrTooLittleText) {
				status = http.StatusUnprocessableEntity
			}
			if _, vErr := jobad.ValidateURL(req.URL); vErr != nil {
				status = http.StatusBadRequest
			}
			writeError(w, status, err.Error())
			return
		}
		jobText = fetched
	}
	if jobText == "" {
		writeError(w, http.StatusBadRequest, "provide a job ad url or pasted text")
		return
	}

	prompt, err := h.generator.Generate(r.Context(), jobad.Input{
		JobURL:     req.URL,
		JobTitle:   req.Title,
		JobText:    jobText,
		Type:       req.Type,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		logger.Error().Err(err).Msg("prompt generation failed")
		writeError(w, http.StatusBadGateway, "prompt generation failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":     true,
		"prompt": prompt,
	})
}
