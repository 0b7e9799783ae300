package http

import (
	"net/http"

	"interview-coach-service/internal/observability/logging"
	"interview-coach-service/internal/report"
	"interview-coach-service/internal/service/results"
)

// loadResult resolves which session a read targets: an explicit
// session_id query parameter, or the most recent session.
func (h *Handlers) loadResult(r *http.Request) map[string]any {
	if sessionID := r.URL.Query().Get("session_id"); sessionID != "" {
		return h.store.LoadResult(sessionID)
	}
	return h.store.LatestResult()
}

func (h *Handlers) loadTimelines(r *http.Request) map[string]any {
	if sessionID := r.URL.Query().Get("session_id"); sessionID != "" {
		return h.store.LoadTimelines(sessionID)
	}
	return h.store.LatestTimelines()
}

// FullResults serves the complete aggregated record, or an empty object
// when nothing has been analyzed yet.
func (h *Handlers) FullResults(w http.ResponseWriter, r *http.Request) {
	h.metrics.RecordResultRead("full")
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"results": h.loadResult(r),
	})
}

// Timelines serves both tracked signals projected to chartable pairs.
func (h *Handlers) Timelines(w http.ResponseWriter, r *http.Request) {
	h.metrics.RecordResultRead("timelines")
	posture, eye := results.ProjectTimelines(h.loadTimelines(r))
	writeJSON(w, http.StatusOK, map[string]any{
		"ok": true,
		"interview_timelines": map[string]any{
			"posture_timeline": posture,
			"eye_timeline":     eye,
		},
	})
}

// PostureTimeline serves the posture signal alone.
func (h *Handlers) PostureTimeline(w http.ResponseWriter, r *http.Request) {
	h.metrics.RecordResultRead("posture_timeline")
	posture, _ := results.ProjectTimelines(h.loadTimelines(r))
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":               true,
		"posture_timeline": posture,
	})
}

// EyeTimeline serves the eye-contact signal alone.
func (h *Handlers) EyeTimeline(w http.ResponseWriter, r *http.Request) {
	h.metrics.RecordResultRead("eye_timeline")
	_, eye := results.ProjectTimelines(h.loadTimelines(r))
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":           true,
		"eye_timeline": eye,
	})
}

// LLMReview serves the raw review text, null when absent.
func (h *Handlers) LLMReview(w http.ResponseWriter, r *http.Request) {
	h.metrics.RecordResultRead("llm_review")
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":         true,
		"llm_review": h.loadResult(r)["llm_review"],
	})
}

// InterviewPDF renders the stored result as a PDF report on demand.
func (h *Handlers) InterviewPDF(w http.ResponseWriter, r *http.Request) {
	h.metrics.RecordResultRead("interview_pdf")

	record := h.loadResult(r)
	if len(record) == 0 {
		writeError(w, http.StatusNotFound, "No results found. Run an analysis first.")
		return
	}

	posture, eye := results.ProjectTimelines(h.loadTimelines(r))
	pdfBytes, err := report.Render(record, posture, eye)
	if err != nil {
		logger := logging.WithComponent("http")
		logger.Error().Err(err).Msg("PDF render failed")
		writeError(w, http.StatusInternalServerError, "rendering the report failed")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="interview-report.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdfBytes)
}
