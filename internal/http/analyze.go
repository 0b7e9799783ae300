package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"interview-coach-service/internal/models"
	"interview-coach-service/internal/observability/logging"
	"interview-coach-service/internal/service/analysis"
	"interview-coach-service/internal/service/results"
)

// multipartMemory bounds how much of the form is held in memory before
// spilling to disk; the audio part is read fully afterwards either way.
const multipartMemory = 8 << 20

// Analyze accepts one recorded answer plus its vision metadata, runs the
// analysis pipeline and stores the aggregated result.
//
// The accepted path always answers 200: malformed JSON fields are coerced
// to sentinel values and pipeline failures surface inside
// interview_analysis.error, never as an HTTP error.
func (h *Handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	logger := logging.WithComponent("analyze")

	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.Upload.MaxBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("upload exceeds %d bytes", h.cfg.Upload.MaxBytes))
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing audio file")
		return
	}
	defer file.Close()

	audioBytes, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading audio upload failed")
		return
	}
	h.metrics.RecordUpload(len(audioBytes))

	promptID := r.FormValue("prompt_id")
	promptText := r.FormValue("prompt_text")
	promptType := r.FormValue("prompt_type")
	promptDifficulty := r.FormValue("prompt_difficulty")

	vision := results.ParseJSONField(r.FormValue("vision_metrics"))
	summary := results.ParseJSONField(r.FormValue("interview_summary"))
	timelines := results.ParseJSONField(r.FormValue("interview_timelines"))
	feedback := results.NormalizeFeedback(results.ParseJSONField(r.FormValue("interview_feedback")))

	sessionID := uuid.NewString()

	savedTo, err := h.saveUpload(audioBytes, header.Filename)
	if err != nil {
		logger.Error().Err(err).Msg("saving upload failed")
		savedTo = ""
	}

	logger.Info().
		Str("sessionId", sessionID).
		Str("filename", header.Filename).
		Int("bytes", len(audioBytes)).
		Str("savedTo", savedTo).
		Msg("audio upload received")

	// The review consumes the same signal authority the record does:
	// normalized feedback first, summary signals as fallback.
	signals := feedback
	if signals.Empty() {
		signals = results.NormalizeFeedback(summary)
	}

	analysisRecord := h.analyzer.Analyze(r.Context(), audioBytes, analysis.Request{
		SessionID:        sessionID,
		Filename:         header.Filename,
		PromptText:       promptText,
		PromptType:       promptType,
		PromptDifficulty: promptDifficulty,
		GoodSignals:      signals.GoodSignals,
		RedFlags:         signals.RedFlags,
		VisionMetrics:    vision,
	})

	record := results.BuildResult(results.Input{
		SessionID:        sessionID,
		PromptID:         promptID,
		PromptText:       promptText,
		PromptType:       promptType,
		PromptDifficulty: promptDifficulty,
		VisionMetrics:    vision,
		Summary:          summary,
		Timelines:        timelines,
		Feedback:         feedback,
		Audio: results.AudioInfo{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Bytes:       len(audioBytes),
			SavedTo:     savedTo,
		},
		Analysis: analysisRecord,
	})

	failed := results.AnalysisFailed(analysisRecord)
	if !failed {
		h.store.StoreResult(sessionID, record)
		h.store.StoreTimelines(sessionID, timelines)
		h.publishCompleted(r, sessionID, record)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok":                  true,
		"session_id":          sessionID,
		"prompt_id":           promptID,
		"prompt_text":         promptText,
		"prompt_type":         promptType,
		"prompt_difficulty":   promptDifficulty,
		"audio":               record["audio"],
		"interview_summary":   summary,
		"interview_timelines": timelines,
		"interview_feedback":  feedback,
		"good_signals":        record["good_signals"],
		"red_flags":           record["red_flags"],
		"vision_metrics":      vision,
		"interview_analysis":  analysisRecord,
		"message":             analyzeMessage(failed),
	})
}

func analyzeMessage(failed bool) string {
	if failed {
		return "Received audio + metrics, but the analysis could not be completed."
	}
	return "Received audio + metrics. Analysis complete."
}

// saveUpload persists audio bytes under the uploads dir with a
// timestamp + short uuid prefix so concurrent uploads never collide.
func (h *Handlers) saveUpload(audio []byte, originalName string) (string, error) {
	if err := os.MkdirAll(h.cfg.Upload.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload dir: %w", err)
	}

	safeName := filepath.Base(originalName)
	if safeName == "." || safeName == string(filepath.Separator) || safeName == "" {
		safeName = "audio.webm"
	}

	name := fmt.Sprintf("%s_%s_%s",
		time.Now().Format("20060102_150405"),
		uuid.NewString()[:8],
		safeName,
	)
	path := filepath.Join(h.cfg.Upload.Dir, name)
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return "", fmt.Errorf("writing upload: %w", err)
	}
	return path, nil
}

// publishCompleted emits the completion event. Best-effort: a broker
// failure never fails the request.
func (h *Handlers) publishCompleted(r *http.Request, sessionID string, record map[string]any) {
	if h.publisher == nil {
		return
	}

	analysisSlot, _ := record["interview_analysis"].(map[string]any)
	totalScore, _ := analysisSlot["total_score"].(string)
	promptID, _ := record["prompt_id"].(string)
	promptType, _ := record["resolved_prompt_type"].(string)
	difficulty, _ := record["resolved_prompt_difficulty"].(string)

	event := models.AnalysisCompleted{
		EventType:  "analysis.completed",
		SessionID:  sessionID,
		PromptID:   promptID,
		PromptType: promptType,
		Difficulty: difficulty,
		TotalScore: totalScore,
		Degraded:   results.AnalysisFailed(analysisSlot),
		Timestamp:  time.Now().Unix(),
	}
	if err := h.publisher.PublishCompleted(r.Context(), sessionID, event); err != nil {
		logger := logging.WithSession(sessionID)
		logger.Warn().Err(err).Msg("publishing completion event failed")
	}
}
