// Package analysis orchestrates one interview answer end to end:
// transcription, voice-tone measurement, and the LLM review.
package analysis

import (
	"context"
	"errors"
	"time"

	"interview-coach-service/internal/models"
	"interview-coach-service/internal/observability/logging"
	"interview-coach-service/internal/observability/metrics"
	"interview-coach-service/internal/service/llm"
	"interview-coach-service/internal/service/stt"
	"interview-coach-service/internal/service/voice"
)

// VoiceAnalyzer measures the voice tone of an uploaded answer.
type VoiceAnalyzer interface {
	Analyze(ctx context.Context, webm []byte) (*models.VoiceAnalysis, error)
}

// ReviewClient produces the rubric-formatted review text.
type ReviewClient interface {
	Review(ctx context.Context, in llm.ReviewInput) (string, error)
}

// Request carries the metadata that accompanies an audio upload.
type Request struct {
	SessionID        string
	Filename         string
	PromptText       string
	PromptType       string
	PromptDifficulty string
	GoodSignals      []string
	RedFlags         []string
	VisionMetrics    any
}

// Service runs the analysis pipeline.
type Service struct {
	transcriber stt.Transcriber
	voice       VoiceAnalyzer
	reviewer    ReviewClient
	metrics     *metrics.Metrics
}

// New creates an analysis service from its three workers.
func New(transcriber stt.Transcriber, voiceAnalyzer VoiceAnalyzer, reviewer ReviewClient) *Service {
	return &Service{
		transcriber: transcriber,
		voice:       voiceAnalyzer,
		reviewer:    reviewer,
		metrics:     metrics.DefaultMetrics,
	}
}

// Analyze runs transcription, voice analysis and the LLM review over one
// answer and returns the analysis record. It never returns an error: any
// failure yields an error-shaped record so the caller can store and serve
// it like any other result.
//
// A voice-analysis failure does not fail the whole run. Its error payload
// is embedded in the voice_analysis slot and the review proceeds without
// voice data.
func (s *Service) Analyze(ctx context.Context, audio []byte, req Request) map[string]any {
	logger := logging.WithProvider(req.SessionID, s.transcriber.Provider())
	start := time.Now()
	s.metrics.RecordAnalysisStart()

	degraded := ""
	defer func() {
		s.metrics.RecordAnalysisEnd(degraded, time.Since(start).Seconds())
	}()

	sttStart := time.Now()
	transcript, err := s.transcriber.Transcribe(ctx, audio, req.Filename)
	s.metrics.RecordSTT(s.transcriber.Provider(), err, time.Since(sttStart).Seconds())
	if err != nil {
		logger.Error().Err(err).Msg("transcription failed")
		degraded = "stt"
		return unavailable(err)
	}
	logger.Debug().Int("transcriptChars", len(transcript)).Msg("transcription complete")

	var voiceSlot any
	voiceResult, err := s.voice.Analyze(ctx, audio)
	if err != nil {
		voiceResult = nil
	}
	switch {
	case err == nil:
		voiceSlot = voiceResult
		logger.Info().
			Float64("avgPitchHz", voiceResult.AvgPitchHz).
			Float64("speakingRate", voiceResult.SpeakingRate).
			Msg("voice analysis complete")
	case errors.Is(err, voice.ErrFFmpegNotAvailable):
		logger.Warn().Err(err).Msg("voice analysis skipped")
		voiceSlot = map[string]any{"error": "ffmpeg_not_available", "detail": err.Error()}
	case errors.Is(err, voice.ErrNotEnoughSpeech):
		logger.Warn().Msg("not enough speech for voice analysis")
		voiceSlot = map[string]any{"error": "Not enough speech detected"}
	default:
		logger.Error().Err(err).Msg("voice analysis failed")
		voiceSlot = map[string]any{"error": err.Error()}
	}

	visionSummary := asObject(req.VisionMetrics)

	review, err := s.reviewer.Review(ctx, llm.ReviewInput{
		PromptText:       req.PromptText,
		PromptType:       req.PromptType,
		PromptDifficulty: req.PromptDifficulty,
		GoodSignals:      req.GoodSignals,
		RedFlags:         req.RedFlags,
		Transcript:       transcript,
		PostureGoodPct:   visionSummary["postureGoodPct"],
		EyeGoodPct:       visionSummary["eyeGoodPct"],
		Voice:            voiceResult,
	})
	if err != nil {
		logger.Error().Err(err).Msg("LLM review failed")
		degraded = "llm"
		return unavailable(err)
	}

	scores, sections := llm.ParseReview(review)
	logger.Info().Str("totalScore", scores.Total).Msg("analysis complete")

	return map[string]any{
		"transcript":            transcript,
		"vision_summary":        req.VisionMetrics,
		"voice_analysis":        voiceSlot,
		"llm_review":            review,
		"question":              req.PromptText,
		"type":                  req.PromptType,
		"difficulty":            req.PromptDifficulty,
		"clarity_score":         scores.Clarity,
		"content_score":         scores.Content,
		"professionalism_score": scores.Professionalism,
		"body_language_score":   scores.BodyLanguage,
		"vocal_delivery_score":  scores.VocalDelivery,
		"total_score":           scores.Total,
		"doing_well":            sections.DoingWell,
		"must_improve":          sections.MustImprove,
		"habits_to_keep":        sections.HabitsToKeep,
		"action_plan":           sections.ActionPlan,
	}
}

func unavailable(err error) map[string]any {
	return map[string]any{
		"error":  "analysis_unavailable",
		"detail": err.Error(),
	}
}

func asObject(v any) map[string]any {
	m, _ := v.(map[string]any)
	if m == nil {
		return map[string]any{}
	}
	return m
}
