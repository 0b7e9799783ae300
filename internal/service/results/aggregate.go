package results

// AudioInfo describes a stored audio upload.
type AudioInfo struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Bytes       int    `json:"bytes"`
	SavedTo     string `json:"saved_to"`
}

// Input collects every source that feeds one aggregated record.
// VisionMetrics, Summary and Timelines are coerced form-field values;
// Feedback is already normalized; Analysis is the upstream analysis record,
// which may be error-shaped or nil when the upstream call failed outright.
type Input struct {
	SessionID        string
	PromptID         string
	PromptText       string
	PromptType       string
	PromptDifficulty string
	VisionMetrics    any
	Summary          any
	Timelines        any
	Feedback         Feedback
	Audio            AudioInfo
	Analysis         map[string]any
}

// analysisUnavailable is the substitute payload when the upstream analysis
// produced nothing at all.
func analysisUnavailable(detail string) map[string]any {
	return map[string]any{
		"error":  "analysis_unavailable",
		"detail": detail,
	}
}

// AnalysisFailed reports whether an analysis record is error-shaped.
func AnalysisFailed(analysis map[string]any) bool {
	if analysis == nil {
		return true
	}
	_, failed := analysis["error"]
	return failed
}

// BuildResult merges all inputs into one flat canonical record.
//
// Precedence: the explicit request field wins for prompt type and difficulty;
// the summary value is the fallback, then empty string. For scoring signals
// the normalized feedback is canonical; the summary's signals (run through
// the same normalizer) are consulted only when the feedback carries none.
//
// A failed upstream analysis still yields a complete record with an
// error-shaped analysis slot; the caller decides whether to store it.
func BuildResult(in Input) map[string]any {
	summary := AsObject(in.Summary)

	resolvedType := in.PromptType
	if resolvedType == "" {
		resolvedType = stringValue(summary["type"])
	}
	resolvedDifficulty := in.PromptDifficulty
	if resolvedDifficulty == "" {
		resolvedDifficulty = stringValue(summary["difficulty"])
	}

	signals := in.Feedback
	if signals.Empty() {
		signals = NormalizeFeedback(in.Summary)
	}

	analysis := in.Analysis
	if analysis == nil {
		analysis = analysisUnavailable("analysis produced no result")
	}

	record := map[string]any{
		"session_id":                 in.SessionID,
		"prompt_id":                  in.PromptID,
		"prompt_text":                in.PromptText,
		"prompt_type":                in.PromptType,
		"prompt_difficulty":          in.PromptDifficulty,
		"resolved_prompt_type":       resolvedType,
		"resolved_prompt_difficulty": resolvedDifficulty,
		"audio": map[string]any{
			"filename":     in.Audio.Filename,
			"content_type": in.Audio.ContentType,
			"bytes":        in.Audio.Bytes,
			"saved_to":     in.Audio.SavedTo,
		},
		"interview_summary":   in.Summary,
		"interview_timelines": in.Timelines,
		"interview_feedback":  in.Feedback,
		"good_signals":        signals.GoodSignals,
		"red_flags":           signals.RedFlags,
		"vision_metrics":      in.VisionMetrics,
		"interview_analysis":  analysis,
		"llm_review":          analysis["llm_review"],
	}
	return record
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}
