package models

// VoiceAnalysis holds pitch, energy and pacing measurements for an answer.
type VoiceAnalysis struct {
	AvgPitchHz        float64 `json:"avg_pitch_hz"`
	PitchVariation    float64 `json:"pitch_variation"`
	PitchVariationPct float64 `json:"pitch_variation_pct"`
	SpeakingRate      float64 `json:"speaking_rate"`
	AvgEnergy         float64 `json:"avg_energy"`
	EnergyVariation   float64 `json:"energy_variation"`
	PitchFeedback     string  `json:"pitch_feedback"`
	ToneFeedback      string  `json:"tone_feedback"`
	RateFeedback      string  `json:"rate_feedback"`
}

// ReviewScores holds the category scores parsed from an LLM review.
// Scores are kept as strings: they are surfaced verbatim from the review text.
type ReviewScores struct {
	Clarity         string `json:"clarity_score"`
	Content         string `json:"content_score"`
	Professionalism string `json:"professionalism_score"`
	BodyLanguage    string `json:"body_language_score"`
	VocalDelivery   string `json:"vocal_delivery_score"`
	Total           string `json:"total_score"`
}

// ReviewSections holds the free-text sections parsed from an LLM review.
type ReviewSections struct {
	DoingWell    string `json:"doing_well"`
	MustImprove  string `json:"must_improve"`
	HabitsToKeep string `json:"habits_to_keep"`
	ActionPlan   string `json:"action_plan"`
}
