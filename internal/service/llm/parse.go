package llm

import (
	"strings"

	"interview-coach-service/internal/models"
)

// ParseReview extracts category scores and feedback sections from a
// rubric-formatted review. The model occasionally drifts from the template,
// so extraction never fails: a missing score reads as "0" and a missing
// section reads as an empty string. The raw review text remains the source
// of truth either way.
func ParseReview(review string) (models.ReviewScores, models.ReviewSections) {
	scores := models.ReviewScores{
		Clarity:         scoreAfter(review, "Communication Clarity: ", "/25"),
		Content:         scoreAfter(review, "Content & Substance: ", "/25"),
		Professionalism: scoreAfter(review, "Professionalism: ", "/20"),
		BodyLanguage:    scoreAfter(review, "Body Language: ", "/15"),
		VocalDelivery:   scoreAfter(review, "Vocal Delivery: ", "/15"),
		Total:           scoreAfter(review, "TOTAL SCORE: ", "/100"),
	}

	sections := models.ReviewSections{
		DoingWell:    sectionBetween(review, "WHAT YOU ARE DOING WELL", "WHAT YOU MUST IMPROVE"),
		MustImprove:  sectionBetween(review, "WHAT YOU MUST IMPROVE", "HABITS TO KEEP"),
		HabitsToKeep: sectionBetween(review, "HABITS TO KEEP", "ACTION PLAN FOR NEXT INTERVIEW"),
		ActionPlan:   sectionBetween(review, "ACTION PLAN FOR NEXT INTERVIEW", ""),
	}

	return scores, sections
}

// scoreAfter returns the text between a score marker and its denominator,
// or "0" when either marker is missing.
func scoreAfter(text, marker, denominator string) string {
	idx := strings.Index(text, marker)
	if idx < 0 {
		return "0"
	}
	rest := text[idx+len(marker):]
	end := strings.Index(rest, denominator)
	if end < 0 {
		return "0"
	}
	score := strings.TrimSpace(rest[:end])
	if score == "" {
		return "0"
	}
	return score
}

// sectionBetween returns the trimmed text between two section headers.
// An empty end marker means "until the end of the review".
func sectionBetween(text, start, end string) string {
	idx := strings.Index(text, start)
	if idx < 0 {
		return ""
	}
	rest := text[idx+len(start):]
	if end != "" {
		if endIdx := strings.Index(rest, end); endIdx >= 0 {
			rest = rest[:endIdx]
		}
	}
	return strings.TrimSpace(rest)
}
