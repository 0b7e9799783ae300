package llm

import (
	"context"
	"fmt"
	"strings"

	"interview-coach-service/internal/models"
)

// ReviewInput carries everything the recruiter rubric needs.
type ReviewInput struct {
	PromptText       string
	PromptType       string
	PromptDifficulty string
	GoodSignals      []string
	RedFlags         []string
	Transcript       string
	PostureGoodPct   any
	EyeGoodPct       any
	Voice            *models.VoiceAnalysis
}

// Reviewer produces an interview review from a chat model.
type Reviewer struct {
	client *Client
	model  string
}

// NewReviewer creates a reviewer bound to a chat model.
func NewReviewer(client *Client, model string) *Reviewer {
	return &Reviewer{client: client, model: model}
}

// Review asks the model for a rubric-formatted evaluation and returns the raw text.
func (r *Reviewer) Review(ctx context.Context, in ReviewInput) (string, error) {
	return r.client.Complete(ctx, r.model, []Message{
		{Role: "user", Content: BuildReviewPrompt(in)},
	}, nil)
}

// BuildReviewPrompt renders the recruiter rubric for one answer.
func BuildReviewPrompt(in ReviewInput) string {
	var b strings.Builder

	b.WriteString("You are a Senior Tech Recruiter with 15 years of experience evaluating candidates.\n")
	b.WriteString("Evaluate this mock interview and provide detailed, realistic feedback.\n\n")

	b.WriteString("--- INTERVIEW QUESTION ---\n")
	fmt.Fprintf(&b, "Question Asked: %s\n", orDefault(in.PromptText, "General interview question"))
	fmt.Fprintf(&b, "Question Type: %s\n", orDefault(in.PromptType, "General"))
	fmt.Fprintf(&b, "Difficulty Level: %s\n\n", orDefault(in.PromptDifficulty, "Unknown"))

	b.WriteString("--- WHAT A GOOD ANSWER LOOKS LIKE ---\n")
	switch strings.ToLower(in.PromptType) {
	case "behavioral", "behavioural":
		b.WriteString("For a BEHAVIOURAL question: The candidate should use the STAR method (Situation, Task, Action, Result). Penalize vague answers with no real example.\n")
	case "situational":
		b.WriteString("For a SITUATIONAL question: The candidate should walk through their thought process clearly, explain what they would do and why.\n")
	case "technical":
		b.WriteString("For a TECHNICAL question: The candidate should demonstrate knowledge, use correct terminology, and explain their reasoning step by step.\n")
	default:
		b.WriteString("For a GENERAL question: The candidate should give a clear, confident, and professional answer.\n")
	}
	switch strings.ToLower(in.PromptDifficulty) {
	case "hard", "expert", "master":
		b.WriteString("Hard difficulty requires depth, specifics, and structured responses. Penalize surface-level answers harshly.\n")
	case "medium":
		b.WriteString("Medium difficulty expects some structure and relevant examples.\n")
	case "easy":
		b.WriteString("Easy difficulty just needs a clear and confident response.\n")
	}

	b.WriteString("\n--- POSITIVE SIGNALS TO LOOK FOR ---\n")
	b.WriteString("These are things the candidate SHOULD say or demonstrate. If you detect any of these in the transcript, highlight them as strengths:\n")
	b.WriteString(signalBlock(in.GoodSignals, "No specific signals provided."))

	b.WriteString("\n--- RED FLAGS TO WATCH FOR ---\n")
	b.WriteString("These are things the candidate should NEVER say or do for this question. If you detect any of these in the transcript, call them out directly and firmly in the improvements section:\n")
	b.WriteString(signalBlock(in.RedFlags, "No specific red flags provided."))

	b.WriteString("\n--- INTERVIEW DATA ---\n")
	fmt.Fprintf(&b, "Transcript: %s\n", in.Transcript)
	fmt.Fprintf(&b, "Posture Score: %v%%\n", orDefaultValue(in.PostureGoodPct, "unknown"))
	fmt.Fprintf(&b, "Eye Contact Score: %v%%\n\n", orDefaultValue(in.EyeGoodPct, "unknown"))

	b.WriteString("--- VOICE TONE DATA ---\n")
	if in.Voice != nil {
		fmt.Fprintf(&b, "Average Pitch: %v Hz — %s\n", in.Voice.AvgPitchHz, in.Voice.PitchFeedback)
		fmt.Fprintf(&b, "Tone Variation: %s\n", in.Voice.ToneFeedback)
		fmt.Fprintf(&b, "Speaking Rate: %v — %s\n\n", in.Voice.SpeakingRate, in.Voice.RateFeedback)
	} else {
		b.WriteString("Voice tone analysis unavailable for this answer.\n\n")
	}

	b.WriteString(`--- SCORING RUBRIC (100 points total) ---
Score each category honestly based on the question type and difficulty.
A 7/10 overall is a GOOD interview. Reserve 9-10 for exceptional candidates.

1. COMMUNICATION CLARITY (25 pts)
- Are answers clear, concise, and well-structured?
- Is vocabulary professional?
- Are filler words (um, uh, like) avoided?

2. CONTENT & SUBSTANCE (25 pts)
- Did the candidate actually answer the question that was asked?
- Are answers specific and detailed enough for the difficulty level?
- Does the candidate use examples or STAR method where appropriate?

3. PROFESSIONALISM (20 pts)
- Is the tone confident but not arrogant?
- Is the language appropriate for a professional setting?

4. BODY LANGUAGE (15 pts)
- Posture above 80% = full marks for posture
- Eye contact above 80% = full marks for eye contact

5. VOCAL DELIVERY (15 pts)
- Score based on the voice tone data above.

--- RESPONSE FORMAT (follow this exactly) ---

`)
	fmt.Fprintf(&b, "QUESTION: %s\n", in.PromptText)
	fmt.Fprintf(&b, "TYPE: %s\n", in.PromptType)
	fmt.Fprintf(&b, "DIFFICULTY: %s\n", in.PromptDifficulty)
	b.WriteString(`
CATEGORY SCORES:
- Communication Clarity: X/25
- Content & Substance: X/25
- Professionalism: X/20
- Body Language: X/15
- Vocal Delivery: X/15

TOTAL SCORE: X/100 (X/10)

WHAT YOU ARE DOING WELL (be specific, reference exact moments from the transcript):
- [Strength 1]
- [Strength 2]

WHAT YOU MUST IMPROVE (be direct and actionable, reference exact moments from the transcript):
- [Improvement 1 with specific example]
- [Improvement 2 with specific example]

HABITS TO KEEP:
- [Specific positive behavior to continue]

ACTION PLAN FOR NEXT INTERVIEW:
- [1-2 concrete things to practice before next interview]
`)

	return b.String()
}

func signalBlock(signals []string, fallback string) string {
	if len(signals) == 0 {
		return fallback + "\n"
	}
	var b strings.Builder
	for _, s := range signals {
		b.WriteString("- ")
		b.WriteString(s)
		b.WriteString("\n")
	}
	return b.String()
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func orDefaultValue(v any, def string) any {
	if v == nil {
		return def
	}
	return v
}
