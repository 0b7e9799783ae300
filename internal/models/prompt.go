// Package models defines the data structures shared across the service.
package models

// PromptTypes are the recognized interview question categories.
var PromptTypes = []string{"technical", "behavioral", "situational", "general"}

// PromptDifficulties are the recognized difficulty levels.
var PromptDifficulties = []string{"easy", "medium", "hard", "expert", "master"}

// Prompt is an interview question with scoring metadata.
// Prompts are immutable once loaded from the catalog or generated.
type Prompt struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Text        string   `json:"text"`
	Difficulty  string   `json:"difficulty"`
	GoodSignals []string `json:"good_signals"`
	RedFlags    []string `json:"red_flags"`

	// Set only for prompts generated from a job ad.
	Source     string `json:"source,omitempty"`
	JobAdURL   string `json:"job_ad_url,omitempty"`
	JobAdTitle string `json:"job_ad_title,omitempty"`
	GroqModel  string `json:"groq_model,omitempty"`
}
