package models

// AnalysisCompleted is published when an analysis run finishes.
// Degraded is true when the analysis slot carries an error payload.
type AnalysisCompleted struct {
	EventType  string `json:"eventType"`
	SessionID  string `json:"sessionId"`
	PromptID   string `json:"promptId"`
	PromptType string `json:"promptType"`
	Difficulty string `json:"difficulty"`
	TotalScore string `json:"totalScore"`
	Degraded   bool   `json:"degraded"`
	Timestamp  int64  `json:"timestamp"`
}
