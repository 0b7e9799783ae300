// Package mock provides a mock STT adapter for testing without API credentials.
// It cycles through canned interview answers so repeated local sessions
// produce varied transcripts.
package mock

import (
	"context"
	"sync"
)

// DefaultTranscripts provides sample interview answers for simulation.
var DefaultTranscripts = []string{
	"In my last role I led the migration of our billing service to a new queueing system, " +
		"and I made sure we had a rollback plan before the first deploy.",
	"Um, I think my biggest strength is staying calm under pressure, like when our " +
		"primary database failed during a launch and I coordinated the failover.",
	"I would start by clarifying the requirements with the stakeholder, then break the " +
		"work into milestones and agree on the first deliverable.",
	"So the situation was that two teammates disagreed on the API design, my task was to " +
		"unblock the project, and the action I took was running a short design review.",
}

// transcriptCounter tracks which transcript to use next (cycles through defaults)
var (
	transcriptCounter int
	counterMu         sync.Mutex
)

// Adapter implements stt.Transcriber with canned responses.
type Adapter struct {
	transcript string
}

// New creates a new mock adapter using the next canned transcript.
func New() *Adapter {
	counterMu.Lock()
	idx := transcriptCounter % len(DefaultTranscripts)
	transcriptCounter++
	counterMu.Unlock()

	return &Adapter{transcript: DefaultTranscripts[idx]}
}

// NewWithTranscript creates a mock adapter returning a fixed transcript.
func NewWithTranscript(text string) *Adapter {
	return &Adapter{transcript: text}
}

// Provider returns the adapter name.
func (a *Adapter) Provider() string { return "mock" }

// Transcribe returns the canned transcript regardless of the audio content.
func (a *Adapter) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return a.transcript, nil
}
