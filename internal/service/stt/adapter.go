// Package stt defines the interface for speech-to-text adapters.
package stt

import "context"

// Transcriber transcribes a complete recorded answer in one shot.
// Implementations must honor ctx for cancellation of the upstream call.
type Transcriber interface {
	// Transcribe converts audio bytes into a transcript.
	Transcribe(ctx context.Context, audio []byte, filename string) (string, error)

	// Provider returns the adapter name for logging and metrics.
	Provider() string
}
