package voice

import (
	"errors"
	"math"
	"testing"
)

// sine generates a tone at the given frequency with the given amplitude.
func sine(freq, amplitude float64, seconds float64) []float64 {
	n := int(seconds * sampleRate)
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/sampleRate)
	}
	return out
}

func TestAnalyzeSamples_DetectsPitch(t *testing.T) {
	// Two seconds of a 150 Hz tone: clearly voiced, clearly pitched.
	result, err := analyzeSamples(sine(150, 0.5, 2.0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.AvgPitchHz < 130 || result.AvgPitchHz > 170 {
		t.Errorf("expected pitch near 150 Hz, got %v", result.AvgPitchHz)
	}
	if result.PitchFeedback != "Low-normal pitch — sounds calm and authoritative." {
		t.Errorf("unexpected pitch feedback: %q", result.PitchFeedback)
	}
	// A pure tone has essentially no pitch variation.
	if result.PitchVariationPct >= 10 {
		t.Errorf("expected near-zero variation for a pure tone, got %v", result.PitchVariationPct)
	}
	if result.ToneFeedback == "" {
		t.Error("expected tone feedback to be set")
	}
}

func TestAnalyzeSamples_TooShort(t *testing.T) {
	_, err := analyzeSamples(sine(150, 0.5, 0.2))
	if !errors.Is(err, ErrNotEnoughSpeech) {
		t.Errorf("expected ErrNotEnoughSpeech, got %v", err)
	}
}

func TestAnalyzeSamples_SilenceOnly(t *testing.T) {
	_, err := analyzeSamples(make([]float64, sampleRate*2))
	if !errors.Is(err, ErrNotEnoughSpeech) {
		t.Errorf("expected ErrNotEnoughSpeech for silence, got %v", err)
	}
}

func TestFramePitch_UnvoicedFrame(t *testing.T) {
	// Alternating-sign noise has no periodic peak in the pitch range.
	frame := make([]float64, frameLength)
	for i := range frame {
		if i%2 == 0 {
			frame[i] = 0.3
		} else {
			frame[i] = -0.3
		}
	}

	if _, ok := framePitch(frame); ok {
		t.Error("expected no pitch for an unvoiced frame")
	}
}

func TestFrameSignal_ShortInput(t *testing.T) {
	if frames := frameSignal(make([]float64, frameLength-1)); frames != nil {
		t.Errorf("expected no frames for input shorter than one frame, got %d", len(frames))
	}
}

func TestPitchFeedbackThresholds(t *testing.T) {
	tests := []struct {
		pitch float64
		want  string
	}{
		{60, "Very low pitch — may sound flat or disengaged."},
		{120, "Low-normal pitch — sounds calm and authoritative."},
		{250, "Normal pitch range — good for conversation."},
		{350, "High pitch — may sound nervous or anxious."},
	}

	for _, tt := range tests {
		if got := pitchFeedback(tt.pitch); got != tt.want {
			t.Errorf("pitchFeedback(%v) = %q, want %q", tt.pitch, got, tt.want)
		}
	}
}

func TestRateFeedbackThresholds(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, "Speaking too slowly — try to pick up the pace to sound more confident."},
		{4.0, "Good speaking rate — easy to follow."},
		{7.5, "Speaking too fast — slow down so the interviewer can follow you."},
	}

	for _, tt := range tests {
		if got := rateFeedback(tt.rate); got != tt.want {
			t.Errorf("rateFeedback(%v) = %q, want %q", tt.rate, got, tt.want)
		}
	}
}

func TestResolveFFmpeg_BadOverrideFallsThrough(t *testing.T) {
	// A nonexistent override must not be returned even if it is set.
	path, err := resolveFFmpeg("/nonexistent/ffmpeg-binary")
	if err == nil && path == "/nonexistent/ffmpeg-binary" {
		t.Error("expected nonexistent override to be ignored")
	}
}
