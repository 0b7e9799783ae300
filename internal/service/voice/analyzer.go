// Package voice measures pitch, energy and pacing of a recorded answer.
// The measurements feed both the LLM review prompt and the final report.
package voice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/go-audio/wav"

	"interview-coach-service/internal/models"
)

// ErrNotEnoughSpeech is returned when the recording holds less than half a
// second of voiced audio after silence removal.
var ErrNotEnoughSpeech = errors.New("not enough speech detected")

const (
	sampleRate  = 16000
	frameLength = 2048
	hopLength   = 512

	// Pitch search range, roughly C2..C7.
	minPitchHz = 65.0
	maxPitchHz = 2093.0

	// Frames quieter than the loudest frame by this many dB count as silence.
	silenceTopDB = 30.0
)

// Analyzer converts uploaded audio to PCM and derives voice-tone measurements.
type Analyzer struct {
	ffmpegPath string
}

// New creates a voice analyzer. ffmpegPath may be empty to use PATH lookup.
func New(ffmpegPath string) *Analyzer {
	return &Analyzer{ffmpegPath: ffmpegPath}
}

// Analyze measures the voice tone of in-memory WebM audio bytes.
// No filesystem I/O is performed.
func (a *Analyzer) Analyze(ctx context.Context, webm []byte) (*models.VoiceAnalysis, error) {
	ffmpegPath, err := resolveFFmpeg(a.ffmpegPath)
	if err != nil {
		return nil, err
	}

	wavBytes, err := convertToWAV(ctx, ffmpegPath, webm)
	if err != nil {
		return nil, err
	}

	samples, err := decodeWAV(wavBytes)
	if err != nil {
		return nil, err
	}

	return analyzeSamples(samples)
}

// decodeWAV decodes mono PCM into normalized float64 samples.
func decodeWAV(wavBytes []byte) ([]float64, error) {
	decoder := wav.NewDecoder(bytes.NewReader(wavBytes))
	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decoding wav: %w", err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil, errors.New("decoded wav holds no samples")
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = 16
	}
	scale := float64(int64(1) << (bitDepth - 1))

	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float64(v) / scale
	}
	return samples, nil
}

// analyzeSamples runs the measurement pipeline over normalized PCM samples.
func analyzeSamples(samples []float64) (*models.VoiceAnalysis, error) {
	frames := frameSignal(samples)
	if len(frames) == 0 {
		return nil, ErrNotEnoughSpeech
	}

	energies := make([]float64, len(frames))
	var peak float64
	for i, f := range frames {
		energies[i] = rms(f)
		if energies[i] > peak {
			peak = energies[i]
		}
	}

	// Silence skews pitch readings, so only voiced frames are analyzed.
	threshold := peak * math.Pow(10, -silenceTopDB/20)
	var voiced [][]float64
	var voicedEnergy []float64
	for i, f := range frames {
		if energies[i] > threshold {
			voiced = append(voiced, f)
			voicedEnergy = append(voicedEnergy, energies[i])
		}
	}

	voicedDuration := float64(len(voiced)) * hopLength / sampleRate
	if voicedDuration < 0.5 {
		return nil, ErrNotEnoughSpeech
	}

	var pitches []float64
	for _, f := range voiced {
		if p, ok := framePitch(f); ok {
			pitches = append(pitches, p)
		}
	}

	avgPitch := mean(pitches)
	pitchVariation := stddev(pitches, avgPitch)
	pitchVariationPct := 0.0
	if avgPitch > 0 {
		pitchVariationPct = pitchVariation / avgPitch * 100
	}

	speakingRate := float64(countOnsets(voicedEnergy, threshold)) / voicedDuration

	avgEnergy := mean(voicedEnergy)
	energyVariation := stddev(voicedEnergy, avgEnergy)

	return &models.VoiceAnalysis{
		AvgPitchHz:        round2(avgPitch),
		PitchVariation:    round2(pitchVariation),
		PitchVariationPct: round2(pitchVariationPct),
		SpeakingRate:      round2(speakingRate),
		AvgEnergy:         round4(avgEnergy),
		EnergyVariation:   round4(energyVariation),
		PitchFeedback:     pitchFeedback(avgPitch),
		ToneFeedback:      toneFeedback(pitchVariationPct),
		RateFeedback:      rateFeedback(speakingRate),
	}, nil
}

func frameSignal(samples []float64) [][]float64 {
	if len(samples) < frameLength {
		return nil
	}
	var frames [][]float64
	for start := 0; start+frameLength <= len(samples); start += hopLength {
		frames = append(frames, samples[start:start+frameLength])
	}
	return frames
}

func rms(frame []float64) float64 {
	var sum float64
	for _, s := range frame {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(frame)))
}

// framePitch estimates the fundamental frequency of a frame via normalized
// autocorrelation. Frames without a clear periodic peak report no pitch.
func framePitch(frame []float64) (float64, bool) {
	minLag := int(math.Floor(sampleRate / maxPitchHz))
	maxLag := int(math.Floor(sampleRate / minPitchHz))
	if maxLag >= len(frame) {
		maxLag = len(frame) - 1
	}
	if minLag < 1 || minLag >= maxLag {
		return 0, false
	}

	var energy float64
	for _, s := range frame {
		energy += s * s
	}
	if energy == 0 {
		return 0, false
	}

	bestLag := 0
	bestCorr := 0.0
	for lag := minLag; lag <= maxLag; lag++ {
		var corr float64
		for i := 0; i+lag < len(frame); i++ {
			corr += frame[i] * frame[i+lag]
		}
		corr /= energy
		if corr > bestCorr {
			bestCorr = corr
			bestLag = lag
		}
	}

	// Weak peaks are unvoiced frames (fricatives, breath), not pitch.
	if bestCorr < 0.3 || bestLag == 0 {
		return 0, false
	}
	return sampleRate / float64(bestLag), true
}

// countOnsets counts energy rises, a rough proxy for syllable onsets.
func countOnsets(energies []float64, threshold float64) int {
	onsets := 0
	for i := 1; i < len(energies); i++ {
		if energies[i] > threshold && energies[i] > energies[i-1]*1.5 {
			onsets++
		}
	}
	return onsets
}

func pitchFeedback(avgPitch float64) string {
	// Gender-neutral ranges.
	switch {
	case avgPitch < 85:
		return "Very low pitch — may sound flat or disengaged."
	case avgPitch < 180:
		return "Low-normal pitch — sounds calm and authoritative."
	case avgPitch < 300:
		return "Normal pitch range — good for conversation."
	default:
		return "High pitch — may sound nervous or anxious."
	}
}

func toneFeedback(variationPct float64) string {
	switch {
	case variationPct < 10:
		return "Very monotone — your pitch barely changes, which can disengage interviewers. Practice varying your tone when emphasizing key points."
	case variationPct < 25:
		return "Slightly monotone — some variation present but adding more expressiveness would help keep the interviewer engaged."
	case variationPct < 60:
		return "Good pitch variation — your voice sounds natural and engaging."
	default:
		return "High pitch variation — make sure your tone stays controlled and professional."
	}
}

func rateFeedback(rate float64) string {
	switch {
	case rate < 2.0:
		return "Speaking too slowly — try to pick up the pace to sound more confident."
	case rate > 6.0:
		return "Speaking too fast — slow down so the interviewer can follow you."
	default:
		return "Good speaking rate — easy to follow."
	}
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func stddev(xs []float64, m float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)))
}

func round2(x float64) float64 { return math.Round(x*100) / 100 }
func round4(x float64) float64 { return math.Round(x*10000) / 10000 }
