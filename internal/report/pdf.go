// Package report renders a stored interview result as a PDF document.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"interview-coach-service/internal/observability/metrics"
)

// Render builds a PDF report from an aggregated result record and the
// projected posture/eye timelines. The record is the loosely-typed map the
// results store holds, so every field read tolerates absence.
func Render(result map[string]any, posture, eye [][]any) (out []byte, err error) {
	defer func() { metrics.DefaultMetrics.RecordPDF(err) }()

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Interview Practice Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Interview Practice Report", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	writeMetadata(pdf, result)

	analysis := asObject(result["interview_analysis"])
	if detail, failed := analysis["error"]; failed {
		sectionHeader(pdf, "Analysis")
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, fmt.Sprintf("Analysis unavailable: %v", orString(analysis["detail"], detail)), "", "L", false)
	} else {
		writeScores(pdf, analysis)
		writeSections(pdf, analysis)
		writeVoice(pdf, analysis)
	}

	writeTimelines(pdf, posture, eye)

	var buf bytes.Buffer
	if err = pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func writeMetadata(pdf *gofpdf.Fpdf, result map[string]any) {
	sectionHeader(pdf, "Question")

	pdf.SetFont("Helvetica", "", 11)
	if text := stringValue(result["prompt_text"]); text != "" {
		pdf.MultiCell(0, 6, text, "", "L", false)
	} else {
		pdf.MultiCell(0, 6, "General interview question", "", "L", false)
	}

	promptType := stringValue(result["resolved_prompt_type"])
	difficulty := stringValue(result["resolved_prompt_difficulty"])
	if promptType != "" || difficulty != "" {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("Type: %s    Difficulty: %s",
			orDash(promptType), orDash(difficulty)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
}

func writeScores(pdf *gofpdf.Fpdf, analysis map[string]any) {
	sectionHeader(pdf, "Scores")

	rows := []struct {
		label string
		key   string
		max   string
	}{
		{"Communication Clarity", "clarity_score", "25"},
		{"Content & Substance", "content_score", "25"},
		{"Professionalism", "professionalism_score", "20"},
		{"Body Language", "body_language_score", "15"},
		{"Vocal Delivery", "vocal_delivery_score", "15"},
	}

	pdf.SetFont("Helvetica", "", 11)
	for _, row := range rows {
		pdf.CellFormat(90, 7, row.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%s / %s", orDash(stringValue(analysis[row.key])), row.max), "1", 1, "C", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(90, 8, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("%s / 100", orDash(stringValue(analysis["total_score"]))), "1", 1, "C", false, 0, "")
	pdf.Ln(3)
}

func writeSections(pdf *gofpdf.Fpdf, analysis map[string]any) {
	sections := []struct {
		title string
		key   string
	}{
		{"What You Are Doing Well", "doing_well"},
		{"What You Must Improve", "must_improve"},
		{"Habits To Keep", "habits_to_keep"},
		{"Action Plan For Next Interview", "action_plan"},
	}

	for _, s := range sections {
		text := strings.TrimSpace(stringValue(analysis[s.key]))
		if text == "" {
			continue
		}
		sectionHeader(pdf, s.title)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, text, "", "L", false)
		pdf.Ln(1)
	}
}

func writeVoice(pdf *gofpdf.Fpdf, analysis map[string]any) {
	voice := voiceObject(analysis["voice_analysis"])
	if voice == nil {
		return
	}

	sectionHeader(pdf, "Voice Delivery")
	pdf.SetFont("Helvetica", "", 11)

	if detail, failed := voice["error"]; failed {
		pdf.MultiCell(0, 6, fmt.Sprintf("Voice analysis unavailable: %v", detail), "", "L", false)
		pdf.Ln(1)
		return
	}

	lines := []string{
		fmt.Sprintf("Average pitch: %v Hz. %v", voice["avg_pitch_hz"], voice["pitch_feedback"]),
		fmt.Sprintf("Pitch variation: %v%%. %v", voice["pitch_variation_pct"], voice["tone_feedback"]),
		fmt.Sprintf("Speaking rate: %v. %v", voice["speaking_rate"], voice["rate_feedback"]),
	}
	for _, line := range lines {
		pdf.MultiCell(0, 6, line, "", "L", false)
	}
	pdf.Ln(1)
}

func writeTimelines(pdf *gofpdf.Fpdf, posture, eye [][]any) {
	if len(posture) == 0 && len(eye) == 0 {
		return
	}

	sectionHeader(pdf, "Presence During The Answer")
	pdf.SetFont("Helvetica", "", 11)

	if line := timelineSummary("Posture", posture); line != "" {
		pdf.MultiCell(0, 6, line, "", "L", false)
	}
	if line := timelineSummary("Eye contact", eye); line != "" {
		pdf.MultiCell(0, 6, line, "", "L", false)
	}
}

// timelineSummary condenses [timestamp, percentage] pairs to an average.
func timelineSummary(label string, pairs [][]any) string {
	var sum float64
	var count int
	for _, pair := range pairs {
		if len(pair) != 2 {
			continue
		}
		if pct, ok := asFloat(pair[1]); ok {
			sum += pct
			count++
		}
	}
	if count == 0 {
		return ""
	}
	return fmt.Sprintf("%s: %.0f%% good on average across %d samples.", label, sum/float64(count), count)
}

func sectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
}

func asObject(v any) map[string]any {
	m, _ := v.(map[string]any)
	if m == nil {
		return map[string]any{}
	}
	return m
}

// voiceObject accepts both the decoded-JSON map shape and the typed struct
// marshaled through JSON, returning nil when no voice data is present.
func voiceObject(v any) map[string]any {
	switch val := v.(type) {
	case map[string]any:
		return val
	case nil:
		return nil
	default:
		// Typed *models.VoiceAnalysis reaches the store unserialized; flatten
		// it through its JSON form so field access stays uniform.
		return structToMap(val)
	}
}

func structToMap(v any) map[string]any {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil
	}
	return m
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func orString(v, fallback any) any {
	if v == nil {
		return fallback
	}
	return v
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
