// Command analyzeclient posts a recorded answer to a running service for
// quick manual testing without the frontend.
package main

import (
	"bytes"
	"flag"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

func main() {
	server := flag.String("server", "http://localhost:8000", "service base URL")
	audioPath := flag.String("audio", "", "path to a WebM audio file (required)")
	promptText := flag.String("prompt", "Tell me about yourself.", "prompt text")
	promptType := flag.String("type", "general", "prompt type")
	difficulty := flag.String("difficulty", "easy", "prompt difficulty")
	flag.Parse()

	if *audioPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	audio, err := os.ReadFile(*audioPath)
	if err != nil {
		log.Fatalf("reading audio file: %v", err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("audio", filepath.Base(*audioPath))
	if err != nil {
		log.Fatalf("building form: %v", err)
	}
	if _, err := part.Write(audio); err != nil {
		log.Fatalf("building form: %v", err)
	}

	fields := map[string]string{
		"prompt_id":         "client_manual",
		"prompt_text":       *promptText,
		"prompt_type":       *promptType,
		"prompt_difficulty": *difficulty,
		"vision_metrics":    `{"postureGoodPct": 85, "eyeGoodPct": 75}`,
		"interview_summary": `{}`,
		"interview_timelines": `{"posture_timeline": [{"timestamp": 1, "percentage": 85}],` +
			` "eye_timeline": [{"timestamp": 1, "percentage": 75}]}`,
		"interview_feedback": `{}`,
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			log.Fatalf("building form: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		log.Fatalf("building form: %v", err)
	}

	client := &http.Client{Timeout: 5 * time.Minute}
	log.Printf("posting %d audio bytes to %s/analyze", len(audio), *server)

	resp, err := client.Post(*server+"/analyze", writer.FormDataContentType(), &body)
	if err != nil {
		log.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("reading response: %v", err)
	}

	log.Printf("HTTP %d", resp.StatusCode)
	os.Stdout.Write(payload)
	os.Stdout.Write([]byte("\n"))
}
