package jobad

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"interview-coach-service/internal/service/llm"
)

type chatCall struct {
	model          string
	responseFormat string
}

// scriptedChat fails a configurable number of calls before succeeding.
type scriptedChat struct {
	failures int
	response string
	calls    []chatCall
}

func (c *scriptedChat) Complete(_ context.Context, model string, _ []llm.Message, opts *llm.Options) (string, error) {
	format := ""
	if opts != nil {
		format = opts.ResponseFormat
	}
	c.calls = append(c.calls, chatCall{model: model, responseFormat: format})

	if len(c.calls) <= c.failures {
		return "", errors.New("model overloaded")
	}
	return c.response, nil
}

const generatedJSON = `{
	"id": "custom_prompt",
	"type": "technical",
	"text": "How would you scale the ingestion pipeline described in this ad?",
	"difficulty": "hard",
	"good_signals": ["mentions partitioning", "discusses backpressure"],
	"red_flags": ["ignores the stated scale"]
}`

func TestGenerate_Success(t *testing.T) {
	chat := &scriptedChat{response: generatedJSON}
	gen := NewGenerator(chat, "llama-3.3-70b-versatile", nil)

	prompt, err := gen.Generate(context.Background(), Input{
		JobURL:     "https://example.com/job/42",
		JobTitle:   "Data Platform Engineer",
		JobText:    "Build and scale our streaming ingestion pipeline.",
		Type:       "all",
		Difficulty: "all",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if prompt.Type != "technical" || prompt.Difficulty != "hard" {
		t.Errorf("expected inferred type/difficulty kept, got %s/%s", prompt.Type, prompt.Difficulty)
	}
	if prompt.Text != "How would you scale the ingestion pipeline described in this ad?" {
		t.Errorf("unexpected text: %q", prompt.Text)
	}
	if !reflect.DeepEqual(prompt.GoodSignals, []string{"mentions partitioning", "discusses backpressure"}) {
		t.Errorf("unexpected good signals: %v", prompt.GoodSignals)
	}
	if prompt.Source != "groq_job_ad" || prompt.GroqModel != "llama-3.3-70b-versatile" {
		t.Errorf("missing provenance fields: %+v", prompt)
	}
	if prompt.JobAdURL != "https://example.com/job/42" || prompt.JobAdTitle != "Data Platform Engineer" {
		t.Errorf("missing job ad fields: %+v", prompt)
	}
	if prompt.ID == "" {
		t.Error("expected a derived prompt id")
	}

	if chat.calls[0].responseFormat != "json_object" {
		t.Errorf("first attempt should request json_object, got %q", chat.calls[0].responseFormat)
	}
}

func TestGenerate_ExplicitFiltersWin(t *testing.T) {
	chat := &scriptedChat{response: generatedJSON}
	gen := NewGenerator(chat, "model-a", nil)

	prompt, err := gen.Generate(context.Background(), Input{
		JobURL:     "https://example.com/job",
		Type:       "behavioral",
		Difficulty: "easy",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if prompt.Type != "behavioral" {
		t.Errorf("explicit type filter must override the model, got %q", prompt.Type)
	}
	if prompt.Difficulty != "easy" {
		t.Errorf("explicit difficulty filter must override the model, got %q", prompt.Difficulty)
	}
}

func TestGenerate_PlainRetryThenNextModel(t *testing.T) {
	// First model fails both attempts, second model fails the json_object
	// attempt and succeeds on the plain retry.
	chat := &scriptedChat{failures: 3, response: generatedJSON}
	gen := NewGenerator(chat, "model-a", []string{"model-b"})

	prompt, err := gen.Generate(context.Background(), Input{JobURL: "https://example.com/job"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if prompt.GroqModel != "model-b" {
		t.Errorf("expected fallback model to serve, got %q", prompt.GroqModel)
	}

	want := []chatCall{
		{"model-a", "json_object"},
		{"model-a", ""},
		{"model-b", "json_object"},
		{"model-b", ""},
	}
	if !reflect.DeepEqual(chat.calls, want) {
		t.Errorf("unexpected call sequence: %+v", chat.calls)
	}
}

func TestGenerate_AllModelsFail(t *testing.T) {
	chat := &scriptedChat{failures: 1000}
	gen := NewGenerator(chat, "model-a", []string{"model-b"})

	if _, err := gen.Generate(context.Background(), Input{JobURL: "https://example.com/job"}); err == nil {
		t.Fatal("expected an error when every model attempt fails")
	}
}

func TestGenerate_MissingQuestionText(t *testing.T) {
	chat := &scriptedChat{response: `{"type": "technical", "difficulty": "hard"}`}
	gen := NewGenerator(chat, "model-a", nil)

	if _, err := gen.Generate(context.Background(), Input{JobURL: "https://example.com/job"}); err == nil {
		t.Fatal("expected an error when the payload has no question text")
	}
}

func TestGenerate_SignalFallbacks(t *testing.T) {
	chat := &scriptedChat{response: `{"text": "Describe your experience.", "good_signals": "not a list"}`}
	gen := NewGenerator(chat, "model-a", nil)

	prompt, err := gen.Generate(context.Background(), Input{JobURL: "https://example.com/job"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(prompt.GoodSignals) == 0 || len(prompt.RedFlags) == 0 {
		t.Errorf("expected fallback signals, got %+v", prompt)
	}
	// Unfiltered request with no type in the payload resolves to defaults.
	if prompt.Type != "technical" || prompt.Difficulty != "medium" {
		t.Errorf("expected default type/difficulty, got %s/%s", prompt.Type, prompt.Difficulty)
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantKey string
		wantErr bool
	}{
		{"direct", `{"text": "q"}`, "text", false},
		{"fenced", "Here you go:\n```json\n{\"text\": \"q\"}\n```", "text", false},
		{"fenced no lang", "```\n{\"text\": \"q\"}\n```", "text", false},
		{"embedded braces", `The answer is {"text": "q"} as requested.`, "text", false},
		{"empty", "", "", true},
		{"no object", "I cannot help with that.", "", true},
		{"array only", `[1, 2, 3]`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := ExtractJSONObject(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExtractJSONObject error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				if _, ok := obj[tt.wantKey]; !ok {
					t.Errorf("expected key %q in %v", tt.wantKey, obj)
				}
			}
		})
	}
}

func TestCoerceStringList(t *testing.T) {
	fallback := []string{"default"}

	tests := []struct {
		name string
		in   any
		want []string
	}{
		{"strings kept", []any{"a", "b"}, []string{"a", "b"}},
		{"trimmed and blanks dropped", []any{" a ", "", "b"}, []string{"a", "b"}},
		{"capped at five", []any{"1", "2", "3", "4", "5", "6"}, []string{"1", "2", "3", "4", "5"}},
		{"non-strings stringified", []any{float64(7), true}, []string{"7", "true"}},
		{"not a list", "nope", fallback},
		{"empty list", []any{}, fallback},
		{"all blank", []any{"", "  "}, fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := coerceStringList(tt.in, fallback); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("coerceStringList(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
