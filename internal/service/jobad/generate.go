package jobad

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"

	"interview-coach-service/internal/models"
	"interview-coach-service/internal/observability/logging"
	"interview-coach-service/internal/observability/metrics"
	"interview-coach-service/internal/service/llm"
	"interview-coach-service/internal/service/prompts"
)

// jobTextLimit bounds how much page text goes into the generation prompt.
const jobTextLimit = 10000

// defaultModels are tried after the configured model and its fallbacks.
var defaultModels = []string{
	"llama-3.3-70b-versatile",
	"llama-3.1-70b-versatile",
	"mixtral-8x7b-32768",
}

// ChatClient is the completion surface the generator needs.
type ChatClient interface {
	Complete(ctx context.Context, model string, messages []llm.Message, opts *llm.Options) (string, error)
}

// Generator synthesizes interview prompts from job-ad text.
type Generator struct {
	client  ChatClient
	models  []string
	metrics *metrics.Metrics
}

// NewGenerator creates a generator. The configured model is tried first,
// then its fallbacks, then a built-in fallback list.
func NewGenerator(client ChatClient, model string, fallbacks []string) *Generator {
	candidates := make([]string, 0, 1+len(fallbacks)+len(defaultModels))
	seen := map[string]bool{}
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name != "" && !seen[name] {
			seen[name] = true
			candidates = append(candidates, name)
		}
	}
	add(model)
	for _, f := range fallbacks {
		add(f)
	}
	for _, d := range defaultModels {
		add(d)
	}

	return &Generator{
		client:  client,
		models:  candidates,
		metrics: metrics.DefaultMetrics,
	}
}

// Input describes one generation request.
type Input struct {
	JobURL     string
	JobTitle   string
	JobText    string
	Type       string // prompt-type filter, "all" to let the model infer
	Difficulty string // difficulty filter, "all" to let the model infer
}

const systemPrompt = "You generate one high-quality interview practice question from a job advertisement. " +
	"Return strict JSON only, no markdown. Keep the question realistic and role-specific."

// Generate asks the chat model for one role-specific prompt.
//
// Each candidate model gets two attempts: one with json_object response
// format, then a plain retry for models that reject that parameter. An
// explicit type or difficulty filter always overrides whatever the model
// returns.
func (g *Generator) Generate(ctx context.Context, in Input) (prompt models.Prompt, err error) {
	defer func() { g.metrics.RecordPromptGeneration(err) }()

	logger := logging.WithComponent("jobad")

	normalizedType := prompts.NormalizeType(in.Type)
	normalizedDifficulty := prompts.NormalizeDifficulty(in.Difficulty)

	messages := []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: buildGenerationPrompt(in, normalizedType, normalizedDifficulty)},
	}

	var content, chosenModel string
	var lastErr error
	for _, model := range g.models {
		content, lastErr = g.client.Complete(ctx, model, messages, &llm.Options{
			Temperature:    0.4,
			ResponseFormat: "json_object",
		})
		if lastErr == nil {
			chosenModel = model
			break
		}
		logger.Warn().Err(lastErr).Str("model", model).Msg("generation failed, retrying without response format")

		content, lastErr = g.client.Complete(ctx, model, messages, &llm.Options{Temperature: 0.4})
		if lastErr == nil {
			chosenModel = model
			break
		}
		logger.Warn().Err(lastErr).Str("model", model).Msg("generation retry failed")
	}
	if chosenModel == "" {
		return models.Prompt{}, fmt.Errorf("all model attempts failed: %w", lastErr)
	}

	payload, err := ExtractJSONObject(content)
	if err != nil {
		return models.Prompt{}, err
	}

	resultType := prompts.NormalizeType(stringField(payload, "type", normalizedType))
	if normalizedType != "all" {
		resultType = normalizedType
	}
	if resultType == "all" {
		resultType = "technical"
	}

	resultDifficulty := prompts.NormalizeDifficulty(stringField(payload, "difficulty", normalizedDifficulty))
	if normalizedDifficulty != "all" {
		resultDifficulty = normalizedDifficulty
	}
	if resultDifficulty == "all" {
		resultDifficulty = "medium"
	}

	text := strings.TrimSpace(stringField(payload, "text", ""))
	if text == "" {
		return models.Prompt{}, errors.New("generated prompt has no question text")
	}

	prompt = models.Prompt{
		ID:         promptID(in.JobURL, in.JobTitle, text),
		Type:       resultType,
		Difficulty: resultDifficulty,
		Text:       text,
		GoodSignals: coerceStringList(payload["good_signals"], []string{
			"References responsibilities and requirements from the job ad",
			"Explains tradeoffs and decisions clearly",
		}),
		RedFlags: coerceStringList(payload["red_flags"], []string{
			"Generic answer not tied to the posted role",
			"No clear rationale or prioritization",
		}),
		Source:     "groq_job_ad",
		JobAdURL:   in.JobURL,
		JobAdTitle: in.JobTitle,
		GroqModel:  chosenModel,
	}

	logger.Info().
		Str("model", chosenModel).
		Str("type", prompt.Type).
		Str("difficulty", prompt.Difficulty).
		Msg("generated prompt from job ad")
	return prompt, nil
}

func buildGenerationPrompt(in Input, normalizedType, normalizedDifficulty string) string {
	jobText := in.JobText
	if len(jobText) > jobTextLimit {
		jobText = jobText[:jobTextLimit]
	}

	var b strings.Builder
	b.WriteString(`Generate one interview prompt from this job ad.

Requirements:
- Use the job ad details heavily (responsibilities, skills, seniority).
- If prompt_type is not "all", use it exactly.
- If difficulty is not "all", use it exactly.
- If prompt_type is "all", infer one of: technical, behavioral, situational, general.
- If difficulty is "all", infer one of: easy, medium, hard, expert, master.
- Return ONLY one valid JSON object (no markdown, no comments, no extra text).
- JSON schema:
  {
    "id": "custom_prompt",
    "type": "technical|behavioral|situational|general",
    "text": "interview question",
    "difficulty": "easy|medium|hard|expert|master",
    "good_signals": ["...", "..."],
    "red_flags": ["...", "..."]
  }
- ` + "`good_signals` and `red_flags`" + ` should each contain 2-5 concise strings.

User-selected filters:
`)
	fmt.Fprintf(&b, "- prompt_type: %s\n", normalizedType)
	fmt.Fprintf(&b, "- difficulty: %s\n\n", normalizedDifficulty)
	fmt.Fprintf(&b, "Job Ad URL:\n%s\n\n", in.JobURL)
	fmt.Fprintf(&b, "Job Ad Title:\n%s\n\n", in.JobTitle)
	fmt.Fprintf(&b, "Job Ad Text (truncated):\n%s", jobText)
	return b.String()
}

var fencedJSON = regexp.MustCompile("(?is)```(?:json)?\\s*(\\{.*\\})\\s*```")

// ExtractJSONObject pulls a JSON object out of a model response.
// It tries the whole text first, then a fenced code block, then the span
// from the first '{' to the last '}'.
func ExtractJSONObject(raw string) (map[string]any, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, errors.New("empty model response")
	}

	if obj := tryUnmarshalObject(text); obj != nil {
		return obj, nil
	}

	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		if obj := tryUnmarshalObject(m[1]); obj != nil {
			return obj, nil
		}
	}

	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first >= 0 && last > first {
		if obj := tryUnmarshalObject(text[first : last+1]); obj != nil {
			return obj, nil
		}
	}

	preview := strings.ReplaceAll(text, "\n", " ")
	if len(preview) > 500 {
		preview = preview[:500]
	}
	return nil, fmt.Errorf("could not parse JSON object from model response: %s", preview)
}

func tryUnmarshalObject(text string) map[string]any {
	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil
	}
	return obj
}

// coerceStringList keeps at most five non-empty strings, falling back when
// the value is not a list or the cleaned list is empty.
func coerceStringList(v any, fallback []string) []string {
	list, ok := v.([]any)
	if !ok {
		return fallback
	}
	var cleaned []string
	for _, item := range list {
		s := strings.TrimSpace(fmt.Sprint(item))
		if s != "" {
			cleaned = append(cleaned, s)
		}
		if len(cleaned) == 5 {
			break
		}
	}
	if len(cleaned) == 0 {
		return fallback
	}
	return cleaned
}

func stringField(m map[string]any, key, fallback string) string {
	if s, ok := m[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

func promptID(jobURL, jobTitle, text string) string {
	h := fnv.New32a()
	h.Write([]byte(jobURL))
	h.Write([]byte{0})
	h.Write([]byte(jobTitle))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return fmt.Sprintf("jobad_groq_%d", h.Sum32()%10_000_000)
}
