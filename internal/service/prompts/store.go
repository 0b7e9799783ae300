// Package prompts holds the built-in interview question catalog.
package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"

	"interview-coach-service/internal/models"
)

//go:embed prompts.json
var catalogJSON []byte

// Store serves the immutable prompt catalog.
type Store struct {
	prompts []models.Prompt
}

// NewStore loads the embedded catalog.
func NewStore() (*Store, error) {
	var prompts []models.Prompt
	if err := json.Unmarshal(catalogJSON, &prompts); err != nil {
		return nil, fmt.Errorf("loading prompt catalog: %w", err)
	}
	if len(prompts) == 0 {
		return nil, fmt.Errorf("prompt catalog is empty")
	}
	return &Store{prompts: prompts}, nil
}

// All returns every prompt in the catalog.
func (s *Store) All() []models.Prompt {
	out := make([]models.Prompt, len(s.prompts))
	copy(out, s.prompts)
	return out
}

// Filter returns prompts matching the normalized type and difficulty.
// "all" on either axis matches everything.
func (s *Store) Filter(promptType, difficulty string) []models.Prompt {
	promptType = NormalizeType(promptType)
	difficulty = NormalizeDifficulty(difficulty)

	var out []models.Prompt
	for _, p := range s.prompts {
		if promptType != "all" && p.Type != promptType {
			continue
		}
		if difficulty != "all" && p.Difficulty != difficulty {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Random returns a random prompt from the filtered set,
// or false when the filter matches nothing.
func (s *Store) Random(promptType, difficulty string) (models.Prompt, bool) {
	matches := s.Filter(promptType, difficulty)
	if len(matches) == 0 {
		return models.Prompt{}, false
	}
	return matches[rand.Intn(len(matches))], true
}

// NormalizeType lowercases a prompt type and maps unknown values to "all".
func NormalizeType(promptType string) string {
	promptType = strings.ToLower(strings.TrimSpace(promptType))
	for _, known := range models.PromptTypes {
		if promptType == known {
			return promptType
		}
	}
	return "all"
}

// NormalizeDifficulty lowercases a difficulty and maps unknown values to "all".
func NormalizeDifficulty(difficulty string) string {
	difficulty = strings.ToLower(strings.TrimSpace(difficulty))
	for _, known := range models.PromptDifficulties {
		if difficulty == known {
			return difficulty
		}
	}
	return "all"
}
