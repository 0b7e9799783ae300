// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the interview coach service.
type Config struct {
	Service       ServiceConfig
	STT           STTConfig
	OpenAI        OpenAIConfig
	Groq          GroqConfig
	Upload        UploadConfig
	Kafka         KafkaConfig
	Observability ObservabilityConfig
}

// ServiceConfig holds core service settings.
type ServiceConfig struct {
	Principal   string
	HTTPPort    string
	CORSOrigins []string
}

// STTConfig holds speech-to-text provider settings.
type STTConfig struct {
	Provider     string // openai, google, mock
	LanguageCode string
	SampleRateHz int
}

// OpenAIConfig holds OpenAI API settings for transcription and review.
type OpenAIConfig struct {
	APIKey       string
	BaseURL      string
	WhisperModel string
	ChatModel    string
	Timeout      time.Duration
}

// GroqConfig holds Groq settings for job-ad prompt generation.
type GroqConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	ModelFallbacks []string
	Timeout        time.Duration
}

// UploadConfig holds audio upload settings.
type UploadConfig struct {
	Dir        string
	MaxBytes   int64
	FFmpegPath string
}

// KafkaConfig holds Kafka event publishing settings.
type KafkaConfig struct {
	Enabled        bool
	Brokers        []string
	TopicCompleted string
	Principal      string
}

// ObservabilityConfig holds logging and metrics settings.
type ObservabilityConfig struct {
	LogLevel    string
	LogFormat   string
	MetricsPort string
}

// Load reads configuration from the environment, applying defaults.
// A .env file in the working directory is loaded first if present.
func Load() *Config {
	_ = godotenv.Load()

	principal := envOrDefault("SERVICE_PRINCIPAL", "svc-interview-coach")

	return &Config{
		Service: ServiceConfig{
			Principal: principal,
			HTTPPort:  envOrDefault("HTTP_PORT", "8000"),
			CORSOrigins: envOrDefaultList("CORS_ORIGINS", []string{
				"http://localhost:5173",
				"http://127.0.0.1:5173",
				"http://localhost:3000",
				"http://127.0.0.1:3000",
			}),
		},
		STT: STTConfig{
			Provider:     envOrDefault("STT_PROVIDER", "openai"),
			LanguageCode: envOrDefault("STT_LANGUAGE_CODE", "en-US"),
			SampleRateHz: envOrDefaultInt("STT_SAMPLE_RATE_HZ", 16000),
		},
		OpenAI: OpenAIConfig{
			APIKey:       firstEnv("OPENAI_API_KEY", "OPEN_AI_API_KEY"),
			BaseURL:      envOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			WhisperModel: envOrDefault("OPENAI_WHISPER_MODEL", "whisper-1"),
			ChatModel:    envOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
			Timeout:      envOrDefaultDuration("OPENAI_TIMEOUT", 120*time.Second),
		},
		Groq: GroqConfig{
			APIKey:         os.Getenv("GROQ_API_KEY"),
			BaseURL:        envOrDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
			Model:          envOrDefault("GROQ_MODEL", "llama-3.3-70b-versatile"),
			ModelFallbacks: envOrDefaultList("GROQ_MODEL_FALLBACKS", nil),
			Timeout:        envOrDefaultDuration("GROQ_TIMEOUT", 60*time.Second),
		},
		Upload: UploadConfig{
			Dir:        envOrDefault("UPLOAD_DIR", "uploads"),
			MaxBytes:   envOrDefaultInt64("UPLOAD_MAX_BYTES", 25*1024*1024),
			FFmpegPath: os.Getenv("FFMPEG_PATH"),
		},
		Kafka: KafkaConfig{
			Enabled:        envOrDefaultBool("KAFKA_ENABLED", false),
			Brokers:        envOrDefaultList("KAFKA_BROKERS", nil),
			TopicCompleted: envOrDefault("KAFKA_TOPIC_COMPLETED", "interview.analysis.completed"),
			Principal:      envOrDefault("KAFKA_PRINCIPAL", principal),
		},
		Observability: ObservabilityConfig{
			LogLevel:    envOrDefault("LOG_LEVEL", "info"),
			LogFormat:   envOrDefault("LOG_FORMAT", "json"),
			MetricsPort: envOrDefault("METRICS_PORT", "9090"),
		},
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func envOrDefaultInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envOrDefaultInt64(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return def
	}
	return n
}

func envOrDefaultBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(strings.ToLower(v))
	if err != nil {
		return def
	}
	return b
}

func envOrDefaultDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func envOrDefaultList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
