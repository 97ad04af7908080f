package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// placeholder value shipped in .env.example; treated the same as unset
const placeholderKey = "your_openai_api_key_here"

type Config struct {
	Port        string
	StorageRoot string

	OpenAIAPIKey    string
	AnthropicAPIKey string

	SummaryModel    string
	ChatModel       string
	TranscribeModel string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("[INFO] No .env file found, using environment variables")
	}

	return &Config{
		Port:            getEnv("PORT", "8000"),
		StorageRoot:     getEnv("STORAGE_ROOT", "storage"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		SummaryModel:    getEnv("OPENAI_MODEL_SUMMARY", "gpt-4o-mini"),
		ChatModel:       getEnv("OPENAI_MODEL_CHAT", "gpt-4o-mini"),
		TranscribeModel: getEnv("OPENAI_MODEL_TRANSCRIBE", "whisper-1"),
	}
}

// HasOpenAI reports whether a usable OpenAI key is configured.
func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != "" && c.OpenAIAPIKey != placeholderKey
}

// HasAnthropic reports whether a usable Anthropic key is configured.
func (c *Config) HasAnthropic() bool {
	return c.AnthropicAPIKey != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
