package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the runtime configuration, read from the environment.
type Config struct {
	Server ServerConfig
	AI     AIConfig
	Store  StoreConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `env:"SERVER_ADDR" env-default:":8080"`
}

// AIConfig holds the generative API settings. The default base URL points at
// Gemini's OpenAI-compatible endpoint; the heavy "pro" model handles
// extraction, copy generation and translation, the "flash" model handles
// single-title regeneration.
type AIConfig struct {
	APIKey     string `env:"GEMINI_API_KEY" env-required:"true"`
	BaseURL    string `env:"AI_BASE_URL" env-default:"https://generativelanguage.googleapis.com/v1beta/openai/"`
	ProModel   string `env:"AI_PRO_MODEL" env-default:"gemini-2.5-pro"`
	FlashModel string `env:"AI_FLASH_MODEL" env-default:"gemini-2.5-flash"`
}

// StoreConfig holds persistence settings.
type StoreConfig struct {
	Path string `env:"STORE_PATH" env-default:"data/assistant.db"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read config from environment: %w", err)
	}
	return &cfg, nil
}
