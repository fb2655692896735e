// Package config loads the agent's environment and system prompt.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config carries everything the agent needs from the environment.
type Config struct {
	// Chat model (OpenAI-compatible, Azure deployments included).
	ModelEndpoint   string
	ModelKey        string
	ModelName       string
	ModelAPIVersion string

	// Tool credentials and knobs.
	TavilyAPIKey string
	WhisperModel string
	ExecTimeout  time.Duration

	// SystemPrompt steers the assistant; loaded from the prompt file.
	SystemPrompt string
}

// promptFile is the YAML document holding the system prompt.
type promptFile struct {
	SystemPrompt string `yaml:"system_prompt"`
}

// Load reads .env (if present), the process environment and the system
// prompt file. promptPath may be empty to skip the prompt.
func Load(promptPath string) (*Config, error) {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg := &Config{
		ModelEndpoint:   os.Getenv("MODEL_ENDPOINT"),
		ModelKey:        os.Getenv("MODEL_KEY"),
		ModelName:       os.Getenv("MODEL_NAME"),
		ModelAPIVersion: os.Getenv("MODEL_API_VERSION"),
		TavilyAPIKey:    os.Getenv("TAVILY_API_KEY"),
		WhisperModel:    os.Getenv("WHISPER_MODEL"),
		ExecTimeout:     30 * time.Second,
	}

	if v := os.Getenv("EXEC_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid EXEC_TIMEOUT %q: %w", v, err)
		}
		cfg.ExecTimeout = d
	}

	if cfg.ModelKey == "" {
		return nil, fmt.Errorf("MODEL_KEY not set")
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("MODEL_NAME not set")
	}

	if promptPath != "" {
		data, err := os.ReadFile(promptPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read prompt file: %w", err)
		}
		var pf promptFile
		if err := yaml.Unmarshal(data, &pf); err != nil {
			return nil, fmt.Errorf("failed to parse prompt file: %w", err)
		}
		cfg.SystemPrompt = pf.SystemPrompt
	}

	return cfg, nil
}
