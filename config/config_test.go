package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MODEL_KEY", "test-key")
	t.Setenv("MODEL_NAME", "test-model")
	t.Setenv("MODEL_ENDPOINT", "https://models.example.com")
	t.Setenv("MODEL_API_VERSION", "2024-02-01")
	t.Setenv("TAVILY_API_KEY", "tvly-test")
	t.Setenv("EXEC_TIMEOUT", "")
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)

	promptPath := filepath.Join(t.TempDir(), "system_prompt.yaml")
	require.NoError(t, os.WriteFile(promptPath,
		[]byte("system_prompt: |\n  be concise\n"), 0o644))

	cfg, err := Load(promptPath)
	require.NoError(t, err)
	assert.Equal(t, "test-key", cfg.ModelKey)
	assert.Equal(t, "test-model", cfg.ModelName)
	assert.Equal(t, "https://models.example.com", cfg.ModelEndpoint)
	assert.Equal(t, "2024-02-01", cfg.ModelAPIVersion)
	assert.Equal(t, "tvly-test", cfg.TavilyAPIKey)
	assert.Equal(t, "be concise\n", cfg.SystemPrompt)
}

func TestLoadWithoutPrompt(t *testing.T) {
	setRequiredEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.SystemPrompt)
}

func TestLoadMissingKey(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MODEL_KEY", "")
	_, err := Load("")
	require.Error(t, err)
}

func TestLoadExecTimeout(t *testing.T) {
	setRequiredEnv(t)

	t.Setenv("EXEC_TIMEOUT", "90s")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "1m30s", cfg.ExecTimeout.String())

	t.Setenv("EXEC_TIMEOUT", "never")
	_, err = Load("")
	require.Error(t, err)
}

func TestLoadMissingPromptFile(t *testing.T) {
	setRequiredEnv(t)
	_, err := Load("/no/such/prompt.yaml")
	require.Error(t, err)
}
