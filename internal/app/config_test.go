package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "gemini", cfg.Backend)
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.GeminiModel)
	assert.Equal(t, "gpt-5-nano", cfg.OpenAIModel)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 30*time.Second, cfg.BulkTimeout)
	assert.Equal(t, 100, cfg.MinTextChars)
	assert.Equal(t, 1, cfg.BulkConcurrency)
	assert.False(t, cfg.Verbose)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("HOST", "0.0.0.0")
	t.Setenv("PORT", "8080")
	t.Setenv("BACKEND", " Local ")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("OPENAI_API_KEY", "o-key")
	t.Setenv("CLASSIFIER_MODEL", "ft:custom")
	t.Setenv("LOCAL_BASE_URL", "http://10.0.0.2:11434/v1")
	t.Setenv("FETCH_TIMEOUT", "20s")
	t.Setenv("BULK_CONCURRENCY", "4")
	t.Setenv("VERBOSE", "true")

	cfg := DefaultConfig()
	ApplyEnvOverrides(&cfg)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "local", cfg.Backend)
	assert.Equal(t, "g-key", cfg.GeminiAPIKey)
	assert.Equal(t, "o-key", cfg.OpenAIAPIKey)
	assert.Equal(t, "ft:custom", cfg.ClassifierModel)
	assert.Equal(t, "http://10.0.0.2:11434/v1", cfg.LocalBaseURL)
	assert.Equal(t, 20*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 4, cfg.BulkConcurrency)
	assert.True(t, cfg.Verbose)
}

func TestApplyEnvOverrides_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("FETCH_TIMEOUT", "soon")
	t.Setenv("MIN_TEXT_CHARS", "-5")

	cfg := DefaultConfig()
	ApplyEnvOverrides(&cfg)

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 100, cfg.MinTextChars)
}

func TestLoadConfigFile_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
host: 0.0.0.0
port: 9000
backend: gpt
openai:
  key: file-key
  model: gpt-4o-mini
fetch:
  timeout: 25s
  minTextChars: 200
bulk:
  concurrency: 3
verbose: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	fc, err := LoadConfigFile(path)
	require.NoError(t, err)

	cfg := DefaultConfig()
	ApplyFileConfig(&cfg, fc)

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "gpt", cfg.Backend)
	assert.Equal(t, "file-key", cfg.OpenAIAPIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, 25*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 200, cfg.MinTextChars)
	assert.Equal(t, 3, cfg.BulkConcurrency)
	assert.True(t, cfg.Verbose)
	// Untouched fields keep their defaults.
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.GeminiModel)
	assert.Equal(t, 30*time.Second, cfg.BulkTimeout)
}

func TestLoadConfigFile_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := `{"backend":"classifier","local":{"base":"http://127.0.0.1:8000/v1","model":"phi"}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	fc, err := LoadConfigFile(path)
	require.NoError(t, err)

	cfg := DefaultConfig()
	ApplyFileConfig(&cfg, fc)
	assert.Equal(t, "classifier", cfg.Backend)
	assert.Equal(t, "http://127.0.0.1:8000/v1", cfg.LocalBaseURL)
	assert.Equal(t, "phi", cfg.LocalModel)
}

func TestLoadConfigFile_Missing(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestEnvThenFlagsWinOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9000\nbackend: gpt\n"), 0o600))
	t.Setenv("PORT", "9100")

	fc, err := LoadConfigFile(path)
	require.NoError(t, err)

	cfg := DefaultConfig()
	ApplyFileConfig(&cfg, fc)
	ApplyEnvOverrides(&cfg)

	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "gpt", cfg.Backend)
}
