package app

import "time"

// Config holds runtime configuration for the scoring server.
type Config struct {
	// Listener
	Host string
	Port int

	// Backend selects the scoring mode for single-URL requests:
	// gemini | gpt | classifier | local.
	Backend string

	// Gemini (schema-constrained backend)
	GeminiAPIKey string
	GeminiModel  string

	// OpenAI (chat backend and fine-tuned classifier backend)
	OpenAIAPIKey    string
	OpenAIModel     string
	ClassifierModel string

	// Local OpenAI-compatible backend
	LocalBaseURL string
	LocalModel   string

	// Fetch/extract
	FetchTimeout time.Duration
	BulkTimeout  time.Duration
	MinTextChars int

	// BulkConcurrency caps in-flight URLs for bulk analysis. 1 keeps the
	// batch strictly sequential.
	BulkConcurrency int

	// CacheTTL keeps scoring results for repeat requests to the same URL.
	// Zero disables caching.
	CacheTTL time.Duration

	Verbose bool
}

// Defaults; file config, env and flags override them in that order.
const (
	DefaultHost            = "127.0.0.1"
	DefaultPort            = 5000
	DefaultBackend         = "gemini"
	DefaultGeminiModel     = "gemini-2.5-flash-lite"
	DefaultOpenAIModel     = "gpt-5-nano"
	DefaultClassifierModel = "ft:gpt-4.1-nano-2025-04-14:personal::CX0PCbYT"
	DefaultLocalModel      = "my_gguf_model"
)

// DefaultConfig returns a Config populated with every default.
func DefaultConfig() Config {
	return Config{
		Host:            DefaultHost,
		Port:            DefaultPort,
		Backend:         DefaultBackend,
		GeminiModel:     DefaultGeminiModel,
		OpenAIModel:     DefaultOpenAIModel,
		ClassifierModel: DefaultClassifierModel,
		LocalModel:      DefaultLocalModel,
		FetchTimeout:    15 * time.Second,
		BulkTimeout:     30 * time.Second,
		MinTextChars:    100,
		BulkConcurrency: 1,
	}
}
