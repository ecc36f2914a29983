package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides overrides cfg fields with environment variables when
// the corresponding variables are set. Called after flag parsing so env
// takes precedence over file config while flags stay highest.
func ApplyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}

	if v := os.Getenv("HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Port = n
		}
	}
	if v := os.Getenv("BACKEND"); v != "" {
		cfg.Backend = strings.ToLower(strings.TrimSpace(v))
	}

	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.GeminiAPIKey = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.GeminiModel = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAIAPIKey = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.OpenAIModel = v
	}
	if v := os.Getenv("CLASSIFIER_MODEL"); v != "" {
		cfg.ClassifierModel = v
	}
	if v := os.Getenv("LOCAL_BASE_URL"); v != "" {
		cfg.LocalBaseURL = v
	}
	if v := os.Getenv("LOCAL_MODEL"); v != "" {
		cfg.LocalModel = v
	}

	setDuration(&cfg.FetchTimeout, "FETCH_TIMEOUT")
	setDuration(&cfg.BulkTimeout, "BULK_TIMEOUT")
	setDuration(&cfg.CacheTTL, "CACHE_TTL")
	setInt(&cfg.MinTextChars, "MIN_TEXT_CHARS")
	setInt(&cfg.BulkConcurrency, "BULK_CONCURRENCY")
	setBool(&cfg.Verbose, "VERBOSE")
}

func setDuration(dst *time.Duration, envKey string) {
	if s := os.Getenv(envKey); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			*dst = d
		}
	}
}

func setInt(dst *int, envKey string) {
	if s := os.Getenv(envKey); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			*dst = n
		}
	}
}

func setBool(dst *bool, envKey string) {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(envKey))) {
	case "1", "true", "yes", "on":
		*dst = true
	case "0", "false", "no", "off":
		*dst = false
	}
}
