package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the single-file configuration schema. Nested sections map
// naturally to the env surface.
type FileConfig struct {
	Host    string `yaml:"host" json:"host"`
	Port    int    `yaml:"port" json:"port"`
	Backend string `yaml:"backend" json:"backend"`

	Gemini struct {
		APIKey string `yaml:"key" json:"key"`
		Model  string `yaml:"model" json:"model"`
	} `yaml:"gemini" json:"gemini"`

	OpenAI struct {
		APIKey          string `yaml:"key" json:"key"`
		Model           string `yaml:"model" json:"model"`
		ClassifierModel string `yaml:"classifierModel" json:"classifierModel"`
	} `yaml:"openai" json:"openai"`

	Local struct {
		BaseURL string `yaml:"base" json:"base"`
		Model   string `yaml:"model" json:"model"`
	} `yaml:"local" json:"local"`

	Fetch struct {
		// Durations use Go syntax, e.g. "15s".
		Timeout      string `yaml:"timeout" json:"timeout"`
		BulkTimeout  string `yaml:"bulkTimeout" json:"bulkTimeout"`
		MinTextChars int    `yaml:"minTextChars" json:"minTextChars"`
	} `yaml:"fetch" json:"fetch"`

	Bulk struct {
		Concurrency int `yaml:"concurrency" json:"concurrency"`
	} `yaml:"bulk" json:"bulk"`

	Cache struct {
		TTL string `yaml:"ttl" json:"ttl"`
	} `yaml:"cache" json:"cache"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays non-zero FileConfig values onto cfg. It runs
// before ApplyEnvOverrides, giving file config the lowest precedence.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if fc.Host != "" {
		cfg.Host = fc.Host
	}
	if fc.Port > 0 {
		cfg.Port = fc.Port
	}
	if fc.Backend != "" {
		cfg.Backend = fc.Backend
	}
	if fc.Gemini.APIKey != "" {
		cfg.GeminiAPIKey = fc.Gemini.APIKey
	}
	if fc.Gemini.Model != "" {
		cfg.GeminiModel = fc.Gemini.Model
	}
	if fc.OpenAI.APIKey != "" {
		cfg.OpenAIAPIKey = fc.OpenAI.APIKey
	}
	if fc.OpenAI.Model != "" {
		cfg.OpenAIModel = fc.OpenAI.Model
	}
	if fc.OpenAI.ClassifierModel != "" {
		cfg.ClassifierModel = fc.OpenAI.ClassifierModel
	}
	if fc.Local.BaseURL != "" {
		cfg.LocalBaseURL = fc.Local.BaseURL
	}
	if fc.Local.Model != "" {
		cfg.LocalModel = fc.Local.Model
	}
	if d, err := time.ParseDuration(fc.Fetch.Timeout); err == nil && d > 0 {
		cfg.FetchTimeout = d
	}
	if d, err := time.ParseDuration(fc.Fetch.BulkTimeout); err == nil && d > 0 {
		cfg.BulkTimeout = d
	}
	if fc.Fetch.MinTextChars > 0 {
		cfg.MinTextChars = fc.Fetch.MinTextChars
	}
	if fc.Bulk.Concurrency > 0 {
		cfg.BulkConcurrency = fc.Bulk.Concurrency
	}
	if d, err := time.ParseDuration(fc.Cache.TTL); err == nil && d > 0 {
		cfg.CacheTTL = d
	}
	if fc.Verbose {
		cfg.Verbose = true
	}
}
