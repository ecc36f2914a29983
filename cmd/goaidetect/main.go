package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/goaidetect/internal/app"
	"github.com/hyperifyio/goaidetect/internal/llm"
	"github.com/hyperifyio/goaidetect/internal/score"
	"github.com/hyperifyio/goaidetect/internal/server"
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Credentials may live next to the binary during development.
	if err := app.LoadEnvFiles(".env"); err != nil {
		log.Warn().Err(err).Msg("dotenv load failed")
	}

	cfg := app.DefaultConfig()

	var (
		configPath string
		host       string
		port       int
		backend    string
		verbose    bool
	)
	flag.StringVar(&configPath, "config", "", "Path to YAML/JSON config file (optional)")
	flag.StringVar(&host, "host", "", "Listen host (overrides HOST)")
	flag.IntVar(&port, "port", 0, "Listen port (overrides PORT)")
	flag.StringVar(&backend, "backend", "", "Scoring backend: gemini|gpt|classifier|local (overrides BACKEND)")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	// Precedence: flags > env > file > defaults.
	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", configPath).Msg("config file load failed")
		}
		app.ApplyFileConfig(&cfg, fc)
	}
	app.ApplyEnvOverrides(&cfg)
	if host != "" {
		cfg.Host = host
	}
	if port > 0 {
		cfg.Port = port
	}
	if backend != "" {
		cfg.Backend = strings.ToLower(strings.TrimSpace(backend))
	}
	if verbose {
		cfg.Verbose = true
	}

	if cfg.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	router := buildRouter(cfg)
	if _, known := knownMode(router, cfg.Backend); !known {
		log.Warn().Str("backend", cfg.Backend).Strs("available", router.Modes()).
			Msg("configured backend is not registered; scoring requests will fail")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Backend == "local" {
		preflightLocal(ctx, cfg)
	}

	if err := server.New(cfg, router).Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func buildRouter(cfg app.Config) *score.Router {
	openaiClient := &llm.OpenAIProvider{Inner: openai.NewClient(cfg.OpenAIAPIKey)}

	router := score.NewRouter()
	router.Register(&score.GeminiScorer{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel})
	router.Register(&score.ChatScorer{Client: openaiClient, APIKey: cfg.OpenAIAPIKey, Model: cfg.OpenAIModel})
	router.Register(&score.ClassifierScorer{Client: openaiClient, APIKey: cfg.OpenAIAPIKey, Model: cfg.ClassifierModel})
	router.Register(score.NewLocalScorer(cfg.LocalBaseURL, cfg.LocalModel))
	return router
}

func knownMode(r *score.Router, mode string) (string, bool) {
	for _, m := range r.Modes() {
		if m == mode {
			return m, true
		}
	}
	return "", false
}

// preflightLocal checks the local server is reachable by listing models.
// Best effort: failures are logged, not fatal, and surface later as
// per-request sentinel results.
func preflightLocal(ctx context.Context, cfg app.Config) {
	base := cfg.LocalBaseURL
	if base == "" {
		base = score.DefaultLocalBaseURL
	}
	transportCfg := openai.DefaultConfig("local")
	transportCfg.BaseURL = base
	client := &llm.OpenAIProvider{Inner: openai.NewClientWithConfig(transportCfg)}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	models, err := client.ListModels(ctx)
	if err != nil {
		log.Warn().Err(err).Str("base", base).Msg("local model list failed; continuing")
		return
	}
	log.Info().Int("count", len(models.Models)).Msg("local models available")
}
