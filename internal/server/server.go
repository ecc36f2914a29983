package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/goaidetect/internal/app"
	"github.com/hyperifyio/goaidetect/internal/cache"
	"github.com/hyperifyio/goaidetect/internal/fetch"
	"github.com/hyperifyio/goaidetect/internal/score"
)

// Server wires the fetch, extract, route pipeline behind the HTTP
// surface. Scoring state lives in the router's backends; results may be
// cached per URL when CacheTTL is set.
type Server struct {
	cfg     app.Config
	fetcher *fetch.Client
	bulk    *fetch.Client
	router  *score.Router
	results *cache.ResultCache[score.Result]
}

// New builds a Server. The bulk path uses its own fetch client with the
// longer per-request timeout.
func New(cfg app.Config, router *score.Router) *Server {
	return &Server{
		cfg:     cfg,
		fetcher: &fetch.Client{Timeout: cfg.FetchTimeout},
		bulk:    &fetch.Client{Timeout: cfg.BulkTimeout},
		router:  router,
		results: cache.New[score.Result](cfg.CacheTTL),
	}
}

// Handler returns the routed HTTP handler with access logging and CORS
// headers (the browser extension calls this API cross-origin).
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/score", s.handleScore)
	mux.HandleFunc("/analyze", s.handleAnalyze)
	mux.HandleFunc("/bulk_analyze", s.handleBulkAnalyze)
	mux.HandleFunc("/health", s.handleHealth)
	return withCORS(withAccessLog(mux))
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort(s.cfg.Host, fmt.Sprintf("%d", s.cfg.Port)),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("backend", s.cfg.Backend).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request served")
	})
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
