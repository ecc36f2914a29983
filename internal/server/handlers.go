package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/hyperifyio/goaidetect/internal/cache"
	"github.com/hyperifyio/goaidetect/internal/extract"
	"github.com/hyperifyio/goaidetect/internal/fetch"
	"github.com/hyperifyio/goaidetect/internal/score"
)

// ReasonNoExtract is the fixed reason returned when a page yields no
// analyzable text. That outcome is a valid zero-score success, not an
// error.
const ReasonNoExtract = "could not extract text or URL is invalid"

const reasonBadURL = "empty or invalid url"

type scoreRequest struct {
	URL string `json:"url"`
}

type scoreResponse struct {
	URL string `json:"url"`
	score.Result
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		writeJSON(w, http.StatusBadRequest, score.Invalid(reasonBadURL))
		return
	}
	url := strings.TrimSpace(req.URL)

	if res, ok := s.results.Get(cache.Key(url, s.cfg.Backend)); ok {
		writeJSON(w, http.StatusOK, scoreResponse{URL: url, Result: res})
		return
	}
	text, ok := s.extractText(r.Context(), s.fetcher, url)
	if !ok {
		writeJSON(w, http.StatusOK, scoreResponse{
			URL:    url,
			Result: score.Result{Score: 0, Reason: ReasonNoExtract},
		})
		return
	}
	res := s.routeAndRemember(r.Context(), url, text)
	writeJSON(w, http.StatusOK, scoreResponse{URL: url, Result: res})
}

type analyzeResponse struct {
	URL    string `json:"url"`
	Score  int    `json:"score"`
	Reason string `json:"reason,omitempty"`
}

type analyzeError struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}
	url := strings.TrimSpace(r.URL.Query().Get("url"))
	if len(url) < 8 {
		writeJSON(w, http.StatusBadRequest, analyzeError{URL: url, Error: reasonBadURL})
		return
	}
	if res, ok := s.results.Get(cache.Key(url, s.cfg.Backend)); ok {
		writeJSON(w, http.StatusOK, analyzeResponse{URL: url, Score: res.Score, Reason: res.Reason})
		return
	}
	text, ok := s.extractText(r.Context(), s.fetcher, url)
	if !ok {
		writeJSON(w, http.StatusUnprocessableEntity, analyzeError{URL: url, Error: "no extractable text"})
		return
	}
	res := s.routeAndRemember(r.Context(), url, text)
	writeJSON(w, http.StatusOK, analyzeResponse{URL: url, Score: res.Score, Reason: res.Reason})
}

type bulkRequest struct {
	URLs []string `json:"urls"`
}

type bulkItem struct {
	URL   string `json:"url"`
	Score *int   `json:"score,omitempty"`
	Error string `json:"error,omitempty"`
}

type bulkResponse struct {
	Results []bulkItem `json:"results"`
}

// handleBulkAnalyze scores a batch of URLs. The batch runs sequentially
// unless BulkConcurrency raises the in-flight cap; either way each URL's
// failure is reported per item and never aborts the rest.
func (s *Server) handleBulkAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var req bulkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, score.Invalid(reasonBadURL))
		return
	}

	results := make([]bulkItem, len(req.URLs))
	g, ctx := errgroup.WithContext(r.Context())
	limit := s.cfg.BulkConcurrency
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)
	for i, u := range req.URLs {
		g.Go(func() error {
			results[i] = s.analyzeOne(ctx, strings.TrimSpace(u))
			return nil
		})
	}
	_ = g.Wait()
	writeJSON(w, http.StatusOK, bulkResponse{Results: results})
}

func (s *Server) analyzeOne(ctx context.Context, url string) bulkItem {
	if url == "" {
		return bulkItem{URL: url, Error: reasonBadURL}
	}
	if res, ok := s.results.Get(cache.Key(url, s.cfg.Backend)); ok {
		return bulkItem{URL: url, Score: &res.Score}
	}
	text, ok := s.extractText(ctx, s.bulk, url)
	if !ok {
		return bulkItem{URL: url, Error: "no extractable text"}
	}
	res := s.routeAndRemember(ctx, url, text)
	return bulkItem{URL: url, Score: &res.Score}
}

// routeAndRemember scores text and caches the outcome, skipping sentinel
// results so transient provider failures get retried.
func (s *Server) routeAndRemember(ctx context.Context, url, text string) score.Result {
	res := s.router.Route(ctx, text, s.cfg.Backend)
	if res.Score >= 0 {
		s.results.Put(cache.Key(url, s.cfg.Backend), res)
	}
	return res
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// extractText runs fetch + extraction; any failure along the way means
// "nothing to analyze".
func (s *Server) extractText(ctx context.Context, client *fetch.Client, url string) (string, bool) {
	body, err := client.Get(ctx, url)
	if err != nil {
		return "", false
	}
	return extract.MainText(body, s.cfg.MinTextChars)
}
