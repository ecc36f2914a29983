// Command openai-stub is a tiny OpenAI-compatible server used for local
// smoke testing of the chat, classifier, and local scoring backends
// without real providers. Point OPENAI/LOCAL base URLs at it.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func main() {
	model := os.Getenv("MODEL_ID")
	if strings.TrimSpace(model) == "" {
		model = "test-model"
	}
	addr := os.Getenv("ADDR")
	if strings.TrimSpace(addr) == "" {
		addr = ":8081"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/models", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"id": model, "object": "model"}},
		})
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)

		sys, user := "", ""
		for _, m := range req.Messages {
			switch m.Role {
			case "system":
				sys = m.Content
			case "user":
				user = m.Content
			}
		}

		var content string
		switch {
		case strings.Contains(sys, "AI-writing detector"):
			// Classifier backend: one-line cue verdict
			content = `{"label":"ai_like","cues":["템플릿형 도입","일반론 위주","고유명사"],"reason":"templated opening with generic claims"}`
		case strings.Contains(user, "Example response format"):
			// Local backend: fenced JSON exercises the fence stripping
			content = "```json\n{\"score\": 63, \"reason\": \"even rhythm, few personal details\"}\n```"
		default:
			// Chat backend: plain JSON object
			content = `{"score": 42, "reason": "mixed signals in phrasing"}`
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "stub",
			"object":  "chat.completion",
			"model":   req.Model,
			"choices": []map[string]any{{"index": 0, "finish_reason": "stop", "message": map[string]any{"role": "assistant", "content": content}}},
		})
	})

	log.Printf("openai-stub listening on %s (model %s)", addr, model)
	log.Fatal(http.ListenAndServe(addr, mux))
}
