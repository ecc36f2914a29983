package score

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/goaidetect/internal/llm"
)

// DefaultLocalBaseURL is the OpenAI-compatible surface of a local Ollama
// instance.
const DefaultLocalBaseURL = "http://127.0.0.1:11434/v1"

// LocalScorer scores text through a self-hosted generation service. No
// credential check is performed; the service is assumed reachable. The
// model has no dedicated system channel, so the instruction is embedded
// inline in the single user prompt, and the response may arrive wrapped in
// markdown fences. Every call, including failed ones, records its wall
// clock duration in the shared latency window.
type LocalScorer struct {
	Client  llm.Client
	Model   string
	Latency *LatencyTracker
}

// NewLocalScorer builds a scorer talking to an OpenAI-compatible server at
// baseURL with a fresh ten-slot latency window.
func NewLocalScorer(baseURL, model string) *LocalScorer {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultLocalBaseURL
	}
	cfg := openai.DefaultConfig("local")
	cfg.BaseURL = baseURL
	return &LocalScorer{
		Client:  &llm.OpenAIProvider{Inner: openai.NewClientWithConfig(cfg)},
		Model:   model,
		Latency: NewLatencyTracker(10),
	}
}

func (s *LocalScorer) Name() string { return "local" }

func (s *LocalScorer) Score(ctx context.Context, text string) Result {
	start := time.Now()
	res := s.scoreOnce(ctx, text)
	elapsed := time.Since(start)
	if avg, ok := s.Latency.Observe(elapsed); ok {
		res.AvgElapsed10 = &avg
		log.Info().Float64("avg_elapsed_10", avg).Msg("trailing average over last ten local calls")
	}
	log.Debug().Dur("elapsed", elapsed).Int("score", res.Score).Msg("local analysis finished")
	return res
}

func (s *LocalScorer) scoreOnce(ctx context.Context, text string) Result {
	prompt := detectInstruction +
		"\n\nText to analyze:\n" + truncate(text) +
		"\n\nExample response format:\n{\"score\": 75, \"reason\": \"Brief explanation here\"}"

	resp, err := s.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		N: 1,
	})
	if err != nil {
		log.Error().Err(err).Msg("local model call failed")
		return Invalid(err.Error())
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return Invalid(ReasonEmptyResponse)
	}
	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	res, perr := parsePayload(raw)
	if perr != nil {
		log.Error().Str("raw", raw).Msg("local model returned unparseable JSON")
		return Invalid(ReasonBadOutput)
	}
	return res
}
