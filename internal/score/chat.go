package score

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/goaidetect/internal/llm"
)

// ChatScorer scores text through an OpenAI chat model. JSON-object output
// mode nudges the provider toward the contract but does not enforce a
// schema, so the response is parsed defensively.
type ChatScorer struct {
	Client llm.Client
	APIKey string
	Model  string
}

func (s *ChatScorer) Name() string { return "gpt" }

func (s *ChatScorer) Score(ctx context.Context, text string) Result {
	if strings.TrimSpace(s.APIKey) == "" {
		return Invalid(ReasonMissingCredential)
	}
	resp, err := s.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: detectInstruction},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(text)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		N: 1,
	})
	if err != nil {
		if isOpenAIAuthError(err) {
			log.Warn().Err(err).Msg("openai rejected credentials")
			return Invalid(ReasonAuthIssue)
		}
		log.Error().Err(err).Msg("openai chat call failed")
		return Invalid(err.Error())
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return Invalid(ReasonEmptyResponse)
	}
	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	res, perr := parsePayload(raw)
	if perr != nil {
		log.Error().Str("raw", raw).Msg("openai returned unparseable JSON")
		return Invalid(ReasonBadOutput)
	}
	return res
}

func isOpenAIAuthError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusUnauthorized ||
			apiErr.HTTPStatusCode == http.StatusForbidden
	}
	return false
}
