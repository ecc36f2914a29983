package score

import (
	"context"
	"errors"
	"net/http"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeChat counts calls and replays a canned response, standing in for any
// OpenAI-compatible backend.
type fakeChat struct {
	calls   int
	lastReq openai.ChatCompletionRequest
	resp    openai.ChatCompletionResponse
	err     error
}

func (f *fakeChat) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.calls++
	f.lastReq = req
	return f.resp, f.err
}

func chatResp(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}},
		},
	}
}

func TestChatScorer_Success(t *testing.T) {
	fake := &fakeChat{resp: chatResp(`{"score": 77, "reason": "uniform cadence"}`)}
	s := &ChatScorer{Client: fake, APIKey: "sk-test", Model: "gpt-5-nano"}

	res := s.Score(context.Background(), "some extracted article text")
	assert.Equal(t, 77, res.Score)
	assert.Equal(t, "uniform cadence", res.Reason)
	assert.Equal(t, 1, fake.calls)

	require.NotNil(t, fake.lastReq.ResponseFormat)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, fake.lastReq.ResponseFormat.Type)
}

func TestChatScorer_ClampsRawScore(t *testing.T) {
	fake := &fakeChat{resp: chatResp(`{"score": 150, "reason": "overshoot"}`)}
	s := &ChatScorer{Client: fake, APIKey: "sk-test", Model: "gpt-5-nano"}

	res := s.Score(context.Background(), "text")
	assert.Equal(t, 100, res.Score)
}

func TestChatScorer_MissingCredentialSkipsNetwork(t *testing.T) {
	fake := &fakeChat{resp: chatResp(`{"score": 10, "reason": "unused"}`)}
	s := &ChatScorer{Client: fake, APIKey: "", Model: "gpt-5-nano"}

	res := s.Score(context.Background(), "text")
	assert.Equal(t, -1, res.Score)
	assert.Equal(t, ReasonMissingCredential, res.Reason)
	assert.Zero(t, fake.calls, "no network call may happen without a credential")
}

func TestChatScorer_AuthError(t *testing.T) {
	fake := &fakeChat{err: &openai.APIError{HTTPStatusCode: http.StatusUnauthorized, Message: "bad key"}}
	s := &ChatScorer{Client: fake, APIKey: "sk-bad", Model: "gpt-5-nano"}

	res := s.Score(context.Background(), "text")
	assert.Equal(t, -1, res.Score)
	assert.Equal(t, ReasonAuthIssue, res.Reason)
}

func TestChatScorer_TransportError(t *testing.T) {
	fake := &fakeChat{err: errors.New("connection refused")}
	s := &ChatScorer{Client: fake, APIKey: "sk-test", Model: "gpt-5-nano"}

	res := s.Score(context.Background(), "text")
	assert.Equal(t, -1, res.Score)
	assert.Contains(t, res.Reason, "connection refused")
}

func TestChatScorer_EmptyResponse(t *testing.T) {
	fake := &fakeChat{resp: chatResp("  ")}
	s := &ChatScorer{Client: fake, APIKey: "sk-test", Model: "gpt-5-nano"}

	res := s.Score(context.Background(), "text")
	assert.Equal(t, -1, res.Score)
	assert.Equal(t, ReasonEmptyResponse, res.Reason)
}

func TestChatScorer_UnparseableOutput(t *testing.T) {
	fake := &fakeChat{resp: chatResp("I think this text is probably AI generated.")}
	s := &ChatScorer{Client: fake, APIKey: "sk-test", Model: "gpt-5-nano"}

	res := s.Score(context.Background(), "text")
	assert.Equal(t, -1, res.Score)
	assert.Equal(t, ReasonBadOutput, res.Reason)
}
