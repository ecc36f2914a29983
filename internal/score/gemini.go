package score

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// generator abstracts the single genai call the adapter performs so tests
// can fake provider responses without a network round trip.
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// scoreSchema is declared to the provider so the response is enforced to
// conform to the {score, reason} contract.
var scoreSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"score":  {Type: genai.TypeInteger},
		"reason": {Type: genai.TypeString},
	},
	Required: []string{"score", "reason"},
}

// GeminiScorer scores text through the Gemini API using schema-constrained
// JSON output.
type GeminiScorer struct {
	APIKey string
	Model  string

	// newGenerator overrides client construction in tests. When nil the
	// real SDK client is dialed per call.
	newGenerator func(ctx context.Context) (generator, func(), error)
}

func (s *GeminiScorer) Name() string { return "gemini" }

func (s *GeminiScorer) dial(ctx context.Context) (generator, func(), error) {
	if s.newGenerator != nil {
		return s.newGenerator(ctx)
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(s.APIKey))
	if err != nil {
		return nil, nil, err
	}
	m := cl.GenerativeModel(strings.TrimSpace(s.Model))
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "application/json",
		ResponseSchema:   scoreSchema,
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(detectInstruction)},
	}
	return m, func() { _ = cl.Close() }, nil
}

func (s *GeminiScorer) Score(ctx context.Context, text string) Result {
	if strings.TrimSpace(s.APIKey) == "" {
		return Invalid(ReasonMissingCredential)
	}
	gen, closeFn, err := s.dial(ctx)
	if err != nil {
		return Invalid(err.Error())
	}
	defer closeFn()

	resp, err := gen.GenerateContent(ctx, genai.Text(userPrompt(text)))
	if err != nil {
		if isGeminiAuthError(err) {
			log.Warn().Err(err).Msg("gemini rejected credentials")
			return Invalid(ReasonAuthIssue)
		}
		log.Error().Err(err).Msg("gemini call failed")
		return Invalid(err.Error())
	}
	raw := firstText(resp)
	res, perr := parsePayload(raw)
	if perr != nil {
		log.Error().Str("raw", raw).Msg("gemini returned unparseable JSON")
		return Invalid(ReasonBadOutput)
	}
	return res
}

// isGeminiAuthError distinguishes bad-key rejections from generic provider
// failures. The SDK surfaces these as status strings rather than typed
// errors, so match on the known markers.
func isGeminiAuthError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNAUTHENTICATED") ||
		strings.Contains(msg, "API keys are not supported") ||
		strings.Contains(msg, "CREDENTIALS")
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
