package score

import (
	"context"
	"encoding/json"
	"math"
	"strings"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/hyperifyio/goaidetect/internal/llm"
)

// The classifier backend is a fine-tuned completion model that labels text
// with stylistic cue tokens instead of a free-form probability. The cue
// vocabularies are fixed; anything outside them is dropped before scoring
// so hallucinated cue labels cannot corrupt the result.
var aiCues = []string{
	"템플릿형 도입",
	"균질한 리듬",
	"일반론 위주",
	"과한 정중체",
	"관용구 반복",
	"목록형 구조",
	"낮은 어휘 다양성",
	"복붙형 후킹 문장",
	"과도한 회피적 표현",
	"갑작스러운 주제 전환",
	"부자연스러운 존칭 표현",
	"부자연스러운 조사 사용",
}

var humanCues = []string{
	"고유명사",
	"수치 디테일",
	"경험적 디테일",
	"문장 길이 변동",
	"비균질 리듬",
	"자기수정",
	"개성적 문체",
	"구어체·속어 표현",
	"경미한 오타",
}

const classifierInstruction = `You are an AI-writing detector.
Judge the USER text by the cues below and output EXACTLY ONE single-line JSON:

{"label":"ai_like"|"human_like", "cues": [tokens], "reason": "(short justification)"}

Cues (use heuristics only from the given text):
- ai_like: ` + "템플릿형 도입, 균질한 리듬, 일반론 위주, 과한 정중체, 관용구 반복, 목록형 구조, 낮은 어휘 다양성, 복붙형 후킹 문장, 과도한 회피적 표현, 갑작스러운 주제 전환, 부자연스러운 존칭 표현, 부자연스러운 조사 사용" + `
- human_like: ` + "고유명사, 수치 디테일, 경험적 디테일, 문장 길이 변동, 비균질 리듬, 자기수정, 개성적 문체, 구어체·속어 표현, 경미한 오타" + `

Hard rules:
1. Output exactly one line of JSON. No extra text or keys. No external fact checking.
2. Pick cues only from the lists above. Never invent new cues.
3. Keep reason to one short sentence grounded in the selected cues.`

func cueSet(vocab []string) map[string]struct{} {
	m := make(map[string]struct{}, len(vocab))
	for _, c := range vocab {
		m[c] = struct{}{}
	}
	return m
}

var (
	aiCueSet    = cueSet(aiCues)
	humanCueSet = cueSet(humanCues)
)

// filterCues keeps only tokens present in vocab, deduplicated, preserving
// first-seen order.
func filterCues(cues []string, vocab map[string]struct{}) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(cues))
	for _, c := range cues {
		if _, dup := seen[c]; dup {
			continue
		}
		if _, known := vocab[c]; !known {
			continue
		}
		out = append(out, c)
		seen[c] = struct{}{}
	}
	return out
}

// sigmoid maps the integer cue balance onto a smooth [0,1] probability.
// The 0.7 scale means a balance of about three cues saturates toward 0/1.
func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-0.7*x))
}

// ClassifierScorer scores text with the fine-tuned cue-token model.
type ClassifierScorer struct {
	Client llm.Client
	APIKey string
	Model  string
}

func (s *ClassifierScorer) Name() string { return "classifier" }

type cueVerdict struct {
	Label  string   `json:"label"`
	Cues   []string `json:"cues"`
	Reason string   `json:"reason"`
}

func (s *ClassifierScorer) Score(ctx context.Context, text string) Result {
	if strings.TrimSpace(s.APIKey) == "" {
		return Invalid(ReasonMissingCredential)
	}
	resp, err := s.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: classifierInstruction},
			{Role: openai.ChatMessageRoleUser, Content: truncate(text)},
		},
		Temperature: 0.1,
		N:           1,
	})
	if err != nil {
		log.Error().Err(err).Msg("classifier call failed")
		return Invalid(err.Error())
	}
	if len(resp.Choices) == 0 {
		return Invalid(ReasonEmptyResponse)
	}
	raw := strings.TrimSpace(resp.Choices[0].Message.Content)

	var verdict cueVerdict
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &verdict); err != nil {
		log.Error().Str("raw", raw).Msg("classifier returned unparseable JSON")
		return Invalid(ReasonBadOutput)
	}

	ai := filterCues(verdict.Cues, aiCueSet)
	human := filterCues(verdict.Cues, humanCueSet)
	x := float64(len(ai) - len(human))
	p := sigmoid(x)

	reason := strings.TrimSpace(verdict.Reason)
	if reason == "" {
		reason = defaultReason
	}
	log.Debug().
		Str("label", verdict.Label).
		Int("ai_cues", len(ai)).
		Int("human_cues", len(human)).
		Msg("classifier verdict")
	return Result{Score: int(math.Round(p * 100)), Reason: reason}
}
