package score

import (
	"encoding/json"
	"strings"
)

// maxInputRunes bounds the text prefix sent to any provider, keeping cost
// and latency predictable and staying inside provider context limits.
const maxInputRunes = 8000

func truncate(text string) string {
	r := []rune(text)
	if len(r) <= maxInputRunes {
		return text
	}
	return string(r[:maxInputRunes])
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// stripCodeFences removes a leading ```json (or bare ```) marker and a
// trailing ``` fence. Unfenced input passes through unchanged, so fenced
// and plain bodies parse identically.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

type scorePayload struct {
	Score  *float64 `json:"score"`
	Reason string   `json:"reason"`
}

// parsePayload decodes the {score, reason} contract from raw provider
// output. A missing score defaults to 0 before clamping; a missing reason
// gets the generic default. Models occasionally emit the score as a float,
// which is truncated to an integer.
func parsePayload(raw string) (Result, error) {
	var p scorePayload
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &p); err != nil {
		return Result{}, err
	}
	n := 0
	if p.Score != nil {
		n = int(*p.Score)
	}
	reason := strings.TrimSpace(p.Reason)
	if reason == "" {
		reason = defaultReason
	}
	return Result{Score: clampScore(n), Reason: reason}, nil
}
