package score

// Result is the normalized outcome of one scoring call. Every backend
// adapter converts its provider's native response or failure into this
// shape; nothing else crosses the adapter boundary.
type Result struct {
	// Score is the AI-generation probability in [0,100], or exactly -1
	// when no valid score could be produced.
	Score int `json:"score"`
	// Reason is a short human-readable justification. Never empty.
	Reason string `json:"reason"`
	// AvgElapsed10 is the trailing average duration of the last ten calls
	// in seconds, rounded to three decimals. Only the local backend sets
	// it, and only once its window holds ten samples.
	AvgElapsed10 *float64 `json:"avg_elapsed_10,omitempty"`
}

// Fixed reason strings for the failure taxonomy. Operators rely on these
// to tell a missing key from a rejected key from a provider outage.
const (
	ReasonMissingCredential = "credential missing"
	ReasonAuthIssue         = "authentication issue"
	ReasonBadOutput         = "output format error"
	ReasonEmptyResponse     = "empty response"
	ReasonUnknownBackend    = "unknown backend"

	defaultReason = "analysis unavailable"
)

// Invalid builds the -1 sentinel result carrying the given reason.
func Invalid(reason string) Result {
	if reason == "" {
		reason = defaultReason
	}
	return Result{Score: -1, Reason: reason}
}
