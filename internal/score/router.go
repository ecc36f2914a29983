package score

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"
)

// Scorer produces an AI-likelihood estimate for extracted article text.
// Implementations absorb every provider failure: they always return a
// Result, never an error, so the handler has a single success path.
// The text argument is guaranteed non-empty by the caller.
type Scorer interface {
	Name() string
	Score(ctx context.Context, text string) Result
}

// Router dispatches to a registered Scorer by mode tag. Adding a backend
// is a registration, not an edit to a branching chain.
type Router struct {
	backends map[string]Scorer
}

func NewRouter() *Router {
	return &Router{backends: map[string]Scorer{}}
}

// Register makes s selectable under its own name. Re-registering a name
// replaces the previous backend.
func (r *Router) Register(s Scorer) {
	r.backends[s.Name()] = s
}

// Modes lists the registered mode tags in sorted order.
func (r *Router) Modes() []string {
	out := make([]string, 0, len(r.backends))
	for m := range r.backends {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Route runs the backend selected by mode. An unknown mode yields the -1
// sentinel; the router never falls through to a different backend, and a
// failing backend's result propagates as-is with no retry.
func (r *Router) Route(ctx context.Context, text, mode string) Result {
	s, ok := r.backends[mode]
	if !ok {
		log.Warn().Str("mode", mode).Msg("unknown scoring backend requested")
		return Invalid(ReasonUnknownBackend)
	}
	return s.Score(ctx, text)
}
