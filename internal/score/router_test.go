package score

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type staticScorer struct {
	name string
	res  Result
}

func (s staticScorer) Name() string                          { return s.name }
func (s staticScorer) Score(context.Context, string) Result { return s.res }

func TestRouter_DispatchesByMode(t *testing.T) {
	r := NewRouter()
	r.Register(staticScorer{name: "a", res: Result{Score: 10, Reason: "ra"}})
	r.Register(staticScorer{name: "b", res: Result{Score: 90, Reason: "rb"}})

	assert.Equal(t, 10, r.Route(context.Background(), "text", "a").Score)
	assert.Equal(t, 90, r.Route(context.Background(), "text", "b").Score)
}

func TestRouter_UnknownModeYieldsSentinel(t *testing.T) {
	r := NewRouter()
	r.Register(staticScorer{name: "a", res: Result{Score: 10, Reason: "ra"}})

	res := r.Route(context.Background(), "text", "nope")
	assert.Equal(t, -1, res.Score)
	assert.Equal(t, ReasonUnknownBackend, res.Reason)
}

func TestRouter_FailurePropagatesWithoutFallback(t *testing.T) {
	r := NewRouter()
	r.Register(staticScorer{name: "broken", res: Invalid("provider down")})
	r.Register(staticScorer{name: "healthy", res: Result{Score: 42, Reason: "ok"}})

	res := r.Route(context.Background(), "text", "broken")
	assert.Equal(t, -1, res.Score)
	assert.Equal(t, "provider down", res.Reason)
}

func TestRouter_ModesSorted(t *testing.T) {
	r := NewRouter()
	r.Register(staticScorer{name: "local"})
	r.Register(staticScorer{name: "gemini"})
	r.Register(staticScorer{name: "gpt"})

	assert.Equal(t, []string{"gemini", "gpt", "local"}, r.Modes())
}
