package score

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayload_Basic(t *testing.T) {
	res, err := parsePayload(`{"score": 80, "reason": "x"}`)
	require.NoError(t, err)
	assert.Equal(t, 80, res.Score)
	assert.Equal(t, "x", res.Reason)
}

func TestParsePayload_FencedAndUnfencedParseIdentically(t *testing.T) {
	plain, err := parsePayload(`{"score":80,"reason":"x"}`)
	require.NoError(t, err)
	fenced, err := parsePayload("```json\n{\"score\":80,\"reason\":\"x\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, plain, fenced)

	bare, err := parsePayload("```\n{\"score\":80,\"reason\":\"x\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, plain, bare)
}

func TestParsePayload_ClampsOutOfRangeScores(t *testing.T) {
	res, err := parsePayload(`{"score": 150, "reason": "too sure"}`)
	require.NoError(t, err)
	assert.Equal(t, 100, res.Score)

	res, err = parsePayload(`{"score": -50, "reason": "negative"}`)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Score)
}

func TestParsePayload_Defaults(t *testing.T) {
	res, err := parsePayload(`{"reason": "only reason"}`)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Score, "missing score defaults to 0 pre-clamp")

	res, err = parsePayload(`{"score": 40}`)
	require.NoError(t, err)
	assert.Equal(t, defaultReason, res.Reason, "missing reason gets the generic default")
	assert.NotEmpty(t, res.Reason)
}

func TestParsePayload_FloatScoreTruncates(t *testing.T) {
	res, err := parsePayload(`{"score": 87.6, "reason": "fractional"}`)
	require.NoError(t, err)
	assert.Equal(t, 87, res.Score)
}

func TestParsePayload_InvalidJSON(t *testing.T) {
	_, err := parsePayload("the model rambled instead of emitting JSON")
	assert.Error(t, err)
}

func TestTruncate_BoundsByRunes(t *testing.T) {
	long := strings.Repeat("가", maxInputRunes+500)
	got := truncate(long)
	assert.Equal(t, maxInputRunes, len([]rune(got)))

	short := "short text"
	assert.Equal(t, short, truncate(short))
}

func TestInvalid_NeverEmptyReason(t *testing.T) {
	res := Invalid("")
	assert.Equal(t, -1, res.Score)
	assert.NotEmpty(t, res.Reason)
}
