package store

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunParamsMarshalAsJSONObject(t *testing.T) {
	r := Run{
		ID:         uuid.MustParse("7f9c4e6a-1b2d-4c3e-8f5a-9d0e1a2b3c4d"),
		Game:       "blackjack",
		MasterSeed: 42,
		Params:     json.RawMessage(`{"players":5,"decks":7}`),
		StartedAt:  time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
	}
	b, err := json.Marshal(r)
	require.NoError(t, err)

	// params must surface as the stored object, not a base64 string
	assert.Contains(t, string(b), `"params":{"players":5,"decks":7}`)

	var back map[string]any
	require.NoError(t, json.Unmarshal(b, &back))
	params, ok := back["params"].(map[string]any)
	require.True(t, ok, "params should decode as an object")
	assert.Equal(t, float64(5), params["players"])
}
