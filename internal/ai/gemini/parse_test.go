package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePayloadHandlesCodeBlock(t *testing.T) {
	raw := "```json\n{\"role_mission\": \"Scale the platform\", \"keywords\": [\"Go\"]}\n```"

	payload, err := parsePayload(raw)
	require.NoError(t, err)

	assert.Equal(t, "Scale the platform", payload["role_mission"])
	assert.Equal(t, []any{"Go"}, payload["keywords"])
}

func TestParsePayloadSkipsProse(t *testing.T) {
	payload, err := parsePayload("Here is the profile:\n{\"basics\": {\"name\": \"Jane\"}}\nHope it helps.")
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"name": "Jane"}, payload["basics"])
}

func TestParsePayloadRejectsNonObject(t *testing.T) {
	for _, raw := range []string{"", "```\n```", "[1, 2]", "not json"} {
		_, err := parsePayload(raw)
		assert.Error(t, err, raw)
	}
}
