package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateSchema_ValidJSON(t *testing.T) {
	var v map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(Candidate), &v), "schema should be valid JSON")

	assert.Equal(t, "http://json-schema.org/draft-07/schema#", v["$schema"])
	assert.Contains(t, v, "definitions")
}

func TestCandidateSchema_RequiredFields(t *testing.T) {
	var v struct {
		Required []string `json:"required"`
	}
	require.NoError(t, json.Unmarshal([]byte(Candidate), &v))

	assert.ElementsMatch(t, []string{
		"first_name", "last_name", "email_addresses", "social_media_addresses", "applications",
	}, v.Required)
}
