package schemas

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCandidate() map[string]any {
	return map[string]any{
		"first_name":             "Ada",
		"last_name":              "Lovelace",
		"email_addresses":        []any{map[string]any{"value": "ada@example.com", "type": "work"}},
		"social_media_addresses": []any{map[string]any{"value": "linkedin.com/in/ada"}},
		"applications": []any{map[string]any{
			"job_id": 4285367007,
			"attachments": []any{
				map[string]any{"filename": "a.pdf", "type": "resume", "content": "JVBERg==", "content_type": "application/pdf"},
			},
		}},
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestValidateCandidate_Valid(t *testing.T) {
	assert.NoError(t, ValidateCandidate(mustJSON(t, validCandidate())))
}

func TestValidateCandidate_StringJobID(t *testing.T) {
	c := validCandidate()
	c["applications"].([]any)[0].(map[string]any)["job_id"] = "4285367007"
	assert.NoError(t, ValidateCandidate(mustJSON(t, c)))
}

func TestValidateCandidate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]any)
		field  string
	}{
		{
			name:   "missing first name",
			mutate: func(c map[string]any) { delete(c, "first_name") },
			field:  "(root)",
		},
		{
			name: "two emails",
			mutate: func(c map[string]any) {
				c["email_addresses"] = []any{map[string]any{"value": "a@b.co", "type": "work"}, map[string]any{"value": "c@d.co", "type": "work"}}
			},
			field: "email_addresses",
		},
		{
			name: "cover letter only",
			mutate: func(c map[string]any) {
				c["applications"] = []any{map[string]any{
					"job_id": 1,
					"attachments": []any{
						map[string]any{"filename": "c.pdf", "type": "cover_letter", "content": "eA==", "content_type": "application/pdf"},
					},
				}}
			},
			field: "applications.0.attachments",
		},
		{
			name: "non-numeric job id",
			mutate: func(c map[string]any) {
				c["applications"].([]any)[0].(map[string]any)["job_id"] = "senior-engineer"
			},
			field: "applications.0.job_id",
		},
		{
			name: "zero job id",
			mutate: func(c map[string]any) {
				c["applications"].([]any)[0].(map[string]any)["job_id"] = 0
			},
			field: "applications.0.job_id",
		},
		{
			name:   "no social media",
			mutate: func(c map[string]any) { c["social_media_addresses"] = []any{} },
			field:  "social_media_addresses",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCandidate()
			tt.mutate(c)

			err := ValidateCandidate(mustJSON(t, c))
			require.Error(t, err)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.NotEmpty(t, validationErr.Errors)

			fields := make([]string, 0, len(validationErr.Errors))
			for _, fe := range validationErr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidateCandidate_NotJSON(t *testing.T) {
	err := ValidateCandidate([]byte(`{not json`))
	require.Error(t, err)

	var validationErr *ValidationError
	assert.False(t, errors.As(err, &validationErr))
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "first_name", Message: "is required"},
			{Field: "applications", Message: "too short"},
		},
	}

	assert.Equal(t, "validation failed:\n  1. first_name: is required\n  2. applications: too short\n", err.Error())
	assert.Equal(t, "first_name: is required; applications: too short", err.Summary())
}
