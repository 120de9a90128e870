package form

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"abc", ""},
		{"5", "(5"},
		{"555", "(555"},
		{"5551", "(555) 1"},
		{"555123", "(555) 123"},
		{"5551234", "(555) 123-4"},
		{"5551234567", "(555) 123-4567"},
		{"555123456789", "(555) 123-4567"},
		{"+1 (555) 123-4567", "(155) 512-3456"},
		{"(555) 123-4567", "(555) 123-4567"},
		{"555.123.4567", "(555) 123-4567"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatPhone(tt.input))
		})
	}
}

func TestFormatPhone_Idempotent(t *testing.T) {
	digits := "98765432101234"
	for n := 0; n <= len(digits); n++ {
		once := FormatPhone(digits[:n])
		assert.Equal(t, once, FormatPhone(once), "digits=%q", digits[:n])
	}

	// keystroke by keystroke, feeding the formatted value back in
	value := ""
	for _, r := range "5551234567" {
		value = FormatPhone(value + string(r))
	}
	assert.Equal(t, "(555) 123-4567", value)
	assert.Equal(t, value, FormatPhone(value))
}

func TestFormatPhone_ProducesValidPhone(t *testing.T) {
	formatted := FormatPhone(strings.Repeat("7", 10))
	assert.True(t, phoneRegex.MatchString(formatted))
}
