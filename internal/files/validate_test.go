package files

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_AllowedFilesPass(t *testing.T) {
	sizes := []int64{0, 1, 1024, MaxSize - 1, MaxSize}
	for _, mimeType := range AllowedTypes {
		for _, size := range sizes {
			res := Validate(size, mimeType)
			assert.True(t, res.OK(), "size=%d type=%s", size, mimeType)
			assert.Empty(t, res.Message())
		}
	}
}

func TestValidate_TooLargeRegardlessOfType(t *testing.T) {
	types := append([]string{"image/png", "", "text/plain"}, AllowedTypes...)
	for _, mimeType := range types {
		res := Validate(MaxSize+1, mimeType)
		assert.True(t, res.Has(ReasonTooLarge), "type=%s", mimeType)
	}
}

func TestValidate_BothReasons(t *testing.T) {
	res := Validate(10*1024*1024, "image/png")

	assert.False(t, res.OK())
	assert.Equal(t, []Reason{ReasonTooLarge, ReasonUnsupportedType}, res.Reasons)
	assert.Equal(t, "File size must be less than 5MB. File must be a PDF, DOC, or DOCX", res.Message())
}

func TestValidate_UnsupportedType(t *testing.T) {
	res := Validate(100, "image/jpeg")
	assert.False(t, res.Has(ReasonTooLarge))
	assert.True(t, res.Has(ReasonUnsupportedType))
}

func TestIsAllowedType(t *testing.T) {
	tests := []struct {
		mimeType string
		expected bool
	}{
		{"application/pdf", true},
		{"APPLICATION/PDF", true},
		{"application/pdf; charset=binary", true},
		{"application/msword", true},
		{MimeDOCX, true},
		{"application/zip", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.mimeType, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsAllowedType(tt.mimeType))
		})
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{0, "0 Bytes"},
		{512, "512 Bytes"},
		{1024, "1 KB"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5 MB"},
		{1288490189, "1.2 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatSize(tt.bytes))
		})
	}
}

func TestAcceptedFormatsHint(t *testing.T) {
	assert.Equal(t, "Accepted formats: PDF, DOC, DOCX (max 5MB)", AcceptedFormatsHint())
}
