// Package files validates and opens the documents a candidate attaches to an application.
package files

import (
	"fmt"
	"strings"
)

// MaxSize is the largest accepted upload (5 MiB).
const MaxSize int64 = 5 * 1024 * 1024

// Accepted MIME types.
const (
	MimePDF  = "application/pdf"
	MimeDOC  = "application/msword"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// AllowedTypes lists the MIME types accepted for resumes and cover letters.
var AllowedTypes = []string{MimePDF, MimeDOC, MimeDOCX}

// Reason identifies why a file was rejected.
type Reason string

// Rejection reasons.
const (
	ReasonTooLarge        Reason = "too_large"
	ReasonUnsupportedType Reason = "unsupported_type"
)

// Message returns the user-facing text for the reason.
func (r Reason) Message() string {
	switch r {
	case ReasonTooLarge:
		return fmt.Sprintf("File size must be less than %dMB", MaxSize/1024/1024)
	case ReasonUnsupportedType:
		return "File must be a PDF, DOC, or DOCX"
	default:
		return string(r)
	}
}

// Result is the outcome of validating one file. A zero Result means the file passed.
type Result struct {
	Reasons []Reason
}

// OK reports whether no rule fired.
func (r Result) OK() bool {
	return len(r.Reasons) == 0
}

// Has reports whether the given reason fired.
func (r Result) Has(reason Reason) bool {
	for _, got := range r.Reasons {
		if got == reason {
			return true
		}
	}
	return false
}

// Message joins the messages of every reason, size first.
func (r Result) Message() string {
	msgs := make([]string, 0, len(r.Reasons))
	for _, reason := range r.Reasons {
		msgs = append(msgs, reason.Message())
	}
	return strings.Join(msgs, ". ")
}

// Validate checks a file's size and declared MIME type. Both rules are always evaluated.
func Validate(size int64, mimeType string) Result {
	var res Result
	if size > MaxSize {
		res.Reasons = append(res.Reasons, ReasonTooLarge)
	}
	if !IsAllowedType(mimeType) {
		res.Reasons = append(res.Reasons, ReasonUnsupportedType)
	}
	return res
}

// IsAllowedType reports whether mimeType is one of AllowedTypes. Parameters such as
// "; charset=binary" are ignored.
func IsAllowedType(mimeType string) bool {
	base := strings.TrimSpace(strings.ToLower(mimeType))
	if i := strings.IndexByte(base, ';'); i >= 0 {
		base = strings.TrimSpace(base[:i])
	}
	for _, allowed := range AllowedTypes {
		if base == allowed {
			return true
		}
	}
	return false
}
