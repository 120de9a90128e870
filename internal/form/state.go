// Package form holds the application form state and the rules that gate its submission.
package form

import (
	"fmt"
	"strings"

	"github.com/jonathan/careers-page/internal/files"
)

// State is the application form owned by one submission attempt.
type State struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	LinkedIn    string
	Portfolio   string
	Resume      *files.Attachment
	CoverLetter *files.Attachment

	errors Errors
}

// ErrUnknownField is returned when an update names a field the form does not have.
type ErrUnknownField struct {
	Field string
}

func (e *ErrUnknownField) Error() string {
	return fmt.Sprintf("unknown form field: %s", e.Field)
}

// Set updates a text field and re-validates it, returning the field's message or "".
// Phone input is passed through FormatPhone first.
func (s *State) Set(field, value string) (string, error) {
	value = strings.TrimSpace(value)
	switch field {
	case FieldFirstName:
		s.FirstName = value
	case FieldLastName:
		s.LastName = value
	case FieldEmail:
		s.Email = value
	case FieldPhone:
		s.Phone = FormatPhone(value)
	case FieldLinkedIn:
		s.LinkedIn = value
	case FieldPortfolio:
		s.Portfolio = value
	default:
		return "", &ErrUnknownField{Field: field}
	}
	return s.refresh(field), nil
}

// SetFile attaches or clears (nil) the resume or cover letter and re-validates it.
func (s *State) SetFile(field string, a *files.Attachment) (string, error) {
	switch field {
	case FieldResume:
		s.Resume = a
	case FieldCoverLetter:
		s.CoverLetter = a
	default:
		return "", &ErrUnknownField{Field: field}
	}
	return s.refresh(field), nil
}

func (s *State) refresh(field string) string {
	msg := ValidateField(s, field)
	if s.errors == nil {
		s.errors = Errors{}
	}
	if msg == "" {
		delete(s.errors, field)
	} else {
		s.errors[field] = msg
	}
	return msg
}

// Errors returns the messages recorded by the most recent updates or Submit.
func (s *State) Errors() Errors {
	out := make(Errors, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

// Submit validates every field at once. It returns nil when the form may be submitted and the
// full Errors otherwise.
func (s *State) Submit() error {
	errs := Validate(s)
	s.errors = errs
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Reset empties the form after a successful submission.
func (s *State) Reset() {
	*s = State{}
}
