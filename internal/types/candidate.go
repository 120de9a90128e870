package types

import (
	"encoding/json"
	"fmt"
)

// Attachment roles understood by the Harvest candidates endpoint.
const (
	AttachmentResume      = "resume"
	AttachmentCoverLetter = "cover_letter"
)

// Contact type tags used on candidate payloads.
const (
	ContactTypeWork      = "work"
	ContactTypePortfolio = "portfolio"
)

// CandidatePayload is the request body for Harvest's candidate creation endpoint.
type CandidatePayload struct {
	FirstName            string                 `json:"first_name"`
	LastName             string                 `json:"last_name"`
	EmailAddresses       []TypedValue           `json:"email_addresses"`
	PhoneNumbers         []TypedValue           `json:"phone_numbers,omitempty"`
	SocialMediaAddresses []Value                `json:"social_media_addresses"`
	WebsiteAddresses     []TypedValue           `json:"website_addresses,omitempty"`
	Applications         []CandidateApplication `json:"applications"`
}

// TypedValue is a contact entry with a type tag.
type TypedValue struct {
	Value string `json:"value"`
	Type  string `json:"type"`
}

// Value is an untyped contact entry.
type Value struct {
	Value string `json:"value"`
}

// CandidateApplication links the candidate to a job and carries the uploaded documents.
type CandidateApplication struct {
	JobID       int64                 `json:"job_id"`
	Attachments []CandidateAttachment `json:"attachments"`
}

// UnmarshalJSON accepts job_id as a JSON number or as a numeric string. The id is always
// re-encoded as a number.
func (a *CandidateApplication) UnmarshalJSON(data []byte) error {
	var raw struct {
		JobID       json.Number           `json:"job_id"`
		Attachments []CandidateAttachment `json:"attachments"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.JobID = 0
	if raw.JobID != "" {
		id, err := raw.JobID.Int64()
		if err != nil {
			return fmt.Errorf("invalid job_id %q: %w", raw.JobID, err)
		}
		a.JobID = id
	}
	a.Attachments = raw.Attachments
	return nil
}

// CandidateAttachment is a base64-encoded document.
type CandidateAttachment struct {
	Filename    string `json:"filename"`
	Type        string `json:"type"`
	Content     string `json:"content"`
	ContentType string `json:"content_type"`
}

// HasResume reports whether the payload carries at least one resume attachment.
func (p *CandidatePayload) HasResume() bool {
	for _, app := range p.Applications {
		for _, att := range app.Attachments {
			if att.Type == AttachmentResume {
				return true
			}
		}
	}
	return false
}

// SubmitResponse is the acknowledgment returned to callers after a successful submission.
type SubmitResponse struct {
	Message string `json:"message"`
}
