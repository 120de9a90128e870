// Package candidate builds the ATS candidate payload from a validated application form.
package candidate

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/jonathan/careers-page/internal/files"
	"github.com/jonathan/careers-page/internal/form"
	"github.com/jonathan/careers-page/internal/types"
	"golang.org/x/sync/errgroup"
)

// ErrMissingResume is returned when the form has no resume to attach.
var ErrMissingResume = errors.New("a resume attachment is required")

// EncodingError reports an attachment whose bytes could not be read.
type EncodingError struct {
	Filename string
	Role     files.Role
	Cause    error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("failed to encode %s %q: %v", e.Role, e.Filename, e.Cause)
}

func (e *EncodingError) Unwrap() error {
	return e.Cause
}

// Build translates the form into Harvest's candidate schema. Both attachments are read and
// encoded before Build returns; the resume always comes first.
func Build(ctx context.Context, jobID int64, state *form.State) (*types.CandidatePayload, error) {
	if state.Resume == nil {
		return nil, ErrMissingResume
	}

	payload := &types.CandidatePayload{
		FirstName:            state.FirstName,
		LastName:             state.LastName,
		EmailAddresses:       []types.TypedValue{{Value: state.Email, Type: types.ContactTypeWork}},
		SocialMediaAddresses: []types.Value{{Value: state.LinkedIn}},
	}
	if state.Phone != "" {
		payload.PhoneNumbers = []types.TypedValue{{Value: state.Phone, Type: types.ContactTypeWork}}
	}
	if state.Portfolio != "" {
		payload.WebsiteAddresses = []types.TypedValue{{Value: state.Portfolio, Type: types.ContactTypePortfolio}}
	}

	sources := []*files.Attachment{state.Resume}
	if state.CoverLetter != nil {
		sources = append(sources, state.CoverLetter)
	}
	roles := []files.Role{files.RoleResume, files.RoleCoverLetter}

	attachments := make([]types.CandidateAttachment, len(sources))
	g, gCtx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			content, err := encode(gCtx, src)
			if err != nil {
				return &EncodingError{Filename: src.Filename, Role: roles[i], Cause: err}
			}
			attachments[i] = types.CandidateAttachment{
				Filename:    src.Filename,
				Type:        string(roles[i]),
				Content:     content,
				ContentType: src.ContentType,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	payload.Applications = []types.CandidateApplication{{
		JobID:       jobID,
		Attachments: attachments,
	}}
	return payload, nil
}

func encode(ctx context.Context, a *files.Attachment) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	rc, err := a.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = rc.Close() }()

	var buf bytes.Buffer
	enc := base64.NewEncoder(base64.StdEncoding, &buf)
	if _, err := io.Copy(enc, rc); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
