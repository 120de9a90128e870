package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/jonathan/careers-page/internal/files"
	"github.com/jonathan/careers-page/internal/greenhouse"
	"github.com/jonathan/careers-page/internal/schemas"
	"github.com/jonathan/careers-page/internal/types"
)

// maxCandidateBody bounds POST /candidates: two base64-encoded attachments plus the profile.
const maxCandidateBody = 2*(files.MaxSize*4/3+1024) + 1<<20

// Messages returned to callers. Upstream detail is only logged.
const (
	msgJobIDRequired   = "Job ID is required"
	msgFetchFailed     = "Failed to fetch job data"
	msgSubmitFailed    = "Failed to submit application"
	msgSubmitSucceeded = "Application submitted successfully"
)

// handleGetJob relays GET /jobs?id= to the ATS and passes the job JSON through unmodified.
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(r.URL.Query().Get("id"))
	if id == "" {
		s.errorResponse(w, http.StatusBadRequest, msgJobIDRequired)
		return
	}

	raw, err := s.ats.GetJob(r.Context(), id)
	if err != nil {
		logUpstream(r, "fetch job "+id, err)
		s.errorResponse(w, http.StatusInternalServerError, msgFetchFailed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(raw); err != nil {
		log.Printf("Error writing job response: %v", err)
	}
}

// handleCreateCandidate validates a candidate payload and relays it to the ATS.
func (s *Server) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	payload, err := decodeCandidate(w, r)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), candidateErrorMessage(err))
		return
	}

	if err := s.ats.CreateCandidate(r.Context(), payload); err != nil {
		logUpstream(r, "create candidate", err)
		s.errorResponse(w, http.StatusInternalServerError, msgSubmitFailed)
		return
	}

	s.jsonResponse(w, http.StatusOK, types.SubmitResponse{Message: msgSubmitSucceeded})
}

// decodeCandidate reads the body, checks it against the candidate schema and decodes it.
func decodeCandidate(w http.ResponseWriter, r *http.Request) (*types.CandidatePayload, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxCandidateBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, &ErrBadRequest{Message: "failed to read request body", Cause: err}
	}

	if err := schemas.ValidateCandidate(body); err != nil {
		var schemaErr *schemas.ValidationError
		if errors.As(err, &schemaErr) {
			return nil, err
		}
		var loadErr *schemas.SchemaLoadError
		if errors.As(err, &loadErr) {
			return nil, err
		}
		return nil, &ErrBadRequest{Message: "invalid JSON", Cause: err}
	}

	var payload types.CandidatePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &ErrBadRequest{Message: "invalid candidate", Cause: err}
	}
	return &payload, nil
}

func candidateErrorMessage(err error) string {
	var schemaErr *schemas.ValidationError
	var badRequest *ErrBadRequest
	switch {
	case errors.As(err, &schemaErr):
		return "Invalid candidate: " + schemaErr.Summary()
	case errors.As(err, &badRequest):
		return "Invalid request body: " + badRequest.Message
	case HTTPStatus(err) == http.StatusRequestEntityTooLarge:
		return "Request body too large"
	default:
		log.Printf("[schemas] candidate validation unavailable: %v", err)
		return msgSubmitFailed
	}
}

// logUpstream records the full failure, including the upstream body when the ATS answered.
func logUpstream(r *http.Request, action string, err error) {
	var upstream *greenhouse.UpstreamError
	if errors.As(err, &upstream) {
		log.Printf("[greenhouse] %s failed: status=%d body=%s request_id=%s",
			action, upstream.Status, upstream.Body, requestID(r.Context()))
		return
	}
	log.Printf("[greenhouse] %s failed: %v request_id=%s", action, err, requestID(r.Context()))
}
