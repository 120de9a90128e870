package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jonathan/careers-page/internal/candidate"
	"github.com/jonathan/careers-page/internal/form"
	"github.com/jonathan/careers-page/internal/greenhouse"
	"github.com/jonathan/careers-page/internal/jobs"
	"github.com/jonathan/careers-page/internal/schemas"
	"github.com/stretchr/testify/assert"
)

func TestErrBadRequest(t *testing.T) {
	err := &ErrBadRequest{Message: "invalid JSON", Cause: errors.New("unexpected EOF")}
	assert.Equal(t, "bad request: invalid JSON: unexpected EOF", err.Error())
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))

	bare := &ErrBadRequest{Message: "empty body"}
	assert.Equal(t, "bad request: empty body", bare.Error())
}

func TestHTTPStatus(t *testing.T) {
	upstream := &greenhouse.UpstreamError{URL: "https://harvest.greenhouse.io/v1/jobs/1", Status: http.StatusNotFound}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"schema", &schemas.ValidationError{Errors: []schemas.FieldError{{Field: "first_name", Message: "required"}}}, http.StatusBadRequest},
		{"missing job id", fmt.Errorf("relay: %w", greenhouse.ErrMissingJobID), http.StatusBadRequest},
		{"missing resume", greenhouse.ErrMissingResume, http.StatusBadRequest},
		{"form", form.Errors{form.FieldLinkedIn: "LinkedIn URL is required"}, http.StatusUnprocessableEntity},
		{"job not found", &jobs.FetchError{JobID: "1", Status: http.StatusNotFound, Cause: upstream}, http.StatusNotFound},
		{"job unavailable", &jobs.FetchError{JobID: "1", Message: "upstream request failed"}, http.StatusBadGateway},
		{"upstream", &greenhouse.UpstreamError{Status: http.StatusUnprocessableEntity}, http.StatusBadGateway},
		{"transport", &greenhouse.Error{URL: "x", Message: "connection refused"}, http.StatusBadGateway},
		{"too large", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge},
		{"encoding", &candidate.EncodingError{Filename: "cv.pdf", Cause: errors.New("read failed")}, http.StatusInternalServerError},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
