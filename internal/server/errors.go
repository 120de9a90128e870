package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/careers-page/internal/form"
	"github.com/jonathan/careers-page/internal/greenhouse"
	"github.com/jonathan/careers-page/internal/jobs"
	"github.com/jonathan/careers-page/internal/schemas"
)

// ErrBadRequest indicates a request that could not be decoded
type ErrBadRequest struct {
	Message string
	Cause   error
}

func (e *ErrBadRequest) Error() string {
	if e.Cause != nil {
		return "bad request: " + e.Message + ": " + e.Cause.Error()
	}
	return "bad request: " + e.Message
}

func (e *ErrBadRequest) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		badRequest *ErrBadRequest
		schemaErr  *schemas.ValidationError
		formErrs   form.Errors
		fetchErr   *jobs.FetchError
		upstream   *greenhouse.UpstreamError
		transport  *greenhouse.Error
		tooLarge   *http.MaxBytesError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &badRequest), errors.As(err, &schemaErr), errors.Is(err, greenhouse.ErrMissingJobID),
		errors.Is(err, greenhouse.ErrMissingResume):
		return http.StatusBadRequest
	case errors.As(err, &formErrs):
		return http.StatusUnprocessableEntity
	case errors.As(err, &fetchErr):
		if fetchErr.Status == http.StatusNotFound {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	case errors.As(err, &upstream), errors.As(err, &transport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
