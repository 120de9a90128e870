package server

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/jonathan/careers-page/internal/candidate"
	"github.com/jonathan/careers-page/internal/files"
	"github.com/jonathan/careers-page/internal/form"
	"github.com/jonathan/careers-page/internal/jobs"
	"github.com/jonathan/careers-page/internal/server/ratelimit"
)

//go:embed templates/page.html
var templateFS embed.FS

// maxApplyBody caps POST /apply: two maximum-size uploads plus the text fields.
const maxApplyBody = 2*files.MaxSize + 1<<20

const (
	msgApplyFailed   = "Failed to submit application. Please try again."
	msgFormTooLarge  = "Your files are too large. Each file must be less than 5MB."
	msgFormMalformed = "We could not read your application. Please try again."

	msgTooManyApplications = "Too many applications from your network. Please try again later."
)

// pageView is the data the page template renders.
type pageView struct {
	Job         *jobView
	Values      formValues
	Errors      form.Errors
	Submitted   bool
	SubmitError string
	FormatsHint string
}

type jobView struct {
	Title      string
	Offices    string
	Salary     string
	Equity     string
	Deadline   string
	Skills     []string
	Paragraphs []string
}

type formValues struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	LinkedIn  string
	Portfolio string
}

type fieldView struct {
	Name     string
	Label    string
	Type     string
	Required bool
	Value    string
	Error    string
}

func parsePage() (*template.Template, error) {
	funcs := template.FuncMap{
		"field": func(name, label, typ string, required bool, value string, errs form.Errors) fieldView {
			return fieldView{Name: name, Label: label, Type: typ, Required: required, Value: value, Error: errs[name]}
		},
	}
	return template.New("page.html").Funcs(funcs).ParseFS(templateFS, "templates/page.html")
}

// handleIndex renders the job and an empty application form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	view := pageView{
		Errors:    form.Errors{},
		Submitted: r.URL.Query().Get("submitted") == "1",
	}
	s.renderPage(w, r, http.StatusOK, view)
}

// handleApply validates the multipart form and submits it to the ATS.
func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxApplyBody)
	if err := r.ParseMultipartForm(maxApplyBody); err != nil {
		status, message := http.StatusBadRequest, msgFormMalformed
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status, message = http.StatusRequestEntityTooLarge, msgFormTooLarge
		}
		log.Printf("[apply] failed to parse form: %v request_id=%s", err, requestID(r.Context()))
		s.renderPage(w, r, status, pageView{Errors: form.Errors{}, SubmitError: message})
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			log.Printf("[apply] failed to remove uploaded files: %v", err)
		}
	}()

	state, err := stateFromRequest(r)
	if err != nil {
		log.Printf("[apply] failed to read upload: %v request_id=%s", err, requestID(r.Context()))
		s.renderPage(w, r, http.StatusBadRequest, pageView{Errors: form.Errors{}, SubmitError: msgFormMalformed})
		return
	}

	if err := state.Submit(); err != nil {
		s.renderPage(w, r, HTTPStatus(err), pageView{
			Values: valuesOf(state),
			Errors: state.Errors(),
		})
		return
	}

	if s.rateLimiter != nil {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.applyRateLimited(w, r, info, valuesOf(state))
			return
		}
	}

	if err := s.submit(r.Context(), state); err != nil {
		logUpstream(r, "submit application", err)
		status := HTTPStatus(err)
		if status < http.StatusInternalServerError {
			status = http.StatusBadGateway
		}
		s.renderPage(w, r, status, pageView{
			Values:      valuesOf(state),
			Errors:      form.Errors{},
			SubmitError: msgApplyFailed,
		})
		return
	}

	state.Reset()
	http.Redirect(w, r, "/?submitted=1", http.StatusSeeOther)
}

// applyRateLimited renders the page with a 429 banner, keeping whatever the candidate typed.
func (s *Server) applyRateLimited(w http.ResponseWriter, r *http.Request, info ratelimit.Info, values formValues) {
	rejectRateLimited(w, r, info)
	s.renderPage(w, r, http.StatusTooManyRequests, pageView{
		Values:      values,
		Errors:      form.Errors{},
		SubmitError: msgTooManyApplications,
	})
}

// submit builds the candidate payload and relays it.
func (s *Server) submit(ctx context.Context, state *form.State) error {
	payload, err := candidate.Build(ctx, s.jobID, state)
	if err != nil {
		return err
	}
	return s.ats.CreateCandidate(ctx, payload)
}

// stateFromRequest copies the parsed multipart form into a form.State.
func stateFromRequest(r *http.Request) (*form.State, error) {
	state := &form.State{}
	for _, field := range []string{
		form.FieldFirstName, form.FieldLastName, form.FieldEmail,
		form.FieldPhone, form.FieldLinkedIn, form.FieldPortfolio,
	} {
		if _, err := state.Set(field, r.FormValue(field)); err != nil {
			return nil, err
		}
	}

	uploads := map[string]files.Role{
		form.FieldResume:      files.RoleResume,
		form.FieldCoverLetter: files.RoleCoverLetter,
	}
	for field, role := range uploads {
		fh := firstFile(r.MultipartForm, field)
		if fh == nil {
			continue
		}
		att, err := files.FromFileHeader(role, fh)
		if err != nil {
			return nil, err
		}
		if _, err := state.SetFile(field, att); err != nil {
			return nil, err
		}
	}
	return state, nil
}

// firstFile returns the first non-empty upload for field. Browsers send an empty part when
// no file was chosen.
func firstFile(mf *multipart.Form, field string) *multipart.FileHeader {
	if mf == nil {
		return nil
	}
	for _, fh := range mf.File[field] {
		if fh.Filename != "" {
			return fh
		}
	}
	return nil
}

func valuesOf(state *form.State) formValues {
	return formValues{
		FirstName: state.FirstName,
		LastName:  state.LastName,
		Email:     state.Email,
		Phone:     state.Phone,
		LinkedIn:  state.LinkedIn,
		Portfolio: state.Portfolio,
	}
}

// renderPage loads the configured job and renders the page. A job that cannot be loaded
// renders "Job not found" with 404.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, view pageView) {
	posting, err := s.jobs.Fetch(r.Context(), s.jobPath)
	if err != nil {
		log.Printf("[jobs] %v request_id=%s", err, requestID(r.Context()))
		view = pageView{}
		status = http.StatusNotFound
	} else {
		view.Job = &jobView{
			Title:      posting.Title,
			Offices:    jobs.OfficeNames(posting),
			Salary:     jobs.SalaryLabel(posting),
			Equity:     jobs.EquityLabel(posting),
			Deadline:   jobs.DeadlineLabel(posting),
			Skills:     posting.Skills,
			Paragraphs: jobs.Paragraphs(posting),
		}
		view.FormatsHint = files.AcceptedFormatsHint()
	}

	var buf bytes.Buffer
	if err := s.page.Execute(&buf, view); err != nil {
		log.Printf("Error rendering page: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Error writing page: %v", err)
	}
}
