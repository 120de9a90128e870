// Package greenhouse is a minimal client for the Greenhouse Harvest API. It is the only place
// ATS credentials are attached to outbound requests.
package greenhouse

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/jonathan/careers-page/internal/types"
)

// DefaultBaseURL is the public Harvest API host.
const DefaultBaseURL = "https://harvest.greenhouse.io"

// DefaultUserAgent is sent on every request.
const DefaultUserAgent = "CareersPage/1.0"

// ErrMissingJobID is returned by GetJob when no job id is given.
var ErrMissingJobID = errors.New("job ID is required")

// ErrMissingResume is returned by CreateCandidate when the payload carries no resume.
var ErrMissingResume = errors.New("a resume attachment is required")

// maxErrorBody caps how much of an upstream error body is kept for logging.
const maxErrorBody = 64 * 1024

// Error represents a transport-level failure talking to the ATS.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("greenhouse request to %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("greenhouse request to %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// UpstreamError is returned when the ATS answers with a non-2xx status.
type UpstreamError struct {
	URL    string
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("greenhouse API error: %s returned %d %s", e.URL, e.Status, http.StatusText(e.Status))
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	APIKey     string
	OnBehalfOf string
	UserAgent  string
	HTTPClient *http.Client
}

// Client talks to Harvest with Basic auth (API key as username, empty password).
type Client struct {
	baseURL    string
	authHeader string
	onBehalfOf string
	userAgent  string
	http       *http.Client
}

// New creates a client. An empty BaseURL means DefaultBaseURL.
func New(opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("greenhouse API key is required")
	}
	base := opts.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid greenhouse base URL %q", base)
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(base, "/"),
		authHeader: "Basic " + base64.StdEncoding.EncodeToString([]byte(opts.APIKey+":")),
		onBehalfOf: opts.OnBehalfOf,
		userAgent:  ua,
		http:       hc,
	}, nil
}

// GetJob fetches the raw Harvest job JSON for jobID. The body is returned unmodified.
func (c *Client) GetJob(ctx context.Context, jobID string) (json.RawMessage, error) {
	if strings.TrimSpace(jobID) == "" {
		return nil, ErrMissingJobID
	}
	endpoint := c.baseURL + "/v1/jobs/" + url.PathEscape(jobID)
	body, err := c.do(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return nil, &Error{URL: endpoint, Message: "response is not valid JSON"}
	}
	return json.RawMessage(body), nil
}

// CreateCandidate posts a candidate with one application. The upstream response body is
// discarded on success.
func (c *Client) CreateCandidate(ctx context.Context, payload *types.CandidatePayload) error {
	if payload == nil || !payload.HasResume() {
		return ErrMissingResume
	}
	endpoint := c.baseURL + "/v1/candidates"
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode candidate: %w", err)
	}
	headers := map[string]string{}
	if c.onBehalfOf != "" {
		headers["On-Behalf-Of"] = c.onBehalfOf
	}
	_, err = c.do(ctx, http.MethodPost, endpoint, data, headers)
	return err
}

func (c *Client) do(ctx context.Context, method, endpoint string, body []byte, headers map[string]string) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, &Error{URL: endpoint, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Authorization", c.authHeader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{URL: endpoint, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &UpstreamError{URL: endpoint, Status: resp.StatusCode, Body: string(errBody)}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: endpoint, Message: "failed to read response body", Cause: err}
	}
	return respBody, nil
}
