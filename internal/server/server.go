// Package server provides the careers page and the ATS relay endpoints.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/careers-page/internal/config"
	"github.com/jonathan/careers-page/internal/greenhouse"
	"github.com/jonathan/careers-page/internal/jobs"
	"github.com/jonathan/careers-page/internal/server/ratelimit"
	"github.com/jonathan/careers-page/internal/types"
)

// ATS is the subset of the Greenhouse client the server relays to.
type ATS interface {
	GetJob(ctx context.Context, jobID string) (json.RawMessage, error)
	CreateCandidate(ctx context.Context, payload *types.CandidatePayload) error
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	ats         ATS
	jobs        *jobs.Adapter
	jobID       int64
	jobPath     string // jobID as the ATS path segment
	rateLimiter *ratelimit.Limiter
	page        *template.Template
}

// New creates a server that talks to the ATS configured in cfg.
func New(cfg *config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client, err := greenhouse.New(greenhouse.Options{
		BaseURL:    cfg.GreenhouseBaseURL,
		APIKey:     cfg.GreenhouseAPIKey,
		OnBehalfOf: cfg.OnBehalfOf,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create greenhouse client: %w", err)
	}
	return newServer(cfg, client, ratelimit.NewLimiter(ratelimit.LoadConfig()))
}

// newServer wires the routes around an ATS. Tests pass a fake ATS and limiter here.
func newServer(cfg *config.Config, ats ATS, limiter *ratelimit.Limiter) (*Server, error) {
	ttl, err := cfg.CacheTTL()
	if err != nil {
		return nil, err
	}
	page, err := parsePage()
	if err != nil {
		return nil, err
	}

	s := &Server{
		ats: ats,
		jobs: jobs.NewAdapter(ats, jobs.Options{
			Skills:      cfg.Skills,
			Description: cfg.Description,
			CacheTTL:    ttl,
		}),
		jobID:       cfg.JobID,
		jobPath:     cfg.JobIDString(),
		rateLimiter: limiter,
		page:        page,
	}

	mux := http.NewServeMux()

	// Careers page
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /apply", s.handleApply)

	// ATS relays
	mux.HandleFunc("GET /jobs", s.handleGetJob)
	mux.HandleFunc("POST /candidates", s.handleCreateCandidate)

	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRequestID(s.withRateLimit(s.withLogging(s.withCORS(mux)))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second, // Uploads are relayed before the response is written
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	log.Println("Server stopped")
	return nil
}

type requestIDKey struct{}

// requestID returns the id assigned by withRequestID, or "-".
func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return "-"
}

// withRequestID tags every request with an id, echoed in X-Request-ID.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.rateLimiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		clientID := s.extractClientID(r)
		if isApplySubmit(r) {
			// handleApply charges the /apply budget once the form validates
			allowed, info := s.rateLimiter.AllowDefault(clientID, r.URL.Path, r.Method)
			s.setRateLimitHeaders(w, info)
			if !allowed {
				s.applyRateLimited(w, r, info, formValues{})
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := requestID(r.Context())
		log.Printf("[%s] %s %s request_id=%s", r.Method, r.URL.Path, r.RemoteAddr, id)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v request_id=%s", r.Method, r.URL.Path, time.Since(start), id)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// X-Forwarded-For is ignored since the service is not deployed behind a trusted proxy.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// isApplySubmit reports whether r is an HTML form submission.
func isApplySubmit(r *http.Request) bool {
	return r.Method == http.MethodPost && r.URL.Path == "/apply"
}

// rejectRateLimited sets Retry-After and logs the rejection. It returns the retry delay in
// whole seconds, or 0 when unknown.
func rejectRateLimited(w http.ResponseWriter, r *http.Request, info ratelimit.Info) int {
	seconds := 0
	if info.RetryAfter > 0 {
		seconds = int(info.RetryAfter.Seconds()) + 1
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}
	log.Printf("[rate-limit] %s %s exceeded: Limit=%d Remaining=%d Reset=%s request_id=%s",
		r.Method, r.URL.Path, info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339), requestID(r.Context()))
	return seconds
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}
	if seconds := rejectRateLimited(w, r, info); seconds > 0 {
		response["retry_after"] = seconds
	}
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
