// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package mockapi

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jeranaias/blogsmith-tui/internal/model"
	"github.com/rs/zerolog/log"
)

// =============================================================================
// ROUTES
// =============================================================================

// Route names one endpoint of the contract.
type Route string

const (
	RouteHealth   Route = "GET /health"
	RouteGenerate Route = "POST /api/v1/generate"
	RouteList     Route = "GET /api/v1/blogs"
	RouteGet      Route = "GET /api/v1/blogs/{id}"
	RouteDelete   Route = "DELETE /api/v1/blogs/{id}"
)

// Request is one recorded inbound call.
type Request struct {
	Route     Route
	Method    string
	Path      string
	Query     string
	Body      []byte
	RequestID string
	At        time.Time
}

// failure is an injected error response for a route.
type failure struct {
	status int
	detail any
}

// =============================================================================
// SERVER
// =============================================================================

// Server holds the fake backend's state. All methods are safe for concurrent
// use.
type Server struct {
	mu       sync.Mutex
	posts    []model.BlogPost // newest first
	nextID   int
	requests []Request
	failures map[Route]failure
	delay    map[Route]time.Duration
	healthy  bool
	now      func() time.Time
	origins  []string
}

// Option configures a Server.
type Option func(*Server)

// WithClock overrides the creation time source.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithCORSOrigins allows browser clients from the given origins.
func WithCORSOrigins(origins ...string) Option {
	return func(s *Server) { s.origins = origins }
}

// WithGenerateDelay makes every generate call wait d before answering.
func WithGenerateDelay(d time.Duration) Option {
	return func(s *Server) { s.delay[RouteGenerate] = d }
}

// New creates an empty, healthy backend.
func New(opts ...Option) *Server {
	s := &Server{
		nextID:   1,
		failures: make(map[Route]failure),
		delay:    make(map[Route]time.Duration),
		healthy:  true,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the chi router serving the contract.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if len(s.origins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.origins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/health", s.route(RouteHealth, s.health))
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/generate", s.route(RouteGenerate, s.generate))
		r.Get("/blogs", s.route(RouteList, s.list))
		r.Get("/blogs/{id}", s.route(RouteGet, s.get))
		r.Delete("/blogs/{id}", s.route(RouteDelete, s.remove))
	})
	return r
}

// route records the request, applies injected delays and failures, then
// hands off to h.
func (s *Server) route(name Route, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Route:     name,
			Method:    r.Method,
			Path:      r.URL.Path,
			Query:     r.URL.RawQuery,
			Body:      body,
			RequestID: r.Header.Get("X-Request-ID"),
			At:        s.now(),
		})
		fail, failing := s.failures[name]
		delay := s.delay[name]
		s.mu.Unlock()

		log.Debug().Str("route", string(name)).Str("path", r.URL.Path).Msg("mock backend request")

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		if failing {
			writeDetail(w, fail.status, fail.detail)
			return
		}
		h(w, r)
	}
}

// =============================================================================
// CONTROL SURFACE
// =============================================================================

// Seed inserts posts as if they had been generated, oldest first. Posts
// without an ID get the next sequential one.
func (s *Server) Seed(posts ...model.BlogPost) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range posts {
		if p.ID.IsZero() {
			p.ID = model.ID(strconv.Itoa(s.nextID))
		}
		s.nextID++
		if p.CreatedAt.IsZero() {
			p.CreatedAt = model.NewTimestamp(s.now())
		}
		s.posts = append([]model.BlogPost{p}, s.posts...)
	}
}

// Posts returns a copy of the stored posts, newest first.
func (s *Server) Posts() []model.BlogPost {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.BlogPost(nil), s.posts...)
}

// Requests returns the recorded calls, optionally filtered to some routes.
func (s *Server) Requests(routes ...Route) []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(routes) == 0 {
		return append([]Request(nil), s.requests...)
	}
	var out []Request
	for _, req := range s.requests {
		for _, r := range routes {
			if req.Route == r {
				out = append(out, req)
				break
			}
		}
	}
	return out
}

// Fail makes every call to route answer with status and {"detail": detail}.
// A nil detail omits the body.
func (s *Server) Fail(route Route, status int, detail any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{status: status, detail: detail}
}

// Recover removes an injected failure.
func (s *Server) Recover(route Route) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, route)
}

// SetHealthy toggles the health endpoint between 200 and 503.
func (s *Server) SetHealthy(healthy bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.healthy = healthy
}

// =============================================================================
// RESPONSES
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("mock backend: error marshaling response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

func writeDetail(w http.ResponseWriter, status int, detail any) {
	if detail == nil {
		w.WriteHeader(status)
		return
	}
	writeJSON(w, status, map[string]any{"detail": detail})
}
