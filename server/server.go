// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package server exposes the question-answering pipeline and its
// configuration over a JSON HTTP API, alongside the static web UI.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/poiesic/wikiq/ai"
	"github.com/poiesic/wikiq/config"
	"github.com/poiesic/wikiq/core"
)

// QueryFunc runs one pipeline pass with a settings snapshot and credential.
// Settings and the API key are re-read per request, so edits on the config
// page take effect without a restart.
type QueryFunc func(ctx context.Context, settings core.Settings, apiKey, query, topic string) (*core.Answer, error)

// Server is the HTTP front of one wikiq instance.
type Server struct {
	store     *config.Store
	runQuery  QueryFunc
	staticDir string
	log       *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithStaticDir sets the directory holding the built web UI. Empty disables
// static serving, leaving only the JSON API.
func WithStaticDir(dir string) Option {
	return func(s *Server) { s.staticDir = dir }
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) { s.log = log }
}

// New creates a server over the given config store and query runner.
func New(store *config.Store, runQuery QueryFunc, opts ...Option) (*Server, error) {
	if store == nil {
		return nil, ErrConfigStoreRequired
	}
	if runQuery == nil {
		return nil, ErrQueryFuncRequired
	}

	s := &Server{
		store:    store,
		runQuery: runQuery,
		log:      slog.Default().With("component", "server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Handler builds the routed handler with recovery and request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/init", s.handleInit)
	mux.HandleFunc("GET /api/main", s.handleMain)
	mux.HandleFunc("GET /api/config", s.handleGetConfig)
	mux.HandleFunc("POST /api/config", s.handlePostConfig)
	mux.HandleFunc("GET /api/default", s.handleDefault)
	mux.HandleFunc("POST /api/query", s.handleQuery)
	s.registerStatic(mux)

	var h http.Handler = mux
	h = loggingMiddleware(s.log)(h)
	h = recoveryMiddleware(s.log)(h)
	return h
}

// handleInit prepares the on-disk state for a fresh browser session:
// config.json and .env are created or healed as needed, and the response
// tells the UI whether setup is still required.
func (s *Server) handleInit(w http.ResponseWriter, r *http.Request) {
	path := "/main"

	_, reset, err := s.store.EnsureSettings()
	if err != nil {
		writeError(w, http.StatusForbidden, "cannot write configuration file")
		return
	}
	if reset {
		path = "/config"
	}

	needsKey, err := s.store.EnsureEnv()
	if err != nil {
		writeError(w, http.StatusForbidden, "cannot access credential file")
		return
	}
	if needsKey {
		path = "/config"
	}

	writeJSON(w, http.StatusOK, redirectResponse{Status: http.StatusSeeOther, Redirects: path})
}

// handleMain revalidates the stored settings when the main page loads,
// bouncing the user back to the settings page if they went bad.
func (s *Server) handleMain(w http.ResponseWriter, r *http.Request) {
	_, err := s.store.LoadSettings()
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, statusResponse{Status: http.StatusOK, Message: "ok"})
	case errors.Is(err, core.ErrInvalidSettings):
		writeJSON(w, http.StatusOK, redirectResponse{
			Status:    http.StatusSeeOther,
			Warning:   "Invalid configuration settings.",
			Redirects: "/config",
		})
	default:
		writeError(w, http.StatusBadRequest, "cannot read configuration file")
	}
}

// handleGetConfig returns the stored settings, falling back to defaults
// when the file is unreadable or invalid.
func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	settings, err := s.store.LoadSettings()
	if err != nil {
		settings = core.DefaultSettings()
	}
	writeJSON(w, http.StatusOK, settings)
}

// handlePostConfig saves settings posted from the configuration page.
// An envGroqKey field updates the stored credential; without one, a
// credential must already be present.
func (s *Server) handlePostConfig(w http.ResponseWriter, r *http.Request) {
	var req struct {
		core.Settings
		EnvGroqKey string `json:"envGroqKey"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if req.EnvGroqKey != "" {
		if err := s.store.SetAPIKey(req.EnvGroqKey); err != nil {
			writeError(w, http.StatusBadRequest, "cannot write credential file")
			return
		}
	} else if _, err := s.store.APIKey(); err != nil {
		writeJSON(w, http.StatusOK, redirectResponse{
			Status:    http.StatusSeeOther,
			Warning:   "Groq API key is not set.",
			Redirects: "/config",
		})
		return
	}

	if err := req.Settings.Validate(); err != nil {
		writeJSON(w, http.StatusOK, redirectResponse{
			Status:    http.StatusSeeOther,
			Warning:   "Invalid configuration settings.",
			Redirects: "/config",
		})
		return
	}
	if err := s.store.SaveSettings(req.Settings); err != nil {
		writeError(w, http.StatusBadRequest, "cannot write configuration file")
		return
	}

	writeJSON(w, http.StatusOK, redirectResponse{Status: http.StatusSeeOther, Redirects: "/main"})
}

func (s *Server) handleDefault(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, core.DefaultSettings())
}

type queryRequest struct {
	Query string `json:"query"`
	Topic string `json:"topic"`
}

// handleQuery runs the pipeline for one question. Settings and the API key
// are read fresh so the run reflects the latest saved configuration.
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Bad Request")
		return
	}

	settings, err := s.store.LoadSettings()
	if err != nil {
		s.writeQueryError(w, err)
		return
	}
	apiKey, err := s.store.APIKey()
	if err != nil {
		s.writeQueryError(w, err)
		return
	}

	result, err := s.runQuery(r.Context(), settings, apiKey, req.Query, req.Topic)
	if err != nil {
		s.writeQueryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// writeQueryError maps pipeline failures onto the API's status contract.
func (s *Server) writeQueryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrEmptyQuery),
		errors.Is(err, core.ErrInvalidSettings),
		errors.Is(err, ai.ErrBadRequest):
		writeError(w, http.StatusBadRequest, "Bad Request")
	case errors.Is(err, ai.ErrAuthentication),
		errors.Is(err, ai.ErrMissingAPIKey),
		errors.Is(err, config.ErrKeyNotSet):
		writeError(w, http.StatusUnauthorized, "Authentication error")
	case errors.Is(err, ai.ErrPermissionDenied):
		writeError(w, http.StatusForbidden, "Access denied")
	case errors.Is(err, ai.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "Too Many Requests")
	default:
		s.log.Error("query failed", "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// registerStatic serves the built UI pages and their asset bundle.
func (s *Server) registerStatic(mux *http.ServeMux) {
	if s.staticDir == "" {
		return
	}
	mux.HandleFunc("GET /{$}", s.servePage("index.html"))
	mux.HandleFunc("GET /main", s.servePage("main.html"))
	mux.HandleFunc("GET /config", s.servePage("config.html"))
	mux.Handle("GET /_app/", http.StripPrefix("/_app/",
		http.FileServer(http.Dir(filepath.Join(s.staticDir, "_app")))))
}

func (s *Server) servePage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(s.staticDir, name))
	}
}
