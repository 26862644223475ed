// Package server exposes the task store as a local JSON API.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/routegroup"

	"taskpad/internal/service"
	"taskpad/internal/tasks"
)

// Server serves the JSON API over one store.
type Server struct {
	Store   service.Service
	Listen  string
	Version string
}

// textRequest is the body of every endpoint that takes text.
type textRequest struct {
	Text *string `json:"text"`
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.Listen,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
		case <-done:
			return
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] http shutdown: %v", err)
		}
	}()

	log.Printf("[INFO] listening on http://%s", s.Listen)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Handler returns the API handler, for embedding and tests.
func (s *Server) Handler() http.Handler {
	return s.routes()
}

func (s *Server) routes() http.Handler {
	router := routegroup.New(http.NewServeMux())
	router.Use(
		rest.Recoverer(log.Default()),
		rest.AppInfo("taskpad", "taskpad", s.Version),
		rest.Ping,
		rest.SizeLimit(64*1024),
	)

	router.Mount("/api/v1").Route(func(api *routegroup.Bundle) {
		api.Use(rest.NoCache)
		api.HandleFunc("GET /state", s.handleState)
		api.HandleFunc("PUT /input", s.handleSetInput)
		api.HandleFunc("POST /submit", s.handleSubmit)
		api.HandleFunc("POST /tasks", s.handleAdd)
		api.HandleFunc("DELETE /tasks/{id}", s.handleRemove)
		api.HandleFunc("POST /tasks/{id}/complete", s.handleComplete)
		api.HandleFunc("POST /tasks/{id}/edit", s.handleBeginEdit)
		api.HandleFunc("PUT /edit", s.handleUpdateDraft)
		api.HandleFunc("POST /edit/commit", s.handleCommitEdit)
		api.HandleFunc("DELETE /done", s.handleClearDone)
	})
	return router
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	rest.RenderJSON(w, s.Store.State())
}

func (s *Server) handleSetInput(w http.ResponseWriter, r *http.Request) {
	text, ok := s.decodeText(w, r, true)
	if !ok {
		return
	}
	s.Store.SetInput(*text)
	rest.RenderJSON(w, s.Store.State())
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, s.Store.Submit())
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	text, ok := s.decodeText(w, r, true)
	if !ok {
		return
	}
	s.respond(w, r, s.Store.Add(*text))
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, s.Store.RemoveByID(r.PathValue("id")))
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, s.Store.CompleteByID(r.PathValue("id")))
}

// handleBeginEdit opens an edit on the task; without a text the draft is
// seeded with the current text.
func (s *Server) handleBeginEdit(w http.ResponseWriter, r *http.Request) {
	text, ok := s.decodeText(w, r, false)
	if !ok {
		return
	}
	s.respond(w, r, s.Store.BeginEditByID(r.PathValue("id"), text))
}

func (s *Server) handleUpdateDraft(w http.ResponseWriter, r *http.Request) {
	text, ok := s.decodeText(w, r, true)
	if !ok {
		return
	}
	s.respond(w, r, s.Store.UpdateDraft(*text))
}

func (s *Server) handleCommitEdit(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, s.Store.CommitSession())
}

func (s *Server) handleClearDone(w http.ResponseWriter, r *http.Request) {
	s.respond(w, r, s.Store.ClearDone())
}

// decodeText reads {"text": ...}. The result is nil only when required is
// false and the body or its text field is absent.
func (s *Server) decodeText(w http.ResponseWriter, r *http.Request, required bool) (*string, bool) {
	var req textRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if errors.Is(err, io.EOF) && !required {
		return nil, true
	}
	if err != nil {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, err, "invalid request body")
		return nil, false
	}
	if req.Text == nil && required {
		rest.SendErrorJSON(w, r, log.Default(), http.StatusBadRequest, errors.New("missing text"), "text is required")
		return nil, false
	}
	return req.Text, true
}

// respond renders the new state, or maps a store error to a status code.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case err == nil:
		rest.RenderJSON(w, s.Store.State())
	case errors.Is(err, tasks.ErrNotFound), errors.Is(err, tasks.ErrOutOfRange):
		rest.SendErrorJSON(w, r, log.Default(), http.StatusNotFound, err, "task not found")
	case errors.Is(err, tasks.ErrEditing):
		rest.SendErrorJSON(w, r, log.Default(), http.StatusConflict, err, "task is being edited")
	case errors.Is(err, tasks.ErrNoSession):
		rest.SendErrorJSON(w, r, log.Default(), http.StatusConflict, err, "no edit in progress")
	default:
		rest.SendErrorJSON(w, r, log.Default(), http.StatusInternalServerError, err, "store error")
	}
}
