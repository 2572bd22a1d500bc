// Package server exposes the slideshow over HTTP: per-browser sessions
// keyed by cookie, JSON control endpoints, and image delivery.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/llehouerou/qss/internal/action"
	"github.com/llehouerou/qss/internal/keymap"
	"github.com/llehouerou/qss/internal/session"
)

const sessionCookie = "qss_session"

// Server routes slideshow API requests to per-session state.
type Server struct {
	manager    *session.Manager
	dispatcher *action.Dispatcher
	hotkeys    *keymap.Resolver
	gestures   *keymap.Resolver
	logger     *log.Logger
	mux        *http.ServeMux
}

// New assembles the server. The hotkey and gesture resolvers must be the
// web-context ones.
func New(manager *session.Manager, dispatcher *action.Dispatcher, hotkeys, gestures *keymap.Resolver, logger *log.Logger) *Server {
	s := &Server{
		manager:    manager,
		dispatcher: dispatcher,
		hotkeys:    hotkeys,
		gestures:   gestures,
		logger:     logger,
		mux:        http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/status", s.withSession(s.handleStatus))
	s.mux.HandleFunc("GET /api/config", s.withSession(s.handleConfig))
	s.mux.HandleFunc("GET /api/images", s.withSession(s.handleImages))
	s.mux.HandleFunc("GET /api/image/{index}", s.withSession(s.handleImage))
	s.mux.HandleFunc("GET /api/actions", s.handleActions)
	s.mux.HandleFunc("POST /api/control", s.withSession(s.handleControl))
	s.mux.HandleFunc("POST /api/key", s.withSession(s.handleKey))
	s.mux.HandleFunc("POST /api/touch", s.withSession(s.handleTouch))
}

// ServeHTTP implements http.Handler with request logging.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s.mux.ServeHTTP(w, r)
	s.logger.Debug("request",
		"method", r.Method,
		"path", r.URL.Path,
		"duration", time.Since(start))
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, host string, port int) error {
	addr := net.JoinHostPort(host, fmt.Sprint(port))
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("web server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// withSession resolves the session cookie, creating a session (and
// setting the cookie) on first contact.
func (s *Server) withSession(next func(http.ResponseWriter, *http.Request, *session.Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
			id = c.Value
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
			})
			s.logger.Info("new web session", "session", id)
		}
		next(w, r, s.manager.GetOrCreate(id))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}
