// Package api exposes the board over HTTP as JSON.
package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/nhle/taskboard/internal/checklist"
	"github.com/nhle/taskboard/internal/model"
	"github.com/nhle/taskboard/internal/search"
	"github.com/nhle/taskboard/internal/theme"
)

// Server holds the board and the feature services handlers share.
type Server struct {
	Board     *model.Board
	Checklist *checklist.Manager
	Theme     *theme.Toggler
	Filter    search.Filter
	Logger    *log.Logger

	// Now is the clock used for due-date classification.
	Now func() time.Time

	// Reload, when set, reads the board from the store before each request
	// so writes from other processes are not overwritten.
	Reload func(ctx context.Context) (*model.Board, error)

	mu sync.Mutex
}

// NewServer wires a Server around board. save persists the board after
// checklist mutations.
func NewServer(
	board *model.Board,
	save checklist.SaveFunc,
	toggler *theme.Toggler,
	filter search.Filter,
	logger *log.Logger,
) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		Board:     board,
		Checklist: checklist.NewManager(board, save, logger),
		Theme:     toggler,
		Filter:    filter,
		Logger:    logger,
		Now:       time.Now,
	}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	RegisterRoutes(router, s)
	router.Use(s.logRequests, s.serialize)
	return router
}

// serialize runs one request at a time; the board is shared mutable state.
func (s *Server) serialize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.Reload != nil {
			fresh, err := s.Reload(r.Context())
			if err != nil {
				s.Logger.Error("reloading board", "err", err)
				writeError(w, http.StatusInternalServerError, "loading board failed")
				return
			}
			*s.Board = *fresh
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
