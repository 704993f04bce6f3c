package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Router returns a configured chi router with all routes
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)
	r.Use(middleware.Timeout(60 * time.Second))

	// Static files (served from embedded filesystem)
	r.Handle("/static/*", http.StripPrefix("/static/", h.staticServer))

	// Pages
	r.Get("/", h.handleVotePage)
	r.Get("/results", h.handleResultsPage)

	// WebSocket; absent when no hub is wired (handlers built for tests)
	if h.Hub != nil {
		r.Get("/ws", h.Hub.ServeWs)
	}

	// API (all public; voting is anonymous)
	r.Post("/api/check-pick", h.handleCheckPick)
	r.Post("/api/vote", h.handleSubmitVote)
	r.Post("/api/vote/autofix", h.handleAutofix)
	r.Get("/api/results", h.handleGetResults)
	r.Get("/api/health", h.handleHealth)

	return r
}
