package handlers

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/sairajesh711/premier-top6/internal/services"
	"github.com/sairajesh711/premier-top6/internal/websocket"
)

// NewStaticServer creates a static file server from an fs.FS
func NewStaticServer(staticFS fs.FS) http.Handler {
	return http.FileServer(http.FS(staticFS))
}

// Templates holds all parsed HTML templates
type Templates struct {
	Vote    *template.Template
	Results *template.Template
}

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	Voting       services.VotingServicer
	Results      services.ResultsServicer
	Hub          *websocket.Hub
	Log          HTTPLogger
	pinger       Pinger
	templates    *Templates
	staticServer http.Handler
}

// HTTPLogger is an interface for loggers that support HTTP logging control
type HTTPLogger interface {
	IsHTTPLoggingEnabled() bool
}

// Pinger reports store liveness for the health endpoint
type Pinger interface {
	Ping(ctx context.Context) error
}

// New creates a new Handlers instance with all dependencies
func New(
	voting services.VotingServicer,
	results services.ResultsServicer,
	templatesFS fs.FS,
	staticServer http.Handler,
	hub *websocket.Hub,
	log HTTPLogger,
	pinger Pinger,
) (*Handlers, error) {
	templates, err := loadTemplates(templatesFS)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	return &Handlers{
		Voting:       voting,
		Results:      results,
		Hub:          hub,
		Log:          log,
		pinger:       pinger,
		templates:    templates,
		staticServer: staticServer,
	}, nil
}

// NoopHTTPLogger is a test logger that always returns false for HTTP logging
type NoopHTTPLogger struct{}

func (NoopHTTPLogger) IsHTTPLoggingEnabled() bool { return false }

// NewForTesting creates a Handlers instance without loading templates
// (for testing API endpoints)
func NewForTesting(
	voting services.VotingServicer,
	results services.ResultsServicer,
) *Handlers {
	return &Handlers{
		Voting:  voting,
		Results: results,
		Log:     NoopHTTPLogger{},
		// templates left nil - API endpoints don't use templates
	}
}

// SetPinger wires the health-check dependency; used by tests, which build
// Handlers without the full app wiring.
func (h *Handlers) SetPinger(p Pinger) {
	h.pinger = p
}

// loadTemplates parses all templates once at startup
func loadTemplates(templatesFS fs.FS) (*Templates, error) {
	t := &Templates{}
	var err error

	if t.Vote, err = template.ParseFS(templatesFS, "index.html"); err != nil {
		return nil, fmt.Errorf("vote template: %w", err)
	}
	if t.Results, err = template.ParseFS(templatesFS, "results.html"); err != nil {
		return nil, fmt.Errorf("results template: %w", err)
	}

	return t, nil
}
