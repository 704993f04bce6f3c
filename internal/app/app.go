package app

import (
	"context"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sairajesh711/premier-top6/internal/classifier"
	"github.com/sairajesh711/premier-top6/internal/config"
	"github.com/sairajesh711/premier-top6/internal/handlers"
	"github.com/sairajesh711/premier-top6/internal/logger"
	"github.com/sairajesh711/premier-top6/internal/repository"
	"github.com/sairajesh711/premier-top6/internal/services"
	"github.com/sairajesh711/premier-top6/internal/websocket"
)

// App holds all application dependencies
type App struct {
	log      logger.Logger
	handlers *handlers.Handlers
	repo     *repository.Repository
	results  *services.ResultsService
	addr     string
}

// New creates and initializes a new application instance
func New(log logger.Logger, cfg *config.Config, templatesFS, staticFS fs.FS) (*App, error) {
	repo, err := repository.New(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	// The classification collaborator is optional; without an API key only
	// the deterministic hard rule applies.
	var client classifier.Client
	if cfg.OpenAIKey != "" {
		client = classifier.NewHTTPClient(cfg.OpenAIBaseURL, cfg.OpenAIKey, cfg.Model,
			cfg.Temperature, cfg.ClassifyTimeout, log)
	} else {
		log.Warn("No classifier API key configured; external troll check disabled")
	}
	checker := classifier.NewChecker(log, client, repo)

	votingService := services.NewVotingService(log, repo, checker, cfg.EnableAutofix)
	resultsService := services.NewResultsService(log, repo)

	// Initialize WebSocket hub and wire it as the results push channel
	hub := websocket.New(log, resultsService)
	hub.Start()
	resultsService.SetBroadcaster(hub)

	// Every accepted ballot triggers a full leaderboard recompute
	if err := resultsService.Start(); err != nil {
		repo.Close()
		return nil, err
	}

	staticServer := handlers.NewStaticServer(staticFS)

	h, err := handlers.New(votingService, resultsService, templatesFS, staticServer, hub, log, repo)
	if err != nil {
		resultsService.Stop()
		repo.Close()
		return nil, err
	}

	// Prime the snapshot so the first websocket client sees standings
	// without waiting for a vote.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := resultsService.Refresh(ctx); err != nil {
		log.Warn("Initial leaderboard refresh failed", "error", err)
	}

	return &App{
		log:      log,
		handlers: h,
		repo:     repo,
		results:  resultsService,
		addr:     cfg.Addr,
	}, nil
}

// Router returns the configured HTTP router
func (a *App) Router() chi.Router {
	return a.handlers.Router()
}

// Close performs graceful shutdown of app resources
func (a *App) Close() {
	if a.results != nil {
		a.results.Stop()
	}
	if a.repo != nil {
		a.repo.Close()
	}
}

// Run starts the HTTP server
func (a *App) Run() error {
	a.log.Info("Server starting", "addr", a.addr)
	return http.ListenAndServe(a.addr, a.Router())
}
