package ui

import (
	"embed"
	"fmt"
	"net/http"

	"collectorsdream/internal"

	"github.com/go-chi/chi/v5"
)

//go:embed static/*
var embeddedFiles embed.FS

// App is the root HTTP handler: the single-page UI plus the API mounted at /api
type App struct {
	router *chi.Mux
	api    *Server
	logger *internal.Logger
}

// NewApp creates the root router around an API server
func NewApp(api *Server, logger *internal.Logger) (*App, error) {
	if logger == nil {
		logger = internal.NewNopLogger()
	}

	app := &App{
		router: chi.NewRouter(),
		api:    api,
		logger: logger,
	}

	app.setupMiddleware(logger)
	if err := app.setupRoutes(); err != nil {
		return nil, err
	}

	return app, nil
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() error {
	static, err := staticHandler()
	if err != nil {
		return fmt.Errorf("failed to open embedded static files: %w", err)
	}

	a.router.Get("/", a.handleIndex)
	a.router.Get("/index.html", a.handleIndex)
	a.router.Handle("/static/*", static)

	// The gin engine routes on the full path, so it keeps the /api prefix.
	a.router.Mount("/api", a.api.Handler())
	return nil
}

// handleIndex serves the single page
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	page, err := embeddedFiles.ReadFile("static/index.html")
	if err != nil {
		a.logger.Error("index page missing: %v", err)
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

// ServeHTTP implements http.Handler
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}
