package ui

import (
	"io/fs"
	"net/http"

	"collectorsdream/internal"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// setupMiddleware configures the root router middleware. Request lines go
// through the application logger instead of the standard library's.
func (a *App) setupMiddleware(logger *internal.Logger) {
	stdlog := zap.NewStdLog(logger.Named("http").Zap())

	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.RealIP)
	a.router.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: stdlog, NoColor: true}))
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// staticHandler serves the embedded single-page UI under /static/
func staticHandler() (http.Handler, error) {
	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		return nil, err
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))), nil
}
