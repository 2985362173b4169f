package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"collectorsdream/ui"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web UI and JSON API",
	Long: `Starts the HTTP server on PORT (default 8000). The browser UI is served
at / and the API under /api. SIGINT or SIGTERM shuts the server down
gracefully within SHUTDOWN_TIMEOUT.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	c, err := openContainer(ctx)
	if err != nil {
		return err
	}
	defer c.Shutdown(context.Background())

	gin.SetMode(cfg.Server.GinMode)
	api := ui.NewServer(c.Collection, logger)
	root, err := ui.NewApp(api, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    net.JoinHostPort("", cfg.Server.Port),
		Handler: root,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Collector's Dream listening on http://localhost:%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := c.WatchCategories(gctx); err != nil {
			logger.Warn("category watcher stopped, edits on disk need a restart: %v", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
