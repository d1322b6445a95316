package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/phrazzld/task-api/internal/redact"
)

// HTTP server timeouts.
const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 15 * time.Second
	idleTimeout       = 60 * time.Second
)

// startHTTPServer serves router until SIGINT/SIGTERM, then drains in-flight
// requests and closes the database within the configured shutdown timeout.
func (app *application) startHTTPServer(ctx context.Context, router http.Handler) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		app.logger.Info("starting server", slog.Int("port", app.config.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	shutdownTimeout := time.Duration(app.config.Server.ShutdownTimeoutSeconds) * time.Second
	wait := gfshutdown.GracefulShutdown(ctx, shutdownTimeout, map[string]gfshutdown.Operation{
		// Server and database close in one operation so the pool outlives
		// the requests being drained.
		"http-server": func(ctx context.Context) error {
			app.logger.Info("shutting down server")
			err := server.Shutdown(ctx)
			app.cleanup()
			return err
		},
	})

	select {
	case err := <-serverErr:
		app.logger.Error("server failed", slog.String("error", redact.Error(err)))
		app.cleanup()
		return err
	case exitCode := <-wait:
		if exitCode != 0 {
			return fmt.Errorf("graceful shutdown finished with exit code %d", exitCode)
		}
		app.logger.Info("server shutdown completed")
		return nil
	}
}
