//go:build !test

/* server.go
 * Contains the HTTP server Start function that listens for incoming connections.
 * Excluded from test coverage as it blocks and requires real network binding.
 */

package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// Start serves the webhook routes until ctx is cancelled
func Start(ctx context.Context, cfg Config) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      NewServer(cfg).Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.WithField("addr", cfg.Addr).Info("HTTP server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
