// Package server implements the development server: it serves the generated
// site, watches the data directory for changes, rebuilds the affected
// property, and pushes a reload message to connected browsers.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/factsheet/internal/common"
	"github.com/ternarybob/factsheet/internal/site"
)

// Server manages the development HTTP server, the file watcher, and the
// websocket reload hub.
type Server struct {
	config    *common.Config
	generator *site.Generator
	logger    arbor.ILogger
	hub       *reloadHub
	watcher   *watcher
	server    *http.Server
}

// New creates a development server around an already-constructed generator.
func New(config *common.Config, generator *site.Generator, logger arbor.ILogger) (*Server, error) {
	s := &Server{
		config:    config,
		generator: generator,
		logger:    logger,
		hub:       newReloadHub(config.ReloadThrottleDuration(), logger),
	}

	w, err := newWatcher(config, s.onPropertyChanged, logger)
	if err != nil {
		return nil, err
	}
	s.watcher = w

	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.withMiddleware(s.routes()),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start runs the watcher and the HTTP server. Blocks until the server stops.
func (s *Server) Start() error {
	s.watcher.start()

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.logger.Info().
		Str("address", addr).
		Str("serving", s.config.Site.OutputDir).
		Str("watching", s.config.Site.DataDir).
		Msg("Development server starting")

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// Shutdown gracefully stops the server, the watcher, and all websocket
// clients.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down development server")

	s.watcher.stop()
	s.hub.closeAll()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info().Msg("Development server stopped")
	return nil
}

// onPropertyChanged is the watcher callback: rebuild the property, then tell
// browsers to reload. A rebuild failure is logged but still triggers a
// reload so stale pages don't linger after a partial fix.
func (s *Server) onPropertyChanged(propertyID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.generator.BuildOne(ctx, propertyID); err != nil {
		s.logger.Error().Err(err).Str("property_id", propertyID).Msg("Incremental rebuild failed")
	} else {
		s.logger.Info().Str("property_id", propertyID).Msg("Property rebuilt")
	}

	s.hub.broadcastReload()
}

// routes wires the three endpoints: health, websocket reload, and the
// generated site itself.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})
	mux.HandleFunc("/ws", s.hub.handleConnection)
	mux.Handle("/", http.FileServer(http.Dir(s.config.Site.OutputDir)))
	return mux
}
