// Package server runs the HTTP server with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campustrack/campustrack/internal/bootstrap"
	"github.com/campustrack/campustrack/internal/pkg/logger"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	deps   *bootstrap.Dependencies
	router *gin.Engine
	http   *http.Server
}

// NewServer builds a fully wired server.
func NewServer() (*Server, error) {
	cfg, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, err
	}

	database, err := bootstrap.SetupDatabase(cfg)
	if err != nil {
		return nil, err
	}

	deps, err := bootstrap.BuildDependencies(cfg, database)
	if err != nil {
		database.Close()
		return nil, err
	}

	router := bootstrap.SetupRouter(deps)

	return &Server{
		deps:   deps,
		router: router,
		http: &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}, nil
}

// Run starts the server and blocks until shutdown or a fatal error.
func (s *Server) Run() error {
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().Str("addr", s.http.Addr).Msg("Starting HTTP server")
		serverErrors <- s.http.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
		return s.Shutdown()
	}
}

// Shutdown stops the HTTP server gracefully and releases resources.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var err error
	if shutdownErr := s.http.Shutdown(ctx); shutdownErr != nil {
		err = fmt.Errorf("graceful shutdown failed: %w", shutdownErr)
		if closeErr := s.http.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}

	if s.deps.Cache != nil && s.deps.Cache.Client != nil {
		if closeErr := s.deps.Cache.Client.Close(); closeErr != nil {
			logger.Warn().Err(closeErr).Msg("Error closing redis client")
		}
	}
	s.deps.Database.Close()

	logger.Info().Msg("Server stopped")
	return err
}
