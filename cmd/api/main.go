package main

import (
	"os"

	"github.com/campustrack/campustrack/internal/pkg/logger"
	"github.com/campustrack/campustrack/internal/server"
)

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}
