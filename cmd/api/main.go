package main

import (
	"os"

	"github.com/coursekit/courses-svc/internal/pkg/logger"
	"github.com/coursekit/courses-svc/internal/server"
)

// @title Courses Service API
// @version 1.0
// @description CRUD API for courses and enrollments with an external students directory

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:4000
// @BasePath /
// @schemes http

func main() {
	srv, err := server.NewServer()
	if err != nil {
		// Error details are logged within NewServer's setup functions.
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Run blocks until a shutdown signal arrives.
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
