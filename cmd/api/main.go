package main

import (
	"os"

	"github.com/vmerk/tutorium/internal/pkg/logger"
	"github.com/vmerk/tutorium/internal/server"
)

// @title Tutorium API
// @version 1.0
// @description Management backend for a private tutoring office: users and
// @description roles, student-teacher links, disciplines, branches,
// @description subscriptions and lessons.

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully")
}
