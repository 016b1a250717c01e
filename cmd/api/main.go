package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/arjun/placementhub/internal/pkg/logger"
	"github.com/arjun/placementhub/internal/server"
)

// @title PlacementHub API
// @version 1.0
// @description API for the campus placement portal: recruitment drives, interview questions and placement materials

// @contact.name API Support
// @contact.email support@placementhub.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT session token; also accepted via the auth_token cookie

func main() {
	// Best-effort: a missing .env just means the environment is set elsewhere
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("No .env file found, using process environment")
	}

	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
