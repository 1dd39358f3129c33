package main

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/life-record-api/internal/config"
	"github.com/yukikurage/life-record-api/internal/database"
	"github.com/yukikurage/life-record-api/internal/logging"
	"github.com/yukikurage/life-record-api/internal/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Connect to database
	db, err := database.Connect(cfg.Database, cfg.Log.Level)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		logging.Fatal().Err(err).Msg("Failed to run migrations")
	}

	r, err := router.New(cfg, db)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build router")
	}

	// Start server
	logging.Info().Str("addr", cfg.Addr()).Msg("Server starting")
	if err := r.Run(cfg.Addr()); err != nil {
		logging.Fatal().Err(err).Msg("Failed to start server")
	}
}
