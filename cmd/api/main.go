package main

import (
	"log"

	"lumen/internal/api"
	"lumen/internal/config"
	"lumen/internal/database"
	"lumen/internal/events"
	"lumen/internal/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize logger
	logger := logger.New(cfg.LogLevel)

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database: %v", err)
	}

	// Publishers: imports announce on the event topic, reconciled products
	// on the sync topic.
	eventsPub := events.NewPublisher(cfg.KafkaBrokers, cfg.EventTopic, logger)
	defer eventsPub.Close()
	syncPub := events.NewPublisher(cfg.KafkaBrokers, cfg.SyncTopic, logger)
	defer syncPub.Close()

	// Initialize API server
	server := api.New(cfg, logger, db, eventsPub, syncPub)

	// Start server
	logger.Info("Starting API server on port " + cfg.APIPort)
	if err := server.Start(); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
