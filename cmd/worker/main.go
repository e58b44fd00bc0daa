package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"lumen/internal/catalog"
	"lumen/internal/config"
	"lumen/internal/database"
	"lumen/internal/events"
	"lumen/internal/logger"
	"lumen/internal/reconcile"
	"lumen/internal/worker"
	"lumen/internal/worker/processors"
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
	defer db.Close()

	syncPub := events.NewPublisher(cfg.KafkaBrokers, cfg.SyncTopic, logger)
	defer syncPub.Close()

	cat := catalog.New(db.DB)
	runner := reconcile.NewRunner(cat, syncPub, logger)
	processor := processors.NewEventProcessor(logger, runner, syncPub)

	// Initialize worker
	w := worker.New(cfg, logger, processor)

	// Start worker
	logger.Info("Starting worker...")
	go w.Start()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker...")
	w.Stop()
}
