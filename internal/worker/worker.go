package worker

import (
	"context"
	"encoding/json"
	"time"

	"lumen/internal/config"
	"lumen/internal/events"
	"lumen/internal/logger"
	"lumen/internal/worker/processors"

	"github.com/segmentio/kafka-go"
)

// Worker consumes product change events (catalog imports, admin edits) and
// reconciles the affected products, emitting search-sync events afterwards.
type Worker struct {
	config    *config.Config
	logger    *logger.Logger
	reader    *kafka.Reader
	processor *processors.EventProcessor
}

func New(cfg *config.Config, log *logger.Logger, processor *processors.EventProcessor) *Worker {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{cfg.KafkaBrokers},
		GroupID:        "lumen-worker",
		Topic:          cfg.EventTopic,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
	})

	return &Worker{
		config:    cfg,
		logger:    log,
		reader:    reader,
		processor: processor,
	}
}

func (w *Worker) Start() {
	w.logger.Info("Worker started, listening for events...")

	for {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		message, err := w.reader.ReadMessage(ctx)
		cancel()

		if err != nil {
			w.logger.Error("Failed to read message: %v", err)
			continue
		}

		w.logger.Debug("Received message: %s", string(message.Value))

		var event events.Event
		if err := json.Unmarshal(message.Value, &event); err != nil {
			w.logger.Error("Failed to parse event: %v", err)
			continue
		}

		if err := w.processor.Process(context.Background(), event); err != nil {
			w.logger.Error("Failed to process event: %v", err)
			continue
		}

		w.logger.Debug("Event processed successfully")
	}
}

func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...")
	w.reader.Close()
}
