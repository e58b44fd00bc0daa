package processors

import (
	"context"

	"lumen/internal/events"
	"lumen/internal/logger"
	"lumen/internal/reconcile"
)

// EventProcessor reacts to product change events. Created and updated
// products go through a scoped reconciliation run; the runner's publisher
// emits the follow-up search-sync event for the external indexer.
type EventProcessor struct {
	logger *logger.Logger
	runner *reconcile.Runner
	sync   *events.Publisher
}

func NewEventProcessor(log *logger.Logger, runner *reconcile.Runner, sync *events.Publisher) *EventProcessor {
	return &EventProcessor{
		logger: log,
		runner: runner,
		sync:   sync,
	}
}

func (ep *EventProcessor) Process(ctx context.Context, event events.Event) error {
	switch event.Type {
	case events.TypeProductCreated, events.TypeProductUpdated:
		summary, err := ep.runner.Run(ctx, reconcile.RunOptions{
			ProductIDs: []string{event.ProductID},
		})
		if err != nil {
			return err
		}
		ep.logger.Info("reconciled product %s: healed=%d skipped=%d errors=%d",
			event.ProductID, summary.Healed, summary.Skipped, summary.Errors)
		return nil

	case events.TypeProductDeleted:
		// Nothing to reconcile; just tell the indexer to drop the document.
		return ep.sync.Publish(ctx, events.Event{
			Type:      events.TypeProductDeleted,
			ProductID: event.ProductID,
		})

	default:
		ep.logger.Debug("ignoring event type %s", event.Type)
		return nil
	}
}
