package bridge

import (
	"context"
	"fmt"

	"lumen/internal/catalog"
	"lumen/internal/logger"
	"lumen/internal/models"
	"lumen/internal/reconcile"
)

// Exporter pushes stored orders to the accounting bridge one at a time and
// waits for each job to finish. Per-order failures are logged and counted so
// a partially synced batch can simply be re-run.
type Exporter struct {
	client  *Client
	catalog *catalog.Catalog
	logger  *logger.Logger
}

func NewExporter(client *Client, cat *catalog.Catalog, log *logger.Logger) *Exporter {
	return &Exporter{
		client:  client,
		catalog: cat,
		logger:  log,
	}
}

// ExportSummary counts one export run's outcomes.
type ExportSummary struct {
	Submitted int `json:"submitted"`
	Failed    int `json:"failed"`
}

func (e *Exporter) ExportOrders(ctx context.Context) (*ExportSummary, error) {
	orders, err := e.catalog.Orders(ctx)
	if err != nil {
		return nil, err
	}

	summary := &ExportSummary{}
	for i := range orders {
		if err := e.exportOrder(ctx, &orders[i]); err != nil {
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			e.logger.Error("failed to export order %s: %v", orders[i].ID, err)
			summary.Failed++
			continue
		}
		summary.Submitted++
	}

	e.logger.Info("order export done: submitted=%d failed=%d", summary.Submitted, summary.Failed)
	return summary, nil
}

func (e *Exporter) exportOrder(ctx context.Context, order *models.Order) error {
	invoice := Invoice{
		OrderID:  order.ID,
		Total:    order.Total,
		Currency: order.Currency,
	}
	for _, li := range order.LineItems {
		line := InvoiceLine{
			Title:     li.Title,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice,
		}
		variant, err := e.catalog.Variant(ctx, li.VariantID)
		if err == nil && variant.SKU != nil {
			line.SKU = *variant.SKU
		} else if err != nil && !reconcile.IsNotFound(err) {
			return err
		}
		invoice.Lines = append(invoice.Lines, line)
	}

	jobID, err := e.client.SubmitInvoice(ctx, invoice)
	if err != nil {
		return err
	}

	job, err := e.client.PollJob(ctx, jobID)
	if err != nil {
		return err
	}
	if job.State == StateFailed {
		return fmt.Errorf("bridge job %s failed: %s", job.ID, job.Detail)
	}
	return nil
}
