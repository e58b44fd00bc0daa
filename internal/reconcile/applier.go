package reconcile

import (
	"context"
	"fmt"

	"lumen/internal/logger"
)

// Runner orchestrates full- or product-scoped reconciliation runs and the
// operator-invoked safe option deletion.
type Runner struct {
	store     Store
	publisher Publisher
	logger    *logger.Logger
}

func NewRunner(store Store, publisher Publisher, log *logger.Logger) *Runner {
	return &Runner{
		store:     store,
		publisher: publisher,
		logger:    log,
	}
}

// RunOptions selects the scope of a run. An empty ProductIDs slice means the
// whole catalog. DryRun computes and reports plans without writing anything.
type RunOptions struct {
	ProductIDs []string
	DryRun     bool
}

// Summary aggregates a run's outcome.
type Summary struct {
	Products int  `json:"products"`
	Healed   int  `json:"healed"`
	Skipped  int  `json:"skipped"`
	Errors   int  `json:"errors"`
	Orphans  int  `json:"orphans"`
	DryRun   bool `json:"dry_run"`
}

// Run processes each product sequentially: fetch, match options against the
// attribute catalog, plan healing updates, apply them. Per-entity failures
// are logged and counted, never fatal; only an unreachable store aborts the
// run. Each product commits independently, so a killed or re-run batch is
// safe: already-healed variants are skipped on the next pass.
func (r *Runner) Run(ctx context.Context, opts RunOptions) (*Summary, error) {
	keys, err := r.store.AttributeKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load attribute catalog: %w", err)
	}

	ids := opts.ProductIDs
	if len(ids) == 0 {
		ids, err = r.store.ProductIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list products: %w", err)
		}
	}

	summary := &Summary{DryRun: opts.DryRun}
	for _, id := range ids {
		product, err := r.store.Product(ctx, id)
		if err != nil {
			if IsNotFound(err) {
				r.logger.Warn("product %s not found, skipping", id)
				summary.Errors++
				continue
			}
			return summary, fmt.Errorf("failed to fetch product %s: %w", id, err)
		}
		summary.Products++

		matches := MatchOptions(product, keys)
		plan := PlanProduct(product, matches)
		summary.Skipped += len(plan.Unchanged)
		summary.Orphans += len(FindOrphans(product))

		if opts.DryRun {
			for _, patch := range plan.Patches {
				r.logger.Info("dry-run: variant %s would receive %d selections", patch.VariantID, len(patch.Selections))
				summary.Healed++
			}
			continue
		}

		applied := 0
		for _, patch := range plan.Patches {
			if err := r.store.ApplyVariantPatch(ctx, patch); err != nil {
				r.logger.Error("failed to heal variant %s: %v", patch.VariantID, err)
				summary.Errors++
				continue
			}
			applied++
		}
		summary.Healed += applied
		if applied == 0 {
			continue
		}

		if product.Metadata.AddVariantAttributes(plan.HealedKeyIDs) {
			if err := r.store.UpdateProductMetadata(ctx, product.ID, product.Metadata); err != nil {
				r.logger.Error("failed to update metadata for product %s: %v", product.ID, err)
				summary.Errors++
			}
		}

		if r.publisher != nil {
			if err := r.publisher.ProductUpdated(ctx, product.ID); err != nil {
				r.logger.Warn("failed to publish sync event for product %s: %v", product.ID, err)
			}
		}
	}

	r.logger.Info("reconciliation done: products=%d healed=%d skipped=%d errors=%d orphans=%d dry_run=%t",
		summary.Products, summary.Healed, summary.Skipped, summary.Errors, summary.Orphans, summary.DryRun)
	return summary, nil
}
