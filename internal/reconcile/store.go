package reconcile

import (
	"context"

	"lumen/internal/models"
)

// Store is the persistence surface the pipeline runs against. The catalog
// package provides the GORM-backed implementation; tests use an in-memory
// fake.
type Store interface {
	// Product fetches a product with its options and variants in one call.
	Product(ctx context.Context, id string) (*models.Product, error)
	// ProductIDs lists every product id, for full-catalog runs.
	ProductIDs(ctx context.Context) ([]string, error)
	// AttributeKeys lists all attribute keys with their values preloaded.
	AttributeKeys(ctx context.Context) ([]models.AttributeKey, error)

	// ApplyVariantPatch persists one variant's new selections and fallback
	// SKU atomically.
	ApplyVariantPatch(ctx context.Context, patch VariantPatch) error
	// UpdateProductMetadata replaces a product's metadata document.
	UpdateProductMetadata(ctx context.Context, productID string, meta models.ProductMetadata) error

	// Option fetches a single product option.
	Option(ctx context.Context, id string) (*models.ProductOption, error)
	// VariantsByOption lists variants carrying a selection for the option.
	VariantsByOption(ctx context.Context, optionID string) ([]models.ProductVariant, error)
	// LineItemCount reports how many order line items reference the variant.
	LineItemCount(ctx context.Context, variantID string) (int64, error)
	// DeleteVariants removes the given variants.
	DeleteVariants(ctx context.Context, ids []string) error
	// RestoreVariants re-inserts variants from pre-deletion snapshots.
	RestoreVariants(ctx context.Context, variants []models.ProductVariant) error
	// DeleteOption removes the option definition.
	DeleteOption(ctx context.Context, optionID string) error
}

// Publisher notifies downstream consumers (search indexer sync) that a
// product changed. A nil publisher disables notifications.
type Publisher interface {
	ProductUpdated(ctx context.Context, productID string) error
}
