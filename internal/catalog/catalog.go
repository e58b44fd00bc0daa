package catalog

import (
	"context"
	"errors"
	"fmt"

	"lumen/internal/models"
	"lumen/internal/reconcile"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Catalog is the GORM-backed store behind the reconciliation pipeline and the
// import connector. It is the only package that talks to the product and
// attribute tables directly.
type Catalog struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

var _ reconcile.Store = (*Catalog)(nil)

// AttributeKey fetches one key with its values preloaded.
func (c *Catalog) AttributeKey(ctx context.Context, id string) (*models.AttributeKey, error) {
	var key models.AttributeKey
	err := c.db.WithContext(ctx).Preload("Values").First(&key, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &reconcile.NotFoundError{Entity: "attribute key", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &key, nil
}

func (c *Catalog) AttributeKeys(ctx context.Context) ([]models.AttributeKey, error) {
	var keys []models.AttributeKey
	if err := c.db.WithContext(ctx).Preload("Values").Order("created_at").Find(&keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

// AttributeKeyByHandle looks a key up by its URL-safe handle.
func (c *Catalog) AttributeKeyByHandle(ctx context.Context, handle string) (*models.AttributeKey, error) {
	var key models.AttributeKey
	err := c.db.WithContext(ctx).Preload("Values").First(&key, "handle = ?", handle).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &reconcile.NotFoundError{Entity: "attribute key", ID: handle}
	}
	if err != nil {
		return nil, err
	}
	return &key, nil
}

func (c *Catalog) CreateAttributeKey(ctx context.Context, key *models.AttributeKey) error {
	if err := c.db.WithContext(ctx).Create(key).Error; err != nil {
		if isUniqueViolation(err) {
			return &reconcile.ConflictError{Op: "create attribute key", Err: err}
		}
		return err
	}
	return nil
}

// EnsureAttributeValue returns the existing (keyID, value) row or creates one
// tagged with the given provenance. Concurrent callers racing on the same
// pair are resolved by the unique constraint: the loser re-fetches and
// returns the winner's row.
func (c *Catalog) EnsureAttributeValue(ctx context.Context, keyID, value, createdBy string) (*models.AttributeValue, error) {
	var existing models.AttributeValue
	err := c.db.WithContext(ctx).
		First(&existing, "attribute_key_id = ? AND value = ?", keyID, value).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	row := models.AttributeValue{
		AttributeKeyID: keyID,
		Value:          value,
		CreatedBy:      createdBy,
	}
	err = c.db.WithContext(ctx).Create(&row).Error
	if err == nil {
		return &row, nil
	}
	if !isUniqueViolation(err) {
		return nil, fmt.Errorf("failed to create attribute value: %w", err)
	}

	// Lost the race: the pair exists now, fetch and return it.
	if err := c.db.WithContext(ctx).
		First(&existing, "attribute_key_id = ? AND value = ?", keyID, value).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

// Product fetches a product with options and variants in one preloaded query,
// the "graph" fetch the reconciler depends on.
func (c *Catalog) Product(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := c.db.WithContext(ctx).
		Preload("Options").
		Preload("Variants").
		First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &reconcile.NotFoundError{Entity: "product", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Catalog) ProductIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := c.db.WithContext(ctx).
		Model(&models.Product{}).Order("created_at").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// ApplyVariantPatch merges new selections into the stored variant and sets
// the fallback SKU only when the row still has none. One transaction per
// variant; a duplicate SKU surfaces as a ConflictError.
func (c *Catalog) ApplyVariantPatch(ctx context.Context, patch reconcile.VariantPatch) error {
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var variant models.ProductVariant
		if err := tx.First(&variant, "id = ?", patch.VariantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &reconcile.NotFoundError{Entity: "variant", ID: patch.VariantID}
			}
			return err
		}

		if variant.Selections == nil {
			variant.Selections = make(models.SelectionMap)
		}
		for optionID, value := range patch.Selections {
			if _, ok := variant.Selections[optionID]; !ok {
				variant.Selections[optionID] = value
			}
		}
		if patch.SKUIfMissing != nil && (variant.SKU == nil || *variant.SKU == "") {
			variant.SKU = patch.SKUIfMissing
		}

		return tx.Save(&variant).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return &reconcile.ConflictError{Op: "apply variant patch", Err: err}
		}
		return err
	}
	return nil
}

func (c *Catalog) UpdateProductMetadata(ctx context.Context, productID string, meta models.ProductMetadata) error {
	result := c.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Update("metadata", meta)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &reconcile.NotFoundError{Entity: "product", ID: productID}
	}
	return nil
}

func (c *Catalog) Option(ctx context.Context, id string) (*models.ProductOption, error) {
	var option models.ProductOption
	err := c.db.WithContext(ctx).First(&option, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &reconcile.NotFoundError{Entity: "option", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &option, nil
}

// VariantsByOption lists the sibling variants that carry a selection for the
// option. Selections live in a JSON column, so the filter happens in Go after
// narrowing to the owning product.
func (c *Catalog) VariantsByOption(ctx context.Context, optionID string) ([]models.ProductVariant, error) {
	option, err := c.Option(ctx, optionID)
	if err != nil {
		return nil, err
	}

	var variants []models.ProductVariant
	if err := c.db.WithContext(ctx).
		Find(&variants, "product_id = ?", option.ProductID).Error; err != nil {
		return nil, err
	}

	matched := variants[:0]
	for _, v := range variants {
		if _, ok := v.Selections[optionID]; ok {
			matched = append(matched, v)
		}
	}
	return matched, nil
}

func (c *Catalog) LineItemCount(ctx context.Context, variantID string) (int64, error) {
	var count int64
	err := c.db.WithContext(ctx).
		Model(&models.OrderLineItem{}).
		Where("variant_id = ?", variantID).
		Count(&count).Error
	return count, err
}

func (c *Catalog) DeleteVariants(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return c.db.WithContext(ctx).Delete(&models.ProductVariant{}, "id IN ?", ids).Error
}

// RestoreVariants re-inserts variants deleted earlier in the same workflow,
// keeping their original ids and timestamps.
func (c *Catalog) RestoreVariants(ctx context.Context, variants []models.ProductVariant) error {
	if len(variants) == 0 {
		return nil
	}
	return c.db.WithContext(ctx).Create(&variants).Error
}

func (c *Catalog) DeleteOption(ctx context.Context, optionID string) error {
	result := c.db.WithContext(ctx).Delete(&models.ProductOption{}, "id = ?", optionID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &reconcile.NotFoundError{Entity: "option", ID: optionID}
	}
	return nil
}

// isUniqueViolation recognizes uniqueness rejections from both backends:
// Postgres error class 23505 and GORM's translated duplicate-key error.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
