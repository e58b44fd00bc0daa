package catalog

import (
	"context"
	"errors"

	"lumen/internal/models"
	"lumen/internal/reconcile"

	"gorm.io/gorm"
)

// ProductByExternalID looks a product up by the id it carried in the source
// store (WooCommerce post id).
func (c *Catalog) ProductByExternalID(ctx context.Context, externalID string) (*models.Product, error) {
	var product models.Product
	err := c.db.WithContext(ctx).
		Preload("Options").
		Preload("Variants").
		First(&product, "external_id = ?", externalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &reconcile.NotFoundError{Entity: "product", ID: externalID}
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct inserts a product together with its options and variants.
func (c *Catalog) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := c.db.WithContext(ctx).Create(product).Error; err != nil {
		if isUniqueViolation(err) {
			return &reconcile.ConflictError{Op: "create product", Err: err}
		}
		return err
	}
	return nil
}

// SaveProduct updates a product's own columns (not its associations).
func (c *Catalog) SaveProduct(ctx context.Context, product *models.Product) error {
	if err := c.db.WithContext(ctx).Omit("Options", "Variants").Save(product).Error; err != nil {
		if isUniqueViolation(err) {
			return &reconcile.ConflictError{Op: "save product", Err: err}
		}
		return err
	}
	return nil
}

// DeleteProduct removes a product and its options and variants.
func (c *Catalog) DeleteProduct(ctx context.Context, id string) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ProductOption{}, "product_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.ProductVariant{}, "product_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Product{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return &reconcile.NotFoundError{Entity: "product", ID: id}
		}
		return nil
	})
}
