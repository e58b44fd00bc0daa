package catalog

import (
	"context"
	"errors"

	"lumen/internal/models"
	"lumen/internal/reconcile"

	"gorm.io/gorm"
)

// Orders lists all orders with their line items, oldest first.
func (c *Catalog) Orders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := c.db.WithContext(ctx).
		Preload("LineItems").
		Order("placed_at").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Variant fetches a single variant.
func (c *Catalog) Variant(ctx context.Context, id string) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := c.db.WithContext(ctx).First(&variant, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &reconcile.NotFoundError{Entity: "variant", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &variant, nil
}
