package woocommerce

import (
	"context"
	"fmt"

	"lumen/internal/catalog"
	"lumen/internal/events"
	"lumen/internal/logger"
	"lumen/internal/models"
	"lumen/internal/reconcile"
)

// Connector imports the WooCommerce catalog: products become canonical
// products with options and variants, and every variation-driving attribute
// is registered in the attribute catalog so the reconciler can match against
// it later.
type Connector struct {
	client      *Client
	transformer *Transformer
	catalog     *catalog.Catalog
	publisher   *events.Publisher
	logger      *logger.Logger
}

func New(client *Client, cat *catalog.Catalog, publisher *events.Publisher, log *logger.Logger) *Connector {
	return &Connector{
		client:      client,
		transformer: NewTransformer(),
		catalog:     cat,
		publisher:   publisher,
		logger:      log,
	}
}

// SyncResult summarizes one import run.
type SyncResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Errors   int `json:"errors"`
}

// SyncProducts walks the Woo catalog page by page. Already-imported products
// (matched by external id) are skipped; per-product failures are logged and
// counted without stopping the run.
func (c *Connector) SyncProducts(ctx context.Context) (*SyncResult, error) {
	result := &SyncResult{}

	const perPage = 50
	for page := 1; ; page++ {
		wooProducts, err := c.client.GetProducts(page, perPage)
		if err != nil {
			return result, fmt.Errorf("failed to fetch products page %d: %w", page, err)
		}
		if len(wooProducts) == 0 {
			break
		}

		for i := range wooProducts {
			if err := c.importProduct(ctx, &wooProducts[i], result); err != nil {
				c.logger.Error("failed to import product %d: %v", wooProducts[i].ID, err)
				result.Errors++
			}
		}

		if len(wooProducts) < perPage {
			break
		}
	}

	c.logger.Info("WooCommerce sync done: imported=%d skipped=%d errors=%d",
		result.Imported, result.Skipped, result.Errors)
	return result, nil
}

func (c *Connector) importProduct(ctx context.Context, wooProduct *Product, result *SyncResult) error {
	externalID := fmt.Sprintf("%d", wooProduct.ID)
	if _, err := c.catalog.ProductByExternalID(ctx, externalID); err == nil {
		result.Skipped++
		return nil
	} else if !reconcile.IsNotFound(err) {
		return err
	}

	var variations []Variation
	if len(wooProduct.Variations) > 0 {
		var err error
		variations, err = c.client.GetVariations(wooProduct.ID)
		if err != nil {
			return fmt.Errorf("failed to fetch variations: %w", err)
		}
	}

	product, err := c.transformer.TransformProduct(wooProduct, variations)
	if err != nil {
		return err
	}

	if err := c.registerAttributes(ctx, wooProduct); err != nil {
		return err
	}

	if err := c.catalog.CreateProduct(ctx, product); err != nil {
		return err
	}
	result.Imported++

	if c.publisher != nil {
		if err := c.publisher.ProductCreated(ctx, product.ID); err != nil {
			c.logger.Warn("failed to publish import event for product %s: %v", product.ID, err)
		}
	}
	return nil
}

// registerAttributes makes sure every variation-driving attribute exists as
// an attribute key with all its values, tagged as imported.
func (c *Connector) registerAttributes(ctx context.Context, wooProduct *Product) error {
	for _, attr := range wooProduct.Attributes {
		if !attr.Variation {
			continue
		}

		handle := attr.Slug
		if handle == "" {
			handle = reconcile.Slugify(attr.Name)
		}

		key, err := c.catalog.AttributeKeyByHandle(ctx, handle)
		if reconcile.IsNotFound(err) {
			key = &models.AttributeKey{Label: attr.Name, Handle: handle}
			if createErr := c.catalog.CreateAttributeKey(ctx, key); createErr != nil {
				if !reconcile.IsConflict(createErr) {
					return createErr
				}
				// Another import run won the race; reload.
				key, err = c.catalog.AttributeKeyByHandle(ctx, handle)
				if err != nil {
					return err
				}
			}
		} else if err != nil {
			return err
		}

		for _, value := range attr.Options {
			if _, err := c.catalog.EnsureAttributeValue(ctx, key.ID, value, "import"); err != nil {
				return err
			}
		}
	}
	return nil
}
