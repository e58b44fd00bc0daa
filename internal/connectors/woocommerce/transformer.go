package woocommerce

import (
	"fmt"
	"strings"

	"lumen/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Transformer struct{}

func NewTransformer() *Transformer {
	return &Transformer{}
}

// TransformProduct converts a WooCommerce product and its variations to the
// canonical model. Option ids are assigned here so variant selections can
// reference them before anything is persisted.
func (t *Transformer) TransformProduct(wooProduct *Product, variations []Variation) (*models.Product, error) {
	if wooProduct.Name == "" {
		return nil, fmt.Errorf("product %d has no name", wooProduct.ID)
	}

	handle := wooProduct.Slug
	if handle == "" {
		handle = strings.ToLower(strings.ReplaceAll(wooProduct.Name, " ", "-"))
	}

	product := &models.Product{
		ExternalID: fmt.Sprintf("%d", wooProduct.ID),
		Title:      wooProduct.Name,
		Handle:     handle,
		Price:      parsePrice(wooProduct.Price),
	}

	// Only variation-driving attributes become options; descriptive ones
	// stay behind in the source store.
	optionByName := make(map[string]*models.ProductOption)
	for _, attr := range wooProduct.Attributes {
		if !attr.Variation {
			continue
		}
		option := models.ProductOption{
			ID:     uuid.New().String(),
			Title:  attr.Name,
			Values: models.StringList(attr.Options),
		}
		product.Options = append(product.Options, option)
		optionByName[strings.ToLower(attr.Name)] = &product.Options[len(product.Options)-1]
	}

	if len(variations) == 0 {
		// Simple product: one variant mirroring the product itself.
		variant := models.ProductVariant{
			Title: wooProduct.Name,
			Price: parsePrice(wooProduct.Price),
		}
		if wooProduct.SKU != "" {
			sku := wooProduct.SKU
			variant.SKU = &sku
		}
		product.Variants = append(product.Variants, variant)
		return product, nil
	}

	for _, variation := range variations {
		selections := make(models.SelectionMap)
		var titleParts []string
		for _, va := range variation.Attributes {
			titleParts = append(titleParts, va.Option)
			if option, ok := optionByName[strings.ToLower(va.Name)]; ok {
				selections[option.ID] = va.Option
			}
		}

		title := strings.Join(titleParts, " / ")
		if title == "" {
			title = fmt.Sprintf("%s #%d", wooProduct.Name, variation.ID)
		}

		variant := models.ProductVariant{
			Title:      title,
			Price:      parsePrice(variation.Price),
			Selections: selections,
		}
		if variation.SKU != "" {
			sku := variation.SKU
			variant.SKU = &sku
		}
		product.Variants = append(product.Variants, variant)
	}

	return product, nil
}

func parsePrice(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
