package woocommerce

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformProduct_VariableProduct(t *testing.T) {
	wooProduct := &Product{
		ID:   101,
		Name: "LED Strip",
		Slug: "led-strip",
		Type: "variable",
		Attributes: []Attribute{
			{ID: 1, Name: "Color Options", Slug: "color-options", Variation: true, Options: []string{"5000K", "3000K"}},
			{ID: 2, Name: "Certification", Variation: false, Options: []string{"CE"}},
		},
		Variations: []int64{201, 202},
	}
	variations := []Variation{
		{ID: 201, SKU: "LS-5000", Price: "29.99", Attributes: []VariationAttribute{{Name: "Color Options", Option: "5000K"}}},
		{ID: 202, Price: "27.50", Attributes: []VariationAttribute{{Name: "Color Options", Option: "3000K"}}},
	}

	transformer := NewTransformer()
	product, err := transformer.TransformProduct(wooProduct, variations)
	require.NoError(t, err)

	assert.Equal(t, "101", product.ExternalID)
	assert.Equal(t, "led-strip", product.Handle)

	// Only the variation-driving attribute becomes an option.
	require.Len(t, product.Options, 1)
	option := product.Options[0]
	assert.Equal(t, "Color Options", option.Title)
	assert.NotEmpty(t, option.ID)
	assert.Equal(t, []string{"5000K", "3000K"}, []string(option.Values))

	require.Len(t, product.Variants, 2)

	first := product.Variants[0]
	assert.Equal(t, "5000K", first.Title)
	require.NotNil(t, first.SKU)
	assert.Equal(t, "LS-5000", *first.SKU)
	assert.Equal(t, "5000K", first.Selections[option.ID])
	assert.True(t, first.Price.Equal(decimal.RequireFromString("29.99")))

	second := product.Variants[1]
	assert.Equal(t, "3000K", second.Title)
	assert.Nil(t, second.SKU)
	assert.Equal(t, "3000K", second.Selections[option.ID])
}

func TestTransformProduct_SimpleProduct(t *testing.T) {
	wooProduct := &Product{
		ID:    102,
		Name:  "Desk Lamp",
		Slug:  "desk-lamp",
		Type:  "simple",
		SKU:   "DL-1",
		Price: "49.00",
	}

	transformer := NewTransformer()
	product, err := transformer.TransformProduct(wooProduct, nil)
	require.NoError(t, err)

	assert.Empty(t, product.Options)
	require.Len(t, product.Variants, 1)
	assert.Equal(t, "Desk Lamp", product.Variants[0].Title)
	require.NotNil(t, product.Variants[0].SKU)
	assert.Equal(t, "DL-1", *product.Variants[0].SKU)
	assert.Empty(t, product.Variants[0].Selections)
}

func TestTransformProduct_MissingSlugFallsBackToName(t *testing.T) {
	wooProduct := &Product{ID: 103, Name: "Track Light Kit"}

	transformer := NewTransformer()
	product, err := transformer.TransformProduct(wooProduct, nil)
	require.NoError(t, err)
	assert.Equal(t, "track-light-kit", product.Handle)
}

func TestTransformProduct_NoName(t *testing.T) {
	transformer := NewTransformer()
	_, err := transformer.TransformProduct(&Product{ID: 104}, nil)
	assert.Error(t, err)
}

func TestTransformProduct_UnknownVariationAttributeSkipped(t *testing.T) {
	wooProduct := &Product{
		ID:   105,
		Name: "Panel",
		Slug: "panel",
		Attributes: []Attribute{
			{ID: 1, Name: "Size", Variation: true, Options: []string{"60x60"}},
		},
	}
	variations := []Variation{
		{ID: 301, Attributes: []VariationAttribute{
			{Name: "Size", Option: "60x60"},
			{Name: "Ghost Axis", Option: "n/a"},
		}},
	}

	transformer := NewTransformer()
	product, err := transformer.TransformProduct(wooProduct, variations)
	require.NoError(t, err)

	require.Len(t, product.Variants, 1)
	// The unknown axis contributes to the title but not to selections.
	assert.Equal(t, "60x60 / n/a", product.Variants[0].Title)
	assert.Len(t, product.Variants[0].Selections, 1)
}

func TestParsePrice(t *testing.T) {
	assert.True(t, parsePrice("12.30").Equal(decimal.RequireFromString("12.30")))
	assert.True(t, parsePrice("").IsZero())
	assert.True(t, parsePrice("not-a-price").IsZero())
}
