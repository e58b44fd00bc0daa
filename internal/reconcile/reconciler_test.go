package reconcile

import (
	"testing"

	"lumen/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func colorKey() models.AttributeKey {
	return models.AttributeKey{
		ID:     "k1",
		Label:  "Color Options",
		Handle: "color-options",
		Values: []models.AttributeValue{
			{ID: "v-5000", AttributeKeyID: "k1", Value: "5000K"},
			{ID: "v-3000", AttributeKeyID: "k1", Value: "3000K"},
		},
	}
}

func ledStrip(variants ...models.ProductVariant) *models.Product {
	return &models.Product{
		ID:     "p1",
		Title:  "LED Strip",
		Handle: "led-strip",
		Options: []models.ProductOption{
			{ID: "o1", ProductID: "p1", Title: "Color Options"},
		},
		Variants: variants,
	}
}

func TestPlanProduct_HealsVariantByTitle(t *testing.T) {
	product := ledStrip(
		models.ProductVariant{ID: "v1", ProductID: "p1", Title: "5000K"},
	)
	matches := MatchOptions(product, []models.AttributeKey{colorKey()})

	plan := PlanProduct(product, matches)

	require.Len(t, plan.Patches, 1)
	assert.Equal(t, "v1", plan.Patches[0].VariantID)
	assert.Equal(t, map[string]string{"o1": "5000K"}, plan.Patches[0].Selections)
	assert.Equal(t, []string{"k1"}, plan.HealedKeyIDs)
	assert.Empty(t, plan.Unchanged)
}

func TestPlanProduct_ExactMatchIsWhitespaceSensitive(t *testing.T) {
	// "5000 K" is a distinct value needing manual correction; it must not
	// heal against "5000K".
	product := ledStrip(
		models.ProductVariant{ID: "v1", ProductID: "p1", Title: "5000 K"},
	)
	matches := MatchOptions(product, []models.AttributeKey{colorKey()})

	plan := PlanProduct(product, matches)

	assert.Empty(t, plan.Patches)
	assert.Empty(t, plan.HealedKeyIDs)
	require.Len(t, plan.Unchanged, 1)
	assert.Equal(t, "unresolved", plan.Unchanged[0].Reason)
}

func TestPlanProduct_ExistingSelectionIsSkipped(t *testing.T) {
	product := ledStrip(
		models.ProductVariant{
			ID: "v1", ProductID: "p1", Title: "5000K",
			Selections: models.SelectionMap{"o1": "5000K"},
		},
	)
	matches := MatchOptions(product, []models.AttributeKey{colorKey()})

	plan := PlanProduct(product, matches)

	assert.Empty(t, plan.Patches)
	require.Len(t, plan.Unchanged, 1)
	assert.Equal(t, "satisfied", plan.Unchanged[0].Reason)
}

func TestPlanProduct_IsIdempotent(t *testing.T) {
	product := ledStrip(
		models.ProductVariant{ID: "v1", ProductID: "p1", Title: "5000K"},
		models.ProductVariant{ID: "v2", ProductID: "p1", Title: "3000K"},
	)
	matches := MatchOptions(product, []models.AttributeKey{colorKey()})

	first := PlanProduct(product, matches)
	require.Len(t, first.Patches, 2)

	// Apply the patches the way the store would.
	for _, patch := range first.Patches {
		for i := range product.Variants {
			if product.Variants[i].ID != patch.VariantID {
				continue
			}
			if product.Variants[i].Selections == nil {
				product.Variants[i].Selections = models.SelectionMap{}
			}
			for optionID, value := range patch.Selections {
				product.Variants[i].Selections[optionID] = value
			}
		}
	}

	second := PlanProduct(product, matches)
	assert.Empty(t, second.Patches)
	assert.Len(t, second.Unchanged, 2)
}

func TestPlanProduct_SiblingSelectionExtendsPermittedValues(t *testing.T) {
	// "2700K" is not in the catalog but a sibling already uses it for the
	// same option, so it is a legitimate value for this product.
	product := ledStrip(
		models.ProductVariant{
			ID: "v1", ProductID: "p1", Title: "2700K",
			Selections: models.SelectionMap{"o1": "2700K"},
		},
		models.ProductVariant{ID: "v2", ProductID: "p1", Title: "2700K"},
	)
	matches := MatchOptions(product, []models.AttributeKey{colorKey()})

	plan := PlanProduct(product, matches)

	require.Len(t, plan.Patches, 1)
	assert.Equal(t, "v2", plan.Patches[0].VariantID)
	assert.Equal(t, "2700K", plan.Patches[0].Selections["o1"])
}

func TestPlanProduct_SKUBackfill(t *testing.T) {
	product := ledStrip(
		models.ProductVariant{ID: "v2", ProductID: "p1", Title: "3000K"},
	)
	matches := MatchOptions(product, []models.AttributeKey{colorKey()})

	plan := PlanProduct(product, matches)

	require.Len(t, plan.Patches, 1)
	require.NotNil(t, plan.Patches[0].SKUIfMissing)
	assert.Equal(t, "led-strip-3000k", *plan.Patches[0].SKUIfMissing)
}

func TestPlanProduct_ExistingSKUNotOverwritten(t *testing.T) {
	sku := "LS-3000"
	product := ledStrip(
		models.ProductVariant{ID: "v2", ProductID: "p1", Title: "3000K", SKU: &sku},
	)
	matches := MatchOptions(product, []models.AttributeKey{colorKey()})

	plan := PlanProduct(product, matches)

	require.Len(t, plan.Patches, 1)
	assert.Nil(t, plan.Patches[0].SKUIfMissing)
}

func TestPlanProduct_MultipleOptionsInOnePass(t *testing.T) {
	wattKey := models.AttributeKey{
		ID:     "k2",
		Label:  "Wattage",
		Handle: "wattage",
		Values: []models.AttributeValue{
			{ID: "v-watt", AttributeKeyID: "k2", Value: "5000K"},
		},
	}
	product := &models.Product{
		ID:     "p1",
		Handle: "led-strip",
		Options: []models.ProductOption{
			{ID: "o1", ProductID: "p1", Title: "Color Options"},
			{ID: "o2", ProductID: "p1", Title: "Wattage"},
		},
		Variants: []models.ProductVariant{
			{ID: "v1", ProductID: "p1", Title: "5000K"},
		},
	}
	matches := MatchOptions(product, []models.AttributeKey{colorKey(), wattKey})

	plan := PlanProduct(product, matches)

	require.Len(t, plan.Patches, 1)
	assert.Equal(t, map[string]string{"o1": "5000K", "o2": "5000K"}, plan.Patches[0].Selections)
	assert.ElementsMatch(t, []string{"k1", "k2"}, plan.HealedKeyIDs)
}

func TestFindOrphans_SingleVariantExempt(t *testing.T) {
	product := ledStrip(
		models.ProductVariant{ID: "v1", ProductID: "p1", Title: "5000K"},
	)
	assert.Empty(t, FindOrphans(product))
}

func TestFindOrphans_FlagsUnselectedVariants(t *testing.T) {
	product := ledStrip(
		models.ProductVariant{
			ID: "v1", ProductID: "p1", Title: "5000K",
			Selections: models.SelectionMap{"o1": "5000K"},
		},
		models.ProductVariant{ID: "v2", ProductID: "p1", Title: "3000K"},
	)
	assert.Equal(t, []string{"v2"}, FindOrphans(product))
}

func TestFindOrphans_NoOptionsNoOrphans(t *testing.T) {
	product := &models.Product{
		ID: "p1",
		Variants: []models.ProductVariant{
			{ID: "v1", ProductID: "p1", Title: "One"},
			{ID: "v2", ProductID: "p1", Title: "Two"},
		},
	}
	assert.Empty(t, FindOrphans(product))
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"3000K", "3000k"},
		{"5000 K", "5000-k"},
		{"Warm  White", "warm-white"},
		{"IP65 (Outdoor)", "ip65-outdoor"},
		{"  padded  ", "padded"},
		{"Ultra-Bright", "ultra-bright"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "input %q", tc.in)
	}
}

func TestDeriveSKU(t *testing.T) {
	assert.Equal(t, "led-strip-3000k", DeriveSKU("led-strip", "3000K"))
}
