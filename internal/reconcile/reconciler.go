package reconcile

import (
	"strings"

	"lumen/internal/models"
)

// VariantPatch is the minimal healing update for one variant: the selections
// to add and, when the variant has no SKU, a derived fallback.
type VariantPatch struct {
	VariantID string
	ProductID string
	// Selections holds only the new entries; existing selections are never
	// touched.
	Selections map[string]string
	// SKUIfMissing is applied only when the stored variant has no SKU.
	SKUIfMissing *string
}

// VariantReport describes the outcome for a variant that needed no patch.
type VariantReport struct {
	VariantID string
	Title     string
	Reason    string // "satisfied" or "unresolved"
}

// ProductPlan is the computed outcome of one product's reconciliation pass.
type ProductPlan struct {
	ProductID string
	Patches   []VariantPatch
	Unchanged []VariantReport
	// HealedKeyIDs lists attribute keys that matched an option and produced
	// at least one healing candidate; they join metadata.variant_attributes.
	HealedKeyIDs []string
}

// PlanProduct computes the healing plan for one product given its matched
// (option, attribute key) pairs. Titles are compared case-sensitively against
// the key's registered values plus any value already in use by a sibling
// variant for the same option; no whitespace or punctuation normalization is
// applied, so "5000 K" never heals against "5000K". Variants that already
// carry a selection for an option are skipped, which makes re-runs no-ops.
func PlanProduct(product *models.Product, matches []OptionMatch) ProductPlan {
	plan := ProductPlan{ProductID: product.ID}

	patches := make(map[string]*VariantPatch)
	order := make([]string, 0, len(product.Variants))
	firstValue := make(map[string]string)

	for _, m := range matches {
		permitted := make(map[string]struct{}, len(m.Key.Values))
		for _, val := range m.Key.Values {
			permitted[val.Value] = struct{}{}
		}
		for _, v := range product.Variants {
			if used, ok := v.Selections[m.Option.ID]; ok {
				permitted[used] = struct{}{}
			}
		}

		healed := false
		for i := range product.Variants {
			v := &product.Variants[i]
			if _, ok := v.Selections[m.Option.ID]; ok {
				continue
			}
			if _, ok := permitted[v.Title]; !ok {
				continue
			}
			patch, ok := patches[v.ID]
			if !ok {
				patch = &VariantPatch{
					VariantID:  v.ID,
					ProductID:  product.ID,
					Selections: make(map[string]string),
				}
				patches[v.ID] = patch
				order = append(order, v.ID)
				firstValue[v.ID] = v.Title
			}
			patch.Selections[m.Option.ID] = v.Title
			healed = true
		}
		if healed {
			plan.HealedKeyIDs = append(plan.HealedKeyIDs, m.Key.ID)
		}
	}

	for i := range product.Variants {
		v := &product.Variants[i]
		patch, ok := patches[v.ID]
		if !ok {
			reason := "unresolved"
			if len(v.Selections) > 0 {
				reason = "satisfied"
			}
			plan.Unchanged = append(plan.Unchanged, VariantReport{
				VariantID: v.ID,
				Title:     v.Title,
				Reason:    reason,
			})
			continue
		}
		if v.SKU == nil || *v.SKU == "" {
			sku := DeriveSKU(product.Handle, firstValue[v.ID])
			patch.SKUIfMissing = &sku
		}
	}

	plan.Patches = make([]VariantPatch, 0, len(order))
	for _, id := range order {
		plan.Patches = append(plan.Patches, *patches[id])
	}
	return plan
}

// FindOrphans returns the ids of variants carrying zero option selections on
// a product that defines at least one option. Single-variant products are
// exempt: some legitimately have no options at all.
func FindOrphans(product *models.Product) []string {
	if len(product.Options) == 0 || len(product.Variants) <= 1 {
		return nil
	}
	var orphans []string
	for _, v := range product.Variants {
		if len(v.Selections) == 0 {
			orphans = append(orphans, v.ID)
		}
	}
	return orphans
}

// DeriveSKU builds the fallback SKU "{productHandle}-{slug(value)}". It is
// only ever applied to variants that have no SKU of their own.
func DeriveSKU(productHandle, value string) string {
	return productHandle + "-" + Slugify(value)
}

// Slugify lower-cases, turns whitespace runs into single hyphens and strips
// anything that is not alphanumeric or a hyphen.
func Slugify(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	lastHyphen := false
	for _, r := range s {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-':
			b.WriteRune(r)
			lastHyphen = r == '-'
		}
	}
	return strings.Trim(b.String(), "-")
}
