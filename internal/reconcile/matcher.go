package reconcile

import (
	"strings"

	"lumen/internal/models"
)

// OptionMatch pairs a product option with the attribute key it represents.
type OptionMatch struct {
	Option models.ProductOption
	Key    models.AttributeKey
}

// MatchOptions pairs each of the product's options with an attribute key by
// case-insensitive equality of the option title against the key's label or
// handle. A handle match outranks a label match; within the same rank the
// first key in catalog order wins. Options matching no key are left out,
// which is not an error.
func MatchOptions(product *models.Product, keys []models.AttributeKey) []OptionMatch {
	matches := make([]OptionMatch, 0, len(product.Options))
	for _, opt := range product.Options {
		var byHandle, byLabel *models.AttributeKey
		for i := range keys {
			key := &keys[i]
			if byHandle == nil && strings.EqualFold(opt.Title, key.Handle) {
				byHandle = key
			}
			if byLabel == nil && strings.EqualFold(opt.Title, key.Label) {
				byLabel = key
			}
		}
		switch {
		case byHandle != nil:
			matches = append(matches, OptionMatch{Option: opt, Key: *byHandle})
		case byLabel != nil:
			matches = append(matches, OptionMatch{Option: opt, Key: *byLabel})
		}
	}
	return matches
}
