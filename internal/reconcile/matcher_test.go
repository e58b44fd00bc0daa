package reconcile

import (
	"testing"

	"lumen/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchOptions_MatchesByLabelCaseInsensitive(t *testing.T) {
	product := &models.Product{
		ID: "p1",
		Options: []models.ProductOption{
			{ID: "o1", Title: "color options"},
		},
	}
	keys := []models.AttributeKey{
		{ID: "k1", Label: "Color Options", Handle: "color-options"},
	}

	matches := MatchOptions(product, keys)
	require.Len(t, matches, 1)
	assert.Equal(t, "o1", matches[0].Option.ID)
	assert.Equal(t, "k1", matches[0].Key.ID)
}

func TestMatchOptions_MatchesByHandle(t *testing.T) {
	product := &models.Product{
		ID: "p1",
		Options: []models.ProductOption{
			{ID: "o1", Title: "color-options"},
		},
	}
	keys := []models.AttributeKey{
		{ID: "k1", Label: "Color Options", Handle: "color-options"},
	}

	matches := MatchOptions(product, keys)
	require.Len(t, matches, 1)
	assert.Equal(t, "k1", matches[0].Key.ID)
}

func TestMatchOptions_HandleMatchOutranksLabelMatch(t *testing.T) {
	// Two keys collide on the option title: one by label, one by handle.
	// The handle match must win regardless of catalog order.
	product := &models.Product{
		ID: "p1",
		Options: []models.ProductOption{
			{ID: "o1", Title: "finish"},
		},
	}
	keys := []models.AttributeKey{
		{ID: "k-label", Label: "Finish", Handle: "surface-finish"},
		{ID: "k-handle", Label: "Surface Finish", Handle: "finish"},
	}

	matches := MatchOptions(product, keys)
	require.Len(t, matches, 1)
	assert.Equal(t, "k-handle", matches[0].Key.ID)
}

func TestMatchOptions_FirstKeyWinsWithinSameRank(t *testing.T) {
	product := &models.Product{
		ID: "p1",
		Options: []models.ProductOption{
			{ID: "o1", Title: "Finish"},
		},
	}
	keys := []models.AttributeKey{
		{ID: "k1", Label: "Finish", Handle: "finish-a"},
		{ID: "k2", Label: "Finish", Handle: "finish-b"},
	}

	matches := MatchOptions(product, keys)
	require.Len(t, matches, 1)
	assert.Equal(t, "k1", matches[0].Key.ID)
}

func TestMatchOptions_UnmatchedOptionsAreExcluded(t *testing.T) {
	product := &models.Product{
		ID: "p1",
		Options: []models.ProductOption{
			{ID: "o1", Title: "Color Options"},
			{ID: "o2", Title: "Mounting Style"},
		},
	}
	keys := []models.AttributeKey{
		{ID: "k1", Label: "Color Options", Handle: "color-options"},
	}

	matches := MatchOptions(product, keys)
	require.Len(t, matches, 1)
	assert.Equal(t, "o1", matches[0].Option.ID)
}

func TestMatchOptions_NoKeysNoMatches(t *testing.T) {
	product := &models.Product{
		ID:      "p1",
		Options: []models.ProductOption{{ID: "o1", Title: "Color Options"}},
	}

	assert.Empty(t, MatchOptions(product, nil))
}
