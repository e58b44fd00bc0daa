package reconcile

import (
	"context"
	"errors"
	"testing"

	"lumen/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deletionFixture() *fakeStore {
	return newFakeStore(
		nil,
		ledStrip(
			models.ProductVariant{
				ID: "v1", ProductID: "p1", Title: "5000K",
				Selections: models.SelectionMap{"o1": "5000K"},
			},
			models.ProductVariant{
				ID: "v2", ProductID: "p1", Title: "3000K",
				Selections: models.SelectionMap{"o1": "3000K"},
			},
			models.ProductVariant{
				ID: "v3", ProductID: "p1", Title: "2700K",
				Selections: models.SelectionMap{"o1": "2700K"},
			},
		),
	)
}

func TestSafeDeleteOption_SalesProtection(t *testing.T) {
	store := deletionFixture()
	store.lineItems["v2"] = 3
	runner := NewRunner(store, nil, testLogger())

	report, err := runner.SafeDeleteOption(context.Background(), "o1")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"v1", "v3"}, report.Deleted)
	assert.Equal(t, []string{"v2"}, report.Protected)
	assert.True(t, report.OptionDeleted)

	// The protected variant survives; the option is gone regardless.
	p := store.products["p1"]
	require.Len(t, p.Variants, 1)
	assert.Equal(t, "v2", p.Variants[0].ID)
	assert.Empty(t, p.Options)
}

func TestSafeDeleteOption_AllSafe(t *testing.T) {
	store := deletionFixture()
	runner := NewRunner(store, nil, testLogger())

	report, err := runner.SafeDeleteOption(context.Background(), "o1")
	require.NoError(t, err)

	assert.Len(t, report.Deleted, 3)
	assert.Empty(t, report.Protected)
	assert.True(t, report.OptionDeleted)
	assert.Empty(t, store.products["p1"].Variants)
}

func TestSafeDeleteOption_EmptySafeSetIsNoOp(t *testing.T) {
	store := deletionFixture()
	store.lineItems["v1"] = 1
	store.lineItems["v2"] = 1
	store.lineItems["v3"] = 1
	runner := NewRunner(store, nil, testLogger())

	report, err := runner.SafeDeleteOption(context.Background(), "o1")
	require.NoError(t, err)

	assert.Empty(t, report.Deleted)
	assert.Len(t, report.Protected, 3)
	assert.True(t, report.OptionDeleted)
	assert.Len(t, store.products["p1"].Variants, 3)
}

func TestSafeDeleteOption_UnknownOption(t *testing.T) {
	store := deletionFixture()
	runner := NewRunner(store, nil, testLogger())

	_, err := runner.SafeDeleteOption(context.Background(), "nope")
	assert.True(t, IsNotFound(err))
}

func TestSafeDeleteOption_EmptyID(t *testing.T) {
	runner := NewRunner(deletionFixture(), nil, testLogger())

	_, err := runner.SafeDeleteOption(context.Background(), "")
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestSafeDeleteOption_RestoresVariantsWhenOptionDeleteFails(t *testing.T) {
	store := deletionFixture()
	store.deleteOptionErr = errors.New("connection reset")
	runner := NewRunner(store, nil, testLogger())

	report, err := runner.SafeDeleteOption(context.Background(), "o1")
	require.Error(t, err)

	assert.True(t, report.Restored)
	assert.Empty(t, report.Deleted)
	assert.False(t, report.OptionDeleted)
	// All three variants are back.
	assert.Len(t, store.products["p1"].Variants, 3)
	assert.Len(t, store.restored, 3)
}
