package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glowstore/backend/models"
)

func TestDiffReportsOnlyMismatches(t *testing.T) {
	products := map[string]models.StoreProduct{
		"serum": {
			Name: "Serum",
			Variants: []models.StoreVariant{
				{Size: "30ml", StockQty: 8},
				{Size: "50ml", StockQty: 4},
			},
		},
		"toner": {
			Name:     "Toner",
			Variants: []models.StoreVariant{{Size: "150ml", StockQty: 5}},
		},
		"only-products": {
			Name:     "Orphan",
			Variants: []models.StoreVariant{{StockQty: 1}},
		},
	}
	inventory := map[string]models.InventoryProduct{
		"serum": {
			Variants: []models.InventoryVariant{
				{Name: "30ml", StockQty: 8},  // in sync
				{Name: "50ml", StockQty: 10}, // stale
			},
		},
		"toner": {
			Variants: []models.InventoryVariant{{Name: "150ml", StockQty: 2}},
		},
	}

	diffs := Diff(products, inventory)
	require.Len(t, diffs, 2)

	assert.Equal(t, models.StockDifference{
		ProductID:      "serum",
		ProductName:    "Serum",
		VariantName:    "50ml",
		InventoryStock: 10,
		ProductsStock:  4,
		Difference:     -6,
	}, diffs[0])
	assert.Equal(t, "toner", diffs[1].ProductID)
	assert.Equal(t, 3, diffs[1].Difference)
}

func TestDiffIgnoresUnpairedVariantIndexes(t *testing.T) {
	products := map[string]models.StoreProduct{
		"serum": {Variants: []models.StoreVariant{{StockQty: 1}, {StockQty: 2}}},
	}
	inventory := map[string]models.InventoryProduct{
		"serum": {Variants: []models.InventoryVariant{{StockQty: 1}}},
	}

	assert.Empty(t, Diff(products, inventory))
}

func TestDiffEmptyInputs(t *testing.T) {
	assert.Empty(t, Diff(nil, nil))
	assert.Empty(t, Diff(map[string]models.StoreProduct{"a": {}}, nil))
}
