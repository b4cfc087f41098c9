package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"glowstore/backend/models"
	"glowstore/backend/realtime"
)

var mergeNow = time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)

func storeProduct(name string, created time.Time, variants ...models.StoreVariant) models.StoreProduct {
	return models.StoreProduct{
		Name:      name,
		Category:  "skincare",
		Variants:  variants,
		CreatedAt: created,
	}
}

func TestMergeStockAndCostPrecedence(t *testing.T) {
	products := map[string]models.StoreProduct{
		"serum": storeProduct("Serum", mergeNow,
			models.StoreVariant{Price: 250000, Size: "30ml", StockQty: 8},
		),
	}
	inventory := map[string]models.InventoryProduct{
		"serum": {
			Name:     "Serum (legacy)",
			Supplier: "ACME Cosmetics",
			Variants: []models.InventoryVariant{
				{ID: "v-serum-30", Name: "30ml", ImportPrice: 150000, StockQty: 99},
			},
		},
	}

	merged := Merge(products, inventory, mergeNow)
	require.Len(t, merged, 1)
	p := merged[0]

	assert.Equal(t, "Serum", p.Name, "products branch wins on name")
	assert.Equal(t, "ACME Cosmetics", p.Supplier)

	require.Len(t, p.Variants, 1)
	v := p.Variants[0]
	assert.Equal(t, "v-serum-30", v.ID)
	assert.Equal(t, 8, v.StockQty, "stock comes from the products branch, never inventory")
	assert.Equal(t, int64(250000), v.Price)
	assert.Equal(t, int64(150000), v.ImportPrice, "cost comes from the inventory branch")
}

func TestMergeFallbacksWithoutInventory(t *testing.T) {
	products := map[string]models.StoreProduct{
		"mask": storeProduct("Clay Mask", mergeNow,
			models.StoreVariant{Price: 100001, Size: "100g", StockQty: 3},
		),
	}

	merged := Merge(products, map[string]models.InventoryProduct{}, mergeNow)
	require.Len(t, merged, 1)
	p := merged[0]

	assert.Equal(t, DefaultSupplier, p.Supplier)
	require.Len(t, p.Variants, 1)
	v := p.Variants[0]
	assert.Equal(t, "mask-0", v.ID, "synthetic id from product id and index")
	assert.Equal(t, int64(70001), v.ImportPrice, "estimated as 70% of price, rounded")
	assert.Equal(t, mergeNow, v.CreatedAt)
}

func TestMergeVariantIndexOnlyInProducts(t *testing.T) {
	products := map[string]models.StoreProduct{
		"toner": storeProduct("Toner", mergeNow,
			models.StoreVariant{Price: 90000, Size: "150ml", StockQty: 5},
			models.StoreVariant{Price: 160000, Size: "500ml", StockQty: 2},
		),
	}
	inventory := map[string]models.InventoryProduct{
		"toner": {
			Supplier: "ACME Cosmetics",
			Variants: []models.InventoryVariant{
				{ID: "v-toner-150", ImportPrice: 60000},
			},
		},
	}

	merged := Merge(products, inventory, mergeNow)
	require.Len(t, merged, 1)
	require.Len(t, merged[0].Variants, 2)

	assert.Equal(t, int64(60000), merged[0].Variants[0].ImportPrice)
	assert.Equal(t, int64(112000), merged[0].Variants[1].ImportPrice, "second index is absent from inventory, so cost is estimated")
	assert.Equal(t, "toner-1", merged[0].Variants[1].ID)
}

func TestMergeZeroInventoryCostIsReEstimated(t *testing.T) {
	products := map[string]models.StoreProduct{
		"serum": storeProduct("Serum", mergeNow,
			models.StoreVariant{Price: 100000, Size: "30ml", StockQty: 5},
		),
	}
	inventory := map[string]models.InventoryProduct{
		"serum": {
			Variants: []models.InventoryVariant{{ID: "v-serum-30", ImportPrice: 0}},
		},
	}

	merged := Merge(products, inventory, mergeNow)
	require.Len(t, merged, 1)
	require.Len(t, merged[0].Variants, 1)
	assert.Equal(t, int64(70000), merged[0].Variants[0].ImportPrice,
		"a zero stored cost reads the same as a missing field, so it is estimated")
}

func TestMergeDropsProductsWithoutVariants(t *testing.T) {
	products := map[string]models.StoreProduct{
		"ok":     storeProduct("Fine", mergeNow, models.StoreVariant{Price: 1000, StockQty: 1}),
		"broken": {Name: "No Variants", CreatedAt: mergeNow},
	}

	merged := Merge(products, nil, mergeNow)
	require.Len(t, merged, 1)
	assert.Equal(t, "ok", merged[0].ID)
}

func TestMergeSnapshotsSkipsMalformedDocuments(t *testing.T) {
	goodDoc, err := bson.Marshal(storeProduct("Good", mergeNow, models.StoreVariant{Price: 1000, StockQty: 1}))
	require.NoError(t, err)
	badDoc, err := bson.Marshal(bson.M{"variants": "not-a-list"})
	require.NoError(t, err)

	snap := realtime.Snapshot{"good": goodDoc, "bad": badDoc}
	merged := MergeSnapshots(snap, realtime.Snapshot{}, mergeNow)

	require.Len(t, merged, 1)
	assert.Equal(t, "good", merged[0].ID)
}

func TestMergeMediaDerivation(t *testing.T) {
	products := map[string]models.StoreProduct{
		"with-image": {
			Name:      "A",
			Image:     "https://cdn.example.com/a.jpg",
			Variants:  []models.StoreVariant{{Price: 1}},
			CreatedAt: mergeNow,
		},
		"from-inventory": {
			Name:      "B",
			Variants:  []models.StoreVariant{{Price: 1}},
			CreatedAt: mergeNow.Add(-time.Hour),
		},
		"no-media": {
			Name:      "C",
			Variants:  []models.StoreVariant{{Price: 1}},
			CreatedAt: mergeNow.Add(-2 * time.Hour),
		},
	}
	inventory := map[string]models.InventoryProduct{
		"from-inventory": {
			Media: []models.MediaRef{{URL: "https://cdn.example.com/b.mp4", Type: "video"}},
		},
	}

	merged := Merge(products, inventory, mergeNow)
	require.Len(t, merged, 3)

	byID := map[string]models.Product{}
	for _, p := range merged {
		byID[p.ID] = p
	}
	assert.Equal(t, []models.MediaRef{{URL: "https://cdn.example.com/a.jpg", Type: "image"}}, byID["with-image"].Media)
	assert.Equal(t, []models.MediaRef{{URL: "https://cdn.example.com/b.mp4", Type: "video"}}, byID["from-inventory"].Media)
	assert.NotNil(t, byID["no-media"].Media)
	assert.Empty(t, byID["no-media"].Media)
}

func TestMergeSortsNewestFirst(t *testing.T) {
	products := map[string]models.StoreProduct{
		"old":    storeProduct("Old", mergeNow.Add(-48*time.Hour), models.StoreVariant{Price: 1}),
		"new":    storeProduct("New", mergeNow, models.StoreVariant{Price: 1}),
		"middle": storeProduct("Middle", mergeNow.Add(-24*time.Hour), models.StoreVariant{Price: 1}),
	}

	merged := Merge(products, nil, mergeNow)
	require.Len(t, merged, 3)
	assert.Equal(t, "new", merged[0].ID)
	assert.Equal(t, "middle", merged[1].ID)
	assert.Equal(t, "old", merged[2].ID)
}

func TestEstimateImportPriceRounds(t *testing.T) {
	assert.Equal(t, int64(70), EstimateImportPrice(100))
	assert.Equal(t, int64(71), EstimateImportPrice(101)) // 70.7 rounds up
	assert.Equal(t, int64(0), EstimateImportPrice(0))
}
