package revenue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"glowstore/backend/models"
	"glowstore/backend/realtime"
)

func snapshotOf(t *testing.T, items map[string]interface{}) realtime.Snapshot {
	t.Helper()
	snap := realtime.Snapshot{}
	for id, item := range items {
		raw, err := bson.Marshal(item)
		require.NoError(t, err)
		snap[id] = raw
	}
	return snap
}

func item(orderID, productID, category string, qty int, unitPrice int64, completedAt time.Time) models.RevenueItem {
	return models.RevenueItem{
		OrderID:         orderID,
		ProductID:       productID,
		ProductName:     "Product " + productID,
		ProductCategory: category,
		Quantity:        qty,
		UnitPrice:       unitPrice,
		TotalPrice:      unitPrice * int64(qty),
		CompletedAt:     completedAt,
		Date:            completedAt.Format(DateLayout),
		Month:           completedAt.Format(MonthLayout),
		Year:            completedAt.Format(YearLayout),
	}
}

func TestIngestEmptySnapshot(t *testing.T) {
	items, stats := Ingest(nil)
	assert.Empty(t, items)
	assert.Zero(t, stats.TotalRevenue)
	assert.Zero(t, stats.TotalOrders)
	assert.Zero(t, stats.TotalProducts)
	assert.Zero(t, stats.AverageOrderValue)
	assert.Empty(t, stats.MonthlyRevenue)
	assert.Empty(t, stats.YearlyRevenue)
	assert.Empty(t, stats.ProductRevenue)
	assert.Empty(t, stats.CategoryRevenue)
}

func TestIngestExampleScenario(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	snap := snapshotOf(t, map[string]interface{}{
		"r1": item("O1", "P1", "skincare", 2, 50000, at),
		"r2": item("O1", "P2", "makeup", 1, 30000, at),
	})

	items, stats := Ingest(snap)
	require.Len(t, items, 2)
	assert.Equal(t, int64(130000), stats.TotalRevenue)
	assert.Equal(t, 1, stats.TotalOrders)
	assert.Equal(t, 3, stats.TotalProducts)
	assert.Equal(t, int64(130000), stats.AverageOrderValue)
	assert.Equal(t, int64(100000), stats.CategoryRevenue["skincare"])
	assert.Equal(t, int64(30000), stats.CategoryRevenue["makeup"])
}

func TestIngestTotalsReconcile(t *testing.T) {
	base := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	snap := snapshotOf(t, map[string]interface{}{
		"a": item("O1", "P1", "skincare", 2, 120000, base),
		"b": item("O1", "P2", "makeup", 1, 85000, base),
		"c": item("O2", "P1", "skincare", 3, 120000, base.AddDate(0, 1, 0)),
		"d": item("O3", "P3", "haircare", 5, 40000, base.AddDate(0, -2, 3)),
	})

	_, stats := Ingest(snap)

	var byCategory, byProduct int64
	for _, v := range stats.CategoryRevenue {
		byCategory += v
	}
	for _, v := range stats.ProductRevenue {
		byProduct += v.Revenue
	}
	assert.Equal(t, stats.TotalRevenue, byCategory)
	assert.Equal(t, stats.TotalRevenue, byProduct)
	assert.Equal(t, int64(2*120000+85000+3*120000+5*40000), stats.TotalRevenue)
}

func TestIngestDistinctOrderCounting(t *testing.T) {
	at := time.Now()
	snap := snapshotOf(t, map[string]interface{}{
		"1": item("A", "P1", "skincare", 1, 1000, at),
		"2": item("A", "P2", "skincare", 1, 1000, at),
		"3": item("A", "P3", "skincare", 1, 1000, at),
		"4": item("B", "P1", "skincare", 1, 1000, at),
		"5": item("B", "P4", "skincare", 1, 1000, at),
	})

	_, stats := Ingest(snap)
	assert.Equal(t, 2, stats.TotalOrders, "distinct orders, not line items")
}

func TestIngestSortsNewestFirstWithStableKeyTies(t *testing.T) {
	old := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	snap := snapshotOf(t, map[string]interface{}{
		"k3": item("O3", "P1", "skincare", 1, 100, old),
		"k1": item("O1", "P1", "skincare", 1, 100, newer),
		"k2": item("O2", "P1", "skincare", 1, 100, newer),
	})

	items, _ := Ingest(snap)
	require.Len(t, items, 3)
	assert.Equal(t, "k1", items[0].ID)
	assert.Equal(t, "k2", items[1].ID)
	assert.Equal(t, "k3", items[2].ID)
}

func TestIngestSkipsMalformedItems(t *testing.T) {
	at := time.Now()
	snap := snapshotOf(t, map[string]interface{}{
		"ok":         item("O1", "P1", "skincare", 1, 5000, at),
		"no-order":   models.RevenueItem{ProductID: "P2", Quantity: 1},
		"no-product": models.RevenueItem{OrderID: "O2", Quantity: 1},
		"zero-qty":   models.RevenueItem{OrderID: "O3", ProductID: "P3"},
		"junk":       bson.M{"quantity": "not-a-number"},
	})

	items, stats := Ingest(snap)
	require.Len(t, items, 1)
	assert.Equal(t, "ok", items[0].ID)
	assert.Equal(t, int64(5000), stats.TotalRevenue)
}

func TestIngestFirstSeenProductNameWins(t *testing.T) {
	first := item("O1", "P1", "skincare", 1, 1000, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	second := item("O2", "P1", "skincare", 2, 1000, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	second.ProductName = "Renamed Product"

	snap := snapshotOf(t, map[string]interface{}{"a": first, "b": second})
	_, stats := Ingest(snap)

	product := stats.ProductRevenue["P1"]
	assert.Equal(t, "Product P1", product.Name)
	assert.Equal(t, int64(3000), product.Revenue)
	assert.Equal(t, 3, product.Quantity)
}
