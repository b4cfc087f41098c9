// Package revenue derives reporting state from the append-only revenue
// collection. Everything here is recomputed wholesale from the latest
// snapshot; nothing is patched incrementally.
package revenue

import (
	"sort"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"

	"glowstore/backend/logger"
	"glowstore/backend/models"
	"glowstore/backend/realtime"
)

// Time layouts for the derived date keys on revenue items.
const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
	YearLayout  = "2006"
)

// Ingest flattens a raw revenue snapshot into items sorted newest-first and
// a stats value computed in one pass. A nil or empty snapshot yields empty
// items and zeroed stats, never an error. Malformed documents are skipped
// with a warning so one bad record cannot break the snapshot handler.
func Ingest(snap realtime.Snapshot) ([]models.RevenueItem, models.RevenueStats) {
	items := flatten(snap)
	return items, computeStats(items)
}

func flatten(snap realtime.Snapshot) []models.RevenueItem {
	// Iterate keys in ascending order so equal timestamps sort stably by
	// store key.
	ids := make([]string, 0, len(snap))
	for id := range snap {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	items := make([]models.RevenueItem, 0, len(ids))
	for _, id := range ids {
		var item models.RevenueItem
		if err := bson.Unmarshal(snap[id], &item); err != nil {
			logger.L().Warnf("revenue: skipping malformed item %s: %v", id, err)
			continue
		}
		if item.OrderID == "" || item.ProductID == "" || item.Quantity <= 0 {
			logger.L().Warnf("revenue: skipping item %s with missing required fields", id)
			continue
		}
		item.ID = id
		if item.TotalPrice == 0 {
			item.TotalPrice = item.UnitPrice * int64(item.Quantity)
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CompletedAt.After(items[j].CompletedAt)
	})
	return items
}

func computeStats(items []models.RevenueItem) models.RevenueStats {
	stats := models.RevenueStats{
		MonthlyRevenue:  map[string]int64{},
		YearlyRevenue:   map[string]int64{},
		ProductRevenue:  map[string]models.ProductRevenue{},
		CategoryRevenue: map[string]int64{},
	}

	orders := map[string]struct{}{}
	for _, item := range items {
		orders[item.OrderID] = struct{}{}
		stats.TotalRevenue += item.TotalPrice
		stats.TotalProducts += item.Quantity

		stats.MonthlyRevenue[monthKey(item)] += item.TotalPrice
		stats.YearlyRevenue[yearKey(item)] += item.TotalPrice
		stats.CategoryRevenue[item.ProductCategory] += item.TotalPrice

		product := stats.ProductRevenue[item.ProductID]
		if product.Name == "" {
			// First-seen name wins; later items do not overwrite it.
			product.Name = item.ProductName
		}
		product.Revenue += item.TotalPrice
		product.Quantity += item.Quantity
		stats.ProductRevenue[item.ProductID] = product
	}

	stats.TotalOrders = len(orders)
	if stats.TotalOrders > 0 {
		stats.AverageOrderValue = decimal.NewFromInt(stats.TotalRevenue).
			Div(decimal.NewFromInt(int64(stats.TotalOrders))).
			Round(0).IntPart()
	}
	return stats
}

// Derived keys prefer the stored date fields and fall back to formatting
// completedAt when they are absent.
func monthKey(item models.RevenueItem) string {
	if item.Month != "" {
		return item.Month
	}
	return item.CompletedAt.Format(MonthLayout)
}

func yearKey(item models.RevenueItem) string {
	if item.Year != "" {
		return item.Year
	}
	return item.CompletedAt.Format(YearLayout)
}

func dateKey(item models.RevenueItem) string {
	if item.Date != "" {
		return item.Date
	}
	return item.CompletedAt.Format(DateLayout)
}
