package revenue

import (
	"strconv"
	"time"

	"glowstore/backend/models"
)

// Chart window sizes.
const (
	DailyWindow   = 30
	MonthlyWindow = 12
	YearlyWindow  = 5
)

// DailyChartData returns exactly 30 day buckets ending today, oldest
// first. Buckets with no revenue are present and zero-filled.
func DailyChartData(items []models.RevenueItem, now time.Time) []models.ChartPoint {
	labels := make([]string, 0, DailyWindow)
	for i := DailyWindow - 1; i >= 0; i-- {
		labels = append(labels, now.AddDate(0, 0, -i).Format(DateLayout))
	}
	return buildWindow(items, labels, dateKey)
}

// MonthlyChartData returns exactly 12 month buckets ending with the
// current month, oldest first.
func MonthlyChartData(items []models.RevenueItem, now time.Time) []models.ChartPoint {
	base := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	labels := make([]string, 0, MonthlyWindow)
	for i := MonthlyWindow - 1; i >= 0; i-- {
		labels = append(labels, base.AddDate(0, -i, 0).Format(MonthLayout))
	}
	return buildWindow(items, labels, monthKey)
}

// YearlyChartData returns exactly 5 year buckets ending with the current
// year, oldest first.
func YearlyChartData(items []models.RevenueItem, now time.Time) []models.ChartPoint {
	labels := make([]string, 0, YearlyWindow)
	for i := YearlyWindow - 1; i >= 0; i-- {
		labels = append(labels, strconv.Itoa(now.Year()-i))
	}
	return buildWindow(items, labels, yearKey)
}

type bucketAcc struct {
	revenue  int64
	products int
	orders   map[string]struct{}
}

// buildWindow reindexes items onto a fixed label sequence. This is a
// windowing step, not a filter: every label appears exactly once, in
// order, regardless of how sparse the items are. Order counts are distinct
// order ids scoped to each bucket.
func buildWindow(items []models.RevenueItem, labels []string, key func(models.RevenueItem) string) []models.ChartPoint {
	acc := map[string]*bucketAcc{}
	for _, label := range labels {
		acc[label] = &bucketAcc{orders: map[string]struct{}{}}
	}
	for _, item := range items {
		bucket, ok := acc[key(item)]
		if !ok {
			continue // outside the window
		}
		bucket.revenue += item.TotalPrice
		bucket.products += item.Quantity
		bucket.orders[item.OrderID] = struct{}{}
	}

	points := make([]models.ChartPoint, 0, len(labels))
	for _, label := range labels {
		bucket := acc[label]
		points = append(points, models.ChartPoint{
			Period:   label,
			Revenue:  bucket.revenue,
			Orders:   len(bucket.orders),
			Products: bucket.products,
		})
	}
	return points
}
