package revenue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glowstore/backend/models"
)

func TestMonthlyChartDataIsTotal(t *testing.T) {
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)

	points := MonthlyChartData(nil, now)
	require.Len(t, points, 12)
	assert.Equal(t, "2023-08", points[0].Period)
	assert.Equal(t, "2024-07", points[11].Period)
	for _, p := range points {
		assert.Zero(t, p.Revenue)
		assert.Zero(t, p.Orders)
		assert.Zero(t, p.Products)
	}
}

func TestMonthlyChartDataBucketsInOrder(t *testing.T) {
	now := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	items := []models.RevenueItem{
		item("O1", "P1", "skincare", 2, 50000, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)),
		item("O2", "P1", "skincare", 1, 50000, time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)),
		// Outside the 12-month window, must be ignored.
		item("O0", "P1", "skincare", 9, 50000, time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)),
	}

	points := MonthlyChartData(items, now)
	require.Len(t, points, 12)

	byPeriod := map[string]models.ChartPoint{}
	for _, p := range points {
		byPeriod[p.Period] = p
	}
	assert.Equal(t, int64(100000), byPeriod["2024-07"].Revenue)
	assert.Equal(t, int64(50000), byPeriod["2024-05"].Revenue)

	var total int64
	for _, p := range points {
		total += p.Revenue
	}
	assert.Equal(t, int64(150000), total)
}

func TestDailyChartDataWindow(t *testing.T) {
	now := time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC)

	points := DailyChartData(nil, now)
	require.Len(t, points, 30)
	assert.Equal(t, "2024-03-02", points[0].Period)
	assert.Equal(t, "2024-03-31", points[29].Period)
}

func TestYearlyChartDataWindow(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	points := YearlyChartData(nil, now)
	require.Len(t, points, 5)
	assert.Equal(t, "2020", points[0].Period)
	assert.Equal(t, "2024", points[4].Period)
}

func TestChartOrdersAreDistinctPerBucket(t *testing.T) {
	now := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	july := time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC)
	june := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
	items := []models.RevenueItem{
		item("A", "P1", "skincare", 1, 1000, july),
		item("A", "P2", "skincare", 1, 1000, july),
		item("B", "P1", "skincare", 1, 1000, july),
		// The same order id appearing in another bucket counts there too:
		// distinct counting is scoped per bucket.
		item("A", "P3", "skincare", 1, 1000, june),
	}

	points := MonthlyChartData(items, now)
	byPeriod := map[string]models.ChartPoint{}
	for _, p := range points {
		byPeriod[p.Period] = p
	}
	assert.Equal(t, 2, byPeriod["2024-07"].Orders)
	assert.Equal(t, 1, byPeriod["2024-06"].Orders)
}
