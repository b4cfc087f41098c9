package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"glowstore/backend/logger"
	"glowstore/backend/models"
	"glowstore/backend/revenue"
)

const chartCacheTTL = 5 * time.Minute

var chartCacheKeys = []string{"charts:daily", "charts:monthly", "charts:yearly"}

// GetRevenueStats returns the aggregate revenue figures.
func GetRevenueStats(c *gin.Context) {
	state := watcher.State()
	if state.Loading {
		c.JSON(http.StatusServiceUnavailable, gin.H{"loading": true})
		return
	}
	c.JSON(http.StatusOK, state.RevenueStats)
}

// GetRevenueItems returns the flattened revenue items, newest first.
func GetRevenueItems(c *gin.Context) {
	state := watcher.State()
	if state.Loading {
		c.JSON(http.StatusServiceUnavailable, gin.H{"loading": true})
		return
	}
	c.JSON(http.StatusOK, state.RevenueItems)
}

func GetDailyChart(c *gin.Context) {
	serveChart(c, "charts:daily", func() []models.ChartPoint {
		return watcher.State().DailyChart
	})
}

func GetMonthlyChart(c *gin.Context) {
	serveChart(c, "charts:monthly", func() []models.ChartPoint {
		return watcher.State().MonthlyChart
	})
}

func GetYearlyChart(c *gin.Context) {
	serveChart(c, "charts:yearly", func() []models.ChartPoint {
		return watcher.State().YearlyChart
	})
}

func serveChart(c *gin.Context, cacheKey string, load func() []models.ChartPoint) {
	if watcher.State().Loading {
		c.JSON(http.StatusServiceUnavailable, gin.H{"loading": true})
		return
	}

	if cached, ok, err := chartCache.Get(c.Request.Context(), cacheKey); err == nil && ok {
		c.Data(http.StatusOK, "application/json", cached)
		return
	} else if err != nil {
		logger.L().Warnf("chart cache read failed: %v", err)
	}

	points := load()
	payload, err := json.Marshal(points)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode chart"})
		return
	}
	if err := chartCache.Set(c.Request.Context(), cacheKey, payload, chartCacheTTL); err != nil {
		logger.L().Warnf("chart cache write failed: %v", err)
	}
	c.Data(http.StatusOK, "application/json", payload)
}

// RunRevenueMigration backfills revenue items from historical delivered
// orders. Success and error counts are independent: a bad order is
// counted and skipped, the rest of the batch continues.
func RunRevenueMigration(c *gin.Context) {
	result, err := revenue.MigrateDeliveredOrders(c.Request.Context(), store, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := chartCache.Invalidate(c.Request.Context(), chartCacheKeys...); err != nil {
		logger.L().Warnf("chart cache invalidation failed: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{
		"success": result.Success,
		"skipped": result.Skipped,
		"errors":  result.Errors,
	})
}
