package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetDashboard returns the full dashboard state. While the source
// collections are still delivering their first snapshots the endpoint
// answers 503 so the client can show a loading screen; a stream error is
// reported alongside the last good data, not instead of it.
func GetDashboard(c *gin.Context) {
	state := watcher.State()
	if state.Loading {
		c.JSON(http.StatusServiceUnavailable, gin.H{"loading": true})
		return
	}

	resp := gin.H{
		"stats":        state.RevenueStats,
		"products":     state.Products,
		"lowStock":     state.LowStock,
		"dailyChart":   state.DailyChart,
		"monthlyChart": state.MonthlyChart,
		"yearlyChart":  state.YearlyChart,
		"updatedAt":    state.UpdatedAt,
	}
	if state.Err != nil {
		resp["error"] = state.Err.Error()
	}
	c.JSON(http.StatusOK, resp)
}

// GetLowStock returns only the stock report.
func GetLowStock(c *gin.Context) {
	state := watcher.State()
	if state.Loading {
		c.JSON(http.StatusServiceUnavailable, gin.H{"loading": true})
		return
	}
	c.JSON(http.StatusOK, state.LowStock)
}
