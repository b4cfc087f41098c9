package controllers

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"glowstore/backend/config"
	"glowstore/backend/logger"
	"glowstore/backend/models"
	"glowstore/backend/realtime"
	"glowstore/backend/revenue"
)

var validOrderStatuses = map[string]bool{
	models.OrderStatusPending:   true,
	models.OrderStatusConfirmed: true,
	models.OrderStatusShipping:  true,
	models.OrderStatusDelivered: true,
	models.OrderStatusCompleted: true,
	models.OrderStatusCancelled: true,
}

// GetOrders lists all orders, newest first. Malformed documents are
// skipped with a warning.
func GetOrders(c *gin.Context) {
	snap, err := store.Get(c.Request.Context(), config.ColOrders)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read orders"})
		return
	}

	orders := make([]models.Order, 0, len(snap))
	for id, raw := range snap {
		var order models.Order
		if err := bson.Unmarshal(raw, &order); err != nil {
			logger.L().Warnf("skipping malformed order %s: %v", id, err)
			continue
		}
		order.ID = id
		orders = append(orders, order)
	}
	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].ID < orders[j].ID
		}
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	c.JSON(http.StatusOK, orders)
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus moves an order to a new status. The first transition
// into a revenue status records one revenue item per order line; a repeat
// transition is rejected so revenue is not double counted.
func UpdateOrderStatus(c *gin.Context) {
	id := c.Param("id")
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validOrderStatuses[req.Status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown order status"})
		return
	}

	ctx := c.Request.Context()
	raw, err := store.GetOne(ctx, config.ColOrders, id)
	if errors.Is(err, realtime.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read order"})
		return
	}
	var order models.Order
	if err := bson.Unmarshal(raw, &order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Order document is malformed"})
		return
	}
	order.ID = id

	if models.IsRevenueStatus(order.Status) && models.IsRevenueStatus(req.Status) {
		c.JSON(http.StatusConflict, gin.H{"error": "Order revenue already recorded"})
		return
	}

	now := time.Now()
	if err := store.Update(ctx, config.ColOrders, id, map[string]interface{}{
		"status":    req.Status,
		"updatedAt": now,
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	if !models.IsRevenueStatus(order.Status) && models.IsRevenueStatus(req.Status) {
		if err := revenue.RecordCompletedOrder(ctx, store, order, order.UserInfo, now); err != nil {
			logger.L().Errorf("revenue recording for order %s incomplete: %v", id, err)
			c.JSON(http.StatusOK, gin.H{
				"message": "Status updated, but some revenue items failed to record",
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}
