package controllers

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"glowstore/backend/config"
	"glowstore/backend/logger"
	"glowstore/backend/models"
)

type registerTokenRequest struct {
	Token  string `json:"token" binding:"required"`
	UserID string `json:"userId"`
}

// RegisterDeviceToken stores an FCM device token. Tokens are keyed by
// their value, so re-registering the same token is a no-op overwrite.
func RegisterDeviceToken(c *gin.Context) {
	var req registerTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dt := models.DeviceToken{
		Token:     req.Token,
		UserID:    req.UserID,
		CreatedAt: time.Now(),
	}
	if err := store.Write(c.Request.Context(), config.ColDeviceTokens, req.Token, dt); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register token"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Token registered"})
}

type broadcastRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

// BroadcastNotification pushes a message to every registered device and
// records the delivery counts. Batches that fail are counted, not
// retried; the response always carries both numbers.
func BroadcastNotification(c *gin.Context) {
	if pusher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Push delivery is not configured"})
		return
	}
	var req broadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	snap, err := store.Get(ctx, config.ColDeviceTokens)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read device tokens"})
		return
	}
	tokens := make([]string, 0, len(snap))
	for id, raw := range snap {
		var dt models.DeviceToken
		if err := bson.Unmarshal(raw, &dt); err != nil {
			logger.L().Warnf("skipping malformed device token %s: %v", id, err)
			continue
		}
		if dt.Token != "" {
			tokens = append(tokens, dt.Token)
		}
	}

	result, sendErr := pusher.Send(ctx, tokens, req.Title, req.Body)
	if sendErr != nil {
		logger.L().Errorf("broadcast partially failed: %v", sendErr)
	}

	record := models.Notification{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Body:      req.Body,
		Kind:      "broadcast",
		Success:   result.Success,
		Failure:   result.Failure,
		CreatedAt: time.Now(),
	}
	if err := store.Write(ctx, config.ColNotifications, record.ID, record); err != nil {
		logger.L().Errorf("failed to record broadcast: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"success": result.Success, "failure": result.Failure})
}

// GetNotifications lists past broadcasts, newest first.
func GetNotifications(c *gin.Context) {
	snap, err := store.Get(c.Request.Context(), config.ColNotifications)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read notifications"})
		return
	}

	list := make([]models.Notification, 0, len(snap))
	for id, raw := range snap {
		var n models.Notification
		if err := bson.Unmarshal(raw, &n); err != nil {
			logger.L().Warnf("skipping malformed notification %s: %v", id, err)
			continue
		}
		n.ID = id
		list = append(list, n)
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	c.JSON(http.StatusOK, list)
}
