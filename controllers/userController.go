package controllers

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"glowstore/backend/config"
	"glowstore/backend/logger"
	"glowstore/backend/models"
	"glowstore/backend/realtime"
	"glowstore/backend/utils"
)

// GetUsers lists accounts, newest first. Hashes stay out of the response.
func GetUsers(c *gin.Context) {
	snap, err := store.Get(c.Request.Context(), config.ColUsers)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read users"})
		return
	}

	users := make([]models.User, 0, len(snap))
	for id, raw := range snap {
		var user models.User
		if err := bson.Unmarshal(raw, &user); err != nil {
			logger.L().Warnf("skipping malformed user %s: %v", id, err)
			continue
		}
		user.ID = id
		users = append(users, user)
	}
	sort.SliceStable(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	c.JSON(http.StatusOK, users)
}

// CreateUser adds an account with a bcrypt password hash.
func CreateUser(c *gin.Context) {
	var in models.CreateUser
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	role := in.Role
	if role == "" {
		role = "customer"
	}
	user := models.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		DisplayName:  in.DisplayName,
		Phone:        in.Phone,
		Address:      in.Address,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := store.Write(c.Request.Context(), config.ColUsers, user.ID, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": user.ID})
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// ChangeUserPassword rehashes a password after verifying the old one.
func ChangeUserPassword(c *gin.Context) {
	id := c.Param("id")
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	raw, err := store.GetOne(ctx, config.ColUsers, id)
	if errors.Is(err, realtime.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read user"})
		return
	}
	var user models.User
	if err := bson.Unmarshal(raw, &user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "User document is malformed"})
		return
	}
	if err := utils.VerifyPassword(user.PasswordHash, req.OldPassword); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Old password does not match"})
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	if err := store.Update(ctx, config.ColUsers, id, map[string]interface{}{"passwordHash": hash}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// DeleteUser removes an account.
func DeleteUser(c *gin.Context) {
	if err := store.Remove(c.Request.Context(), config.ColUsers, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
