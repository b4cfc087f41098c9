package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"glowstore/backend/config"
	"glowstore/backend/models"
	"glowstore/backend/realtime"
	"glowstore/backend/reconcile"
	"glowstore/backend/utils"
)

// GetProducts returns the merged product view, newest first.
func GetProducts(c *gin.Context) {
	state := watcher.State()
	if state.Loading {
		c.JSON(http.StatusServiceUnavailable, gin.H{"loading": true})
		return
	}
	c.JSON(http.StatusOK, state.Products)
}

// GetProduct returns one merged product by id.
func GetProduct(c *gin.Context) {
	id := c.Param("id")
	for _, p := range watcher.State().Products {
		if p.ID == id {
			c.JSON(http.StatusOK, p)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
}

// CreateProduct writes a new document to the products branch. Photos are
// attached afterwards through UploadProductPhoto.
func CreateProduct(c *gin.Context) {
	var in models.StoreProduct
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if in.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}
	if in.Variants == nil {
		in.Variants = []models.StoreVariant{}
	}
	now := time.Now()
	in.CreatedAt = now
	in.UpdatedAt = now

	id := uuid.NewString()
	if err := store.Write(c.Request.Context(), config.ColProducts, id, in); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// DeleteProduct removes a product from the products branch. The legacy
// inventory document is left in place for the audit report.
func DeleteProduct(c *gin.Context) {
	if err := store.Remove(c.Request.Context(), config.ColProducts, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

type updateStockRequest struct {
	StockQty   int  `json:"stockQty"`
	SyncLegacy bool `json:"syncLegacy"`
}

// UpdateStock writes a variant's stock to the products branch. The legacy
// inventory branch is only written when the client asks for it
// explicitly; the usual way to see drift is the differences report.
func UpdateStock(c *gin.Context) {
	id := c.Param("id")
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid variant index"})
		return
	}
	var req updateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	err = reconcile.PropagateStockUpdate(ctx, store, id, idx, req.StockQty, time.Now())
	if errors.Is(err, realtime.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.SyncLegacy {
		if err := reconcile.SyncLegacyInventoryStock(ctx, store, id, idx, req.StockQty); err != nil && !errors.Is(err, realtime.ErrNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Stock updated, but legacy sync failed"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Stock updated"})
}

// GetStockDifferences compares the two branches and reports variants
// whose stock disagrees. Read-only: nothing is reconciled automatically.
func GetStockDifferences(c *gin.Context) {
	ctx := c.Request.Context()
	prodSnap, err := store.Get(ctx, config.ColProducts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read products"})
		return
	}
	invSnap, err := store.Get(ctx, config.ColInventory)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read inventory"})
		return
	}

	diffs := reconcile.Diff(reconcile.DecodeProducts(prodSnap), reconcile.DecodeInventory(invSnap))
	c.JSON(http.StatusOK, gin.H{"count": len(diffs), "differences": diffs})
}

// UploadProductPhoto uploads a photo for an existing product and stores
// the CDN URL on the products branch.
func UploadProductPhoto(c *gin.Context) {
	id := c.Param("id")
	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Photo file is required"})
		return
	}

	ctx := c.Request.Context()
	mainURL, previewURL, err := utils.SaveProductPhotoToS3(ctx, file, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	err = store.Update(ctx, config.ColProducts, id, map[string]interface{}{
		"image":     mainURL,
		"updatedAt": time.Now(),
	})
	if errors.Is(err, realtime.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save photo URL"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"image": mainURL, "preview": previewURL})
}
