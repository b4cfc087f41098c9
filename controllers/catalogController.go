package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"glowstore/backend/config"
	"glowstore/backend/logger"
)

// The remaining admin pages (banners, brands, categories, reviews, legal
// documents) are plain document lists with no derived state, so they
// share one set of handlers parameterized by collection.

func listCollection(c *gin.Context, collection string) {
	snap, err := store.Get(c.Request.Context(), collection)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read " + collection})
		return
	}

	docs := make([]bson.M, 0, len(snap))
	for id, raw := range snap {
		var doc bson.M
		if err := bson.Unmarshal(raw, &doc); err != nil {
			logger.L().Warnf("skipping malformed %s document %s: %v", collection, id, err)
			continue
		}
		doc["id"] = id
		delete(doc, "_id")
		docs = append(docs, doc)
	}
	c.JSON(http.StatusOK, docs)
}

func createInCollection(c *gin.Context, collection string) {
	var doc map[string]interface{}
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(doc) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Empty document"})
		return
	}

	id := uuid.NewString()
	if err := store.Write(c.Request.Context(), collection, id, doc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create " + collection + " document"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func deleteFromCollection(c *gin.Context, collection string) {
	if err := store.Remove(c.Request.Context(), collection, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete from " + collection})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

func GetBanners(c *gin.Context) { listCollection(c, config.ColBanners) }
func CreateBanner(c *gin.Context) { createInCollection(c, config.ColBanners) }
func DeleteBanner(c *gin.Context) { deleteFromCollection(c, config.ColBanners) }
func GetBrands(c *gin.Context) { listCollection(c, config.ColBrands) }
func CreateBrand(c *gin.Context) { createInCollection(c, config.ColBrands) }
func DeleteBrand(c *gin.Context) { deleteFromCollection(c, config.ColBrands) }
func GetCategories(c *gin.Context) { listCollection(c, config.ColCategories) }
func CreateCategory(c *gin.Context) { createInCollection(c, config.ColCategories) }
func DeleteCategory(c *gin.Context) { deleteFromCollection(c, config.ColCategories) }
func GetReviews(c *gin.Context) { listCollection(c, config.ColReviews) }
func DeleteReview(c *gin.Context) { deleteFromCollection(c, config.ColReviews) }
func GetDocuments(c *gin.Context) { listCollection(c, config.ColDocuments) }
func CreateDocument(c *gin.Context) { createInCollection(c, config.ColDocuments) }
func DeleteDocument(c *gin.Context) { deleteFromCollection(c, config.ColDocuments) }
