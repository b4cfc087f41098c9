// Package reconcile merges the two denormalized product branches into one
// canonical view. The "products" branch is authoritative for stock and
// selling price; the legacy "inventory" branch is a cost/metadata sidecar
// slated for removal. Merging is a pure function over two snapshots: it
// performs no writes and preserves no identity across rebuilds.
package reconcile

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"

	"glowstore/backend/logger"
	"glowstore/backend/models"
	"glowstore/backend/realtime"
)

// DefaultSupplier is the placeholder used when the inventory branch has no
// supplier for a product. The products branch is never consulted for it.
const DefaultSupplier = "Unknown Supplier"

// costEstimateRate applies when a variant has no inventory-side cost: the
// import price is estimated at 70% of the selling price.
var costEstimateRate = decimal.NewFromFloat(0.7)

// DecodeProducts decodes a products-branch snapshot, dropping malformed
// documents with a warning instead of failing the snapshot.
func DecodeProducts(snap realtime.Snapshot) map[string]models.StoreProduct {
	out := make(map[string]models.StoreProduct, len(snap))
	for id, raw := range snap {
		var p models.StoreProduct
		if err := bson.Unmarshal(raw, &p); err != nil {
			logger.L().Warnf("reconcile: skipping malformed product %s: %v", id, err)
			continue
		}
		out[id] = p
	}
	return out
}

// DecodeInventory decodes an inventory-branch snapshot the same way.
func DecodeInventory(snap realtime.Snapshot) map[string]models.InventoryProduct {
	out := make(map[string]models.InventoryProduct, len(snap))
	for id, raw := range snap {
		var p models.InventoryProduct
		if err := bson.Unmarshal(raw, &p); err != nil {
			logger.L().Warnf("reconcile: skipping malformed inventory entry %s: %v", id, err)
			continue
		}
		out[id] = p
	}
	return out
}

// MergeSnapshots decodes both raw snapshots and merges them.
func MergeSnapshots(products, inventory realtime.Snapshot, now time.Time) []models.Product {
	return Merge(DecodeProducts(products), DecodeInventory(inventory), now)
}

// Merge builds the canonical product list. Products without a variants
// list are dropped silently; a missing inventory counterpart at any
// variant index is a normal condition, not an error, since the two
// branches are never updated transactionally. A stored import price of
// zero is treated the same as an absent one and re-estimated, because a
// missing bson field and an explicit zero decode identically.
func Merge(products map[string]models.StoreProduct, inventory map[string]models.InventoryProduct, now time.Time) []models.Product {
	merged := make([]models.Product, 0, len(products))

	for id, sp := range products {
		if sp.Variants == nil {
			logger.L().Warnf("reconcile: product %s has no variants list, dropped", id)
			continue
		}
		inv, hasInv := inventory[id]

		variants := make([]models.ProductVariant, 0, len(sp.Variants))
		for i, sv := range sp.Variants {
			variants = append(variants, mergeVariant(id, i, sv, inv, hasInv, now))
		}

		product := models.Product{
			ID:          id,
			Name:        fallback(sp.Name, inv.Name),
			Category:    fallback(sp.Category, inv.Category),
			Description: fallback(sp.Description, inv.Description),
			BrandID:     fallback(sp.BrandID, inv.BrandID),
			Supplier:    fallback(inv.Supplier, DefaultSupplier),
			Media:       mergeMedia(sp, inv),
			Variants:    variants,
			CreatedAt:   sp.CreatedAt,
			UpdatedAt:   sp.UpdatedAt,
		}
		if product.CreatedAt.IsZero() {
			product.CreatedAt = inv.CreatedAt
		}
		merged = append(merged, product)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].CreatedAt.Equal(merged[j].CreatedAt) {
			return merged[i].ID < merged[j].ID
		}
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	return merged
}

// mergeVariant takes stock, price and size from the products branch and
// cost metadata from the inventory branch when the same index exists
// there; otherwise cost is estimated.
func mergeVariant(productID string, idx int, sv models.StoreVariant, inv models.InventoryProduct, hasInv bool, now time.Time) models.ProductVariant {
	variant := models.ProductVariant{
		ID:        fmt.Sprintf("%s-%d", productID, idx),
		Name:      sv.Size,
		Price:     sv.Price,
		StockQty:  sv.StockQty,
		CreatedAt: now,
	}

	if hasInv && idx < len(inv.Variants) {
		iv := inv.Variants[idx]
		if iv.ID != "" {
			variant.ID = iv.ID
		}
		variant.ImportPrice = iv.ImportPrice
		if !iv.CreatedAt.IsZero() {
			variant.CreatedAt = iv.CreatedAt
		}
	}
	if variant.ImportPrice == 0 {
		variant.ImportPrice = EstimateImportPrice(sv.Price)
	}
	return variant
}

// EstimateImportPrice rounds 70% of the selling price to a whole minor
// currency unit.
func EstimateImportPrice(price int64) int64 {
	return decimal.NewFromInt(price).Mul(costEstimateRate).Round(0).IntPart()
}

func mergeMedia(sp models.StoreProduct, inv models.InventoryProduct) []models.MediaRef {
	if sp.Image != "" {
		return []models.MediaRef{{URL: sp.Image, Type: "image"}}
	}
	if len(inv.Media) > 0 {
		media := make([]models.MediaRef, len(inv.Media))
		copy(media, inv.Media)
		return media
	}
	return []models.MediaRef{}
}

func fallback(primary, secondary string) string {
	if primary != "" {
		return primary
	}
	return secondary
}
