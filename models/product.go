package models

import "time"

// MediaRef is an ordered image or video reference on a product.
type MediaRef struct {
	URL  string `bson:"url" json:"url"`
	Type string `bson:"type" json:"type"` // "image" or "video"
}

// StoreVariant is a variant as stored on the "products" branch. This branch
// is authoritative for stock and selling price; it carries no cost data.
type StoreVariant struct {
	Price    int64  `bson:"price" json:"price"`
	Size     string `bson:"size" json:"size"`
	StockQty int    `bson:"stockQty" json:"stockQty"`
	SKU      string `bson:"sku,omitempty" json:"sku,omitempty"`
}

// StoreProduct is a product document on the "products" branch.
type StoreProduct struct {
	Name        string         `bson:"name" json:"name"`
	Category    string         `bson:"category" json:"category"`
	Description string         `bson:"description" json:"description"`
	Image       string         `bson:"image,omitempty" json:"image,omitempty"`
	BrandID     string         `bson:"brandId,omitempty" json:"brandId,omitempty"`
	Variants    []StoreVariant `bson:"variants" json:"variants"`
	CreatedAt   time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// InventoryVariant is a variant on the legacy "inventory" branch, which is
// authoritative for cost and purchasing metadata. Its stock counts can be
// stale relative to the products branch.
type InventoryVariant struct {
	ID          string    `bson:"id,omitempty" json:"id,omitempty"`
	Name        string    `bson:"name" json:"name"`
	Price       int64     `bson:"price" json:"price"`
	ImportPrice int64     `bson:"importPrice" json:"importPrice"`
	StockQty    int       `bson:"stockQty" json:"stockQty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// InventoryProduct is a product document on the "inventory" branch.
type InventoryProduct struct {
	Name        string             `bson:"name" json:"name"`
	Category    string             `bson:"category" json:"category"`
	Description string             `bson:"description" json:"description"`
	Supplier    string             `bson:"supplier" json:"supplier"`
	BrandID     string             `bson:"brandId,omitempty" json:"brandId,omitempty"`
	Media       []MediaRef         `bson:"media" json:"media"`
	Variants    []InventoryVariant `bson:"variants" json:"variants"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// ProductVariant is a variant on the merged, canonical product view.
type ProductVariant struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	ImportPrice int64     `json:"importPrice"`
	StockQty    int       `json:"stockQty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Product is the canonical merged view of the two branches. Rebuilt fresh
// on every snapshot; no identity beyond the id string survives a rebuild.
type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Media       []MediaRef       `json:"media"`
	Variants    []ProductVariant `json:"variants"`
	Supplier    string           `json:"supplier"`
	BrandID     string           `json:"brandId,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// StockDifference is one row of the products-vs-inventory audit report.
type StockDifference struct {
	ProductID      string `json:"productId"`
	ProductName    string `json:"productName"`
	VariantName    string `json:"variantName"`
	InventoryStock int    `json:"inventoryStock"`
	ProductsStock  int    `json:"productsStock"`
	Difference     int    `json:"difference"`
}
