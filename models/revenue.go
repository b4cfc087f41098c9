package models

import "time"

// UserInfo is the buyer snapshot denormalized onto every revenue item so
// reporting never has to join back to the users collection.
type UserInfo struct {
	DisplayName string `bson:"displayName" json:"displayName"`
	Email       string `bson:"email" json:"email"`
	Phone       string `bson:"phone" json:"phone"`
	Address     string `bson:"address" json:"address"`
}

// RevenueItem is one realized revenue line: one per (order, product line),
// written at order completion and never updated or deleted afterwards.
// Prices are in minor currency units.
type RevenueItem struct {
	ID              string    `bson:"_id,omitempty" json:"id"`
	OrderID         string    `bson:"orderId" json:"orderId"`
	UserID          string    `bson:"userId" json:"userId"`
	UserInfo        UserInfo  `bson:"userInfo" json:"userInfo"`
	ProductID       string    `bson:"productId" json:"productId"`
	ProductName     string    `bson:"productName" json:"productName"`
	ProductImage    string    `bson:"productImage" json:"productImage"`
	ProductCategory string    `bson:"productCategory" json:"productCategory"`
	Quantity        int       `bson:"quantity" json:"quantity"`
	UnitPrice       int64     `bson:"unitPrice" json:"unitPrice"`
	TotalPrice      int64     `bson:"totalPrice" json:"totalPrice"`
	CompletedAt     time.Time `bson:"completedAt" json:"completedAt"`
	Date            string    `bson:"date" json:"date"`   // YYYY-MM-DD
	Month           string    `bson:"month" json:"month"` // YYYY-MM
	Year            string    `bson:"year" json:"year"`   // YYYY
}

// ProductRevenue accumulates per-product revenue figures. Name is the
// first-seen product name for the id and is not overwritten by later items.
type ProductRevenue struct {
	Name     string `json:"name"`
	Revenue  int64  `json:"revenue"`
	Quantity int    `json:"quantity"`
}

// RevenueStats is recomputed wholesale from the latest revenue snapshot.
// It is a derived value and is never persisted.
type RevenueStats struct {
	TotalRevenue      int64                     `json:"totalRevenue"`
	TotalOrders       int                       `json:"totalOrders"`
	TotalProducts     int                       `json:"totalProducts"`
	AverageOrderValue int64                     `json:"averageOrderValue"`
	MonthlyRevenue    map[string]int64          `json:"monthlyRevenue"`
	YearlyRevenue     map[string]int64          `json:"yearlyRevenue"`
	ProductRevenue    map[string]ProductRevenue `json:"productRevenue"`
	CategoryRevenue   map[string]int64          `json:"categoryRevenue"`
}

// ChartPoint is one bucket of a chart series. Period is the bucket label
// (day, month or year depending on the window).
type ChartPoint struct {
	Period   string `json:"period"`
	Revenue  int64  `json:"revenue"`
	Orders   int    `json:"orders"`
	Products int    `json:"products"`
}
