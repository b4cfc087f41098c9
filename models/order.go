package models

import "time"

// Order statuses used by the storefront. Revenue is recorded when an order
// transitions into StatusDelivered or StatusCompleted.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipping  = "shipping"
	OrderStatusDelivered = "delivered"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// OrderItem is one product line on a customer order.
type OrderItem struct {
	ProductID       string `bson:"productId" json:"productId"`
	ProductName     string `bson:"productName" json:"productName"`
	ProductImage    string `bson:"productImage" json:"productImage"`
	ProductCategory string `bson:"productCategory" json:"productCategory"`
	Quantity        int    `bson:"quantity" json:"quantity"`
	Price           int64  `bson:"price" json:"price"`
}

// Order is a customer order document. Orders are written by the storefront;
// the admin backend only reads them and moves their status forward.
type Order struct {
	ID        string      `bson:"_id,omitempty" json:"id"`
	UserID    string      `bson:"userId" json:"userId"`
	UserInfo  UserInfo    `bson:"userInfo" json:"userInfo"`
	Items     []OrderItem `bson:"items" json:"items"`
	Total     int64       `bson:"total" json:"total"`
	Status    string      `bson:"status" json:"status"`
	CreatedAt time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// IsRevenueStatus reports whether a status realizes revenue.
func IsRevenueStatus(status string) bool {
	return status == OrderStatusDelivered || status == OrderStatusCompleted
}
