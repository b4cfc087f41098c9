package models

import "time"

// Notification is a broadcast record kept for the admin notifications page.
type Notification struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Body      string    `bson:"body" json:"body"`
	Kind      string    `bson:"kind" json:"kind"` // "broadcast" or "low_stock"
	Success   int       `bson:"success" json:"success"`
	Failure   int       `bson:"failure" json:"failure"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// DeviceToken is a registered push target.
type DeviceToken struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Token     string    `bson:"token" json:"token"`
	UserID    string    `bson:"userId" json:"userId"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
