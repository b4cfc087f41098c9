package config

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Logical collection names. These are the document-store branches the
// dashboard works against; the field layout of each is fixed in models.
const (
	ColRevenue       = "revenue"
	ColProducts      = "products"
	ColInventory     = "inventory"
	ColVouchers      = "vouchers"
	ColOrders        = "orders"
	ColUsers         = "users"
	ColNotifications = "notifications"
	ColDeviceTokens  = "deviceTokens"
	ColBanners       = "banners"
	ColBrands        = "brands"
	ColCategories    = "categories"
	ColReviews       = "reviews"
	ColDocuments     = "documents"
)

var (
	Client *mongo.Client
	DB     *mongo.Database
)

func ConnectDatabase() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(MongoURI))
	if err != nil {
		log.Fatal(err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal(err)
	}

	Client = client
	DB = client.Database(DatabaseName)
	log.Println("Connected to MongoDB")
}
