package routes

import (
	"github.com/gin-gonic/gin"

	"glowstore/backend/controllers"
	"glowstore/backend/middleware"
)

func InitializeRoutes(router *gin.Engine) {
	router.POST("/device-tokens", controllers.RegisterDeviceToken)
	router.POST("/vouchers/redeem", controllers.RedeemVoucher)

	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware("admin"))
	{
		admin.GET("/dashboard", controllers.GetDashboard)
		admin.GET("/lowstock", controllers.GetLowStock)

		admin.GET("/revenue", controllers.GetRevenueItems)
		admin.GET("/revenue/stats", controllers.GetRevenueStats)
		admin.GET("/revenue/chart/daily", controllers.GetDailyChart)
		admin.GET("/revenue/chart/monthly", controllers.GetMonthlyChart)
		admin.GET("/revenue/chart/yearly", controllers.GetYearlyChart)
		admin.POST("/revenue/migrate", controllers.RunRevenueMigration)

		admin.GET("/products", controllers.GetProducts)
		admin.GET("/products/:id", controllers.GetProduct)
		admin.POST("/products", controllers.CreateProduct)
		admin.DELETE("/products/:id", controllers.DeleteProduct)
		admin.PUT("/products/:id/variants/:index/stock", controllers.UpdateStock)
		admin.POST("/products/:id/photo", controllers.UploadProductPhoto)
		admin.GET("/stock-differences", controllers.GetStockDifferences)

		admin.GET("/orders", controllers.GetOrders)
		admin.PUT("/orders/:id/status", controllers.UpdateOrderStatus)

		admin.GET("/vouchers", controllers.GetVouchers)
		admin.POST("/vouchers", controllers.CreateVoucher)
		admin.PUT("/vouchers/:id/status", controllers.SetVoucherStatus)
		admin.DELETE("/vouchers/:id", controllers.DeleteVoucher)

		admin.GET("/users", controllers.GetUsers)
		admin.POST("/users", controllers.CreateUser)
		admin.PUT("/users/:id/password", controllers.ChangeUserPassword)
		admin.DELETE("/users/:id", controllers.DeleteUser)

		admin.POST("/notifications", controllers.BroadcastNotification)
		admin.GET("/notifications", controllers.GetNotifications)

		admin.GET("/banners", controllers.GetBanners)
		admin.POST("/banners", controllers.CreateBanner)
		admin.DELETE("/banners/:id", controllers.DeleteBanner)
		admin.GET("/brands", controllers.GetBrands)
		admin.POST("/brands", controllers.CreateBrand)
		admin.DELETE("/brands/:id", controllers.DeleteBrand)
		admin.GET("/categories", controllers.GetCategories)
		admin.POST("/categories", controllers.CreateCategory)
		admin.DELETE("/categories/:id", controllers.DeleteCategory)
		admin.GET("/reviews", controllers.GetReviews)
		admin.DELETE("/reviews/:id", controllers.DeleteReview)
		admin.GET("/documents", controllers.GetDocuments)
		admin.POST("/documents", controllers.CreateDocument)
		admin.DELETE("/documents/:id", controllers.DeleteDocument)
	}
}
