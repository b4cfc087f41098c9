package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"glowstore/backend/cache"
	"glowstore/backend/config"
	"glowstore/backend/controllers"
	"glowstore/backend/dashboard"
	"glowstore/backend/logger"
	"glowstore/backend/middleware"
	"glowstore/backend/notify"
	"glowstore/backend/realtime"
	"glowstore/backend/routes"
	"glowstore/backend/utils"
	"glowstore/backend/vouchers"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file, using process environment")
	}
	config.Load()
	logger.Init("logs/backend.log", gin.Mode() != gin.ReleaseMode)

	gin.SetMode(gin.ReleaseMode)
	log.Printf("Running in %s mode", gin.Mode())

	r := gin.Default()

	middleware.InitMetrics()
	dashboard.InitMetrics()
	r.Use(middleware.PrometheusMiddleware())
	r.GET("/metrics", func(c *gin.Context) {
		promhttp.Handler().ServeHTTP(c.Writer, c.Request)
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	config.ConnectDatabase()
	store := realtime.NewMongoStore(config.DB)

	if config.S3Endpoint != "" {
		if err := utils.InitS3(); err != nil {
			log.Fatalf("Failed to initialize S3: %v", err)
		}
	}

	var chartCache cache.ChartCache = cache.NoopChartCache{}
	if config.RedisAddr != "" {
		redisCache := cache.NewRedisChartCache(config.RedisAddr, config.RedisPassword, 0)
		if err := redisCache.Ping(context.Background()); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		chartCache = redisCache
	}

	var pusher *notify.Pusher
	if config.FirebaseCredentialsFile != "" {
		p, err := notify.NewPusher(context.Background(), config.FirebaseCredentialsFile)
		if err != nil {
			log.Fatalf("Failed to initialize push delivery: %v", err)
		}
		pusher = p
	}

	watcher := dashboard.NewWatcher(store, config.LowStockThreshold)
	if err := watcher.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start dashboard watcher: %v", err)
	}

	utils.StartScheduler(&utils.LowStockNotifier{
		Watcher: watcher,
		Store:   store,
		Pusher:  pusher,
	})

	controllers.Init(store, watcher, chartCache, vouchers.NewService(store), pusher)
	routes.InitializeRoutes(r)

	r.Run(":" + config.Port)
}
