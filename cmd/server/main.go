package main

import (
	"fmt"
	"log"
	"net/http"

	"rentwheels/internal/config"
	"rentwheels/internal/handlers"
	"rentwheels/internal/middleware"
	"rentwheels/internal/repositories/mongodb"
	"rentwheels/internal/services"
	"rentwheels/pkg/cache"
	"rentwheels/pkg/database"
	"rentwheels/pkg/logger"
	"rentwheels/pkg/payment"
	"rentwheels/pkg/push"
	"rentwheels/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments inject env vars directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:  logger.LogLevel(cfg.App.LogLevel),
		Format: cfg.App.LogFormat,
		Output: "stdout",
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	if cfg.Security.JWTSecret == "" {
		appLogger.Fatal("JWT_SECRET must be set")
	}

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		appLogger.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	if err := database.NewMigrator(db.Database).Up(); err != nil {
		appLogger.Fatalf("Failed to run migrations: %v", err)
	}

	var cacheService services.CacheService
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			appLogger.WithError(err).Warn("Redis unavailable, continuing without cache")
		} else {
			defer redisCache.Close()
			cacheService = redisCache
		}
	}

	var gateway payment.PaymentProvider
	if cfg.Payment.Configured() {
		gateway = payment.NewRazorpayProvider(cfg.Payment.RazorpayKeyID, cfg.Payment.RazorpayKeySecret)
	} else {
		appLogger.Warn("Razorpay credentials not set, online payments disabled")
	}

	var pushProvider push.PushProvider
	if cfg.Push.Configured() {
		fcm, err := push.NewFCMProvider(cfg.Push.FCMCredentialsFile)
		if err != nil {
			appLogger.WithError(err).Warn("FCM unavailable, continuing without push notifications")
		} else {
			pushProvider = fcm
		}
	}

	// Repositories
	bookingRepo := mongodb.NewBookingRepository(db.Database, cacheService)
	vehicleRepo := mongodb.NewVehicleRepository(db.Database)
	packageRepo := mongodb.NewPackageRepository(db.Database)

	// Services
	pricingService := services.NewPricingService(packageRepo, appLogger)
	billAllocator := services.NewBillAllocator(bookingRepo, appLogger)
	notificationService := services.NewNotificationService(pushProvider, appLogger)
	bookingService := services.NewBookingService(
		bookingRepo,
		vehicleRepo,
		packageRepo,
		pricingService,
		billAllocator,
		notificationService,
		gateway,
		appLogger,
	)

	// Handlers
	bookingHandler := handlers.NewBookingHandler(bookingService, gateway, appLogger)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())

	v1 := router.Group("/api/v1")
	{
		routes.SetupBookingRoutes(v1, bookingHandler, cfg.Security.JWTSecret)
	}

	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		if err := db.Ping(); err != nil {
			status = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  status,
			"version": cfg.App.Version,
		})
	})

	addr := fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port)
	appLogger.Infof("Starting %s on %s", cfg.App.Name, addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		appLogger.Fatalf("Server failed: %v", err)
	}
}
