package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shopspring/decimal"

	"rentdesk_app_echo/internal/handlers"
	appMiddleware "rentdesk_app_echo/internal/middleware"
	"rentdesk_app_echo/internal/services"
)

// defaultCommissionRate is the flat agency rate applied when a property has
// no rate configured.
const defaultCommissionRate = "0.10"

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	// Initialize Database
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}
	db, err := services.InitDB(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migration
	if err := services.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Initialize Redis (optional; stats are recomputed on every read without it)
	var cache *services.RedisCache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cache, err = services.NewRedisCache(redisURL)
		if err != nil {
			log.Printf("Warning: Redis initialization failed: %v", err)
			cache = nil
		}
	}

	rateEnv := os.Getenv("COMMISSION_DEFAULT_RATE")
	if rateEnv == "" {
		rateEnv = defaultCommissionRate
	}
	rate, err := decimal.NewFromString(rateEnv)
	if err != nil {
		log.Fatalf("Invalid COMMISSION_DEFAULT_RATE: %v", err)
	}

	// Wire services
	store := services.NewGormStore(db, rate)
	commissionService := services.NewCommissionService(store)
	scheduleService := services.NewScheduleService(store, commissionService, cache)
	paymentService := services.NewPaymentService(store, commissionService, cache)
	statsService := services.NewStatsService(store, cache)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.HTTPErrorHandler = appMiddleware.CustomErrorHandler

	// Initialize handlers
	leaseHandler := handlers.NewLeaseHandler(db, scheduleService)
	paymentHandler := handlers.NewPaymentHandler(db, paymentService, statsService)

	// Lease routes
	e.POST("/leases", leaseHandler.CreateLease)
	e.GET("/leases/:id", leaseHandler.GetLease)
	e.POST("/leases/:id/payments/generate", leaseHandler.GeneratePayments)
	e.GET("/leases/:id/payments", paymentHandler.ListLeasePayments)
	e.GET("/leases/:id/stats", paymentHandler.GetLeaseStats)
	e.POST("/leases/:id/statuses/refresh", paymentHandler.RefreshLeaseStatuses)

	// Payment review routes
	e.POST("/payments/bulk-update", paymentHandler.BulkUpdatePayments)
	e.POST("/payments/bulk-delete", paymentHandler.BulkDeletePayments)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	e.Logger.Fatal(e.Start(":" + port))
}
