package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/mguzelocak/TrendyolApiPriceControl/config"
	httpDelivery "github.com/mguzelocak/TrendyolApiPriceControl/internal/delivery/http"
	"github.com/mguzelocak/TrendyolApiPriceControl/internal/domain"
	"github.com/mguzelocak/TrendyolApiPriceControl/internal/infrastructure/cache"
	"github.com/mguzelocak/TrendyolApiPriceControl/internal/infrastructure/hepsiburada"
	"github.com/mguzelocak/TrendyolApiPriceControl/internal/infrastructure/postgres"
	"github.com/mguzelocak/TrendyolApiPriceControl/internal/infrastructure/trendyol"
	"github.com/mguzelocak/TrendyolApiPriceControl/internal/observability"
	"github.com/mguzelocak/TrendyolApiPriceControl/internal/usecase"
)

func main() {
	// Credentials come from .env in development, real env in deployment
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Trendyol Price Control v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache Type: %s", cfg.Cache.Type)

	location, err := cfg.Location()
	if err != nil {
		log.Fatalf("Failed to load timezone: %v", err)
	}

	// Price ledger
	observations, err := postgres.New(cfg.Database.DSN, location)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer observations.Close()

	// Cache backend per configuration
	var cacheRepo domain.CacheRepository
	if cfg.Cache.Type == "redis" {
		redisCache, err := cache.NewRedisCache(cfg.Cache.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisCache.Close()
		cacheRepo = redisCache
	} else {
		cacheRepo = cache.NewMemoryCache()
	}
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	// Marketplace clients
	trendyolClient := trendyol.NewClient(cfg.Trendyol.APIKey, cfg.Trendyol.SellerID, cfg.Trendyol.BaseURL, cfg.Trendyol.PageSize)
	hepsiburadaClient := hepsiburada.NewClient(cfg.Hepsiburada.Username, cfg.Hepsiburada.Password, cfg.Hepsiburada.MerchantID, cfg.Hepsiburada.BaseURL)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		trendyolClient.SetDebug(true)
		hepsiburadaClient.SetDebug(true)
		log.Printf("Marketplace client debug mode enabled")
	}

	// Initialize usecase layer
	classifier := usecase.NewClassifierService(observations, cacheRepo, usecase.ClassifierConfig{
		CacheTTL:           cfg.Cache.TTL,
		EnableDebugLogging: cfg.Tracking.Debug,
	})
	tracking := usecase.NewTrackingService(trendyolClient, observations, usecase.TrackingConfig{
		Location: location,
	})
	reconcile := usecase.NewReconcileService(usecase.ReconcileConfig{
		EnableDebugLogging: cfg.Tracking.Debug,
	})

	observability.Register()

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(classifier, tracking, reconcile, trendyolClient, hepsiburadaClient)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
