// Command pull fetches the full Trendyol catalog snapshot and appends one
// price observation per listing to the ledger. Intended to run on a cron
// schedule so the history queries have one row per product per day.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/mguzelocak/TrendyolApiPriceControl/config"
	"github.com/mguzelocak/TrendyolApiPriceControl/internal/infrastructure/postgres"
	"github.com/mguzelocak/TrendyolApiPriceControl/internal/infrastructure/trendyol"
	"github.com/mguzelocak/TrendyolApiPriceControl/internal/usecase"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	location, err := cfg.Location()
	if err != nil {
		log.Fatalf("Failed to load timezone: %v", err)
	}

	observations, err := postgres.New(cfg.Database.DSN, location)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer observations.Close()

	trendyolClient := trendyol.NewClient(cfg.Trendyol.APIKey, cfg.Trendyol.SellerID, cfg.Trendyol.BaseURL, cfg.Trendyol.PageSize)

	tracking := usecase.NewTrackingService(trendyolClient, observations, usecase.TrackingConfig{
		Location: location,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	stored, err := tracking.PullAndStore(ctx)
	if err != nil {
		log.Fatalf("Catalog pull failed: %v", err)
	}

	log.Printf("Catalog pull complete: %d observations stored", stored)
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime)
	log.SetOutput(os.Stdout)
}
