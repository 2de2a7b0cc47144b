// Command priceupdate submits one price change to Trendyol and polls the
// resulting batch until it resolves, printing per-item outcomes.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/mguzelocak/TrendyolApiPriceControl/config"
	"github.com/mguzelocak/TrendyolApiPriceControl/internal/domain"
	"github.com/mguzelocak/TrendyolApiPriceControl/internal/infrastructure/trendyol"
)

func main() {
	barcode := flag.String("barcode", "", "product barcode to update")
	salePrice := flag.Float64("sale", 0, "new sale price")
	listPrice := flag.Float64("list", 0, "new list price")
	flag.Parse()

	if *barcode == "" || *salePrice <= 0 || *listPrice <= 0 {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	client := trendyol.NewClient(cfg.Trendyol.APIKey, cfg.Trendyol.SellerID, cfg.Trendyol.BaseURL, cfg.Trendyol.PageSize)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	log.Printf("Submitting price update for %s (sale %.2f, list %.2f)", *barcode, *salePrice, *listPrice)

	batchID, err := client.SubmitPriceUpdate(ctx, domain.PriceUpdateRequest{
		Barcode:   *barcode,
		SalePrice: *salePrice,
		ListPrice: *listPrice,
	})
	if err != nil {
		log.Fatalf("Price update failed: %v", err)
	}
	log.Printf("Submitted, batch request ID: %s", batchID)

	// Give the marketplace a moment to process before polling
	time.Sleep(3 * time.Second)

	result, err := client.CheckBatchStatus(ctx, batchID)
	if err != nil {
		log.Fatalf("Batch status check failed: %v", err)
	}

	for _, item := range result.Items {
		if len(item.FailureReasons) > 0 {
			log.Printf("  %s -> %s (%v)", item.Barcode, item.Status, item.FailureReasons)
		} else {
			log.Printf("  %s -> %s", item.Barcode, item.Status)
		}
	}

	if !result.AllSucceeded() {
		log.Fatalf("Batch %s finished with failures", batchID)
	}
	log.Printf("Batch %s succeeded", batchID)
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime)
	log.SetOutput(os.Stdout)
}
