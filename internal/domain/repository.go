package domain

import (
	"context"
	"time"
)

// ObservationRepository is the read/write surface of the price ledger.
// Insert is used by the ingestion path; the two queries back the
// historical-low classifier and the monthly history endpoint.
type ObservationRepository interface {
	Insert(ctx context.Context, observations []PriceObservation) error

	// MinPriceSince returns the minimum observed price for barcode within
	// the trailing window of the given number of days, ending today
	// (inclusive). Returns ErrNoHistory when the window is empty.
	MinPriceSince(ctx context.Context, barcode string, days int) (float64, error)

	// ObservationsForMonth returns every observation in the given calendar
	// month, across all products. Returns ErrNoHistory when none exist.
	ObservationsForMonth(ctx context.Context, month time.Month, year int) ([]PriceObservation, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// TrendyolClient defines the interface for the Trendyol seller API.
type TrendyolClient interface {
	// FetchAllListings pages through the seller's on-sale, non-archived
	// products and returns the fully materialized catalog snapshot.
	FetchAllListings(ctx context.Context) ([]TrendyolListing, error)

	// SubmitPriceUpdate submits a price change and returns the batch
	// request ID handle for later status resolution.
	SubmitPriceUpdate(ctx context.Context, update PriceUpdateRequest) (string, error)

	// CheckBatchStatus resolves a batch handle to per-item results.
	CheckBatchStatus(ctx context.Context, batchID string) (*BatchResult, error)
}

// HepsiburadaClient defines the interface for the Hepsiburada listing API.
type HepsiburadaClient interface {
	FetchAllListings(ctx context.Context) ([]HepsiburadaListing, error)
}
