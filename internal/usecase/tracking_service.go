package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mguzelocak/TrendyolApiPriceControl/internal/domain"
	"github.com/mguzelocak/TrendyolApiPriceControl/internal/observability"
)

// TrackingConfig holds configuration for the tracking service
type TrackingConfig struct {
	// Location is the marketplace timezone used to stamp observations.
	Location *time.Location
}

// TrackingService records catalog snapshots into the price ledger and
// relays price updates to the marketplace.
type TrackingService struct {
	trendyol     domain.TrendyolClient
	observations domain.ObservationRepository
	location     *time.Location
}

// NewTrackingService creates a new tracking service with dependencies
func NewTrackingService(
	trendyol domain.TrendyolClient,
	observations domain.ObservationRepository,
	config TrackingConfig,
) *TrackingService {
	location := config.Location
	if location == nil {
		location = time.UTC
	}

	return &TrackingService{
		trendyol:     trendyol,
		observations: observations,
		location:     location,
	}
}

// PullAndStore fetches the full Trendyol catalog snapshot and appends one
// observation per listing to the ledger, all stamped with the same pull
// time in the configured timezone. Returns the number of rows written.
func (s *TrackingService) PullAndStore(ctx context.Context) (int, error) {
	listings, err := s.trendyol.FetchAllListings(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetching catalog snapshot: %w", err)
	}

	observedAt := time.Now().In(s.location)
	observations := make([]domain.PriceObservation, 0, len(listings))
	for _, listing := range listings {
		observations = append(observations, domain.PriceObservation{
			Barcode:    listing.Barcode,
			Title:      listing.Title,
			Price:      listing.SalePrice,
			ObservedAt: observedAt,
		})
	}

	if err := s.observations.Insert(ctx, observations); err != nil {
		return 0, fmt.Errorf("storing %d observations: %w", len(observations), err)
	}

	observability.ObservationsStored.Add(float64(len(observations)))
	log.Printf("[TRACK] Stored %d observations at %s", len(observations), observedAt.Format(time.RFC3339))

	return len(observations), nil
}

// SubmitPriceUpdate relays a price change to the marketplace and returns
// the asynchronous batch handle.
func (s *TrackingService) SubmitPriceUpdate(ctx context.Context, update domain.PriceUpdateRequest) (string, error) {
	if update.Barcode == "" || update.SalePrice <= 0 || update.ListPrice <= 0 {
		return "", domain.ErrInvalidRequest
	}

	batchID, err := s.trendyol.SubmitPriceUpdate(ctx, update)
	if err != nil {
		return "", fmt.Errorf("submitting price update for %s: %w", update.Barcode, err)
	}

	observability.PriceUpdatesSubmitted.Inc()
	log.Printf("[TRACK] Price update for %s submitted, batch %s", update.Barcode, batchID)

	return batchID, nil
}

// CheckBatchStatus resolves a previously returned batch handle.
func (s *TrackingService) CheckBatchStatus(ctx context.Context, batchID string) (*domain.BatchResult, error) {
	if batchID == "" {
		return nil, domain.ErrInvalidRequest
	}
	return s.trendyol.CheckBatchStatus(ctx, batchID)
}

// ObservationsForMonth exposes the calendar-month history query.
func (s *TrackingService) ObservationsForMonth(ctx context.Context, month time.Month, year int) ([]domain.PriceObservation, error) {
	if month < time.January || month > time.December || year < 2000 {
		return nil, domain.ErrInvalidRequest
	}
	return s.observations.ObservationsForMonth(ctx, month, year)
}
