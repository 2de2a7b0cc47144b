package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/mguzelocak/TrendyolApiPriceControl/internal/domain"
)

// Trailing window lengths, in days, checked from tightest to widest.
const (
	windowWeek     = 7
	windowTwoWeeks = 14
	windowMonth    = 30
)

// ClassifierConfig holds configuration for the classifier service
type ClassifierConfig struct {
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// ClassifierService evaluates a candidate price for a product against the
// product's own price history and reports the tightest "new low" window
// the price satisfies. It never records the candidate price itself.
type ClassifierService struct {
	observations       domain.ObservationRepository
	cache              domain.CacheRepository
	cacheTTL           time.Duration
	enableDebugLogging bool
}

// NewClassifierService creates a new classifier service with dependencies
func NewClassifierService(
	observations domain.ObservationRepository,
	cache domain.CacheRepository,
	config ClassifierConfig,
) *ClassifierService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 15 * time.Minute
	}

	return &ClassifierService{
		observations:       observations,
		cache:              cache,
		cacheTTL:           cacheTTL,
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Classify returns the most significant historical-low tier newPrice
// satisfies for barcode. The 7-day window is checked before the 14-day
// window, which is checked before the 30-day window, so a price that is
// simultaneously a weekly and a monthly low reports only the weekly tier.
// Comparisons are inclusive: a price exactly equal to a window minimum
// counts as a new low for that window.
//
// A window with no observations never triggers its tier; a product with no
// history at all classifies as "none".
func (s *ClassifierService) Classify(ctx context.Context, barcode string, newPrice float64) (domain.PriceClass, error) {
	if barcode == "" || newPrice <= 0 {
		return "", domain.ErrInvalidRequest
	}

	w7, err := s.windowMin(ctx, barcode, windowWeek)
	if err != nil {
		return "", err
	}
	w14, err := s.windowMin(ctx, barcode, windowTwoWeeks)
	if err != nil {
		return "", err
	}
	w30, err := s.windowMin(ctx, barcode, windowMonth)
	if err != nil {
		return "", err
	}

	if s.enableDebugLogging {
		log.Printf("[CLASSIFY] %s: candidate=%.2f w7=%.2f w14=%.2f w30=%.2f", barcode, newPrice, w7, w14, w30)
	}

	switch {
	case newPrice <= w7:
		return domain.ClassOneWeekLow, nil
	case newPrice <= w14:
		return domain.ClassTwoWeekLow, nil
	case newPrice <= w30:
		return domain.ClassOneMonthLow, nil
	default:
		return domain.ClassNone, nil
	}
}

// windowMin resolves one trailing-window minimum, consulting the cache
// first. An empty window is mapped to -Inf so the inclusive <= comparison
// for that tier can never succeed: a price is not a new low relative to no
// history. Cache failures fall through to the repository.
func (s *ClassifierService) windowMin(ctx context.Context, barcode string, days int) (float64, error) {
	cacheKey := fmt.Sprintf("minprice:%s:%d", barcode, days)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			if v, ok := cached.(float64); ok {
				return v, nil
			}
		}
	}

	min, err := s.observations.MinPriceSince(ctx, barcode, days)
	if err != nil {
		if errors.Is(err, domain.ErrNoHistory) {
			return math.Inf(-1), nil
		}
		return 0, fmt.Errorf("querying %d-day minimum for %s: %w", days, barcode, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, min, s.cacheTTL); err != nil && s.enableDebugLogging {
			log.Printf("[CLASSIFY] cache set failed for %s: %v", cacheKey, err)
		}
	}

	return min, nil
}
