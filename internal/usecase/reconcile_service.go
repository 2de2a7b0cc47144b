package usecase

import (
	"context"
	"fmt"
	"log"

	"github.com/mguzelocak/TrendyolApiPriceControl/internal/domain"
)

// ReconcileConfig holds configuration for the reconciliation service
type ReconcileConfig struct {
	EnableDebugLogging bool
}

// ReconcileService aligns a Trendyol catalog snapshot and a Hepsiburada
// catalog snapshot into one unified record set. The two snapshots share no
// primary key, so rows are paired by exact equality across identifier
// fields. Every input row appears in the output exactly once, as a match
// or as an unmatched record.
type ReconcileService struct {
	enableDebugLogging bool
}

// NewReconcileService creates a new reconciliation service
func NewReconcileService(config ReconcileConfig) *ReconcileService {
	return &ReconcileService{
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// Reconcile merges the two catalog snapshots. A Trendyol row and a
// Hepsiburada row are the same product when any of the Trendyol
// identifiers (barcode, stock code, model code) equals either of the
// Hepsiburada identifiers (listing ID, barcode). The first equality that
// holds wins; there is no scoring and no best-match search. Consumed
// Hepsiburada rows are never matched a second time.
//
// Rows missing their required primary identifier abort the merge with
// ErrMalformedListing rather than silently never matching.
func (s *ReconcileService) Reconcile(
	ctx context.Context,
	trendyol []domain.TrendyolListing,
	hepsiburada []domain.HepsiburadaListing,
) ([]domain.UnifiedProduct, error) {
	if err := validateListings(trendyol, hepsiburada); err != nil {
		return nil, err
	}

	unified := make([]domain.UnifiedProduct, 0, len(trendyol)+len(hepsiburada))
	consumed := make(map[int]bool, len(hepsiburada))
	matches := 0

	for i, ty := range trendyol {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		matchedIdx := -1
		for j, hb := range hepsiburada {
			if consumed[j] {
				continue
			}
			if listingsMatch(ty, hb) {
				matchedIdx = j
				break
			}
		}

		if matchedIdx >= 0 {
			consumed[matchedIdx] = true
			matches++
			unified = append(unified, domain.UnifiedProduct{
				StockID:       ty.Barcode,
				HepsiburadaID: hepsiburada[matchedIdx].MerchantSKU,
				ProductName:   ty.Title,
				Price:         ty.SalePrice,
				Stock:         ty.Quantity,
				Matched:       true,
			})
			if s.enableDebugLogging {
				log.Printf("[RECONCILE] Trendyol %q matched Hepsiburada %q", ty.Barcode, hepsiburada[matchedIdx].ListingID)
			}
			continue
		}

		// No counterpart: emit the Trendyol row on its own, with an empty
		// cross-reference rather than a value from an unrelated row.
		unified = append(unified, domain.UnifiedProduct{
			StockID:     ty.Barcode,
			ProductName: ty.Title,
			Price:       ty.SalePrice,
			Stock:       ty.Quantity,
			Matched:     false,
		})
		if s.enableDebugLogging {
			log.Printf("[RECONCILE] Trendyol %q (row %d) has no Hepsiburada counterpart", ty.Barcode, i)
		}
	}

	for j, hb := range hepsiburada {
		if consumed[j] {
			continue
		}
		unified = append(unified, domain.UnifiedProduct{
			StockID:       hb.ListingID,
			HepsiburadaID: hb.MerchantSKU,
			ProductName:   hb.Title,
			Price:         hb.Price,
			Stock:         hb.AvailableStock,
			Matched:       false,
		})
		if s.enableDebugLogging {
			log.Printf("[RECONCILE] Hepsiburada %q (row %d) has no Trendyol counterpart", hb.ListingID, j)
		}
	}

	if s.enableDebugLogging {
		log.Printf("[RECONCILE] %d Trendyol + %d Hepsiburada rows -> %d unified (%d matched)",
			len(trendyol), len(hepsiburada), len(unified), matches)
	}

	return unified, nil
}

// validateListings rejects rows that cannot participate in matching.
func validateListings(trendyol []domain.TrendyolListing, hepsiburada []domain.HepsiburadaListing) error {
	for i, ty := range trendyol {
		if ty.Barcode == "" {
			return fmt.Errorf("%w: trendyol row %d has no barcode", domain.ErrMalformedListing, i)
		}
	}
	for j, hb := range hepsiburada {
		if hb.ListingID == "" {
			return fmt.Errorf("%w: hepsiburada row %d has no listing ID", domain.ErrMalformedListing, j)
		}
	}
	return nil
}

// listingsMatch applies the six pairwise identifier equalities. Empty
// identifiers never match each other, so optional fields left blank on
// both sides do not pair unrelated rows.
func listingsMatch(ty domain.TrendyolListing, hb domain.HepsiburadaListing) bool {
	for _, a := range [3]string{ty.Barcode, ty.StockCode, ty.ModelCode} {
		if a == "" {
			continue
		}
		if a == hb.ListingID || (hb.Barcode != "" && a == hb.Barcode) {
			return true
		}
	}
	return false
}
