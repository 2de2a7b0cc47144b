package usecase

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/mguzelocak/TrendyolApiPriceControl/internal/domain"
)

func tyListing(barcode, stockCode, modelCode, title string, price float64, qty int) domain.TrendyolListing {
	return domain.TrendyolListing{
		Barcode:   barcode,
		StockCode: stockCode,
		ModelCode: modelCode,
		Title:     title,
		SalePrice: price,
		Quantity:  qty,
	}
}

func hbListing(listingID, merchantSKU, title string, price float64, stock int, barcode string) domain.HepsiburadaListing {
	return domain.HepsiburadaListing{
		ListingID:      listingID,
		MerchantSKU:    merchantSKU,
		Title:          title,
		Price:          price,
		AvailableStock: stock,
		Barcode:        barcode,
	}
}

func TestReconcile_MatchesAcrossIdentifiers(t *testing.T) {
	svc := NewReconcileService(ReconcileConfig{})
	ctx := context.Background()

	t.Run("matches barcode against alternate identifier", func(t *testing.T) {
		trendyol := []domain.TrendyolListing{
			tyListing("111", "", "", "Widget", 10, 5),
		}
		hepsiburada := []domain.HepsiburadaListing{
			hbListing("999", "HB-1", "Gadget", 12, 3, "111"),
		}

		unified, err := svc.Reconcile(ctx, trendyol, hepsiburada)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(unified) != 1 {
			t.Fatalf("len(unified) = %d, want 1", len(unified))
		}

		record := unified[0]
		if !record.Matched {
			t.Error("record.Matched = false, want true")
		}
		if record.StockID != "111" {
			t.Errorf("StockID = %q, want 111", record.StockID)
		}
		if record.HepsiburadaID != "HB-1" {
			t.Errorf("HepsiburadaID = %q, want HB-1", record.HepsiburadaID)
		}
		if record.ProductName != "Widget" {
			t.Errorf("ProductName = %q, want Widget (Trendyol side)", record.ProductName)
		}
		if record.Price != 10 {
			t.Errorf("Price = %v, want 10 (Trendyol side)", record.Price)
		}
	})

	t.Run("matches stock code against listing ID", func(t *testing.T) {
		trendyol := []domain.TrendyolListing{
			tyListing("111", "SKU-7", "", "Widget", 10, 5),
		}
		hepsiburada := []domain.HepsiburadaListing{
			hbListing("SKU-7", "HB-2", "Widget HB", 11, 2, ""),
		}

		unified, err := svc.Reconcile(ctx, trendyol, hepsiburada)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(unified) != 1 || !unified[0].Matched {
			t.Fatalf("unified = %+v, want single matched record", unified)
		}
	})

	t.Run("empty optional identifiers never match each other", func(t *testing.T) {
		trendyol := []domain.TrendyolListing{
			tyListing("111", "", "", "Widget", 10, 5),
		}
		hepsiburada := []domain.HepsiburadaListing{
			hbListing("999", "HB-3", "Unrelated", 20, 1, ""),
		}

		unified, err := svc.Reconcile(ctx, trendyol, hepsiburada)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(unified) != 2 {
			t.Fatalf("len(unified) = %d, want 2 unmatched records", len(unified))
		}
		for _, record := range unified {
			if record.Matched {
				t.Errorf("record %+v matched, want unmatched", record)
			}
		}
	})

	t.Run("first match wins and consumes the counterpart", func(t *testing.T) {
		trendyol := []domain.TrendyolListing{
			tyListing("111", "", "", "First", 10, 5),
			tyListing("111b", "111", "", "Second", 11, 6),
		}
		hepsiburada := []domain.HepsiburadaListing{
			hbListing("111", "HB-A", "Copy A", 10, 1, ""),
			hbListing("222", "HB-B", "Copy B", 10, 1, "111"),
		}

		unified, err := svc.Reconcile(ctx, trendyol, hepsiburada)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// First Trendyol row takes the first Hepsiburada row; the second
		// Trendyol row must match the remaining one, not the consumed one.
		if len(unified) != 2 {
			t.Fatalf("len(unified) = %d, want 2", len(unified))
		}
		if unified[0].HepsiburadaID != "HB-A" {
			t.Errorf("unified[0].HepsiburadaID = %q, want HB-A", unified[0].HepsiburadaID)
		}
		if unified[1].HepsiburadaID != "HB-B" {
			t.Errorf("unified[1].HepsiburadaID = %q, want HB-B", unified[1].HepsiburadaID)
		}
	})
}

func TestReconcile_MatchSymmetry(t *testing.T) {
	svc := NewReconcileService(ReconcileConfig{})
	ctx := context.Background()

	matchedOnce := func(t *testing.T, trendyol []domain.TrendyolListing, hepsiburada []domain.HepsiburadaListing) bool {
		t.Helper()
		unified, err := svc.Reconcile(ctx, trendyol, hepsiburada)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		matches := 0
		for _, record := range unified {
			if record.Matched {
				matches++
			}
		}
		return matches == 1
	}

	t.Run("shared identifier pairs regardless of which fields carry it", func(t *testing.T) {
		// Model code against the Hepsiburada barcode.
		if !matchedOnce(t,
			[]domain.TrendyolListing{tyListing("111", "", "M-9", "Widget", 10, 5)},
			[]domain.HepsiburadaListing{hbListing("999", "HB-1", "Widget HB", 11, 2, "M-9")},
		) {
			t.Error("model code vs hepsiburada barcode did not match")
		}

		// Same identifier values with the carrying fields mirrored.
		if !matchedOnce(t,
			[]domain.TrendyolListing{tyListing("M-9", "", "111", "Widget", 10, 5)},
			[]domain.HepsiburadaListing{hbListing("111", "HB-1", "Widget HB", 11, 2, "M-9")},
		) {
			t.Error("mirrored identifier placement did not match")
		}
	})

	t.Run("no shared identifier never pairs in either order", func(t *testing.T) {
		if matchedOnce(t,
			[]domain.TrendyolListing{tyListing("111", "", "M-9", "Widget", 10, 5)},
			[]domain.HepsiburadaListing{hbListing("999", "HB-1", "Other", 11, 2, "B-4")},
		) {
			t.Error("unrelated rows matched")
		}
		if matchedOnce(t,
			[]domain.TrendyolListing{tyListing("999", "", "B-4", "Widget", 10, 5)},
			[]domain.HepsiburadaListing{hbListing("111", "HB-1", "Other", 11, 2, "M-9")},
		) {
			t.Error("unrelated rows matched with placements swapped")
		}
	})
}

func TestReconcile_Totality(t *testing.T) {
	svc := NewReconcileService(ReconcileConfig{})
	ctx := context.Background()

	trendyol := []domain.TrendyolListing{
		tyListing("100", "", "", "A1", 10, 1),
		tyListing("200", "", "", "A2", 20, 2),
		tyListing("300", "", "", "A3", 30, 3),
	}
	hepsiburada := []domain.HepsiburadaListing{
		hbListing("200", "HB-200", "B1", 21, 5, ""),
		hbListing("900", "HB-900", "B2", 90, 6, ""),
	}

	unified, err := svc.Reconcile(ctx, trendyol, hepsiburada)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	matches := 0
	for _, record := range unified {
		if record.Matched {
			matches++
		}
	}

	if matches != 1 {
		t.Errorf("matches = %d, want 1", matches)
	}
	if want := len(trendyol) + len(hepsiburada) - matches; len(unified) != want {
		t.Errorf("len(unified) = %d, want |A|+|B|-matches = %d", len(unified), want)
	}

	// Every input row appears exactly once.
	seen := make(map[string]int)
	for _, record := range unified {
		seen[record.StockID]++
	}
	for _, id := range []string{"100", "200", "300", "900"} {
		if seen[id] != 1 {
			t.Errorf("StockID %q appears %d times, want 1", id, seen[id])
		}
	}
}

func TestReconcile_UnmatchedTrendyolHasNoCrossReference(t *testing.T) {
	svc := NewReconcileService(ReconcileConfig{})

	trendyol := []domain.TrendyolListing{
		tyListing("100", "", "", "Lonely", 10, 1),
	}
	hepsiburada := []domain.HepsiburadaListing{
		hbListing("900", "HB-STALE", "Other", 90, 6, ""),
	}

	unified, err := svc.Reconcile(context.Background(), trendyol, hepsiburada)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, record := range unified {
		if record.StockID == "100" {
			if record.Matched {
				t.Error("unmatched Trendyol record reported as matched")
			}
			// The cross-reference must be empty, never borrowed from an
			// unrelated Hepsiburada row.
			if record.HepsiburadaID != "" {
				t.Errorf("HepsiburadaID = %q, want empty", record.HepsiburadaID)
			}
		}
	}
}

func TestReconcile_MalformedListings(t *testing.T) {
	svc := NewReconcileService(ReconcileConfig{})
	ctx := context.Background()

	t.Run("trendyol row without barcode", func(t *testing.T) {
		trendyol := []domain.TrendyolListing{
			tyListing("", "SKU-1", "", "No barcode", 10, 1),
		}

		_, err := svc.Reconcile(ctx, trendyol, nil)
		if !errors.Is(err, domain.ErrMalformedListing) {
			t.Errorf("error = %v, want ErrMalformedListing", err)
		}
	})

	t.Run("hepsiburada row without listing ID", func(t *testing.T) {
		hepsiburada := []domain.HepsiburadaListing{
			hbListing("", "HB-1", "No ID", 10, 1, "111"),
		}

		_, err := svc.Reconcile(ctx, nil, hepsiburada)
		if !errors.Is(err, domain.ErrMalformedListing) {
			t.Errorf("error = %v, want ErrMalformedListing", err)
		}
	})
}

func TestReconcile_EmptyInputs(t *testing.T) {
	svc := NewReconcileService(ReconcileConfig{})
	ctx := context.Background()

	t.Run("both empty", func(t *testing.T) {
		unified, err := svc.Reconcile(ctx, nil, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(unified) != 0 {
			t.Errorf("len(unified) = %d, want 0", len(unified))
		}
	})

	t.Run("only hepsiburada rows", func(t *testing.T) {
		hepsiburada := []domain.HepsiburadaListing{
			hbListing("900", "HB-900", "Solo", 90, 6, ""),
		}

		unified, err := svc.Reconcile(ctx, nil, hepsiburada)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(unified) != 1 {
			t.Fatalf("len(unified) = %d, want 1", len(unified))
		}
		if unified[0].StockID != "900" || unified[0].HepsiburadaID != "HB-900" {
			t.Errorf("record = %+v, want Hepsiburada fields carried over", unified[0])
		}
	})
}

func TestReconcile_Idempotent(t *testing.T) {
	svc := NewReconcileService(ReconcileConfig{})
	ctx := context.Background()

	trendyol := []domain.TrendyolListing{
		tyListing("100", "", "M-1", "A1", 10, 1),
		tyListing("200", "S-2", "", "A2", 20, 2),
	}
	hepsiburada := []domain.HepsiburadaListing{
		hbListing("S-2", "HB-1", "B1", 21, 5, ""),
		hbListing("900", "HB-2", "B2", 90, 6, "M-1"),
	}

	first, err := svc.Reconcile(ctx, trendyol, hepsiburada)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Reconcile(ctx, trendyol, hepsiburada)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated reconcile differs:\nfirst  = %+v\nsecond = %+v", first, second)
	}
}

func TestReconcile_ContextCancellation(t *testing.T) {
	svc := NewReconcileService(ReconcileConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	trendyol := []domain.TrendyolListing{
		tyListing("100", "", "", "A1", 10, 1),
	}

	_, err := svc.Reconcile(ctx, trendyol, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
