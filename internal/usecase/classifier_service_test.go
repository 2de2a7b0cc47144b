package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mguzelocak/TrendyolApiPriceControl/internal/domain"
)

// fakeObservationRepo serves window minimums from a fixed table.
type fakeObservationRepo struct {
	mins  map[int]float64 // days -> minimum
	err   error
	calls int
}

func (f *fakeObservationRepo) Insert(ctx context.Context, observations []domain.PriceObservation) error {
	return nil
}

func (f *fakeObservationRepo) MinPriceSince(ctx context.Context, barcode string, days int) (float64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	min, ok := f.mins[days]
	if !ok {
		return 0, domain.ErrNoHistory
	}
	return min, nil
}

func (f *fakeObservationRepo) ObservationsForMonth(ctx context.Context, month time.Month, year int) ([]domain.PriceObservation, error) {
	return nil, domain.ErrNoHistory
}

// fakeCache counts hits without storing anything unless primed.
type fakeCache struct {
	data    map[string]interface{}
	setErr  error
	getErr  error
	setKeys []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]interface{})}
}

func (f *fakeCache) Get(ctx context.Context, key string) (interface{}, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.data[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return v, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	f.setKeys = append(f.setKeys, key)
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func (f *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := f.data[key]
	return ok, nil
}

func TestClassify_TierOrdering(t *testing.T) {
	ctx := context.Background()

	t.Run("nested windows report the tightest tier", func(t *testing.T) {
		// With a real ledger the 7-day minimum is never below the 14-day
		// one (the wider window contains the narrower), so any price at or
		// under the 7-day minimum lands in the 7-day tier first.
		repo := &fakeObservationRepo{mins: map[int]float64{7: 90, 14: 80, 30: 70}}
		svc := NewClassifierService(repo, nil, ClassifierConfig{})

		tests := []struct {
			name     string
			newPrice float64
			want     domain.PriceClass
		}{
			{"below all window minimums", 50, domain.ClassOneWeekLow},
			{"equal to 7-day minimum is inclusive", 90, domain.ClassOneWeekLow},
			{"under 7-day minimum even when above the 14-day one", 85, domain.ClassOneWeekLow},
			{"above every window minimum", 95, domain.ClassNone},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := svc.Classify(ctx, "8682125482126", tt.newPrice)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got != tt.want {
					t.Errorf("Classify(%v) = %q, want %q", tt.newPrice, got, tt.want)
				}
			})
		}
	})

	t.Run("wider tiers are reached when tighter windows do not qualify", func(t *testing.T) {
		repo := &fakeObservationRepo{mins: map[int]float64{7: 70, 14: 80, 30: 90}}
		svc := NewClassifierService(repo, nil, ClassifierConfig{})

		tests := []struct {
			name     string
			newPrice float64
			want     domain.PriceClass
		}{
			{"misses the 7-day tier but hits the 14-day one", 75, domain.ClassTwoWeekLow},
			{"equal to 14-day minimum", 80, domain.ClassTwoWeekLow},
			{"misses both weekly tiers but hits the 30-day one", 85, domain.ClassOneMonthLow},
			{"equal to 30-day minimum", 90, domain.ClassOneMonthLow},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				got, err := svc.Classify(ctx, "8682125482126", tt.newPrice)
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if got != tt.want {
					t.Errorf("Classify(%v) = %q, want %q", tt.newPrice, got, tt.want)
				}
			})
		}
	})
}

func TestClassify_MissingWindows(t *testing.T) {
	ctx := context.Background()

	t.Run("no history at all classifies as none", func(t *testing.T) {
		repo := &fakeObservationRepo{mins: map[int]float64{}}
		svc := NewClassifierService(repo, nil, ClassifierConfig{})

		got, err := svc.Classify(ctx, "123", 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != domain.ClassNone {
			t.Errorf("Classify = %q, want none for empty history", got)
		}
	})

	t.Run("empty tight window falls through to wider window", func(t *testing.T) {
		// Nothing in the last 7 days, but a 30-day minimum exists.
		repo := &fakeObservationRepo{mins: map[int]float64{30: 70}}
		svc := NewClassifierService(repo, nil, ClassifierConfig{})

		got, err := svc.Classify(ctx, "123", 60)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != domain.ClassOneMonthLow {
			t.Errorf("Classify = %q, want 1-month-low", got)
		}
	})
}

func TestClassify_InvalidInput(t *testing.T) {
	repo := &fakeObservationRepo{mins: map[int]float64{}}
	svc := NewClassifierService(repo, nil, ClassifierConfig{})
	ctx := context.Background()

	t.Run("empty barcode", func(t *testing.T) {
		_, err := svc.Classify(ctx, "", 10)
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("non-positive price", func(t *testing.T) {
		_, err := svc.Classify(ctx, "123", 0)
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})
}

func TestClassify_RepositoryFailure(t *testing.T) {
	repoErr := errors.New("connection refused")
	repo := &fakeObservationRepo{err: repoErr}
	svc := NewClassifierService(repo, nil, ClassifierConfig{})

	_, err := svc.Classify(context.Background(), "123", 10)
	if !errors.Is(err, repoErr) {
		t.Errorf("error = %v, want wrapped repository error", err)
	}
}

func TestClassify_Caching(t *testing.T) {
	ctx := context.Background()

	t.Run("window minimums are cached after first lookup", func(t *testing.T) {
		repo := &fakeObservationRepo{mins: map[int]float64{7: 90, 14: 80, 30: 70}}
		cache := newFakeCache()
		svc := NewClassifierService(repo, cache, ClassifierConfig{CacheTTL: time.Minute})

		if _, err := svc.Classify(ctx, "123", 85); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.calls != 3 {
			t.Fatalf("repo.calls = %d, want 3 on cold cache", repo.calls)
		}

		if _, err := svc.Classify(ctx, "123", 85); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.calls != 3 {
			t.Errorf("repo.calls = %d, want 3 after warm cache", repo.calls)
		}
	})

	t.Run("cache failure degrades to repository", func(t *testing.T) {
		repo := &fakeObservationRepo{mins: map[int]float64{7: 90, 14: 80, 30: 70}}
		cache := newFakeCache()
		cache.getErr = domain.ErrCacheUnavailable
		cache.setErr = domain.ErrCacheUnavailable
		svc := NewClassifierService(repo, cache, ClassifierConfig{CacheTTL: time.Minute})

		got, err := svc.Classify(ctx, "123", 85)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != domain.ClassOneWeekLow {
			t.Errorf("Classify = %q, want 1-week-low", got)
		}
	})

	t.Run("empty windows are not cached", func(t *testing.T) {
		repo := &fakeObservationRepo{mins: map[int]float64{}}
		cache := newFakeCache()
		svc := NewClassifierService(repo, cache, ClassifierConfig{CacheTTL: time.Minute})

		if _, err := svc.Classify(ctx, "123", 10); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cache.setKeys) != 0 {
			t.Errorf("cache.setKeys = %v, want no entries for empty windows", cache.setKeys)
		}
	})
}
