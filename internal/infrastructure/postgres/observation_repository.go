package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"github.com/mguzelocak/TrendyolApiPriceControl/internal/domain"
)

// psql builds queries with Postgres-style $N placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ObservationRepository persists the append-only price ledger in the
// price_tracking table. Writes only ever insert; the two read queries are
// side-effect free and make no ordering guarantee.
type ObservationRepository struct {
	db       *sql.DB
	location *time.Location
}

// New opens a connection pool against dsn and verifies it with a ping.
// location is the marketplace timezone used for day-boundary arithmetic.
func New(dsn string, location *time.Location) (*ObservationRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if location == nil {
		location = time.UTC
	}

	return &ObservationRepository{db: db, location: location}, nil
}

// Close releases the underlying connection pool.
func (r *ObservationRepository) Close() error {
	return r.db.Close()
}

// Insert appends the observations in a single transaction.
func (r *ObservationRepository) Insert(ctx context.Context, observations []domain.PriceObservation) error {
	if len(observations) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	builder := psql.Insert("price_tracking").
		Columns("barcode", "title", "price", "observed_at")
	for _, obs := range observations {
		builder = builder.Values(obs.Barcode, obs.Title, obs.Price, obs.ObservedAt)
	}

	if _, err := builder.RunWith(tx).ExecContext(ctx); err != nil {
		return fmt.Errorf("inserting %d observations: %w", len(observations), err)
	}

	return tx.Commit()
}

// MinPriceSince returns the minimum price observed for barcode in the
// trailing window of the given number of days, ending today inclusive.
// Returns ErrNoHistory when the window holds no rows for the barcode; a
// real price of zero is never used as an absence signal.
func (r *ObservationRepository) MinPriceSince(ctx context.Context, barcode string, days int) (float64, error) {
	if barcode == "" || days <= 0 {
		return 0, domain.ErrInvalidRequest
	}

	start, end := windowBounds(time.Now().In(r.location), days)

	var min sql.NullFloat64
	err := psql.Select("MIN(price)").
		From("price_tracking").
		Where(sq.Eq{"barcode": barcode}).
		Where(sq.GtOrEq{"observed_at": start}).
		Where(sq.Lt{"observed_at": end}).
		RunWith(r.db).
		QueryRowContext(ctx).
		Scan(&min)
	if err != nil {
		return 0, fmt.Errorf("querying window minimum: %w", err)
	}
	if !min.Valid {
		return 0, domain.ErrNoHistory
	}

	return min.Float64, nil
}

// ObservationsForMonth returns every observation in the given calendar
// month, across all products. An empty month is reported as ErrNoHistory,
// not as an empty success.
func (r *ObservationRepository) ObservationsForMonth(ctx context.Context, month time.Month, year int) ([]domain.PriceObservation, error) {
	start, end := monthBounds(month, year, r.location)

	rows, err := psql.Select("barcode", "title", "price", "observed_at").
		From("price_tracking").
		Where(sq.GtOrEq{"observed_at": start}).
		Where(sq.Lt{"observed_at": end}).
		RunWith(r.db).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("querying month: %w", err)
	}
	defer rows.Close()

	var observations []domain.PriceObservation
	for rows.Next() {
		var obs domain.PriceObservation
		if err := rows.Scan(&obs.Barcode, &obs.Title, &obs.Price, &obs.ObservedAt); err != nil {
			return nil, err
		}
		observations = append(observations, obs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(observations) == 0 {
		return nil, domain.ErrNoHistory
	}

	return observations, nil
}

// windowBounds computes the half-open interval covering the trailing
// window of the given number of days ending on now's calendar day. A
// 1-day window spans today only: [startOfToday, startOfTomorrow).
func windowBounds(now time.Time, days int) (start, end time.Time) {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start = startOfDay.AddDate(0, 0, -(days - 1))
	end = startOfDay.AddDate(0, 0, 1)
	return start, end
}

// monthBounds computes the half-open interval covering one calendar month.
func monthBounds(month time.Month, year int, location *time.Location) (start, end time.Time) {
	start = time.Date(year, month, 1, 0, 0, 0, 0, location)
	end = start.AddDate(0, 1, 0)
	return start, end
}
