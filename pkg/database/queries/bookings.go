package queries

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hotelops/demand-forecaster/pkg/models"
)

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// ListAll streams every booking record ordered by arrival date. Used by
// the offline trainer when Postgres is the dataset source.
func (r *BookingRepository) ListAll(ctx context.Context) ([]models.BookingRecord, error) {
	query := `
		SELECT arrival_date, lead_time, stays_in_weekend_nights, stays_in_week_nights,
		       adults, children, babies, adr, previous_bookings_not_canceled
		FROM bookings
		ORDER BY arrival_date`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var records []models.BookingRecord
	for rows.Next() {
		var rec models.BookingRecord
		if err := rows.Scan(
			&rec.ArrivalDate,
			&rec.LeadTime,
			&rec.StaysInWeekendNights,
			&rec.StaysInWeekNights,
			&rec.Adults,
			&rec.Children,
			&rec.Babies,
			&rec.ADR,
			&rec.PreviousBookingsNotCanceled,
		); err != nil {
			return nil, fmt.Errorf("failed to scan booking row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bookings: %w", err)
	}

	return records, nil
}

// Count returns the number of stored booking records.
func (r *BookingRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}
