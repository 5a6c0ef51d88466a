package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/busbooking/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// JournalRepository keeps an append-only history of booking events.
// It is never read back into the Store.
type JournalRepository interface {
	EnsureSchema(ctx context.Context) error
	Append(ctx context.Context, event domain.BookingEvent) error
}

type PGJournalRepository struct {
	db *pgxpool.Pool
}

func NewJournalRepository(db *pgxpool.Pool) JournalRepository {
	return &PGJournalRepository{db: db}
}

func (r *PGJournalRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS booking_events (
            id             BIGSERIAL PRIMARY KEY,
            event_type     TEXT        NOT NULL,
            booking_id     TEXT        NOT NULL,
            travel_date    TEXT        NOT NULL,
            seat_ids       INTEGER[]   NOT NULL,
            passenger_name TEXT        NOT NULL,
            total_amount   NUMERIC(12, 2) NOT NULL,
            status         TEXT        NOT NULL,
            occurred_at    TIMESTAMPTZ NOT NULL,
            recorded_at    TIMESTAMPTZ NOT NULL DEFAULT now()
        )
    `)
	if err != nil {
		return fmt.Errorf("create booking_events: %w", err)
	}
	return nil
}

func (r *PGJournalRepository) Append(ctx context.Context, event domain.BookingEvent) error {
	seatIDs := make([]int32, 0, len(event.SeatIDs))
	for _, id := range event.SeatIDs {
		seatIDs = append(seatIDs, int32(id))
	}

	_, err := r.db.Exec(ctx, `INSERT INTO booking_events (event_type, booking_id, travel_date, seat_ids, passenger_name, total_amount, status, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		event.Type, event.BookingID, event.Date, seatIDs, event.PassengerName, event.TotalAmount.StringFixed(2), event.Status, event.OccurredAt)
	if err != nil {
		return fmt.Errorf("append %s for booking %s: %w", event.Type, event.BookingID, err)
	}
	return nil
}

var _ JournalRepository = (*PGJournalRepository)(nil)
