package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventBookingCreated   = "booking_created"
	EventBookingCancelled = "booking_cancelled"
)

// BookingEvent is the payload published for every ledger change.
type BookingEvent struct {
	Type          string          `json:"type"`
	BookingID     string          `json:"booking_id"`
	Date          string          `json:"date"`
	SeatIDs       []int           `json:"seat_ids"`
	PassengerName string          `json:"passenger_name"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Status        string          `json:"status"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

func NewBookingEvent(eventType string, b *Booking, at time.Time) BookingEvent {
	return BookingEvent{
		Type:          eventType,
		BookingID:     b.ID,
		Date:          b.Date,
		SeatIDs:       append([]int(nil), b.SeatIDs...),
		PassengerName: b.Passenger.Name,
		TotalAmount:   b.TotalAmount,
		Status:        string(b.Status),
		OccurredAt:    at,
	}
}
