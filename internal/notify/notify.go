package notify

import (
	"context"
	"fmt"

	"github.com/Domenick1991/busbooking/internal/domain"
	"go.uber.org/zap"
)

// Sender delivers passenger notifications. Delivery is a structured log
// line until an SMS or e-mail gateway is configured.
type Sender struct {
	logger *zap.Logger
}

func NewSender(logger *zap.Logger) *Sender {
	return &Sender{logger: logger}
}

func (s *Sender) Send(ctx context.Context, event domain.BookingEvent) error {
	message, err := Message(event)
	if err != nil {
		return err
	}
	s.logger.Info("notification sent",
		zap.String("booking_id", event.BookingID),
		zap.String("passenger", event.PassengerName),
		zap.String("message", message),
	)
	return nil
}

// Message renders the text a passenger receives for event.
func Message(event domain.BookingEvent) (string, error) {
	switch event.Type {
	case domain.EventBookingCreated:
		return fmt.Sprintf("Dear %s, booking %s for %s is confirmed: %d seat(s), total %s.",
			event.PassengerName, event.BookingID, event.Date, len(event.SeatIDs), event.TotalAmount.StringFixed(2)), nil
	case domain.EventBookingCancelled:
		return fmt.Sprintf("Dear %s, booking %s for %s has been cancelled.",
			event.PassengerName, event.BookingID, event.Date), nil
	default:
		return "", fmt.Errorf("unknown event type %q", event.Type)
	}
}
