// Package worker processes booking events outside the request path.
package worker

import (
	"context"
	"encoding/json"

	"github.com/Domenick1991/busbooking/internal/domain"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Journal interface {
	Append(ctx context.Context, event domain.BookingEvent) error
}

type Notifier interface {
	Send(ctx context.Context, event domain.BookingEvent) error
}

type Handler struct {
	journal  Journal
	notifier Notifier
	logger   *zap.Logger
}

// NewHandler builds a handler; journal may be nil when no database is configured.
func NewHandler(journal Journal, notifier Notifier, logger *zap.Logger) *Handler {
	return &Handler{journal: journal, notifier: notifier, logger: logger}
}

// Handle journals and announces one event. Undecodable messages are
// logged and skipped; journal errors are returned so the message is
// redelivered. Notification failures are not retried.
func (h *Handler) Handle(ctx context.Context, msg kafka.Message) error {
	var event domain.BookingEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		h.logger.Warn("decode event error", zap.Int64("offset", msg.Offset), zap.Error(err))
		return nil
	}

	if h.journal != nil {
		if err := h.journal.Append(ctx, event); err != nil {
			return err
		}
	}

	if err := h.notifier.Send(ctx, event); err != nil {
		h.logger.Warn("notification failed", zap.String("booking_id", event.BookingID), zap.Error(err))
	}
	return nil
}
