package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/busbooking/internal/domain"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockJournal struct {
	mock.Mock
}

func (m *MockJournal) Append(ctx context.Context, event domain.BookingEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, event domain.BookingEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func message(t *testing.T) (kafka.Message, domain.BookingEvent) {
	t.Helper()
	event := domain.BookingEvent{
		Type:          domain.EventBookingCreated,
		BookingID:     "abc12345",
		Date:          "2099-01-01",
		SeatIDs:       []int{1},
		PassengerName: "Meera",
		TotalAmount:   decimal.NewFromInt(800),
		Status:        string(domain.BookingStatusConfirmed),
		OccurredAt:    time.Date(2098, 12, 1, 0, 0, 0, 0, time.UTC),
	}
	data, err := json.Marshal(event)
	require.NoError(t, err)
	return kafka.Message{Key: []byte(event.BookingID), Value: data}, event
}

func byBooking(id string) interface{} {
	return mock.MatchedBy(func(e domain.BookingEvent) bool { return e.BookingID == id })
}

func TestHandler_Handle_Success(t *testing.T) {
	journal := &MockJournal{}
	notifier := &MockNotifier{}
	h := NewHandler(journal, notifier, zap.NewNop())
	ctx := context.Background()
	msg, event := message(t)

	journal.On("Append", ctx, byBooking(event.BookingID)).Return(nil).Once()
	notifier.On("Send", ctx, byBooking(event.BookingID)).Return(nil).Once()

	err := h.Handle(ctx, msg)

	assert.NoError(t, err)
	journal.AssertExpectations(t)
	notifier.AssertExpectations(t)

	got := journal.Calls[0].Arguments.Get(1).(domain.BookingEvent)
	assert.True(t, got.TotalAmount.Equal(event.TotalAmount))
	assert.Equal(t, event.SeatIDs, got.SeatIDs)
}

func TestHandler_Handle_JournalErrorStops(t *testing.T) {
	journal := &MockJournal{}
	notifier := &MockNotifier{}
	h := NewHandler(journal, notifier, zap.NewNop())
	ctx := context.Background()
	msg, _ := message(t)

	expectedErr := errors.New("db down")
	journal.On("Append", ctx, mock.Anything).Return(expectedErr).Once()

	err := h.Handle(ctx, msg)

	assert.Equal(t, expectedErr, err)
	notifier.AssertNotCalled(t, "Send")
}

func TestHandler_Handle_NotifierErrorIgnored(t *testing.T) {
	notifier := &MockNotifier{}
	h := NewHandler(nil, notifier, zap.NewNop())
	ctx := context.Background()
	msg, _ := message(t)

	notifier.On("Send", ctx, mock.Anything).Return(errors.New("gateway down")).Once()

	assert.NoError(t, h.Handle(ctx, msg))
	notifier.AssertExpectations(t)
}

func TestHandler_Handle_BadPayloadSkipped(t *testing.T) {
	journal := &MockJournal{}
	notifier := &MockNotifier{}
	h := NewHandler(journal, notifier, zap.NewNop())

	err := h.Handle(context.Background(), kafka.Message{Value: []byte("{broken")})

	assert.NoError(t, err)
	journal.AssertNotCalled(t, "Append")
	notifier.AssertNotCalled(t, "Send")
}
