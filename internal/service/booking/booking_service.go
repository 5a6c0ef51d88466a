package booking

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/busbooking/internal/domain"
	"github.com/Domenick1991/busbooking/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) (*domain.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (*domain.Booking, error)
	ListBookings(ctx context.Context) ([]domain.Booking, error)
}

// Inventory is the part of the inventory manager the ledger drives from
// inside its own transactions.
type Inventory interface {
	Reserve(tx *repository.Tx, date string, seatIDs []int) ([]domain.Seat, error)
	Release(tx *repository.Tx, date string, seatIDs []int) int
	MustHold(tx *repository.Tx, date string, seatIDs []int)
	Occupancy(tx *repository.Tx, date string) (float64, bool)
	Invalidate(ctx context.Context, date string)
}

type MealCatalog interface {
	Resolve(ids []int) []domain.Meal
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type Metrics interface {
	TrackOperation(operation, status string)
	TrackSeatsReserved(n int)
	SetOccupancy(date string, rate float64)
}

type BookingService struct {
	store              *repository.Store
	inventory          Inventory
	meals              MealCatalog
	producer           Producer
	metrics            Metrics
	logger             *zap.Logger
	bookingTopic       string
	notificationsTopic string
	now                func() time.Time
	newID              func() string
}

type CreateBookingInput struct {
	Date      string           `json:"date"`
	SeatIDs   []int            `json:"seat_ids"`
	Passenger domain.Passenger `json:"passenger"`
	MealIDs   []int            `json:"meal_ids"`
}

type BookingServiceOption func(*BookingService)

// WithProducer publishes every ledger change to bookingTopic.
func WithProducer(producer Producer, bookingTopic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.bookingTopic = bookingTopic
	}
}

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithMetrics(metrics Metrics) BookingServiceOption {
	return func(s *BookingService) {
		s.metrics = metrics
	}
}

func WithLogger(logger *zap.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.logger = logger
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func NewBookingService(
	store *repository.Store,
	inventory Inventory,
	meals MealCatalog,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		store:     store,
		inventory: inventory,
		meals:     meals,
		logger:    zap.NewNop(),
		now:       time.Now,
		newID:     shortID,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func shortID() string {
	return uuid.NewString()[:8]
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if err := input.Passenger.Validate(); err != nil {
		s.track("create", err)
		return nil, err
	}

	meals := s.meals.Resolve(input.MealIDs)
	mealCost := decimal.Zero
	for _, m := range meals {
		mealCost = mealCost.Add(m.Price)
	}

	var (
		created   *domain.Booking
		occupancy float64
	)
	err := s.store.Update(ctx, func(tx *repository.Tx) error {
		seats, err := s.inventory.Reserve(tx, input.Date, input.SeatIDs)
		if err != nil {
			return err
		}

		total := mealCost
		seatIDs := make([]int, 0, len(seats))
		for _, seat := range seats {
			total = total.Add(seat.Price)
			seatIDs = append(seatIDs, seat.ID)
		}

		booking := &domain.Booking{
			ID:          s.uniqueID(tx),
			SeatIDs:     seatIDs,
			Date:        input.Date,
			Passenger:   input.Passenger,
			Meals:       meals,
			TotalAmount: total,
			Status:      domain.BookingStatusConfirmed,
			CreatedAt:   s.now(),
		}
		tx.PutBooking(booking)

		created = booking.Clone()
		occupancy, _ = s.inventory.Occupancy(tx, input.Date)
		return nil
	})
	if err != nil {
		s.track("create", err)
		return nil, err
	}

	s.inventory.Invalidate(ctx, created.Date)
	s.track("create", nil)
	if s.metrics != nil {
		s.metrics.TrackSeatsReserved(len(created.SeatIDs))
		s.metrics.SetOccupancy(created.Date, occupancy)
	}
	s.logger.Info("booking created",
		zap.String("booking_id", created.ID),
		zap.String("date", created.Date),
		zap.Ints("seat_ids", created.SeatIDs),
		zap.Int("meals", len(created.Meals)),
		zap.String("total_amount", created.TotalAmount.StringFixed(2)),
	)
	if err := s.publish(ctx, domain.EventBookingCreated, created); err != nil {
		s.logger.Warn("failed to publish event", zap.String("event", domain.EventBookingCreated), zap.String("booking_id", created.ID), zap.Error(err))
	}
	return created, nil
}

// CancelBooking frees the booking's seats and removes it from the ledger
// in one transaction.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	var (
		cancelled *domain.Booking
		occupancy float64
	)
	err := s.store.Update(ctx, func(tx *repository.Tx) error {
		current, ok := tx.Booking(bookingID)
		if !ok {
			return &domain.BookingError{BookingID: bookingID}
		}

		s.inventory.MustHold(tx, current.Date, current.SeatIDs)
		s.inventory.Release(tx, current.Date, current.SeatIDs)
		tx.DeleteBooking(bookingID)

		cancelled = current.Clone()
		occupancy, _ = s.inventory.Occupancy(tx, current.Date)
		return nil
	})
	if err != nil {
		s.track("cancel", err)
		return nil, err
	}

	s.inventory.Invalidate(ctx, cancelled.Date)
	s.track("cancel", nil)
	if s.metrics != nil {
		s.metrics.SetOccupancy(cancelled.Date, occupancy)
	}
	s.logger.Info("booking cancelled",
		zap.String("booking_id", cancelled.ID),
		zap.String("date", cancelled.Date),
		zap.Ints("seat_ids", cancelled.SeatIDs),
	)
	if err := s.publish(ctx, domain.EventBookingCancelled, cancelled); err != nil {
		s.logger.Warn("failed to publish event", zap.String("event", domain.EventBookingCancelled), zap.String("booking_id", cancelled.ID), zap.Error(err))
	}
	return cancelled, nil
}

func (s *BookingService) GetBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	var found *domain.Booking
	err := s.store.View(ctx, func(tx *repository.Tx) error {
		b, ok := tx.Booking(bookingID)
		if !ok {
			return &domain.BookingError{BookingID: bookingID}
		}
		found = b.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (s *BookingService) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	var out []domain.Booking
	err := s.store.View(ctx, func(tx *repository.Tx) error {
		live := tx.Bookings()
		out = make([]domain.Booking, 0, len(live))
		for _, b := range live {
			out = append(out, *b.Clone())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *BookingService) uniqueID(tx *repository.Tx) string {
	for {
		id := s.newID()
		if _, taken := tx.Booking(id); !taken {
			return id
		}
	}
}

func (s *BookingService) track(operation string, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.TrackOperation(operation, ErrorKind(err))
}

// ErrorKind maps an error to a short label for metrics and API responses.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrSeatNotFound):
		return "seat_not_found"
	case errors.Is(err, domain.ErrSeatAlreadyBooked):
		return "seat_already_booked"
	case errors.Is(err, domain.ErrInvalidPassenger):
		return "invalid_passenger"
	case errors.Is(err, domain.ErrBookingNotFound):
		return "booking_not_found"
	default:
		return "error"
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := domain.NewBookingEvent(eventType, booking, s.now())
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.ID, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, booking.ID, event)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
