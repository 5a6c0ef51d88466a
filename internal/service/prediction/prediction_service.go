package prediction

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/Domenick1991/busbooking/internal/domain"
	"github.com/Domenick1991/busbooking/internal/repository"
	"go.uber.org/zap"
)

type PredictionUseCase interface {
	Predict(ctx context.Context, bookingID string) (*domain.Prediction, error)
}

type Occupancy interface {
	Occupancy(tx *repository.Tx, date string) (float64, bool)
}

type Metrics interface {
	ObservePrediction(riskLevel string, probability float64)
}

type PredictionService struct {
	store        *repository.Store
	occupancy    Occupancy
	estimator    *Estimator
	metrics      Metrics
	logger       *zap.Logger
	now          func() time.Time
	fallbackDays func() int
}

type PredictionServiceOption func(*PredictionService)

func WithEstimator(e *Estimator) PredictionServiceOption {
	return func(s *PredictionService) {
		s.estimator = e
	}
}

func WithClock(now func() time.Time) PredictionServiceOption {
	return func(s *PredictionService) {
		s.now = now
	}
}

func WithMetrics(metrics Metrics) PredictionServiceOption {
	return func(s *PredictionService) {
		s.metrics = metrics
	}
}

func WithLogger(logger *zap.Logger) PredictionServiceOption {
	return func(s *PredictionService) {
		s.logger = logger
	}
}

func NewPredictionService(store *repository.Store, occupancy Occupancy, opts ...PredictionServiceOption) *PredictionService {
	s := &PredictionService{
		store:        store,
		occupancy:    occupancy,
		estimator:    NewEstimator(),
		logger:       zap.NewNop(),
		now:          time.Now,
		fallbackDays: func() int { return 1 + rand.IntN(10) },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Predict estimates how likely the booking stays confirmed, using the
// occupancy of its date at the time of the call.
func (s *PredictionService) Predict(ctx context.Context, bookingID string) (*domain.Prediction, error) {
	var (
		date string
		rate float64
	)
	err := s.store.View(ctx, func(tx *repository.Tx) error {
		b, ok := tx.Booking(bookingID)
		if !ok {
			return &domain.BookingError{BookingID: bookingID}
		}
		r, ok := s.occupancy.Occupancy(tx, b.Date)
		if !ok {
			panic(fmt.Sprintf("prediction: booking %s has no inventory for %q", b.ID, b.Date))
		}
		date, rate = b.Date, r
		return nil
	})
	if err != nil {
		return nil, err
	}

	days, ok := DaysBefore(date, s.now())
	if !ok {
		days = s.fallbackDays()
		s.logger.Debug("unparseable travel date, using fallback lead time", zap.String("date", date), zap.Int("days", days))
	}

	probability := s.estimator.Estimate(days, rate)
	prediction := &domain.Prediction{
		BookingID:   bookingID,
		Probability: probability,
		RiskLevel:   RiskLevel(probability),
	}
	if s.metrics != nil {
		s.metrics.ObservePrediction(string(prediction.RiskLevel), probability)
	}
	s.logger.Debug("prediction",
		zap.String("booking_id", bookingID),
		zap.Int("days_before", days),
		zap.Float64("occupancy", rate),
		zap.Float64("probability", probability),
	)
	return prediction, nil
}

var _ PredictionUseCase = (*PredictionService)(nil)
