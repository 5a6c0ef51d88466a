package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	bookingOperations *prometheus.CounterVec
	seatsReserved     prometheus.Counter
	occupancy         *prometheus.GaugeVec
	predictions       *prometheus.HistogramVec
}

// NewMetrics registers the booking collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		bookingOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bus_booking_operations_total",
				Help: "Booking operations by kind and outcome",
			},
			[]string{"operation", "status"},
		),
		seatsReserved: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "bus_seats_reserved_total",
				Help: "Seats reserved by successful bookings",
			},
		),
		occupancy: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "bus_occupancy_ratio",
				Help: "Share of booked seats per travel date",
			},
			[]string{"date"},
		),
		predictions: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bus_confirmation_probability_percent",
				Help:    "Confirmation probabilities returned to callers",
				Buckets: prometheus.LinearBuckets(0, 10, 11),
			},
			[]string{"risk_level"},
		),
	}
}

// TrackOperation counts a create/cancel attempt; status is "ok" or an error kind.
func (m *Metrics) TrackOperation(operation, status string) {
	m.bookingOperations.WithLabelValues(operation, status).Inc()
}

func (m *Metrics) TrackSeatsReserved(n int) {
	m.seatsReserved.Add(float64(n))
}

// SetOccupancy records the booked share of a travel date. Keys that are
// not YYYY-MM-DD dates are dropped so callers cannot mint label values.
func (m *Metrics) SetOccupancy(date string, rate float64) {
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return
	}
	m.occupancy.WithLabelValues(date).Set(rate)
}

func (m *Metrics) ObservePrediction(riskLevel string, probability float64) {
	m.predictions.WithLabelValues(riskLevel).Observe(probability)
}
