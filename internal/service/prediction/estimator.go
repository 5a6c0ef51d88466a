package prediction

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/Domenick1991/busbooking/internal/domain"
)

const (
	baseChance        = 95.0
	lateBookingDays   = 2
	latePenalty       = 15.0
	highOccupancy     = 0.8
	highPenalty       = 20.0
	moderateOccupancy = 0.5
	moderatePenalty   = 5.0
	maxNoise          = 5.0
)

// Estimator turns lead time and occupancy into a confirmation chance.
// Noise returns a value in [0,1) and is scaled to the [0,5) variance band.
type Estimator struct {
	Noise func() float64
}

func NewEstimator() *Estimator {
	return &Estimator{Noise: rand.Float64}
}

// Base is the estimate before noise: 95 minus the late-booking and
// occupancy penalties. Only the higher occupancy band applies.
func Base(daysBefore int, occupancy float64) float64 {
	chance := baseChance
	if daysBefore < lateBookingDays {
		chance -= latePenalty
	}
	if occupancy > highOccupancy {
		chance -= highPenalty
	} else if occupancy > moderateOccupancy {
		chance -= moderatePenalty
	}
	return chance
}

// Estimate returns a percentage in [0,100] rounded to two decimals.
func (e *Estimator) Estimate(daysBefore int, occupancy float64) float64 {
	chance := Base(daysBefore, occupancy) - e.Noise()*maxNoise
	chance = math.Max(0, math.Min(100, chance))
	return math.Round(chance*100) / 100
}

func RiskLevel(probability float64) domain.RiskLevel {
	switch {
	case probability >= 80:
		return domain.RiskLow
	case probability >= 50:
		return domain.RiskMedium
	default:
		return domain.RiskHigh
	}
}

// DaysBefore counts whole days from now until midnight of date in now's
// location, floored at zero. ok is false when date is not YYYY-MM-DD.
func DaysBefore(date string, now time.Time) (days int, ok bool) {
	departure, err := time.ParseInLocation(time.DateOnly, date, now.Location())
	if err != nil {
		return 0, false
	}
	days = int(math.Floor(departure.Sub(now).Hours() / 24))
	if days < 0 {
		days = 0
	}
	return days, true
}
