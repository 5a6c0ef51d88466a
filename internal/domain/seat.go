package domain

import "github.com/shopspring/decimal"

type SeatType string

const (
	SeatTypeLower SeatType = "lower"
	SeatTypeUpper SeatType = "upper"
)

type Seat struct {
	ID       int             `json:"id"`
	Number   string          `json:"number"`
	Type     SeatType        `json:"type"`
	Price    decimal.Decimal `json:"price"`
	IsBooked bool            `json:"is_booked"`
}

// SeatsPerDeck is the number of berths on each deck of the bus.
const SeatsPerDeck = 10

var (
	LowerSeatPrice = decimal.NewFromInt(800)
	UpperSeatPrice = decimal.NewFromInt(650)
)
