package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
)

const (
	MinPassengerAge = 1
	MaxPassengerAge = 100
)

type Passenger struct {
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Gender string `json:"gender"`
}

// Validate reports a PassengerError when the age is outside 1..100.
func (p Passenger) Validate() error {
	if p.Age < MinPassengerAge || p.Age > MaxPassengerAge {
		return &PassengerError{Age: p.Age}
	}
	return nil
}

type Booking struct {
	ID          string
	SeatIDs     []int
	Date        string
	Passenger   Passenger
	Meals       []Meal
	TotalAmount decimal.Decimal
	Status      BookingStatus
	CreatedAt   time.Time
}

// Clone returns a copy that shares no slices with b.
func (b *Booking) Clone() *Booking {
	c := *b
	c.SeatIDs = append([]int(nil), b.SeatIDs...)
	c.Meals = append([]Meal(nil), b.Meals...)
	return &c
}
