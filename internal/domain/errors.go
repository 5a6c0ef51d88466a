package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSeatNotFound      = errors.New("seat not found")
	ErrSeatAlreadyBooked = errors.New("seat is already booked")
	ErrInvalidPassenger  = errors.New("invalid passenger")
	ErrBookingNotFound   = errors.New("booking not found")
)

// SeatError ties ErrSeatNotFound or ErrSeatAlreadyBooked to the seat that caused it.
type SeatError struct {
	SeatID int
	Number string
	Err    error
}

func (e *SeatError) Error() string {
	if errors.Is(e.Err, ErrSeatAlreadyBooked) && e.Number != "" {
		return fmt.Sprintf("seat %s is already booked", e.Number)
	}
	return fmt.Sprintf("seat id %d: %v", e.SeatID, e.Err)
}

func (e *SeatError) Unwrap() error { return e.Err }

type PassengerError struct {
	Age int
}

func (e *PassengerError) Error() string {
	return fmt.Sprintf("%v: age %d must be between %d and %d", ErrInvalidPassenger, e.Age, MinPassengerAge, MaxPassengerAge)
}

func (e *PassengerError) Unwrap() error { return ErrInvalidPassenger }

type BookingError struct {
	BookingID string
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%v: %s", ErrBookingNotFound, e.BookingID)
}

func (e *BookingError) Unwrap() error { return ErrBookingNotFound }
