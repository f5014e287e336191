package domain

import (
	"errors"
	"fmt"
)

var (
	ErrFlightNotFound     = errors.New("flight not found")
	ErrInsufficientSeats  = errors.New("not enough seats available")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrAlreadyCancelled   = errors.New("booking is already cancelled")
	ErrServiceUnavailable = errors.New("flight service is currently unavailable")
	ErrDuplicatePNR       = errors.New("pnr already exists")
)

// CompensationError reports that seats were reserved but could not be given
// back after a later step failed. Inventory is now inconsistent and needs
// manual reconciliation, so this must stay distinguishable from the cause.
type CompensationError struct {
	FlightID   string
	Seats      int
	Cause      error
	ReleaseErr error
}

func (e *CompensationError) Error() string {
	return fmt.Sprintf("compensation failed for flight %s (%d seats held): cause: %v, release: %v",
		e.FlightID, e.Seats, e.Cause, e.ReleaseErr)
}

func (e *CompensationError) Unwrap() error {
	return e.Cause
}
