package domain

import "time"

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

type MealType string

const (
	MealTypeVeg    MealType = "VEG"
	MealTypeNonVeg MealType = "NON_VEG"
	MealTypeNone   MealType = "NONE"
)

type Passenger struct {
	Name       string `json:"name"`
	Gender     string `json:"gender"`
	Age        int    `json:"age"`
	SeatNumber string `json:"seat_number"`
	Email      string `json:"email"`
}

// Booking snapshots the flight summary and the total amount at creation time;
// neither is recomputed when the flight later changes.
type Booking struct {
	ID               int64         `json:"id"`
	PNR              string        `json:"pnr"`
	FlightID         string        `json:"flight_id"`
	FlightNumber     string        `json:"flight_number"`
	Airline          string        `json:"airline"`
	FromPlace        string        `json:"from_place"`
	ToPlace          string        `json:"to_place"`
	DepartureTime    time.Time     `json:"departure_time"`
	UserName         string        `json:"user_name"`
	UserEmail        string        `json:"user_email"`
	JourneyDate      time.Time     `json:"journey_date"`
	SeatCount        int           `json:"seat_count"`
	MealType         MealType      `json:"meal_type"`
	TotalAmountCents int64         `json:"total_amount_cents"`
	Status           BookingStatus `json:"status"`
	Passengers       []Passenger   `json:"passengers"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}
