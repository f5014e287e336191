package domain

import "time"

type FlightStatus string

const (
	FlightStatusActive    FlightStatus = "ACTIVE"
	FlightStatusCancelled FlightStatus = "CANCELLED"
)

type Flight struct {
	ID             string       `json:"id"`
	Airline        string       `json:"airline"`
	FlightNumber   string       `json:"flight_number"`
	FromPlace      string       `json:"from_place"`
	ToPlace        string       `json:"to_place"`
	DepartureTime  time.Time    `json:"departure_time"`
	ArrivalTime    time.Time    `json:"arrival_time"`
	TotalSeats     int          `json:"total_seats"`
	AvailableSeats int          `json:"available_seats"`
	PriceCents     int64        `json:"price_cents"`
	Status         FlightStatus `json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
