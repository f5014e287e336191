package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	Create(ctx context.Context, flight *domain.Flight) error
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	ReserveSeats(ctx context.Context, flightID string, seats int) (*domain.Flight, error)
	ReleaseSeats(ctx context.Context, flightID string, seats int) (*domain.Flight, error)
	UpdateStatus(ctx context.Context, flightID string, status domain.FlightStatus) (*domain.Flight, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, airline, flight_number, from_place, to_place, departure_time, arrival_time, total_seats, available_seats, price_cents, status, created_at, updated_at`

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	return r.db.QueryRow(ctx, `INSERT INTO flights (id, airline, flight_number, from_place, to_place, departure_time, arrival_time, total_seats, available_seats, price_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`,
		flight.ID, flight.Airline, flight.FlightNumber, flight.FromPlace, flight.ToPlace,
		flight.DepartureTime, flight.ArrivalTime, flight.TotalSeats, flight.AvailableSeats,
		flight.PriceCents, flight.Status).
		Scan(&flight.CreatedAt, &flight.UpdatedAt)
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY departure_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	f, err := scanFlight(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	return f, nil
}

// ReserveSeats is the single atomic primitive guarding against overselling:
// the availability check and the decrement happen in one conditional UPDATE.
func (r *PGFlightRepository) ReserveSeats(ctx context.Context, flightID string, seats int) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `UPDATE flights
		SET available_seats = available_seats - $2, updated_at = now()
		WHERE id=$1 AND status=$3 AND available_seats >= $2
		RETURNING `+flightColumns, flightID, seats, domain.FlightStatusActive)
	f, err := scanFlight(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Distinguish a missing flight from one without capacity.
			if _, getErr := r.GetByID(ctx, flightID); getErr != nil {
				return nil, getErr
			}
			return nil, domain.ErrInsufficientSeats
		}
		return nil, err
	}
	return f, nil
}

// ReleaseSeats caps the counter at total_seats, so re-releasing already
// released seats never inflates availability.
func (r *PGFlightRepository) ReleaseSeats(ctx context.Context, flightID string, seats int) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `UPDATE flights
		SET available_seats = LEAST(available_seats + $2, total_seats), updated_at = now()
		WHERE id=$1
		RETURNING `+flightColumns, flightID, seats)
	f, err := scanFlight(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	return f, nil
}

// Flights are never hard-deleted; retiring one is a status transition.
func (r *PGFlightRepository) UpdateStatus(ctx context.Context, flightID string, status domain.FlightStatus) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `UPDATE flights SET status=$2, updated_at=now() WHERE id=$1
		RETURNING `+flightColumns, flightID, status)
	f, err := scanFlight(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFlightNotFound
		}
		return nil, err
	}
	return f, nil
}

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	if err := row.Scan(&f.ID, &f.Airline, &f.FlightNumber, &f.FromPlace, &f.ToPlace, &f.DepartureTime, &f.ArrivalTime, &f.TotalSeats, &f.AvailableSeats, &f.PriceCents, &f.Status, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
