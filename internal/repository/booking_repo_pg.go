package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByPNR(ctx context.Context, pnr string) (*domain.Booking, error)
	GetByEmail(ctx context.Context, email string) ([]domain.Booking, error)
	CancelByPNR(ctx context.Context, pnr string) (*domain.Booking, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, pnr, flight_id, flight_number, airline, from_place, to_place, departure_time, user_name, user_email, journey_date, seat_count, meal_type, total_amount_cents, status, passengers, created_at, updated_at`

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	passengers, err := json.Marshal(booking.Passengers)
	if err != nil {
		return err
	}

	err = r.db.QueryRow(ctx, `INSERT INTO bookings (pnr, flight_id, flight_number, airline, from_place, to_place, departure_time, user_name, user_email, journey_date, seat_count, meal_type, total_amount_cents, status, passengers)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at`,
		booking.PNR, booking.FlightID, booking.FlightNumber, booking.Airline, booking.FromPlace,
		booking.ToPlace, booking.DepartureTime, booking.UserName, booking.UserEmail, booking.JourneyDate,
		booking.SeatCount, booking.MealType, booking.TotalAmountCents, booking.Status, passengers).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrDuplicatePNR
		}
		return err
	}
	return nil
}

func (r *PGBookingRepository) GetByPNR(ctx context.Context, pnr string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE pnr=$1`, pnr)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *PGBookingRepository) GetByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE user_email=$1 ORDER BY created_at`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// CancelByPNR flips CONFIRMED to CANCELLED in one conditional UPDATE, so two
// concurrent cancels for the same pnr cannot both succeed.
func (r *PGBookingRepository) CancelByPNR(ctx context.Context, pnr string) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET status=$2, updated_at=now()
		WHERE pnr=$1 AND status=$3
		RETURNING `+bookingColumns, pnr, domain.BookingStatusCancelled, domain.BookingStatusConfirmed)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := r.GetByPNR(ctx, pnr); getErr != nil {
				return nil, getErr
			}
			return nil, domain.ErrAlreadyCancelled
		}
		return nil, err
	}
	return b, nil
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	var passengers []byte
	if err := row.Scan(&b.ID, &b.PNR, &b.FlightID, &b.FlightNumber, &b.Airline, &b.FromPlace, &b.ToPlace, &b.DepartureTime, &b.UserName, &b.UserEmail, &b.JourneyDate, &b.SeatCount, &b.MealType, &b.TotalAmountCents, &b.Status, &passengers, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	if len(passengers) > 0 {
		if err := json.Unmarshal(passengers, &b.Passengers); err != nil {
			return nil, err
		}
	}
	return &b, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)
