package booking

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/inventory"
	"github.com/Domenick1991/flightbooking/internal/kafka"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	BookTicket(ctx context.Context, flightID string, input BookRequest) (*domain.Booking, error)
	GetByPNR(ctx context.Context, pnr string) (*domain.Booking, error)
	GetHistory(ctx context.Context, email string) ([]domain.Booking, error)
	CancelBooking(ctx context.Context, pnr string) (*domain.Booking, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookRequest struct {
	UserName    string             `json:"user_name"`
	UserEmail   string             `json:"user_email"`
	JourneyDate time.Time          `json:"journey_date"`
	SeatCount   int                `json:"seat_count"`
	MealType    domain.MealType    `json:"meal_type"`
	Passengers  []domain.Passenger `json:"passengers"`
}

// BookingService coordinates the flight service and the booking store.
// Seats are reserved first through the inventory boundary's atomic decrement,
// then the booking record is written; there is no transaction spanning the
// two stores, so a failed write is undone by releasing the reserved seats.
type BookingService struct {
	bookings           repository.BookingRepository
	flights            inventory.API
	producer           Producer
	bookingTopic       string
	notificationsTopic string
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights inventory.API,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		flights:      flights,
		producer:     producer,
		bookingTopic: bookingTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) BookTicket(ctx context.Context, flightID string, input BookRequest) (*domain.Booking, error) {
	if err := validateBookRequest(input); err != nil {
		return nil, err
	}

	flight, err := s.flights.GetFlight(ctx, flightID)
	if err != nil {
		return nil, err
	}
	// Fail fast before any write. The reserve call below re-checks
	// atomically, this only avoids a pointless reservation round trip.
	if flight.AvailableSeats < input.SeatCount {
		return nil, domain.ErrInsufficientSeats
	}

	if _, err := s.flights.ReserveSeats(ctx, flightID, input.SeatCount); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		PNR:              generatePNR(),
		FlightID:         flightID,
		FlightNumber:     flight.FlightNumber,
		Airline:          flight.Airline,
		FromPlace:        flight.FromPlace,
		ToPlace:          flight.ToPlace,
		DepartureTime:    flight.DepartureTime,
		UserName:         input.UserName,
		UserEmail:        input.UserEmail,
		JourneyDate:      input.JourneyDate,
		SeatCount:        input.SeatCount,
		MealType:         input.MealType,
		TotalAmountCents: flight.PriceCents * int64(input.SeatCount),
		Status:           domain.BookingStatusConfirmed,
		Passengers:       input.Passengers,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		if errors.Is(err, domain.ErrDuplicatePNR) {
			// Collision on the random code: regenerate once before giving up.
			booking.PNR = generatePNR()
			err = s.bookings.Create(ctx, booking)
		}
		if err != nil {
			return nil, s.compensate(ctx, flightID, input.SeatCount, err)
		}
	}

	s.publish(ctx, kafka.EventTypeBookingConfirmed, booking)
	log.Printf("booking created with PNR %s", booking.PNR)
	return booking, nil
}

// compensate releases seats reserved for a booking that could not be
// persisted. If the release fails too, availability is now wrong and the
// error must stay distinguishable for out-of-band reconciliation.
func (s *BookingService) compensate(ctx context.Context, flightID string, seats int, cause error) error {
	if _, releaseErr := s.flights.ReleaseSeats(ctx, flightID, seats); releaseErr != nil {
		compErr := &domain.CompensationError{
			FlightID:   flightID,
			Seats:      seats,
			Cause:      cause,
			ReleaseErr: releaseErr,
		}
		log.Printf("ALERT: %v", compErr)
		return compErr
	}
	return cause
}

func (s *BookingService) GetByPNR(ctx context.Context, pnr string) (*domain.Booking, error) {
	return s.bookings.GetByPNR(ctx, pnr)
}

func (s *BookingService) GetHistory(ctx context.Context, email string) ([]domain.Booking, error) {
	return s.bookings.GetByEmail(ctx, email)
}

func (s *BookingService) CancelBooking(ctx context.Context, pnr string) (*domain.Booking, error) {
	booking, err := s.bookings.CancelByPNR(ctx, pnr)
	if err != nil {
		return nil, err
	}

	// Give the seats back so a cancelled booking does not shrink the
	// flight's capacity forever. The cancellation itself already stands,
	// so a failed release is an alert, not a rollback.
	if _, err := s.flights.ReleaseSeats(ctx, booking.FlightID, booking.SeatCount); err != nil {
		log.Printf("ALERT: failed to release %d seats for flight %s after cancelling PNR %s: %v",
			booking.SeatCount, booking.FlightID, booking.PNR, err)
	}

	s.publish(ctx, kafka.EventTypeBookingCancelled, booking)
	log.Printf("booking cancelled with PNR %s", booking.PNR)
	return booking, nil
}

// publish is fire-and-forget: the booking transition has already committed
// and notification delivery is at-least-once at best.
func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:             eventType,
		PNR:              booking.PNR,
		UserEmail:        booking.UserEmail,
		UserName:         booking.UserName,
		FlightNumber:     booking.FlightNumber,
		FromPlace:        booking.FromPlace,
		ToPlace:          booking.ToPlace,
		DepartureTime:    booking.DepartureTime,
		TotalAmountCents: booking.TotalAmountCents,
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.PNR, event); err != nil {
		log.Printf("WARNING: failed to publish %s event for PNR %s: %v", eventType, booking.PNR, err)
		return
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.PNR, event); err != nil {
			log.Printf("WARNING: failed to publish %s notification for PNR %s: %v", eventType, booking.PNR, err)
		}
	}
}

func validateBookRequest(input BookRequest) error {
	if input.SeatCount < 1 {
		return errors.New("seat count must be at least 1")
	}
	if input.UserName == "" {
		return errors.New("user name is required")
	}
	if input.UserEmail == "" || !strings.Contains(input.UserEmail, "@") {
		return errors.New("a valid email is required")
	}
	if len(input.Passengers) == 0 {
		return errors.New("at least one passenger is required")
	}
	return nil
}

// generatePNR builds the reference code from a v4 UUID rather than the
// clock, so two bookings completing in the same instant get distinct codes.
func generatePNR() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "PNR" + strings.ToUpper(raw[:8])
}

var _ BookingUseCase = (*BookingService)(nil)
