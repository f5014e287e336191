package flights

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/Domenick1991/flightbooking/internal/repository"
	"github.com/google/uuid"
)

type FlightUseCase interface {
	AddInventory(ctx context.Context, input AddInventoryInput) (*domain.Flight, error)
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	ReserveSeats(ctx context.Context, id string, seats int) (*domain.Flight, error)
	ReleaseSeats(ctx context.Context, id string, seats int) (*domain.Flight, error)
	CancelFlight(ctx context.Context, id string) (*domain.Flight, error)
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type AddInventoryInput struct {
	Airline       string    `json:"airline"`
	FlightNumber  string    `json:"flight_number"`
	FromPlace     string    `json:"from_place"`
	ToPlace       string    `json:"to_place"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	TotalSeats    int       `json:"total_seats"`
	PriceCents    int64     `json:"price_cents"`
}

type FlightService struct {
	repo     repository.FlightRepository
	cache    Cache
	cacheTTL time.Duration
}

func NewFlightService(repo repository.FlightRepository, cache Cache, cacheTTL time.Duration) *FlightService {
	return &FlightService{repo: repo, cache: cache, cacheTTL: cacheTTL}
}

func (s *FlightService) AddInventory(ctx context.Context, input AddInventoryInput) (*domain.Flight, error) {
	if input.TotalSeats < 1 {
		return nil, errors.New("total seats must be at least 1")
	}
	if input.FlightNumber == "" {
		return nil, errors.New("flight number is required")
	}

	flight := &domain.Flight{
		ID:             uuid.NewString(),
		Airline:        input.Airline,
		FlightNumber:   input.FlightNumber,
		FromPlace:      input.FromPlace,
		ToPlace:        input.ToPlace,
		DepartureTime:  input.DepartureTime,
		ArrivalTime:    input.ArrivalTime,
		TotalSeats:     input.TotalSeats,
		AvailableSeats: input.TotalSeats,
		PriceCents:     input.PriceCents,
		Status:         domain.FlightStatusActive,
	}
	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
	return flight, nil
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) ReserveSeats(ctx context.Context, id string, seats int) (*domain.Flight, error) {
	if seats < 1 {
		return nil, errors.New("seats must be at least 1")
	}
	flight, err := s.repo.ReserveSeats(ctx, id, seats)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
	return flight, nil
}

func (s *FlightService) ReleaseSeats(ctx context.Context, id string, seats int) (*domain.Flight, error) {
	if seats < 1 {
		return nil, errors.New("seats must be at least 1")
	}
	flight, err := s.repo.ReleaseSeats(ctx, id, seats)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
	return flight, nil
}

func (s *FlightService) CancelFlight(ctx context.Context, id string) (*domain.Flight, error) {
	flight, err := s.repo.UpdateStatus(ctx, id, domain.FlightStatusCancelled)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
	return flight, nil
}

var _ FlightUseCase = (*FlightService)(nil)
