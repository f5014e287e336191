package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByPNR(ctx context.Context, pnr string) (*domain.Booking, error) {
	args := m.Called(ctx, pnr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) CancelByPNR(ctx context.Context, pnr string) (*domain.Booking, error) {
	args := m.Called(ctx, pnr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

type MockInventoryAPI struct {
	mock.Mock
}

func (m *MockInventoryAPI) GetFlight(ctx context.Context, flightID string) (*domain.Flight, error) {
	args := m.Called(ctx, flightID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockInventoryAPI) ReserveSeats(ctx context.Context, flightID string, seats int) (*domain.Flight, error) {
	args := m.Called(ctx, flightID, seats)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockInventoryAPI) ReleaseSeats(ctx context.Context, flightID string, seats int) (*domain.Flight, error) {
	args := m.Called(ctx, flightID, seats)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func testFlight() *domain.Flight {
	return &domain.Flight{
		ID:             "f1",
		Airline:        "AirGo",
		FlightNumber:   "AG101",
		FromPlace:      "DEL",
		ToPlace:        "BLR",
		DepartureTime:  time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC),
		ArrivalTime:    time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
		TotalSeats:     2,
		AvailableSeats: 2,
		PriceCents:     5000,
		Status:         domain.FlightStatusActive,
	}
}

func testBookRequest(seats int) BookRequest {
	passengers := make([]domain.Passenger, 0, seats)
	for i := 0; i < seats; i++ {
		passengers = append(passengers, domain.Passenger{Name: "Pax", Gender: "F", Age: 30, SeatNumber: "12A", Email: "pax@example.com"})
	}
	return BookRequest{
		UserName:    "Test User",
		UserEmail:   "test@example.com",
		JourneyDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		SeatCount:   seats,
		MealType:    domain.MealTypeVeg,
		Passengers:  passengers,
	}
}

func newTestService(repo *MockBookingRepository, inv *MockInventoryAPI, producer *MockProducer) *BookingService {
	return NewBookingService(repo, inv, producer, "booking_events", WithNotificationsTopic("notifications"))
}

func TestBookingService_BookTicket_Success(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	mockInv := &MockInventoryAPI{}
	mockProducer := &MockProducer{}
	service := newTestService(mockRepo, mockInv, mockProducer)

	ctx := context.Background()
	flight := testFlight()
	input := testBookRequest(2)

	mockInv.On("GetFlight", ctx, "f1").Return(flight, nil).Once()
	mockInv.On("ReserveSeats", ctx, "f1", 2).Return(flight, nil).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil).Once()
	mockProducer.On("Publish", ctx, "booking_events", mock.Anything, mock.Anything).Return(nil).Once()
	mockProducer.On("Publish", ctx, "notifications", mock.Anything, mock.Anything).Return(nil).Once()

	booking, err := service.BookTicket(ctx, "f1", input)

	assert.NoError(t, err)
	assert.NotNil(t, booking)
	assert.Equal(t, domain.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, int64(10000), booking.TotalAmountCents)
	assert.Equal(t, "AG101", booking.FlightNumber)
	assert.Equal(t, "f1", booking.FlightID)
	assert.Len(t, booking.Passengers, 2)
	assert.True(t, len(booking.PNR) == 11 && booking.PNR[:3] == "PNR")

	mockRepo.AssertExpectations(t)
	mockInv.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_BookTicket_ValidationErrors(t *testing.T) {
	service := newTestService(&MockBookingRepository{}, &MockInventoryAPI{}, &MockProducer{})
	ctx := context.Background()

	testCases := []struct {
		name        string
		mutate      func(*BookRequest)
		expectedErr string
	}{
		{
			name:        "zero seats",
			mutate:      func(r *BookRequest) { r.SeatCount = 0 },
			expectedErr: "seat count must be at least 1",
		},
		{
			name:        "empty user name",
			mutate:      func(r *BookRequest) { r.UserName = "" },
			expectedErr: "user name is required",
		},
		{
			name:        "invalid email",
			mutate:      func(r *BookRequest) { r.UserEmail = "not-an-email" },
			expectedErr: "a valid email is required",
		},
		{
			name:        "no passengers",
			mutate:      func(r *BookRequest) { r.Passengers = nil },
			expectedErr: "at least one passenger is required",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			input := testBookRequest(1)
			tc.mutate(&input)
			booking, err := service.BookTicket(ctx, "f1", input)
			assert.Error(t, err)
			assert.Nil(t, booking)
			assert.Contains(t, err.Error(), tc.expectedErr)
		})
	}
}

func TestBookingService_BookTicket_FlightNotFound(t *testing.T) {
	mockInv := &MockInventoryAPI{}
	service := newTestService(&MockBookingRepository{}, mockInv, &MockProducer{})
	ctx := context.Background()

	mockInv.On("GetFlight", ctx, "missing").Return(nil, domain.ErrFlightNotFound).Once()

	booking, err := service.BookTicket(ctx, "missing", testBookRequest(1))

	assert.ErrorIs(t, err, domain.ErrFlightNotFound)
	assert.Nil(t, booking)
	mockInv.AssertExpectations(t)
}

// Asking for more seats than available must fail before any write.
func TestBookingService_BookTicket_InsufficientSeatsFailFast(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	mockInv := &MockInventoryAPI{}
	service := newTestService(mockRepo, mockInv, &MockProducer{})
	ctx := context.Background()

	flight := testFlight()
	flight.AvailableSeats = 1

	mockInv.On("GetFlight", ctx, "f1").Return(flight, nil).Once()

	booking, err := service.BookTicket(ctx, "f1", testBookRequest(2))

	assert.ErrorIs(t, err, domain.ErrInsufficientSeats)
	assert.Nil(t, booking)
	mockInv.AssertNotCalled(t, "ReserveSeats", mock.Anything, mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// The availability pre-check can pass and the atomic reserve still lose the
// race; the store's answer wins.
func TestBookingService_BookTicket_ReserveLosesRace(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	mockInv := &MockInventoryAPI{}
	service := newTestService(mockRepo, mockInv, &MockProducer{})
	ctx := context.Background()

	mockInv.On("GetFlight", ctx, "f1").Return(testFlight(), nil).Once()
	mockInv.On("ReserveSeats", ctx, "f1", 2).Return(nil, domain.ErrInsufficientSeats).Once()

	booking, err := service.BookTicket(ctx, "f1", testBookRequest(2))

	assert.ErrorIs(t, err, domain.ErrInsufficientSeats)
	assert.Nil(t, booking)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookingService_BookTicket_CompensationReleasesSeats(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	mockInv := &MockInventoryAPI{}
	mockProducer := &MockProducer{}
	service := newTestService(mockRepo, mockInv, mockProducer)
	ctx := context.Background()

	storeErr := errors.New("booking store unavailable")
	flight := testFlight()

	mockInv.On("GetFlight", ctx, "f1").Return(flight, nil).Once()
	mockInv.On("ReserveSeats", ctx, "f1", 2).Return(flight, nil).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(storeErr).Once()
	mockInv.On("ReleaseSeats", ctx, "f1", 2).Return(flight, nil).Once()

	booking, err := service.BookTicket(ctx, "f1", testBookRequest(2))

	assert.ErrorIs(t, err, storeErr)
	assert.Nil(t, booking)
	var compErr *domain.CompensationError
	assert.False(t, errors.As(err, &compErr), "successful release must not surface as compensation failure")
	mockInv.AssertExpectations(t)
	mockProducer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_BookTicket_CompensationFailed(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	mockInv := &MockInventoryAPI{}
	service := newTestService(mockRepo, mockInv, &MockProducer{})
	ctx := context.Background()

	storeErr := errors.New("duplicate key")
	releaseErr := errors.New("flight service down")
	flight := testFlight()

	mockInv.On("GetFlight", ctx, "f1").Return(flight, nil).Once()
	mockInv.On("ReserveSeats", ctx, "f1", 1).Return(flight, nil).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(storeErr).Once()
	mockInv.On("ReleaseSeats", ctx, "f1", 1).Return(nil, releaseErr).Once()

	booking, err := service.BookTicket(ctx, "f1", testBookRequest(1))

	assert.Nil(t, booking)
	var compErr *domain.CompensationError
	assert.True(t, errors.As(err, &compErr))
	assert.Equal(t, "f1", compErr.FlightID)
	assert.Equal(t, 1, compErr.Seats)
	assert.ErrorIs(t, err, storeErr)
}

func TestBookingService_BookTicket_DuplicatePNRRegenerated(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	mockInv := &MockInventoryAPI{}
	mockProducer := &MockProducer{}
	service := newTestService(mockRepo, mockInv, mockProducer)
	ctx := context.Background()

	flight := testFlight()
	var pnrs []string

	mockInv.On("GetFlight", ctx, "f1").Return(flight, nil).Once()
	mockInv.On("ReserveSeats", ctx, "f1", 1).Return(flight, nil).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).
		Run(func(args mock.Arguments) {
			pnrs = append(pnrs, args.Get(1).(*domain.Booking).PNR)
		}).
		Return(domain.ErrDuplicatePNR).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).
		Run(func(args mock.Arguments) {
			pnrs = append(pnrs, args.Get(1).(*domain.Booking).PNR)
		}).
		Return(nil).Once()
	mockProducer.On("Publish", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	booking, err := service.BookTicket(ctx, "f1", testBookRequest(1))

	assert.NoError(t, err)
	assert.NotNil(t, booking)
	assert.Len(t, pnrs, 2)
	assert.NotEqual(t, pnrs[0], pnrs[1])
	mockRepo.AssertExpectations(t)
	mockInv.AssertNotCalled(t, "ReleaseSeats", mock.Anything, mock.Anything, mock.Anything)
}

// Event delivery is at-least-once at best; a broker failure never rolls the
// booking back.
func TestBookingService_BookTicket_PublishFailureDoesNotFailBooking(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	mockInv := &MockInventoryAPI{}
	mockProducer := &MockProducer{}
	service := newTestService(mockRepo, mockInv, mockProducer)
	ctx := context.Background()

	flight := testFlight()

	mockInv.On("GetFlight", ctx, "f1").Return(flight, nil).Once()
	mockInv.On("ReserveSeats", ctx, "f1", 1).Return(flight, nil).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil).Once()
	mockProducer.On("Publish", ctx, "booking_events", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	booking, err := service.BookTicket(ctx, "f1", testBookRequest(1))

	assert.NoError(t, err)
	assert.NotNil(t, booking)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_CancelBooking_Success(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	mockInv := &MockInventoryAPI{}
	mockProducer := &MockProducer{}
	service := newTestService(mockRepo, mockInv, mockProducer)
	ctx := context.Background()

	cancelled := &domain.Booking{
		PNR:       "PNRAB12CD34",
		FlightID:  "f1",
		SeatCount: 2,
		UserEmail: "test@example.com",
		Status:    domain.BookingStatusCancelled,
	}

	mockRepo.On("CancelByPNR", ctx, "PNRAB12CD34").Return(cancelled, nil).Once()
	mockInv.On("ReleaseSeats", ctx, "f1", 2).Return(testFlight(), nil).Once()
	mockProducer.On("Publish", ctx, "booking_events", "PNRAB12CD34", mock.Anything).Return(nil).Once()
	mockProducer.On("Publish", ctx, "notifications", "PNRAB12CD34", mock.Anything).Return(nil).Once()

	booking, err := service.CancelBooking(ctx, "PNRAB12CD34")

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, booking.Status)
	mockRepo.AssertExpectations(t)
	mockInv.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_CancelBooking_NotFound(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	mockInv := &MockInventoryAPI{}
	service := newTestService(mockRepo, mockInv, &MockProducer{})
	ctx := context.Background()

	mockRepo.On("CancelByPNR", ctx, "PNRMISSING1").Return(nil, domain.ErrBookingNotFound).Once()

	booking, err := service.CancelBooking(ctx, "PNRMISSING1")

	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
	assert.Nil(t, booking)
	mockInv.AssertNotCalled(t, "ReleaseSeats", mock.Anything, mock.Anything, mock.Anything)
}

// Cancelling twice must reject the second call without touching inventory or
// publishing another event.
func TestBookingService_CancelBooking_AlreadyCancelled(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	mockInv := &MockInventoryAPI{}
	mockProducer := &MockProducer{}
	service := newTestService(mockRepo, mockInv, mockProducer)
	ctx := context.Background()

	mockRepo.On("CancelByPNR", ctx, "PNRAB12CD34").Return(nil, domain.ErrAlreadyCancelled).Once()

	booking, err := service.CancelBooking(ctx, "PNRAB12CD34")

	assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)
	assert.Nil(t, booking)
	mockInv.AssertNotCalled(t, "ReleaseSeats", mock.Anything, mock.Anything, mock.Anything)
	mockProducer.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_CancelBooking_ReleaseFailureKeepsCancellation(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	mockInv := &MockInventoryAPI{}
	mockProducer := &MockProducer{}
	service := newTestService(mockRepo, mockInv, mockProducer)
	ctx := context.Background()

	cancelled := &domain.Booking{PNR: "PNRAB12CD34", FlightID: "f1", SeatCount: 1, Status: domain.BookingStatusCancelled}

	mockRepo.On("CancelByPNR", ctx, "PNRAB12CD34").Return(cancelled, nil).Once()
	mockInv.On("ReleaseSeats", ctx, "f1", 1).Return(nil, domain.ErrServiceUnavailable).Once()
	mockProducer.On("Publish", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	booking, err := service.CancelBooking(ctx, "PNRAB12CD34")

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, booking.Status)
}

func TestBookingService_GetByPNR(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	service := newTestService(mockRepo, &MockInventoryAPI{}, &MockProducer{})
	ctx := context.Background()

	stored := &domain.Booking{PNR: "PNRAB12CD34", Status: domain.BookingStatusConfirmed}
	mockRepo.On("GetByPNR", ctx, "PNRAB12CD34").Return(stored, nil).Once()
	mockRepo.On("GetByPNR", ctx, "PNRMISSING1").Return(nil, domain.ErrBookingNotFound).Once()

	booking, err := service.GetByPNR(ctx, "PNRAB12CD34")
	assert.NoError(t, err)
	assert.Equal(t, stored, booking)

	_, err = service.GetByPNR(ctx, "PNRMISSING1")
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestBookingService_GetHistory(t *testing.T) {
	mockRepo := &MockBookingRepository{}
	service := newTestService(mockRepo, &MockInventoryAPI{}, &MockProducer{})
	ctx := context.Background()

	mockRepo.On("GetByEmail", ctx, "empty@example.com").Return([]domain.Booking{}, nil).Once()

	history, err := service.GetHistory(ctx, "empty@example.com")
	assert.NoError(t, err)
	assert.Empty(t, history)
}

// In-memory inventory with a mutex-guarded counter, standing in for the
// store-side atomic conditional update.
type fakeInventory struct {
	mu     sync.Mutex
	flight domain.Flight
}

func (f *fakeInventory) GetFlight(ctx context.Context, flightID string) (*domain.Flight, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	snapshot := f.flight
	return &snapshot, nil
}

func (f *fakeInventory) ReserveSeats(ctx context.Context, flightID string, seats int) (*domain.Flight, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.flight.AvailableSeats < seats {
		return nil, domain.ErrInsufficientSeats
	}
	f.flight.AvailableSeats -= seats
	snapshot := f.flight
	return &snapshot, nil
}

func (f *fakeInventory) ReleaseSeats(ctx context.Context, flightID string, seats int) (*domain.Flight, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.flight.AvailableSeats += seats
	if f.flight.AvailableSeats > f.flight.TotalSeats {
		f.flight.AvailableSeats = f.flight.TotalSeats
	}
	snapshot := f.flight
	return &snapshot, nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]domain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]domain.Booking)}
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[booking.PNR]; ok {
		return domain.ErrDuplicatePNR
	}
	r.bookings[booking.PNR] = *booking
	return nil
}

func (r *fakeBookingRepo) GetByPNR(ctx context.Context, pnr string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[pnr]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	return &b, nil
}

func (r *fakeBookingRepo) GetByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Booking, 0)
	for _, b := range r.bookings {
		if b.UserEmail == email {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) CancelByPNR(ctx context.Context, pnr string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[pnr]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	if b.Status == domain.BookingStatusCancelled {
		return nil, domain.ErrAlreadyCancelled
	}
	b.Status = domain.BookingStatusCancelled
	r.bookings[pnr] = b
	return &b, nil
}

// With N concurrent requests for N-1 seats, exactly one must lose and the
// counter must never go negative.
func TestBookingService_BookTicket_ConcurrentRequestsDoNotOversell(t *testing.T) {
	const requests = 8

	inv := &fakeInventory{flight: domain.Flight{
		ID:             "f1",
		FlightNumber:   "AG101",
		TotalSeats:     requests - 1,
		AvailableSeats: requests - 1,
		PriceCents:     5000,
		Status:         domain.FlightStatusActive,
	}}
	repo := newFakeBookingRepo()
	service := NewBookingService(repo, inv, nil, "")

	ctx := context.Background()
	errs := make(chan error, requests)

	var wg sync.WaitGroup
	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.BookTicket(ctx, "f1", testBookRequest(1))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, insufficient int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrInsufficientSeats):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, requests-1, succeeded)
	assert.Equal(t, 1, insufficient)
	assert.Equal(t, 0, inv.flight.AvailableSeats)
	assert.Len(t, repo.bookings, requests-1)
}

// End-to-end conservation: after booking everything and cancelling one,
// availability equals total minus the seats of confirmed bookings.
func TestBookingService_BookAndCancel_RestoresAvailability(t *testing.T) {
	inv := &fakeInventory{flight: domain.Flight{
		ID:             "F1",
		FlightNumber:   "AG202",
		TotalSeats:     2,
		AvailableSeats: 2,
		PriceCents:     5000,
		Status:         domain.FlightStatusActive,
	}}
	repo := newFakeBookingRepo()
	service := NewBookingService(repo, inv, nil, "")
	ctx := context.Background()

	booked, err := service.BookTicket(ctx, "F1", testBookRequest(2))
	assert.NoError(t, err)
	assert.Equal(t, int64(10000), booked.TotalAmountCents)
	assert.Equal(t, 0, inv.flight.AvailableSeats)

	_, err = service.BookTicket(ctx, "F1", testBookRequest(1))
	assert.ErrorIs(t, err, domain.ErrInsufficientSeats)

	roundTrip, err := service.GetByPNR(ctx, booked.PNR)
	assert.NoError(t, err)
	assert.Equal(t, booked.PNR, roundTrip.PNR)
	assert.Equal(t, booked.TotalAmountCents, roundTrip.TotalAmountCents)
	assert.Equal(t, booked.SeatCount, roundTrip.SeatCount)

	cancelled, err := service.CancelBooking(ctx, booked.PNR)
	assert.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, cancelled.Status)
	assert.Equal(t, 2, inv.flight.AvailableSeats)

	_, err = service.CancelBooking(ctx, booked.PNR)
	assert.ErrorIs(t, err, domain.ErrAlreadyCancelled)
	assert.Equal(t, 2, inv.flight.AvailableSeats)
}
