package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/Domenick1991/flightbooking/internal/domain"
	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"
)

// API is the flight-service boundary the booking orchestrator depends on.
type API interface {
	GetFlight(ctx context.Context, flightID string) (*domain.Flight, error)
	ReserveSeats(ctx context.Context, flightID string, seats int) (*domain.Flight, error)
	ReleaseSeats(ctx context.Context, flightID string, seats int) (*domain.Flight, error)
}

type ClientConfig struct {
	BaseURL                 string
	RequestTimeout          time.Duration
	MaxRetries              uint64
	RetryInitialInterval    time.Duration
	RetryMaxInterval        time.Duration
	BreakerFailureThreshold uint32
	BreakerOpenTimeout      time.Duration
	BreakerHalfOpenRequests uint32
}

// Client wraps the remote flight service with bounded retries for transient
// failures and a circuit breaker that fails fast once the service is down.
// Business errors (not-found, insufficient seats) pass through untouched:
// they are never retried and do not trip the breaker.
type Client struct {
	baseURL              string
	http                 *http.Client
	breaker              *gobreaker.CircuitBreaker
	maxRetries           uint64
	retryInitialInterval time.Duration
	retryMaxInterval     time.Duration
}

func NewClient(cfg ClientConfig) *Client {
	settings := gobreaker.Settings{
		Name:        "flight-service",
		MaxRequests: cfg.BreakerHalfOpenRequests,
		Timeout:     cfg.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("circuit breaker %s: %s -> %s", name, from, to)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || isBusinessErr(err)
		},
	}

	return &Client{
		baseURL:              cfg.BaseURL,
		http:                 &http.Client{Timeout: cfg.RequestTimeout},
		breaker:              gobreaker.NewCircuitBreaker(settings),
		maxRetries:           cfg.MaxRetries,
		retryInitialInterval: cfg.RetryInitialInterval,
		retryMaxInterval:     cfg.RetryMaxInterval,
	}
}

func (c *Client) GetFlight(ctx context.Context, flightID string) (*domain.Flight, error) {
	return c.call(ctx, http.MethodGet, "/api/v1/flights/"+flightID, nil)
}

func (c *Client) ReserveSeats(ctx context.Context, flightID string, seats int) (*domain.Flight, error) {
	return c.call(ctx, http.MethodPost, "/api/v1/flights/"+flightID+"/reserve", seatsPayload{Seats: seats})
}

func (c *Client) ReleaseSeats(ctx context.Context, flightID string, seats int) (*domain.Flight, error) {
	return c.call(ctx, http.MethodPost, "/api/v1/flights/"+flightID+"/release", seatsPayload{Seats: seats})
}

type seatsPayload struct {
	Seats int `json:"seats"`
}

func (c *Client) call(ctx context.Context, method, path string, payload interface{}) (*domain.Flight, error) {
	var flight *domain.Flight

	operation := func() error {
		res, err := c.breaker.Execute(func() (interface{}, error) {
			return c.do(ctx, method, path, payload)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(domain.ErrServiceUnavailable)
			}
			if isBusinessErr(err) {
				return backoff.Permanent(err)
			}
			return err
		}
		flight = res.(*domain.Flight)
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retryInitialInterval
	bo.MaxInterval = c.retryMaxInterval

	err := backoff.Retry(operation, backoff.WithMaxRetries(backoff.WithContext(bo, ctx), c.maxRetries))
	if err != nil {
		if isBusinessErr(err) || errors.Is(err, domain.ErrServiceUnavailable) {
			return nil, err
		}
		// Retries exhausted on a transient failure.
		return nil, fmt.Errorf("%w: %v", domain.ErrServiceUnavailable, err)
	}
	return flight, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload interface{}) (*domain.Flight, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return nil, domain.ErrFlightNotFound
	case res.StatusCode == http.StatusConflict:
		return nil, domain.ErrInsufficientSeats
	case res.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("flight service returned status %d", res.StatusCode)
	case res.StatusCode != http.StatusOK:
		return nil, backoff.Permanent(fmt.Errorf("flight service returned status %d", res.StatusCode))
	}

	var flight domain.Flight
	if err := json.NewDecoder(res.Body).Decode(&flight); err != nil {
		return nil, fmt.Errorf("decode flight response: %w", err)
	}
	return &flight, nil
}

func isBusinessErr(err error) bool {
	return errors.Is(err, domain.ErrFlightNotFound) || errors.Is(err, domain.ErrInsufficientSeats)
}

var _ API = (*Client)(nil)
