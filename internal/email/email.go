package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/flightbooking/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	fmt.Printf("send email to %s: %s for PNR %s, flight %s %s-%s\n",
		event.UserEmail, event.Type, event.PNR, event.FlightNumber, event.FromPlace, event.ToPlace)
	return nil
}
