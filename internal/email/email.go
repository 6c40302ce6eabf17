package email

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airdesk/internal/kafka"
	"github.com/sirupsen/logrus"
)

// Sender delivers booking notifications. Delivery is a log line; no mail
// transport is configured.
type Sender struct {
	log logrus.FieldLogger
}

func NewSender(log logrus.FieldLogger) *Sender {
	return &Sender{log: log}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	if event.Email == "" {
		return nil
	}
	s.log.WithFields(logrus.Fields{
		"to":       event.Email,
		"event_id": event.ID,
		"type":     event.Type,
	}).Info(Subject(event))
	return nil
}

// Subject renders the notification subject line for event.
func Subject(event kafka.BookingEvent) string {
	switch event.Type {
	case kafka.EventBookingCreated:
		return fmt.Sprintf("Flight %s booked, amount charged %d", event.FlightNo, event.Amount)
	case kafka.EventBookingCancelled:
		return fmt.Sprintf("Booking for flight %s cancelled", event.FlightNo)
	case kafka.EventBookingFeedback:
		return fmt.Sprintf("Thanks for your feedback on flight %s", event.FlightNo)
	case kafka.EventFlightDeleted:
		return fmt.Sprintf("Flight %s was withdrawn, your booking has been removed", event.FlightNo)
	default:
		return fmt.Sprintf("Update about flight %s", event.FlightNo)
	}
}
