package booking

import (
	"context"
	"time"

	"github.com/Domenick1991/airdesk/internal/kafka"
	"github.com/sirupsen/logrus"
)

// publishTimeout bounds each publish so an unreachable broker cannot stall
// an interactive operation.
const publishTimeout = 5 * time.Second

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

// EventPublisher sends ledger and catalog events. A nil *EventPublisher
// publishes nothing. Failures are logged and never returned.
type EventPublisher struct {
	producer           Producer
	topic              string
	notificationsTopic string
	log                logrus.FieldLogger
}

func NewEventPublisher(producer Producer, topic, notificationsTopic string, log logrus.FieldLogger) *EventPublisher {
	return &EventPublisher{
		producer:           producer,
		topic:              topic,
		notificationsTopic: notificationsTopic,
		log:                log,
	}
}

func (p *EventPublisher) Publish(ctx context.Context, event kafka.BookingEvent) {
	if p == nil || p.producer == nil || p.topic == "" {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.producer.Publish(ctx, p.topic, event.FlightNo, event); err != nil {
		p.log.WithError(err).WithField("event", event.Type).Warn("failed to publish event")
		return
	}
	if p.notificationsTopic == "" || event.Email == "" {
		return
	}
	if err := p.producer.Publish(ctx, p.notificationsTopic, event.Email, event); err != nil {
		p.log.WithError(err).WithField("event", event.Type).Warn("failed to publish notification")
	}
}
