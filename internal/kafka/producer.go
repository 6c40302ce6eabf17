package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

const (
	EventBookingCreated   = "booking_created"
	EventBookingCancelled = "booking_cancelled"
	EventBookingFeedback  = "booking_feedback"
	EventFlightDeleted    = "flight_deleted"
)

type BookingEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Email      string    `json:"email,omitempty"`
	Name       string    `json:"name,omitempty"`
	FlightNo   string    `json:"flight_no"`
	Amount     int       `json:"amount,omitempty"`
	Feedback   string    `json:"feedback,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewBookingEvent stamps a fresh id and time on an event of the given type.
func NewBookingEvent(eventType, flightNo string) BookingEvent {
	return BookingEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		FlightNo:   flightNo,
		OccurredAt: time.Now().UTC(),
	}
}

type Producer struct {
	writer *kafka.Writer
	log    logrus.FieldLogger
}

func NewProducer(brokers []string, log logrus.FieldLogger) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           50 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
		MaxAttempts:            3,
		WriteTimeout:           5 * time.Second,
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		writer: writer,
		log:    log,
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	message := kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}

	p.log.WithFields(logrus.Fields{"topic": topic, "key": key}).Debug("published to kafka")
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
