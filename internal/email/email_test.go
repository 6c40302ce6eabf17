package email

import (
	"context"
	"testing"

	"github.com/Domenick1991/airdesk/internal/kafka"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubject(t *testing.T) {
	event := kafka.NewBookingEvent(kafka.EventBookingCreated, "AA1")
	event.Amount = 100
	assert.Equal(t, "Flight AA1 booked, amount charged 100", Subject(event))

	event.Type = kafka.EventFlightDeleted
	assert.Contains(t, Subject(event), "withdrawn")

	event.Type = "something_else"
	assert.Equal(t, "Update about flight AA1", Subject(event))
}

func TestSender_Send(t *testing.T) {
	log, hook := test.NewNullLogger()
	sender := NewSender(log)

	event := kafka.NewBookingEvent(kafka.EventBookingCancelled, "AA1")
	event.Email = "a@b.com"
	require.NoError(t, sender.Send(context.Background(), event))

	require.Len(t, hook.AllEntries(), 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "a@b.com", entry.Data["to"])
	assert.Equal(t, "Booking for flight AA1 cancelled", entry.Message)
}

func TestSender_SkipsEventsWithoutRecipient(t *testing.T) {
	log, hook := test.NewNullLogger()
	sender := NewSender(log)

	require.NoError(t, sender.Send(context.Background(), kafka.NewBookingEvent(kafka.EventFlightDeleted, "AA1")))
	assert.Empty(t, hook.AllEntries())
}
