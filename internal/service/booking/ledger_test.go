package booking

import (
	"context"
	"testing"

	"github.com/Domenick1991/airdesk/internal/domain"
	"github.com/Domenick1991/airdesk/internal/logger"
	"github.com/Domenick1991/airdesk/internal/repository"
	"github.com/Domenick1991/airdesk/internal/store"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() logrus.FieldLogger {
	return logger.Discard()
}

func newLedger(t *testing.T) (*BookingService, repository.FlightRepository, repository.BookingRepository) {
	t.Helper()
	backend := store.NewMemoryBackend()
	flights := repository.NewFlightRepository(backend, "flights")
	bookings := repository.NewBookingRepository(backend, "passengers")
	require.NoError(t, flights.SaveAll(context.Background(), []domain.Flight{*aa1()}))
	return NewBookingService(bookings, flights), flights, bookings
}

func TestLedger_DoubleBookingKeepsOne(t *testing.T) {
	ctx := context.Background()
	service, _, bookings := newLedger(t)

	_, err := service.Book(ctx, ann, BookInput{FlightNo: "AA1"})
	require.NoError(t, err)

	upper := ann
	upper.Email = "A@B.COM"
	_, err = service.Book(ctx, upper, BookInput{FlightNo: "aa1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	all, err := bookings.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestLedger_AmountIsSnapshot(t *testing.T) {
	ctx := context.Background()
	service, flights, _ := newLedger(t)

	_, err := service.Book(ctx, ann, BookInput{FlightNo: "AA1"})
	require.NoError(t, err)

	raised := *aa1()
	raised.Price = 999
	require.NoError(t, flights.SaveAll(ctx, []domain.Flight{raised}))

	owned, err := service.ListForUser(ctx, ann.Email)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, 100, owned[0].Amount)
}

func TestLedger_CancelMissLeavesLedgerUnchanged(t *testing.T) {
	ctx := context.Background()
	service, _, bookings := newLedger(t)

	_, err := service.Book(ctx, ann, BookInput{FlightNo: "AA1", Passport: "P1"})
	require.NoError(t, err)
	before, err := bookings.List(ctx)
	require.NoError(t, err)

	_, err = service.Cancel(ctx, "someone@else.com", "AA1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	after, err := bookings.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	removed, err := service.Cancel(ctx, ann.Email, "AA1")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	all, err := service.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
