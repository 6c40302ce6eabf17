package flights

import (
	"context"
	"testing"

	"github.com/Domenick1991/airdesk/internal/domain"
	"github.com/Domenick1991/airdesk/internal/repository"
	"github.com/Domenick1991/airdesk/internal/service/booking"
	"github.com/Domenick1991/airdesk/internal/service/users"
	"github.com/Domenick1991/airdesk/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	catalog *FlightService
	ledger  *booking.BookingService
	users   *users.UserService
}

func newFixture() fixture {
	backend := store.NewMemoryBackend()
	flightRepo := repository.NewFlightRepository(backend, "flights")
	bookingRepo := repository.NewBookingRepository(backend, "passengers")
	userRepo := repository.NewUserRepository(backend, "users")
	return fixture{
		catalog: NewFlightService(flightRepo, bookingRepo),
		ledger:  booking.NewBookingService(bookingRepo, flightRepo),
		users:   users.NewUserService(userRepo, nil),
	}
}

func profile(name, phone string) users.ProfilePrompt {
	return func(context.Context) (users.Profile, error) {
		return users.Profile{Name: name, Phone: phone}, nil
	}
}

func TestCatalog_AddThenList(t *testing.T) {
	ctx := context.Background()
	fx := newFixture()

	added, err := fx.catalog.Add(ctx, aa1Input())
	require.NoError(t, err)

	flights, err := fx.catalog.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, flights, *added)

	again := aa1Input()
	again.FlightNo = "ZZ9"
	_, err = fx.catalog.Add(ctx, again)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCatalog_EndToEnd(t *testing.T) {
	ctx := context.Background()
	fx := newFixture()

	_, err := fx.catalog.Add(ctx, AddFlightInput{
		SerialNo: 1, Airline: "American", Departure: "JFK", Destination: "LAX", FlightNo: "AA1",
		DepartureTime: "2025-01-01 10:00", ArrivalTime: "2025-01-01 12:00", Price: 100,
	})
	require.NoError(t, err)

	user, created, err := fx.users.FindOrRegister(ctx, "a@b.com", profile("Ann", "555"))
	require.NoError(t, err)
	assert.True(t, created)

	b, err := fx.ledger.Book(ctx, *user, booking.BookInput{FlightNo: "AA1"})
	require.NoError(t, err)
	assert.Equal(t, 100, b.Amount)

	result, err := fx.catalog.Delete(ctx, domain.FlightKey{FlightNo: "AA1", DepartureTime: "2025-01-01 10:00", ArrivalTime: "2025-01-01 12:00"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.BookingsRemoved)

	owned, err := fx.ledger.ListForUser(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Empty(t, owned)
}

func TestCatalog_DeleteRemovesOnlyThatFlightNumber(t *testing.T) {
	ctx := context.Background()
	fx := newFixture()

	_, err := fx.catalog.Add(ctx, aa1Input())
	require.NoError(t, err)
	bb2 := aa1Input()
	bb2.SerialNo = 2
	bb2.FlightNo = "BB2"
	_, err = fx.catalog.Add(ctx, bb2)
	require.NoError(t, err)

	for _, email := range []string{"a@b.com", "c@d.com"} {
		user, _, err := fx.users.FindOrRegister(ctx, email, profile("P", "1"))
		require.NoError(t, err)
		_, err = fx.ledger.Book(ctx, *user, booking.BookInput{FlightNo: "AA1"})
		require.NoError(t, err)
		_, err = fx.ledger.Book(ctx, *user, booking.BookInput{FlightNo: "BB2"})
		require.NoError(t, err)
	}

	_, err = fx.catalog.Delete(ctx, domain.FlightKey{FlightNo: "AA1", DepartureTime: "2025-01-01 10:00", ArrivalTime: "2025-01-01 12:00"})
	require.NoError(t, err)

	flights, err := fx.catalog.List(ctx)
	require.NoError(t, err)
	require.Len(t, flights, 1)
	assert.Equal(t, "BB2", flights[0].FlightNo)

	all, err := fx.ledger.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, b := range all {
		assert.Equal(t, "BB2", b.FlightNo)
	}
}

func TestCatalog_PriceChangeKeepsBookedAmount(t *testing.T) {
	ctx := context.Background()
	fx := newFixture()

	_, err := fx.catalog.Add(ctx, aa1Input())
	require.NoError(t, err)
	user, _, err := fx.users.FindOrRegister(ctx, "a@b.com", profile("Ann", "555"))
	require.NoError(t, err)
	_, err = fx.ledger.Book(ctx, *user, booking.BookInput{FlightNo: "AA1"})
	require.NoError(t, err)

	_, err = fx.catalog.ModifyField(ctx, "AA1", domain.FieldPrice, "300")
	require.NoError(t, err)

	owned, err := fx.ledger.ListForUser(ctx, "a@b.com")
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, 100, owned[0].Amount)
}
