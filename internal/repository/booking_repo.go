package repository

import (
	"context"

	"github.com/Domenick1991/airdesk/internal/domain"
	"github.com/Domenick1991/airdesk/internal/store"
)

type BookingRepository interface {
	List(ctx context.Context) ([]domain.Booking, error)
	SaveAll(ctx context.Context, bookings []domain.Booking) error
}

type StoreBookingRepository struct {
	bookings *store.Collection[domain.Booking]
}

func NewBookingRepository(backend store.Backend, name string, opts ...store.Option) BookingRepository {
	return &StoreBookingRepository{bookings: store.NewCollection[domain.Booking](backend, name, opts...)}
}

func (r *StoreBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	return r.bookings.Load(ctx)
}

func (r *StoreBookingRepository) SaveAll(ctx context.Context, bookings []domain.Booking) error {
	return r.bookings.Save(ctx, bookings)
}

var _ BookingRepository = (*StoreBookingRepository)(nil)
