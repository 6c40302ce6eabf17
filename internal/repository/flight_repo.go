package repository

import (
	"context"
	"fmt"

	"github.com/Domenick1991/airdesk/internal/domain"
	"github.com/Domenick1991/airdesk/internal/store"
)

type FlightRepository interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByFlightNo(ctx context.Context, flightNo string) (*domain.Flight, error)
	SaveAll(ctx context.Context, flights []domain.Flight) error
}

type StoreFlightRepository struct {
	flights *store.Collection[domain.Flight]
}

func NewFlightRepository(backend store.Backend, name string, opts ...store.Option) FlightRepository {
	return &StoreFlightRepository{flights: store.NewCollection[domain.Flight](backend, name, opts...)}
}

func (r *StoreFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	return r.flights.Load(ctx)
}

// GetByFlightNo returns the first flight with the given number.
func (r *StoreFlightRepository) GetByFlightNo(ctx context.Context, flightNo string) (*domain.Flight, error) {
	flights, err := r.flights.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range flights {
		if domain.SameFlightNo(flights[i].FlightNo, flightNo) {
			return &flights[i], nil
		}
	}
	return nil, fmt.Errorf("%w: flight %s", domain.ErrNotFound, domain.NormalizeFlightNo(flightNo))
}

func (r *StoreFlightRepository) SaveAll(ctx context.Context, flights []domain.Flight) error {
	return r.flights.Save(ctx, flights)
}

var _ FlightRepository = (*StoreFlightRepository)(nil)
