package flights

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/airdesk/internal/domain"
	"github.com/Domenick1991/airdesk/internal/kafka"
	"github.com/Domenick1991/airdesk/internal/logger"
	"github.com/Domenick1991/airdesk/internal/repository"
	"github.com/Domenick1991/airdesk/internal/service/booking"
	"github.com/sirupsen/logrus"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	Lookup(ctx context.Context, key domain.FlightKey) (*domain.Flight, error)
	Add(ctx context.Context, input AddFlightInput) (*domain.Flight, error)
	ModifyField(ctx context.Context, flightNo string, field domain.FlightField, value string) (*domain.Flight, error)
	Delete(ctx context.Context, key domain.FlightKey) (*DeleteResult, error)
}

type AddFlightInput struct {
	SerialNo      int
	Airline       string
	Departure     string
	Destination   string
	FlightNo      string
	DepartureTime string
	ArrivalTime   string
	Price         int
}

type DeleteResult struct {
	FlightsRemoved  int
	BookingsRemoved int
}

type FlightService struct {
	repo     repository.FlightRepository
	bookings repository.BookingRepository
	events   *booking.EventPublisher
	log      logrus.FieldLogger
}

type FlightServiceOption func(*FlightService)

func WithEvents(events *booking.EventPublisher) FlightServiceOption {
	return func(s *FlightService) {
		s.events = events
	}
}

func WithLogger(log logrus.FieldLogger) FlightServiceOption {
	return func(s *FlightService) {
		s.log = log
	}
}

// NewFlightService needs the booking repository because deleting a flight
// removes its bookings.
func NewFlightService(repo repository.FlightRepository, bookings repository.BookingRepository, opts ...FlightServiceOption) *FlightService {
	service := &FlightService{repo: repo, bookings: bookings, log: logger.Discard()}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	return s.repo.List(ctx)
}

// Lookup returns the first flight matching key. Empty timings in key match
// any timing.
func (s *FlightService) Lookup(ctx context.Context, key domain.FlightKey) (*domain.Flight, error) {
	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range flights {
		if flights[i].Matches(key) {
			return &flights[i], nil
		}
	}
	return nil, fmt.Errorf("%w: flight %s", domain.ErrNotFound, domain.NormalizeFlightNo(key.FlightNo))
}

func (s *FlightService) Add(ctx context.Context, input AddFlightInput) (*domain.Flight, error) {
	flight, err := domain.NewFlight(input.SerialNo, input.Airline, input.Departure, input.Destination,
		input.FlightNo, input.DepartureTime, input.ArrivalTime, input.Price)
	if err != nil {
		return nil, err
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, f := range flights {
		if f.SerialNo == flight.SerialNo {
			return nil, fmt.Errorf("%w: serial number %d", domain.ErrDuplicate, flight.SerialNo)
		}
	}
	if i := indexOfKey(flights, flight.Key(), -1); i >= 0 {
		return nil, fmt.Errorf("%w: a flight with number %s and these timings", domain.ErrDuplicate, flight.FlightNo)
	}

	flights = append(flights, *flight)
	if err := s.repo.SaveAll(ctx, flights); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"flight_no": flight.FlightNo, "serial_no": flight.SerialNo}).Info("flight added")
	return flight, nil
}

// ModifyField changes one field of the first flight numbered flightNo and
// persists the catalog.
func (s *FlightService) ModifyField(ctx context.Context, flightNo string, field domain.FlightField, value string) (*domain.Flight, error) {
	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range flights {
		if domain.SameFlightNo(flights[i].FlightNo, flightNo) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: flight %s", domain.ErrNotFound, domain.NormalizeFlightNo(flightNo))
	}

	updated := flights[idx]
	if err := updated.Set(field, value); err != nil {
		return nil, err
	}
	if field == domain.FieldDepartureTime || field == domain.FieldArrivalTime {
		if indexOfKey(flights, updated.Key(), idx) >= 0 {
			return nil, fmt.Errorf("%w: a flight with number %s and these timings", domain.ErrDuplicate, updated.FlightNo)
		}
	}

	flights[idx] = updated
	if err := s.repo.SaveAll(ctx, flights); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"flight_no": updated.FlightNo, "field": field}).Info("flight modified")
	return &updated, nil
}

// Delete removes every flight matching the full key, then every booking
// on that flight number. Bookings carry no timings, so the cascade covers
// all timing variants of the number.
func (s *FlightService) Delete(ctx context.Context, key domain.FlightKey) (*DeleteResult, error) {
	key.FlightNo = domain.NormalizeFlightNo(key.FlightNo)
	key.DepartureTime = strings.TrimSpace(key.DepartureTime)
	key.ArrivalTime = strings.TrimSpace(key.ArrivalTime)
	if key.FlightNo == "" || key.DepartureTime == "" || key.ArrivalTime == "" {
		return nil, fmt.Errorf("%w: flight number, departure and arrival time are required", domain.ErrValidation)
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	kept := make([]domain.Flight, 0, len(flights))
	for _, f := range flights {
		if !f.Matches(key) {
			kept = append(kept, f)
		}
	}
	result := &DeleteResult{FlightsRemoved: len(flights) - len(kept)}
	if result.FlightsRemoved == 0 {
		return nil, fmt.Errorf("%w: flight %s with specified timings", domain.ErrNotFound, key.FlightNo)
	}

	if err := s.repo.SaveAll(ctx, kept); err != nil {
		return nil, err
	}

	removed, err := s.cascade(ctx, key.FlightNo)
	if err != nil {
		return result, fmt.Errorf("flight %s deleted but its bookings were not: %w", key.FlightNo, err)
	}
	result.BookingsRemoved = len(removed)

	s.log.WithFields(logrus.Fields{
		"flight_no":        key.FlightNo,
		"flights_removed":  result.FlightsRemoved,
		"bookings_removed": result.BookingsRemoved,
	}).Info("flight deleted")
	for _, b := range removed {
		event := kafka.NewBookingEvent(kafka.EventFlightDeleted, key.FlightNo)
		event.Email = b.Email
		event.Name = b.Name
		s.events.Publish(ctx, event)
	}
	return result, nil
}

func (s *FlightService) cascade(ctx context.Context, flightNo string) ([]domain.Booking, error) {
	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return nil, err
	}
	kept := make([]domain.Booking, 0, len(bookings))
	var removed []domain.Booking
	for _, b := range bookings {
		if domain.SameFlightNo(b.FlightNo, flightNo) {
			removed = append(removed, b)
			continue
		}
		kept = append(kept, b)
	}
	if len(removed) == 0 {
		return nil, nil
	}
	if err := s.bookings.SaveAll(ctx, kept); err != nil {
		return nil, err
	}
	return removed, nil
}

// indexOfKey returns the index of the flight with exactly key, skipping
// index skip.
func indexOfKey(flights []domain.Flight, key domain.FlightKey, skip int) int {
	for i, f := range flights {
		if i == skip {
			continue
		}
		if domain.SameFlightNo(f.FlightNo, key.FlightNo) &&
			f.DepartureTime == key.DepartureTime && f.ArrivalTime == key.ArrivalTime {
			return i
		}
	}
	return -1
}

var _ FlightUseCase = (*FlightService)(nil)
