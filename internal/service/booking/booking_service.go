package booking

import (
	"context"
	"fmt"
	"strings"

	"github.com/Domenick1991/airdesk/internal/domain"
	"github.com/Domenick1991/airdesk/internal/kafka"
	"github.com/Domenick1991/airdesk/internal/logger"
	"github.com/Domenick1991/airdesk/internal/repository"
	"github.com/sirupsen/logrus"
)

type BookingUseCase interface {
	Book(ctx context.Context, user domain.User, input BookInput) (*domain.Booking, error)
	ListForUser(ctx context.Context, email string) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	Cancel(ctx context.Context, email, flightNo string) (int, error)
	SetFeedback(ctx context.Context, email, text string) (int, error)
	SetFlightFeedback(ctx context.Context, email, flightNo, text string) error
}

type BookInput struct {
	FlightNo string
	Passport string
}

type BookingService struct {
	bookings repository.BookingRepository
	flights  repository.FlightRepository
	events   *EventPublisher
	log      logrus.FieldLogger
}

type BookingServiceOption func(*BookingService)

func WithEvents(events *EventPublisher) BookingServiceOption {
	return func(s *BookingService) {
		s.events = events
	}
}

func WithLogger(log logrus.FieldLogger) BookingServiceOption {
	return func(s *BookingService) {
		s.log = log
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	flights repository.FlightRepository,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings: bookings,
		flights:  flights,
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Book creates a booking for user on the first flight with the given
// number. The flight price is copied into the booking.
func (s *BookingService) Book(ctx context.Context, user domain.User, input BookInput) (*domain.Booking, error) {
	flightNo := domain.NormalizeFlightNo(input.FlightNo)
	if flightNo == "" {
		return nil, fmt.Errorf("%w: flight number is required", domain.ErrValidation)
	}
	if strings.TrimSpace(user.Email) == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}

	flight, err := s.flights.GetByFlightNo(ctx, flightNo)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		if b.For(user.Email, flightNo) {
			return nil, fmt.Errorf("%w: you have already booked flight %s", domain.ErrDuplicate, flightNo)
		}
	}

	booking, err := domain.NewBooking(user, *flight, input.Passport)
	if err != nil {
		return nil, err
	}
	bookings = append(bookings, *booking)
	if err := s.bookings.SaveAll(ctx, bookings); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"email": booking.Email, "flight_no": booking.FlightNo, "amount": booking.Amount}).Info("booking created")
	event := kafka.NewBookingEvent(kafka.EventBookingCreated, booking.FlightNo)
	event.Email = booking.Email
	event.Name = booking.Name
	event.Amount = booking.Amount
	s.events.Publish(ctx, event)

	return booking, nil
}

func (s *BookingService) ListForUser(ctx context.Context, email string) ([]domain.Booking, error) {
	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return nil, err
	}
	owned := make([]domain.Booking, 0)
	for _, b := range bookings {
		if b.BelongsTo(email) {
			owned = append(owned, b)
		}
	}
	return owned, nil
}

func (s *BookingService) ListAll(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.List(ctx)
}

// Cancel removes the user's bookings for flightNo and returns how many were
// removed. The ledger is not written when nothing matches.
func (s *BookingService) Cancel(ctx context.Context, email, flightNo string) (int, error) {
	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return 0, err
	}

	kept := make([]domain.Booking, 0, len(bookings))
	var removed []domain.Booking
	for _, b := range bookings {
		if b.For(email, flightNo) {
			removed = append(removed, b)
			continue
		}
		kept = append(kept, b)
	}
	if len(removed) == 0 {
		return 0, fmt.Errorf("%w: booking for flight %s not found for your account", domain.ErrNotFound, domain.NormalizeFlightNo(flightNo))
	}

	if err := s.bookings.SaveAll(ctx, kept); err != nil {
		return 0, err
	}

	s.log.WithFields(logrus.Fields{"email": domain.NormalizeEmail(email), "flight_no": domain.NormalizeFlightNo(flightNo)}).Info("booking cancelled")
	for _, b := range removed {
		event := kafka.NewBookingEvent(kafka.EventBookingCancelled, b.FlightNo)
		event.Email = b.Email
		event.Name = b.Name
		s.events.Publish(ctx, event)
	}
	return len(removed), nil
}

// SetFeedback writes text to every booking held by email.
func (s *BookingService) SetFeedback(ctx context.Context, email, text string) (int, error) {
	return s.setFeedback(ctx, email, "", text)
}

// SetFlightFeedback writes text to the booking held by email for flightNo.
func (s *BookingService) SetFlightFeedback(ctx context.Context, email, flightNo, text string) error {
	if domain.NormalizeFlightNo(flightNo) == "" {
		return fmt.Errorf("%w: flight number is required", domain.ErrValidation)
	}
	_, err := s.setFeedback(ctx, email, flightNo, text)
	return err
}

func (s *BookingService) setFeedback(ctx context.Context, email, flightNo, text string) (int, error) {
	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return 0, err
	}

	text = strings.TrimSpace(text)
	var updated []int
	for i := range bookings {
		if !bookings[i].BelongsTo(email) {
			continue
		}
		if flightNo != "" && !domain.SameFlightNo(bookings[i].FlightNo, flightNo) {
			continue
		}
		bookings[i].Feedback = text
		updated = append(updated, i)
	}
	if len(updated) == 0 {
		if flightNo != "" {
			return 0, fmt.Errorf("%w: booking for flight %s not found for your account", domain.ErrNotFound, domain.NormalizeFlightNo(flightNo))
		}
		return 0, fmt.Errorf("%w: no booking found for your account", domain.ErrNotFound)
	}

	if err := s.bookings.SaveAll(ctx, bookings); err != nil {
		return 0, err
	}

	s.log.WithFields(logrus.Fields{"email": domain.NormalizeEmail(email), "bookings": len(updated)}).Info("feedback saved")
	for _, i := range updated {
		event := kafka.NewBookingEvent(kafka.EventBookingFeedback, bookings[i].FlightNo)
		event.Email = bookings[i].Email
		event.Feedback = text
		s.events.Publish(ctx, event)
	}
	return len(updated), nil
}

var _ BookingUseCase = (*BookingService)(nil)
