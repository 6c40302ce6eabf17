// Package bootstrap wires configuration into a ready set of services.
package bootstrap

import (
	"context"
	"fmt"
	"io"

	"github.com/Domenick1991/airdesk/config"
	"github.com/Domenick1991/airdesk/internal/cli"
	"github.com/Domenick1991/airdesk/internal/kafka"
	"github.com/Domenick1991/airdesk/internal/repository"
	"github.com/Domenick1991/airdesk/internal/service/booking"
	"github.com/Domenick1991/airdesk/internal/service/flights"
	"github.com/Domenick1991/airdesk/internal/service/users"
	"github.com/Domenick1991/airdesk/internal/store"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

type App struct {
	Flights  *flights.FlightService
	Bookings *booking.BookingService
	Users    *users.UserService

	closers []func()
}

// Close releases backend and producer connections in reverse order.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// New builds the services for cfg. Undecodable stores are reported on out.
func New(ctx context.Context, cfg *config.Config, log logrus.FieldLogger, out io.Writer) (*App, error) {
	app := &App{}

	backend, err := app.openBackend(ctx, cfg, log)
	if err != nil {
		app.Close()
		return nil, err
	}

	storeOpts := []store.Option{
		store.WithLogger(log),
		store.WithWarnFunc(cli.WarnTo(out)),
	}
	flightRepo := repository.NewFlightRepository(backend, cfg.Storage.Flights, storeOpts...)
	userRepo := repository.NewUserRepository(backend, cfg.Storage.Users, storeOpts...)
	bookingRepo := repository.NewBookingRepository(backend, cfg.Storage.Passengers, storeOpts...)

	var events *booking.EventPublisher
	if cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, log)
		app.closers = append(app.closers, func() {
			if err := producer.Close(); err != nil {
				log.WithError(err).Warn("failed to close kafka producer")
			}
		})
		events = booking.NewEventPublisher(producer, cfg.Kafka.BookingEventsTopic, cfg.Kafka.NotificationsTopic, log)
		log.WithField("topic", cfg.Kafka.BookingEventsTopic).Info("event publication enabled")
	}

	app.Flights = flights.NewFlightService(flightRepo, bookingRepo,
		flights.WithEvents(events),
		flights.WithLogger(log),
	)
	app.Bookings = booking.NewBookingService(bookingRepo, flightRepo,
		booking.WithEvents(events),
		booking.WithLogger(log),
	)
	app.Users = users.NewUserService(userRepo, log)

	return app, nil
}

func (a *App) openBackend(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (store.Backend, error) {
	log = log.WithField("backend", cfg.Storage.Backend)

	switch cfg.Storage.Backend {
	case config.BackendMemory:
		log.Info("using in-memory record stores")
		return store.NewMemoryBackend(), nil

	case config.BackendRedis:
		backend := store.NewRedisBackend(cfg.Redis)
		a.closers = append(a.closers, func() { _ = backend.Close() })
		if err := backend.Ping(ctx); err != nil {
			return nil, err
		}
		log.WithField("addr", cfg.Redis.Addr).Info("connected to redis")
		return backend, nil

	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		backend := store.NewPGBackend(pool)
		if err := backend.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		log.WithField("host", cfg.Database.Host).Info("connected to postgres")
		return backend, nil

	case config.BackendFile:
		log.WithField("dir", cfg.Storage.Dir).Info("using file record stores")
		return store.NewFileBackend(cfg.Storage.Dir), nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
