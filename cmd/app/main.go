package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/airdesk/config"
	"github.com/Domenick1991/airdesk/internal/bootstrap"
	"github.com/Domenick1991/airdesk/internal/cli"
	"github.com/Domenick1991/airdesk/internal/logger"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "airdesk: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	defaultPath := os.Getenv("CONFIG_PATH")
	if defaultPath == "" {
		defaultPath = "config.yaml"
	}

	flags := pflag.NewFlagSet("airdesk", pflag.ContinueOnError)
	cfgPath := flags.String("config", defaultPath, "path to the YAML config file (env CONFIG_PATH)")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.LoadConfig(*cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	// After the first signal the default handling is restored, so a second
	// Ctrl-C kills the process even if a backend call is stuck.
	context.AfterFunc(ctx, stop)

	app, err := bootstrap.New(ctx, cfg, log, os.Stdout)
	if err != nil {
		log.WithError(err).Error("failed to start")
		return err
	}
	defer app.Close()

	log.WithField("config", *cfgPath).Info("session started")
	controller := cli.New(app.Flights, app.Bookings, app.Users, cfg.Admin, os.Stdin, os.Stdout,
		cli.WithPasswordReader(cli.TerminalPassword(os.Stdin)),
		cli.WithLogger(log),
	)
	if err := controller.Run(ctx); err != nil {
		if ctx.Err() == nil {
			return err
		}
		fmt.Fprintln(os.Stdout, "Interrupted. Goodbye!")
		log.Info("session interrupted")
		return nil
	}
	log.Info("session ended")
	return nil
}
