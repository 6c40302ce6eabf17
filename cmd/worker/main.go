package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/airdesk/config"
	"github.com/Domenick1991/airdesk/internal/email"
	"github.com/Domenick1991/airdesk/internal/kafka"
	"github.com/Domenick1991/airdesk/internal/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	pflag.StringVar(&cfgPath, "config", cfgPath, "path to the YAML config file (env CONFIG_PATH)")
	pflag.Parse()

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		logrus.Fatalf("init logger: %v", err)
	}

	if len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.NotificationsTopic == "" {
		log.Fatal("kafka.brokers and kafka.notifications_topic are required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic, log)
	defer consumer.Close()

	emailSender := email.NewSender(log)

	log.WithFields(logrus.Fields{
		"topic":    cfg.Kafka.NotificationsTopic,
		"group_id": cfg.Kafka.GroupID,
	}).Info("worker started")

	if err := consumer.ConsumeEvents(ctx, emailSender.Send); err != nil {
		log.WithError(err).Fatal("consumer stopped")
	}
	log.Info("worker stopped")
}
