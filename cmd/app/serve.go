package main

import (
	"FinanceTracker/database/postgres"
	"FinanceTracker/internal/config"
	"FinanceTracker/pkg/amqp"
	"FinanceTracker/pkg/redis"
	"FinanceTracker/pkg/smtp"
	"context"
	"time"

	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE:  runServe,
	}
	cmd.Flags().Bool("migrate", true, "apply pending migrations before serving")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	options := []config.ServerOption{
		config.WithFiber(config.NewFiber(logger)),
		config.WithLogger(logger),
		config.WithConfig(cfg),
		config.WithValidator(config.NewValidator()),
		config.WithDatabase(),
	}

	if cfg.RedisAddress != "" {
		options = append(options, config.WithRedisServer(redis.New(logger, cfg.RedisAddress, cfg.RedisPassword, cfg.RedisDB)))
	}
	if cfg.SMTPHost != "" {
		options = append(options, config.WithSMTPMailer(smtp.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPMail, cfg.SMTPPassword, cfg.SMTPTimeout)))
	}
	if cfg.AMQPURL != "" {
		publisher, err := amqp.New(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warnf("Notifications will not be published: %v", err)
		} else {
			options = append(options, config.WithPublisher(publisher))
		}
	}

	options = append(options,
		config.WithMiddleware(),
		config.WithBcryptUtils(),
		config.WithUtils(),
	)

	server, err := config.NewServer(options...)
	if err != nil {
		return err
	}

	if migrateFirst, _ := cmd.Flags().GetBool("migrate"); migrateFirst && server.DB() != nil {
		if err := postgres.MigrateUp(server.DB()); err != nil {
			return err
		}
		logger.Info("Database schema is up to date")
	}

	server.RegisterHandler()

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Run()
	}()

	logger.Infof("Server started on port %s", cfg.AppPort)

	select {
	case err := <-errChan:
		return err
	case <-cmd.Context().Done():
	}

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}
