package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"paytrack/internal/amqp"
	"paytrack/internal/cli"
	apphttp "paytrack/internal/http"
	"paytrack/internal/profile"
	"paytrack/internal/service"
	"paytrack/internal/storage"
	"paytrack/internal/store"
)

func main() {
	cfg, logger := cli.Bootstrap()

	files := storage.NewFileRepository(cfg.DataDir)

	// AMQP is optional: without a broker the server still serves the API,
	// it just publishes no events.
	var publisher service.EventPublisher
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		var err error
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()
		publisher = amqpClient
		logger.Info("AMQP event publishing enabled", "exchange", cfg.AMQPExchange)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	payments := service.NewPaymentService(store.New(), files, publisher)
	profiles := profile.NewRegistry()

	srv := apphttp.NewServer(":"+cfg.Port, payments, profiles)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, cancel := cli.SignalContext(logger)
	defer cancel()

	go func() {
		<-ctx.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	}()

	logger.Info("Starting paytrack server", "port", cfg.Port, "data_dir", cfg.DataDir)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	logger.Info("Server stopped gracefully")
}
