package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	httpdelivery "github.com/kudzaim/paynow-relay/internal/delivery/http"
	"github.com/kudzaim/paynow-relay/internal/infrastructure/config"
	"github.com/kudzaim/paynow-relay/internal/infrastructure/paynow"
	"github.com/kudzaim/paynow-relay/internal/infrastructure/qrgenerator"
	"github.com/kudzaim/paynow-relay/internal/usecase/createpayment"
	"github.com/kudzaim/paynow-relay/internal/usecase/paymentqr"
)

const (
	qrCodeSize            = 256
	readHeaderTimeout     = 5 * time.Second
	gracefulShutdownDelay = 5 * time.Second
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	_ = godotenv.Load()

	cfg, presence, err := config.Load()
	logger.Info("env check",
		"PAYNOW_INTEGRATION_ID", presence.IntegrationID,
		"PAYNOW_INTEGRATION_KEY", presence.IntegrationKey,
		"RELAY_SECRET", presence.RelaySecret,
	)
	if err != nil {
		// Fail fast: a relay without credentials has nothing useful to serve.
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	paynowClient, err := paynow.NewClient(paynow.Config{
		IntegrationID:  cfg.IntegrationID,
		IntegrationKey: cfg.IntegrationKey,
		InitiateURL:    cfg.InitiateURL,
		ResultURL:      cfg.ResultURL,
		ReturnURL:      cfg.ReturnURL,
		Timeout:        cfg.PaynowTimeout,
	})
	if err != nil {
		logger.Error("paynow client init failed", "error", err)
		os.Exit(1)
	}
	logger.Info("paynow client initialized")

	qrGen := qrgenerator.NewGenerator(qrCodeSize)
	createUC := createpayment.NewUseCase(paynowClient, logger)
	qrUC := paymentqr.NewUseCase(createUC, qrGen)

	handler := httpdelivery.NewHandler(cfg.RelaySecret, paynowClient != nil, createUC, qrUC, logger)
	router := httpdelivery.NewRouter(handler)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		logger.Error("http serve failed", "error", err)
		os.Exit(1)
	case <-ctx.Done():
	}

	logger.Info("shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownDelay)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
