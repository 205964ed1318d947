package main

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/beyondslim/checkout-api/internal/api"
	"github.com/beyondslim/checkout-api/internal/api/handlers"
	"github.com/beyondslim/checkout-api/internal/checkout"
	"github.com/beyondslim/checkout-api/internal/config"
	"github.com/beyondslim/checkout-api/internal/notify"
	"github.com/beyondslim/checkout-api/internal/order"
	"github.com/beyondslim/checkout-api/internal/payment/razorpay"
	"github.com/beyondslim/checkout-api/internal/repository/postgres"
	"github.com/beyondslim/checkout-api/internal/session"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)

	// Wire the pipeline
	gateway := razorpay.NewClient(cfg.Gateway, logger)
	resolver := checkout.NewResolver(cfg.Pricing)
	notifier := notify.NewNotifier(logger,
		notify.NewSMTPMailer(cfg.SMTP),
		notify.NewFormRelay(cfg.FormRelay),
	)
	finalizer := order.NewFinalizer(cfg.Pricing, repos.Orders, notifier, logger)
	sessions := session.NewStore(time.Duration(cfg.API.SessionTTLMinutes)*time.Minute, logger)
	defer sessions.Close()

	router := api.NewRouter(handlers.Deps{
		Cfg:       cfg,
		Repos:     repos,
		Sessions:  sessions,
		Resolver:  resolver,
		Finalizer: finalizer,
		Gateway:   gateway,
		Logger:    logger,
	})

	logger.Info("Starting checkout API",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment))
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}
