// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/codr1/CourtMaster/internal/api/courts"
	"github.com/codr1/CourtMaster/internal/api/dashboard"
	"github.com/codr1/CourtMaster/internal/api/holidays"
	"github.com/codr1/CourtMaster/internal/api/reservations"
	"github.com/codr1/CourtMaster/internal/api/settings"
	"github.com/codr1/CourtMaster/internal/booking"
	"github.com/codr1/CourtMaster/internal/booking/sqlstore"
	"github.com/codr1/CourtMaster/internal/config"
	"github.com/codr1/CourtMaster/internal/contact"
	"github.com/codr1/CourtMaster/internal/db"
	"github.com/codr1/CourtMaster/internal/ratelimit"
	"github.com/codr1/CourtMaster/internal/scheduler"
)

func setupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func defaultConfigPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "config/app.yaml"
}

// pricingDefaults converts the configured pricing into the row written the
// first time settings are read.
func pricingDefaults(cfg config.PricingConfig) (booking.PricingConfig, error) {
	open, err := booking.ParseTimeOfDay(cfg.OpenTime)
	if err != nil {
		return booking.PricingConfig{}, fmt.Errorf("pricing open_time: %w", err)
	}
	closing, err := booking.ParseTimeOfDay(cfg.CloseTime)
	if err != nil {
		return booking.PricingConfig{}, fmt.Errorf("pricing close_time: %w", err)
	}
	pricing := booking.PricingConfig{
		SlotDurationMinutes: cfg.SlotDurationMinutes,
		OpenTime:            open,
		CloseTime:           closing,
		PricePerHour:        cfg.PricePerHour,
	}
	if err := pricing.Validate(); err != nil {
		return booking.PricingConfig{}, fmt.Errorf("pricing defaults: %w", err)
	}
	return pricing, nil
}

func main() {
	configPath := flag.String("config", defaultConfigPath(), "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("Failed to load configuration")
	}

	setupLogger(cfg.App.Environment)

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid timezone")
	}
	pricing, err := pricingDefaults(cfg.Pricing)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid pricing configuration")
	}

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close()

	svc, err := booking.NewService(
		sqlstore.New(database, sqlstore.WithDefaultPricing(pricing)),
		booking.WithLocation(loc),
		booking.WithContactNormalizer(contact.NewPhoneNormalizer(cfg.Contact.DefaultRegion)),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create booking service")
	}

	reservations.InitHandlers(svc)
	dashboard.InitHandlers(svc)
	courts.InitHandlers(svc)
	holidays.InitHandlers(svc)
	settings.InitHandlers(svc)

	sched, err := scheduler.New(loc)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize scheduler")
	}
	if err := scheduler.RegisterRetentionJob(sched, svc, cfg.Retention); err != nil {
		log.Fatal().Err(err).Msg("Failed to register retention job")
	}
	sched.Start()

	var limiter *ratelimit.Limiter
	if cfg.HTTP.RateLimitRPS > 0 {
		limiter = ratelimit.New(&ratelimit.Config{
			RequestsPerSecond: cfg.HTTP.RateLimitRPS,
			Burst:             cfg.HTTP.RateLimitBurst,
		})
		defer limiter.Close()
	}

	// Create server instance
	server := newServer(cfg, limiter)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Run server
	g.Go(func() error {
		log.Info().Int("port", cfg.App.Port).Str("app", cfg.App.Name).Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Wait for interrupt signal
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := sched.Stop(); err != nil {
			log.Error().Err(err).Msg("Scheduler shutdown error")
		}
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}
