package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"origination-engine/internal/api"
	"origination-engine/internal/batch"
	"origination-engine/internal/config"
	"origination-engine/internal/domain/credit"
	"origination-engine/internal/domain/customer"
	"origination-engine/internal/domain/kyc"
	"origination-engine/internal/domain/offer"
	"origination-engine/internal/event"
	"origination-engine/internal/infrastructure/cache"
	"origination-engine/internal/infrastructure/database/memory"
	"origination-engine/internal/infrastructure/logging"
	"origination-engine/internal/infrastructure/recorder"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

func main() {
	cfg, logger := initializeApp()

	repos := initializeRepositories(logger)

	auditor, closeAuditor := initializeRecorder(cfg, logger)
	defer closeAuditor()

	publisher, closePublisher := initializePublisher(cfg, logger)
	defer closePublisher()

	services := initializeServices(cfg, repos, auditor, publisher, logger)

	syncJob := batch.NewBureauSyncJob(repos.customers, repos.reports, logger)
	cronScheduler := startBatchJobs(cfg, logger, syncJob)

	router := api.SetupRouter(services, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, shutdownChan, serverErrors, logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on environment")
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logger)
	slog.SetDefault(logger)
	logger.Info("Application starting...", "config_source", viper.ConfigFileUsed())

	return cfg, logger
}

type repositories struct {
	customers  *memory.CustomerRepository
	reports    *memory.ReportRepository
	kycRecords *memory.KYCRepository
	offers     *memory.OfferRepository
}

func initializeRepositories(logger *slog.Logger) repositories {
	logger.Info("Initializing in-memory repositories with seed data...")
	return repositories{
		customers:  memory.NewCustomerRepository(memory.SeedCustomers(), logger),
		reports:    memory.NewReportRepository(memory.SeedReports()),
		kycRecords: memory.NewKYCRepository(memory.SeedKYCRecords()),
		offers:     memory.NewOfferRepository(memory.SeedOffers()),
	}
}

func initializeRecorder(cfg *config.Config, logger *slog.Logger) (recorder.Recorder, func()) {
	if !cfg.Recorder.Enabled {
		return recorder.NewNoopRecorder(), func() {}
	}

	sqliteRecorder, err := recorder.NewSQLiteRecorder(cfg.Recorder.Path, logger)
	if err != nil {
		logger.Error("Failed to initialize evaluation recorder", "error", err)
		os.Exit(1)
	}
	logger.Info("Evaluation recorder initialized", "path", cfg.Recorder.Path)
	return sqliteRecorder, func() {
		if err := sqliteRecorder.Close(); err != nil {
			logger.Error("Failed to close evaluation recorder", "error", err)
		}
	}
}

func initializePublisher(cfg *config.Config, logger *slog.Logger) (event.EventPublisher, func()) {
	if !cfg.Events.Enabled {
		return event.NewNoopPublisher(), func() {}
	}

	conn, err := amqp.Dial(cfg.Events.URL)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	publisher, err := event.NewRabbitMQEventPublisher(conn, cfg.Events.ExchangeName, logger)
	if err != nil {
		logger.Error("Failed to initialize event publisher", "error", err)
		os.Exit(1)
	}
	logger.Info("Event publisher initialized", "exchange", cfg.Events.ExchangeName)
	return publisher, func() {
		if err := conn.Close(); err != nil {
			logger.Error("Failed to close RabbitMQ connection", "error", err)
		}
	}
}

func initializeServices(cfg *config.Config, repos repositories, auditor recorder.Recorder, publisher event.EventPublisher, logger *slog.Logger) api.Services {
	logger.Info("Initializing application services...")

	var bundleCache cache.Cache
	if cfg.Cache.Enabled {
		bundleCache = cache.NewRedisCache(cfg.Cache.RedisAddr)
		logger.Info("Using Redis offer cache", "addr", cfg.Cache.RedisAddr)
	} else {
		bundleCache = cache.NewMemoryCache()
	}

	var rng *rand.Rand
	if cfg.Verification.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Verification.Seed))
	}

	return api.Services{
		Credit:     credit.NewCreditService(repos.reports, repos.customers, publisher, auditor, cfg.Evaluation.ReferenceAnnualRate, logger),
		Customers:  customer.NewCustomerService(repos.customers, logger),
		KYC:        kyc.NewKYCService(repos.kycRecords, rng, cfg.Verification.MinDelay, cfg.Verification.MaxDelay, logger),
		Offers:     offer.NewOfferService(repos.offers, repos.customers, bundleCache, cfg.Cache.TTL, logger),
		KYCRecords: repos.kycRecords,
		Reports:    repos.reports,
	}
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	var triggerReason string
	select {
	case sig := <-shutdownChan:
		triggerReason = "signal: " + sig.String()
		logger.Info("Shutdown signal received.", "signal", sig.String())
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			os.Exit(1)
		}
		triggerReason = "server exited"
		logger.Info("Server goroutine finished before signal.", "error", err)
	}

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server graceful shutdown failed", "error", err)
		} else {
			logger.Info("HTTP server shutdown initiated.")
		}
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}
	logger.Info("Waiting for server goroutine to confirm exit...")
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
		} else {
			logger.Info("Server goroutine confirmed exit.")
		}
	case <-time.After(5 * time.Second):
		logger.Warn("Timed out waiting for server goroutine confirmation.")
	}

	logger.Info("Application shutdown process complete.")
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, syncJob *batch.BureauSyncJob) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	scheduleSpec := cfg.Batch.BureauSyncSchedule
	if scheduleSpec == "" {
		scheduleSpec = "0 2 * * *"
		logger.Warn("Bureau sync schedule not configured, using default", "schedule", scheduleSpec)
	}
	jobTimeout := cfg.Batch.BureauSyncTimeout
	if jobTimeout <= 0 {
		jobTimeout = 5 * time.Minute
	}

	jobID, err := c.AddJob(scheduleSpec, cron.FuncJob(func() {
		jobLogger := logger.With("job_name", "BureauSync")
		jobLogger.Info("Cron triggered: Running bureau score sync job.")

		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if runErr := syncJob.Run(ctx); runErr != nil {
			jobLogger.Error("Bureau sync job finished with error", slog.Any("error", runErr))
		} else {
			jobLogger.Info("Bureau sync job finished successfully.")
		}
	}))

	if err != nil {
		logger.Error("Failed to schedule bureau sync job", "schedule", scheduleSpec, slog.Any("error", err))
	} else {
		logger.Info("Scheduled bureau sync job", "schedule", scheduleSpec, "job_id", jobID)
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}
