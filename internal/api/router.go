package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/traceid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"origination-engine/internal/api/handler"
	mw "origination-engine/internal/api/middleware"
	"origination-engine/internal/config"
	"origination-engine/internal/domain/credit"
	"origination-engine/internal/domain/customer"
	"origination-engine/internal/domain/kyc"
	"origination-engine/internal/domain/offer"
)

// Services bundles everything the router exposes over HTTP.
type Services struct {
	Credit    credit.CreditService
	Customers customer.CustomerService
	KYC       kyc.KYCService
	Offers    offer.OfferService

	// Lookup dependencies for the enriched customer-by-phone response.
	KYCRecords kyc.Repository
	Reports    credit.ReportRepository
}

func SetupRouter(services Services, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()

	setupMiddleware(router, cfg, logger)
	setupMetricsEndpoint(router, cfg, logger)
	setupCreditRoutes(router, services, logger)
	setupCustomerRoutes(router, services, logger)
	setupKYCRoutes(router, services, logger)
	setupOfferRoutes(router, services, logger)
	router.Get("/health", healthHandler)

	return router
}

func setupMiddleware(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(traceid.Middleware)
	router.Use(mw.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(mw.NewRateLimiterMiddleware(cfg.Server.RateLimit, logger).Middleware)
	router.Use(mw.MetricsMiddleware())
}

func setupMetricsEndpoint(router *chi.Mux, cfg *config.Config, logger *slog.Logger) {
	metricsPath := cfg.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	logger.Info("Setting up Prometheus metrics endpoint", "path", metricsPath)
	router.Handle(metricsPath, promhttp.Handler())
}

func setupCreditRoutes(router *chi.Mux, services Services, logger *slog.Logger) {
	creditHandler := handler.NewCreditHandler(services.Credit, logger)

	router.Route("/credit", func(r chi.Router) {
		r.Get("/{customerId}", creditHandler.GetReport)
		r.Post("/evaluate/{customerId}", creditHandler.Evaluate)
	})
}

func setupCustomerRoutes(router *chi.Mux, services Services, logger *slog.Logger) {
	customerHandler := handler.NewCustomerHandler(services.Customers, services.KYCRecords, services.Reports, logger)

	router.Route("/customers", func(r chi.Router) {
		r.Get("/", customerHandler.List)
		r.Post("/inquiry", customerHandler.Inquire)
		r.Get("/{phone}", customerHandler.GetByPhone)
	})
}

func setupKYCRoutes(router *chi.Mux, services Services, logger *slog.Logger) {
	kycHandler := handler.NewKYCHandler(services.KYC, logger)

	router.Route("/kyc", func(r chi.Router) {
		r.Get("/{customerId}", kycHandler.GetStatus)
		r.Post("/submit/{customerId}", kycHandler.SubmitDocument)
		r.Post("/verify/{customerId}", kycHandler.Verify)
	})
}

func setupOfferRoutes(router *chi.Mux, services Services, logger *slog.Logger) {
	offerHandler := handler.NewOfferHandler(services.Offers, logger)

	router.Route("/offers", func(r chi.Router) {
		r.Get("/", offerHandler.List)
		r.Get("/personalized/{phone}", offerHandler.Personalized)
		r.Post("/calculate-emi", offerHandler.CalculateEMI)
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
