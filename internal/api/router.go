package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/tradescope/Trading-Journal-Backend/internal/api/handlers"
	custommiddleware "github.com/tradescope/Trading-Journal-Backend/internal/api/middleware"
	"github.com/tradescope/Trading-Journal-Backend/internal/config"
	"github.com/tradescope/Trading-Journal-Backend/internal/service"
)

// Services bundles the service dependencies the router needs.
type Services struct {
	System       *service.SystemService
	Account      *service.AccountService
	Session      *service.SessionService
	Cashflow     *service.CashflowService
	Plan         *service.PlanService
	Analytics    *service.AnalyticsService
	Materialized *service.MaterializedService
}

// NewRouter creates and configures the HTTP router
func NewRouter(services Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	systemHandler := handlers.NewSystemHandler(services.System)
	accountHandler := handlers.NewAccountHandler(services.Account)
	sessionHandler := handlers.NewSessionHandler(services.Session, services.Materialized)
	cashflowHandler := handlers.NewCashflowHandler(services.Cashflow, services.Materialized)
	planHandler := handlers.NewPlanHandler(services.Plan, services.Materialized)
	analyticsHandler := handlers.NewAnalyticsHandler(services.Analytics, services.Materialized)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/account", func(r chi.Router) {
			r.Get("/", accountHandler.Accounts)
			r.Post("/", accountHandler.CreateAccount)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", accountHandler.GetAccount)

				r.Route("/session", func(r chi.Router) {
					r.Get("/", sessionHandler.SessionsPerAccount)
					r.Post("/", sessionHandler.CreateSession)
				})

				r.Route("/cashflow", func(r chi.Router) {
					r.Get("/", cashflowHandler.CashflowsPerAccount)
					r.Post("/", cashflowHandler.CreateCashflow)
					r.Delete("/{cashflowId}", cashflowHandler.DeleteCashflow)
				})

				r.Route("/plan", func(r chi.Router) {
					r.Get("/", planHandler.GetPlan)
					r.Put("/", planHandler.SavePlan)
				})

				r.Route("/analytics", func(r chi.Router) {
					r.Get("/summary", analyticsHandler.Summary)
					r.Get("/equity", analyticsHandler.Equity)
					r.Get("/trades", analyticsHandler.Trades)
					r.Get("/stats", analyticsHandler.Stats)
					r.Get("/comparisons", analyticsHandler.Comparisons)
					r.Get("/kpis", analyticsHandler.KPIs)
				})
			})
		})

		r.Route("/session/{uuid}", func(r chi.Router) {
			r.Use(custommiddleware.ValidateUUIDMiddleware)
			r.Get("/", sessionHandler.GetSession)
			r.Delete("/", sessionHandler.DeleteSession)
		})

		// Internal operations guarded by the shared API key
		r.Route("/internal", func(r chi.Router) {
			r.Use(custommiddleware.APIKeyMiddleware)
			r.Post("/snapshots/rebuild", analyticsHandler.RebuildSnapshots)
		})
	})

	return r
}
