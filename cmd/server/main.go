package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tradescope/Trading-Journal-Backend/internal/api"
	"github.com/tradescope/Trading-Journal-Backend/internal/config"
	"github.com/tradescope/Trading-Journal-Backend/internal/database"
	"github.com/tradescope/Trading-Journal-Backend/internal/repository"
	"github.com/tradescope/Trading-Journal-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply pending migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	accountRepo := repository.NewAccountRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	tradeLegRepo := repository.NewTradeLegRepository(db)
	cashflowRepo := repository.NewCashflowRepository(db)
	planRepo := repository.NewPlanRepository(db)
	materializedRepo := repository.NewMaterializedRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	accountService := service.NewAccountService(accountRepo)
	sessionService := service.NewSessionService(sessionRepo, tradeLegRepo)
	cashflowService := service.NewCashflowService(cashflowRepo)
	planService := service.NewPlanService(planRepo)
	dataLoaderService := service.NewDataLoaderService(
		accountRepo,
		sessionRepo,
		tradeLegRepo,
		cashflowRepo,
		planRepo,
	)
	analyticsService := service.NewAnalyticsService(dataLoaderService, service.KPIConfig{
		TradingDaysPerYear: cfg.Analytics.TradingDaysPerYear,
	})
	materializedService := service.NewMaterializedService(
		materializedRepo,
		accountRepo,
		analyticsService,
	)

	// Nightly equity snapshot rebuild
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Analytics.SnapshotSchedule, func() {
		log.Println("Starting scheduled equity snapshot rebuild")
		if err := materializedService.RebuildAll(); err != nil {
			log.Printf("Scheduled equity snapshot rebuild finished with errors: %v", err)
			return
		}
		log.Println("Scheduled equity snapshot rebuild finished")
	}); err != nil {
		log.Fatalf("Failed to schedule equity snapshot rebuild: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(api.Services{
		System:       systemService,
		Account:      accountService,
		Session:      sessionService,
		Cashflow:     cashflowService,
		Plan:         planService,
		Analytics:    analyticsService,
		Materialized: materializedService,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
