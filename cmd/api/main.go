package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	coreport "github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/core"
	"github.com/amirhossein-jamali/finance-dashboard/internal/domain/port/persistence"
	categoryUseCase "github.com/amirhossein-jamali/finance-dashboard/internal/domain/usecase/category"
	reportUseCase "github.com/amirhossein-jamali/finance-dashboard/internal/domain/usecase/report"
	transactionUseCase "github.com/amirhossein-jamali/finance-dashboard/internal/domain/usecase/transaction"

	"github.com/amirhossein-jamali/finance-dashboard/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/finance-dashboard/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/finance-dashboard/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/finance-dashboard/internal/infrastructure/adapter/events"
	"github.com/amirhossein-jamali/finance-dashboard/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/finance-dashboard/internal/infrastructure/adapter/repository/memory"
	timeProvider "github.com/amirhossein-jamali/finance-dashboard/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/finance-dashboard/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

// stores holds the persistence adapters selected by database.driver
type stores struct {
	transactions persistence.TransactionRepository
	categories   persistence.CategoryRepository
	settings     persistence.SettingsRepository
	uow          persistence.UnitOfWork
	pinger       handler.Pinger
	close        func() error
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger, err := logger.New(logger.Options{
		Production: cfg.IsProduction(),
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		Level:      cfg.Logger.Level,
		CallerInfo: cfg.Logger.CallerInfo,
		Service:    "finance-dashboard",
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = appLogger.Flush() }()

	tp, err := timeProvider.NewRealTimeProviderForZone(cfg.Ledger.Timezone)
	if err != nil {
		appLogger.Error("Invalid ledger timezone", map[string]any{
			"timezone": cfg.Ledger.Timezone,
			"error":    err.Error(),
		})
		os.Exit(1)
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), time.Minute)
	st, err := openStores(startupCtx, cfg, appLogger, tp)
	cancelStartup()
	if err != nil {
		appLogger.Error("Failed to open the ledger store", map[string]any{
			"driver": cfg.Database.Driver,
			"error":  err.Error(),
		})
		os.Exit(1)
	}
	defer func() {
		if err := st.close(); err != nil {
			appLogger.Error("Failed to close the ledger store", map[string]any{"error": err.Error()})
		}
	}()

	publisher, err := newPublisher(cfg, tp, appLogger)
	if err != nil {
		appLogger.Error("Failed to connect to the message broker", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			appLogger.Warn("Failed to close the event publisher", map[string]any{"error": err.Error()})
		}
	}()

	// Initialize use cases
	opts := []transactionUseCase.Option{transactionUseCase.WithEventPublisher(publisher)}
	if st.uow != nil {
		opts = append(opts, transactionUseCase.WithUnitOfWork(st.uow))
	}
	ledger := transactionUseCase.NewTransactionService(st.transactions, tp, appLogger, transactionUseCase.Config{
		CacheTTL:               cfg.Ledger.CacheTTL,
		NearDueDays:            cfg.Ledger.NearDueDays,
		AllowLegacyGroupKey:    cfg.Ledger.AllowLegacyGroupKey,
		IncludeFullyPaidGroups: cfg.Ledger.IncludeFullyPaidGroups,
		PlanWriteMode:          transactionUseCase.PlanWriteMode(cfg.Ledger.PlanWriteMode),
		QueueSize:              cfg.Ledger.QueueSize,
	}, opts...)

	categories := categoryUseCase.NewCategoryUseCase(st.categories, st.uow, tp, appLogger)
	settings := reportUseCase.NewSettingsUseCase(st.settings, tp, appLogger)
	reports := reportUseCase.NewReportUseCase(ledger, st.categories, settings, tp, appLogger)

	// Initialize Gin router
	router := gin.New()
	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(router, routes.Handlers{
		Transactions: handler.NewTransactionHandler(ledger, appLogger),
		Plans:        handler.NewPlanHandler(ledger, appLogger),
		Categories:   handler.NewCategoryHandler(categories, appLogger),
		Reports:      handler.NewReportHandler(reports, settings, appLogger),
		Health:       handler.NewHealthHandler(st.pinger, cfg.Database.Driver, appLogger),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr":      server.Addr,
			"env":       cfg.Environment,
			"driver":    cfg.Database.Driver,
			"log_level": appLogger.GetLevel().String(),
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		appLogger.Info("Shutting down server...", map[string]any{"signal": sig.String()})
	case err := <-serverErr:
		appLogger.Error("Server stopped unexpectedly", map[string]any{"error": err.Error()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	// Pending writes finish before the store closes
	appLogger.Info("Draining ledger writes...", nil)
	ledger.Shutdown()

	appLogger.Info("Server exited gracefully", nil)
}

// openStores connects the configured persistence driver
func openStores(ctx context.Context, cfg *config.Config, appLogger coreport.Logger, tp coreport.TimeProvider) (*stores, error) {
	if cfg.Database.Driver == "memory" {
		appLogger.Warn("Using the in-memory ledger store; data is lost on restart", nil)
		return &stores{
			transactions: memory.NewTransactionRepository(tp),
			categories:   memory.NewCategoryRepository(),
			settings:     memory.NewSettingsRepository(),
			close:        func() error { return nil },
		}, nil
	}

	dbManager := database.NewManager(database.ConfigFromAppConfig(cfg), appLogger, tp)
	if _, err := dbManager.Connect(ctx); err != nil {
		return nil, err
	}
	if cfg.Database.AutoMigrate {
		if err := dbManager.Migrate(ctx); err != nil {
			_ = dbManager.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return &stores{
		transactions: dbManager.TransactionRepository(),
		categories:   dbManager.CategoryRepository(),
		settings:     dbManager.SettingsRepository(),
		uow:          dbManager.CreateUnitOfWork(),
		pinger:       dbManager,
		close:        dbManager.Close,
	}, nil
}

// newPublisher returns the AMQP publisher when events are enabled
func newPublisher(cfg *config.Config, tp coreport.TimeProvider, appLogger coreport.Logger) (coreport.EventPublisher, error) {
	if !cfg.Events.Enabled {
		return events.NoopPublisher{}, nil
	}
	publisher, err := events.NewAMQPPublisher(events.AMQPConfig{
		URL:           cfg.Events.URL,
		Exchange:      cfg.Events.Exchange,
		RoutingPrefix: cfg.Events.RoutingPrefix,
	}, tp, appLogger)
	if err != nil {
		return nil, err
	}
	return publisher, nil
}
