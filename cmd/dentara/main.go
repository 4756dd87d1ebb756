package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/dentara/dentara/internal/app"
	"github.com/dentara/dentara/internal/billing"
	"github.com/dentara/dentara/internal/inventory"
	"github.com/dentara/dentara/internal/ledger"
	"github.com/dentara/dentara/internal/masterdata/doctors"
	"github.com/dentara/dentara/internal/masterdata/patients"
	"github.com/dentara/dentara/internal/masterdata/treatments"
	"github.com/dentara/dentara/internal/observability"
	"github.com/dentara/dentara/internal/platform/db"
	"github.com/dentara/dentara/internal/reports"
	reporthttp "github.com/dentara/dentara/internal/reports/http"
	"github.com/dentara/dentara/internal/scheduling"
	"github.com/dentara/dentara/internal/shared"
	"github.com/dentara/dentara/internal/suppliers"
	"github.com/dentara/dentara/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	auditLogger := shared.NewAuditLogger(dbpool)
	idempotencyStore := shared.NewIdempotencyStore(dbpool)
	metrics := observability.NewMetrics()

	patientsHandler := patients.NewHandler(logger, patients.NewService(patients.NewRepository(dbpool)))
	doctorsHandler := doctors.NewHandler(logger, doctors.NewService(doctors.NewRepository(dbpool)))
	treatmentsHandler := treatments.NewHandler(logger, treatments.NewService(treatments.NewRepository(dbpool)))
	schedulingHandler := scheduling.NewHandler(logger, scheduling.NewService(scheduling.NewRepository(dbpool)))
	ledgerHandler := ledger.NewHandler(logger, ledger.NewService(ledger.NewRepository(dbpool)))

	billingService := billing.NewService(billing.NewRepository(dbpool), auditLogger, idempotencyStore)
	billingHandler := billing.NewHandler(logger, billingService)

	reportCache := reports.NewCache(redisClient, cfg.ReportCacheTTL)
	reportService := reports.NewService(reports.NewRepository(dbpool), reportCache, auditLogger)
	reportsHandler := reporthttp.NewHandler(logger, reportService)

	suppliersService := suppliers.NewService(suppliers.NewRepository(dbpool), auditLogger)
	suppliersHandler := suppliers.NewHandler(logger, suppliersService)

	inventoryService := inventory.NewService(inventory.NewRepository(dbpool))
	inventoryHandler := inventory.NewHandler(logger, inventoryService)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() { _ = inspector.Close() }()
	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _ = jobClient.Close() }()
	jobHandler := jobs.NewHandler(inspector, jobClient, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		PatientsHandler:   patientsHandler,
		DoctorsHandler:    doctorsHandler,
		TreatmentsHandler: treatmentsHandler,
		SchedulingHandler: schedulingHandler,
		BillingHandler:    billingHandler,
		LedgerHandler:     ledgerHandler,
		ReportsHandler:    reportsHandler,
		SuppliersHandler:  suppliersHandler,
		InventoryHandler:  inventoryHandler,
		JobHandler:        jobHandler,
		Metrics:           metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
