package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	expenseapp "github.com/tradeops/backend/internal/application/expense"
	fxapp "github.com/tradeops/backend/internal/application/fx"
	identityapp "github.com/tradeops/backend/internal/application/identity"
	partnerapp "github.com/tradeops/backend/internal/application/partner"
	quotationapp "github.com/tradeops/backend/internal/application/quotation"
	reportapp "github.com/tradeops/backend/internal/application/report"
	workflowapp "github.com/tradeops/backend/internal/application/workflow"
	"github.com/tradeops/backend/internal/domain/shared/valueobject"
	"github.com/tradeops/backend/internal/infrastructure/auth"
	"github.com/tradeops/backend/internal/infrastructure/cache"
	"github.com/tradeops/backend/internal/infrastructure/config"
	"github.com/tradeops/backend/internal/infrastructure/i18n"
	"github.com/tradeops/backend/internal/infrastructure/logger"
	"github.com/tradeops/backend/internal/infrastructure/persistence"
	"github.com/tradeops/backend/internal/interfaces/http/handler"
	"github.com/tradeops/backend/internal/interfaces/http/middleware"
	"github.com/tradeops/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.Log)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLog := logger.NewGormLogger(log, cfg.Log.Level)
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database migrations applied")

	// Repositories
	principalRepo := persistence.NewGormPrincipalRepository(db.DB)
	rateRepo := persistence.NewGormRateRepository(db.DB)
	quotationRepo := persistence.NewGormQuotationRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	workflowRepo := persistence.NewGormWorkflowRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	numberGen := persistence.NewGormNumberGenerator(db.DB)

	// Rate cache: Redis when reachable, in-memory otherwise
	rateCache := cache.NewRateCache(cfg.Redis, cfg.FX, log)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	identityService := identityapp.NewService(principalRepo, numberGen, jwtService, log)
	fxService := fxapp.NewService(rateRepo, rateCache, loadAverages(cfg.FX, log), log)
	quotationService := quotationapp.NewService(quotationRepo, customerRepo, numberGen, fxService, log)
	expenseService := expenseapp.NewService(expenseRepo, principalRepo, numberGen, log)
	workflowService := workflowapp.NewService(workflowRepo, quotationRepo, principalRepo, numberGen, log)
	reportService := reportapp.NewService(reportRepo, principalRepo, numberGen, log)
	partnerService := partnerapp.NewService(customerRepo, supplierRepo, log)

	translator := i18n.NewTranslator()

	// HTTP layer
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine := router.New(router.Config{
		Handlers: router.Handlers{
			Auth:      handler.NewAuthHandler(identityService),
			FX:        handler.NewFXHandler(fxService),
			Quotation: handler.NewQuotationHandler(quotationService),
			Expense:   handler.NewExpenseHandler(expenseService),
			Workflow:  handler.NewWorkflowHandler(workflowService),
			Report:    handler.NewReportHandler(reportService),
			Partner:   handler.NewPartnerHandler(partnerService),
			Menu:      handler.NewMenuHandler(translator),
		},
		JWT:         middleware.DefaultJWTConfig(jwtService),
		CORS:        corsCfg,
		Logger:      log,
		ReleaseMode: cfg.App.Env == "production",
	})

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("Shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}

// loadAverages parses the configured long-run averages used by the quarterly
// rate plausibility check. Malformed entries are skipped with a warning so a
// typo in config.toml does not take the server down.
func loadAverages(cfg config.FXConfig, log *zap.Logger) map[valueobject.Currency]decimal.Decimal {
	averages := make(map[valueobject.Currency]decimal.Decimal, len(cfg.Averages))
	for code, raw := range cfg.Averages {
		currency, err := valueobject.ParseCurrency(code)
		if err != nil {
			log.Warn("Skipping average for unknown currency", zap.String("currency", code))
			continue
		}
		avg, err := decimal.NewFromString(raw)
		if err != nil || !avg.IsPositive() {
			log.Warn("Skipping malformed average rate",
				zap.String("currency", code), zap.String("value", raw))
			continue
		}
		averages[currency] = avg
	}
	return averages
}
