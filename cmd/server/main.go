package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"aidiary/internal/diary/adapters/billing"
	httpServer "aidiary/internal/diary/adapters/http"
	"aidiary/internal/diary/adapters/openai"
	pgAdapter "aidiary/internal/diary/adapters/postgres"
	"aidiary/internal/diary/app"
	"aidiary/internal/diary/config"
	"aidiary/internal/diary/ports/repositories"
	"aidiary/internal/diary/ports/services"
	"aidiary/pkg/db/postgres"
	"aidiary/pkg/logger"
	"aidiary/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "DIARY_LOGGER_MODE"
	EnvLoggerLevel = "DIARY_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrConnectDatabase      = "failed to connect to database, diary store runs in degraded mode"
	ErrRunMigrations        = "failed to run migrations, diary store runs in degraded mode"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "diary service started"
	LogServiceShutdownDone = "diary service shutdown complete"
	LogStoppingHTTP        = "stopping HTTP server"
	LogInitStore           = "initializing diary store"
	LogStoreNotConfigured  = "diary store is not configured, running in demo mode"
	LogInitEnhancer        = "initializing text enhancer"
	LogEnhancerDemoMode    = "enhancer api key is not configured, running in demo mode"
	LogInitBilling         = "initializing billing client"
	LogBillingNotSet       = "billing secret key is not configured, billing endpoints are disabled"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(env)),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		// Хранилище дневника опционально: без него сервис продолжает
		// работать и отдает безопасные значения по умолчанию.
		log.Info(ctx, LogInitStore)
		var database *postgres.Database
		var diaryRepo repositories.DiaryRepository
		if cfg.Postgres.IsConfigured() {
			database, err = postgres.New(ctx, cfg.Postgres.GetDSN(), cfg.Postgres.MinConn, cfg.Postgres.MaxConn)
			if err != nil {
				log.Error(ctx, ErrConnectDatabase, zap.Error(err))
				database = nil
			} else if err := postgres.MigrateDSN(ctx, cfg.Postgres.GetConnectionURL(), "migrations/diary"); err != nil {
				log.Error(ctx, ErrRunMigrations, zap.Error(err))
				database.Close(ctx)
				database = nil
			}
			if database != nil {
				diaryRepo = pgAdapter.NewRepositoryFactory(database.Pool()).DiaryRepository()
			}
		} else {
			log.Warn(ctx, LogStoreNotConfigured)
		}

		log.Info(ctx, LogInitEnhancer)
		var rewriter services.TextRewriter
		if cfg.Enhancer.IsConfigured() {
			rewriter = openai.NewRewriter(cfg.Enhancer.APIKey, cfg.Enhancer.Model)
		} else {
			log.Warn(ctx, LogEnhancerDemoMode)
		}

		log.Info(ctx, LogInitBilling)
		var billingClient services.BillingClient
		if cfg.Billing.IsConfigured() {
			billingClient = billing.NewClient(cfg.Billing.BaseURL, cfg.Billing.SecretKey, nil)
		} else {
			log.Warn(ctx, LogBillingNotSet)
		}

		log.Info(ctx, LogInitServices)
		enhanceService := app.NewEnhanceUseCase(rewriter)
		diaryService := app.NewDiaryUseCase(diaryRepo)

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		httpServer.SetupRouter(fiberApp, enhanceService, diaryService, billingClient)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			// Закрытие соединения с базой данных.
			func(ctx context.Context) error {
				if database != nil {
					log.Info(ctx, "closing database connection")
					database.Close(ctx)
				}
				return nil
			},
			// Остановка HTTP сервера.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return fiberApp.Shutdown()
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
