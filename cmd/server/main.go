package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/academy-report-service/internal/cache"
	"github.com/SAP-F-2025/academy-report-service/internal/config"
	"github.com/SAP-F-2025/academy-report-service/internal/handlers"
	"github.com/SAP-F-2025/academy-report-service/internal/report"
	"github.com/SAP-F-2025/academy-report-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/academy-report-service/internal/services"
	"github.com/SAP-F-2025/academy-report-service/internal/utils"
	"github.com/SAP-F-2025/academy-report-service/internal/validator"
	"github.com/SAP-F-2025/academy-report-service/pkg"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 15 * time.Second

type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.NewDefaultLogger().LogError(err, "Failed to load configuration")
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.Environment)
	slogger := utils.ToSlogLogger(logger)

	if err := run(cfg, logger); err != nil {
		slogger.Error("Service stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger utils.Logger) error {
	slogger := utils.ToSlogLogger(logger)
	ctx := context.Background()

	// =========================================================================
	// Storage

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return err
	}
	if err := pkg.Migrate(db); err != nil {
		return err
	}
	repo := postgres.NewRepository(db)
	defer func() {
		if err := repo.Close(); err != nil {
			logger.LogError(err, "Failed to close database")
		}
	}()

	redisClient, err := pkg.NewRedisClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	// =========================================================================
	// Services

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		return err
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.LogError(err, "Failed to close event publisher")
		}
	}()

	serviceManager := services.NewServiceManager(services.Dependencies{
		Repository:       repo,
		Cache:            cache.NewRedisCache(redisClient, slogger),
		Publisher:        publisher,
		Generator:        newNarrativeGenerator(cfg, logger),
		Validator:        validator.New(),
		Logger:           slogger,
		DefaultGrading:   cfg.DefaultGrading,
		ReportCacheTTL:   cfg.ReportCacheTTL,
		NarrativeTimeout: cfg.Narrative.Timeout,
	})

	// =========================================================================
	// HTTP

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), handlers.RequestIDMiddleware(), utils.LoggerMiddleware(logger), utils.ContextLogger(logger))

	handlers.NewHandlerManager(serviceManager, map[string]handlers.Pinger{
		"database": repo,
		"redis":    redisPinger{client: redisClient},
	}, logger).SetupRoutes(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Academy report service listening", "port", cfg.Port, "environment", cfg.Environment)
		serverErrors <- server.ListenAndServe()
	}()

	// =========================================================================
	// Shutdown

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case sig := <-shutdown:
		logger.Info("Starting shutdown", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.LogError(err, "Could not stop server gracefully")
			return server.Close()
		}
	}
	return nil
}

func newNarrativeGenerator(cfg *config.Config, logger utils.Logger) report.NarrativeGenerator {
	if cfg.Narrative.Provider == "http" && cfg.Narrative.URL != "" {
		logger.Info("Using HTTP narrative generator", "url", cfg.Narrative.URL)
		return report.NewHTTPGenerator(report.HTTPGeneratorConfig{
			URL:     cfg.Narrative.URL,
			APIKey:  cfg.Narrative.APIKey,
			Timeout: cfg.Narrative.Timeout,
		})
	}
	logger.Info("Using static narrative generator")
	return report.NewStaticGenerator()
}
