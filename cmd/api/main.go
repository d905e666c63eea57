package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	_ "github.com/johnquangdev/transcript-dubber/docs"
	"github.com/johnquangdev/transcript-dubber/internal/adapter/handler"
	"github.com/johnquangdev/transcript-dubber/internal/domain/entities"
	"github.com/johnquangdev/transcript-dubber/internal/domain/repositories"
	"github.com/johnquangdev/transcript-dubber/internal/infrastructure/cache"
	"github.com/johnquangdev/transcript-dubber/internal/infrastructure/external/azure"
	"github.com/johnquangdev/transcript-dubber/internal/infrastructure/secrets"
	"github.com/johnquangdev/transcript-dubber/internal/infrastructure/storage"
	"github.com/johnquangdev/transcript-dubber/internal/infrastructure/telemetry"
	"github.com/johnquangdev/transcript-dubber/internal/usecase/dubbing"
	"github.com/johnquangdev/transcript-dubber/internal/usecase/ssml"
	"github.com/johnquangdev/transcript-dubber/pkg/config"
	pkgvalidator "github.com/johnquangdev/transcript-dubber/pkg/validator"
)

// @title           Transcript Dubber API
// @version         1.0
// @description     Turns multilingual CSV transcripts into English and target-language audio.

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// Tracing and metrics
	shutdownTelemetry, metricsHandler, err := telemetry.Setup(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to set up telemetry", zap.Error(err))
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			logger.Warn("telemetry shutdown failed", zap.Error(err))
		}
	}()

	// Object storage
	logger.Info("connecting to object storage",
		zap.String("endpoint", cfg.Storage.Endpoint),
		zap.String("bucket", cfg.Storage.BucketName))
	store, err := storage.NewMinIOClient(ctx, &cfg.Storage, logger)
	if err != nil {
		logger.Fatal("failed to connect to object storage", zap.Error(err))
	}

	checks := map[string]handler.Pinger{"storage": store}

	// Speech credentials
	var credSource repositories.CredentialRepository
	switch cfg.Secrets.Backend {
	case "redis":
		logger.Info("loading speech credentials from redis", zap.String("secret", cfg.Secrets.Name))
		redisClient, err := cache.NewRedisClient(ctx, cfg)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()

		checks["redis"] = handler.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
		credSource = secrets.NewRedisSource(redisClient, cfg.Secrets.Name)
	default:
		credSource = secrets.NewStaticSource(cfg.Secrets.APIKey, cfg.Secrets.Region)
	}
	creds := secrets.NewCachedSource(credSource, cfg.Secrets.CacheTTL)

	// Speech provider
	speechClient := azure.NewClient(&cfg.Speech, creds, logger)
	catalog := cache.NewCatalogCache(speechClient, cfg.Catalog.CacheTTL, logger)

	validator := pkgvalidator.New()

	pipelineMetrics, err := telemetry.NewPipelineMetrics()
	if err != nil {
		logger.Fatal("failed to create pipeline metrics", zap.Error(err))
	}

	dubbingService, err := dubbing.NewService(dubbing.Options{
		Store:   store,
		Speech:  catalog,
		Builder: ssml.NewBuilder(ssml.DefaultSpeakerRoles()),
		English: dubbing.EnglishVoices{
			Locale: cfg.Speech.EnglishLocale,
			Voices: entities.VoiceAssignment{
				Male:   cfg.Speech.EnglishMale,
				Female: cfg.Speech.EnglishFemale,
			},
		},
		Locales: validator,
		Metrics: pipelineMetrics,
		Logger:  logger,
	})
	if err != nil {
		logger.Fatal("failed to create dubbing service", zap.Error(err))
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = validator

	e.HideBanner = true
	e.HTTPErrorHandler = handler.ErrorHandler(logger)

	e.Use(middleware.RequestID())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${id} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderXRequestID},
	}))
	e.Use(middleware.BodyLimit(cfg.Server.MaxUploadSize))
	e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
		Timeout: cfg.Server.RequestTimeout,
	}))

	router := handler.NewRouter(cfg, handler.NewDubbingHandler(dubbingService, logger), metricsHandler, checks)
	router.Setup(e)

	// Start server
	go func() {
		addr := cfg.GetServerAddr()
		logger.Info("starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment))

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("server stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
