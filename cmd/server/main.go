package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	flag "github.com/spf13/pflag"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/seu-repo/cognitunes/internal/adapter/classifier"
	"github.com/seu-repo/cognitunes/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/cognitunes/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/cognitunes/internal/observability/telemetry"
	"github.com/seu-repo/cognitunes/internal/service/health"
	"github.com/seu-repo/cognitunes/internal/service/voice"
	"github.com/seu-repo/cognitunes/pkg/config"
)

func main() {
	envFile := flag.StringP("env", "e", ".env", "Env file loaded before configuration (optional)")
	flag.Parse()

	// 1. Load Configuration
	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		log.Fatal("Failed to load env file: ", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	// 2. Initialize Logger
	logger, err := newLogger(cfg.Logging)
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer logger.Sync()

	logger.Info("Starting Cognitunes",
		zap.String("service", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	// 3. Initialize OpenTelemetry (Distributed Tracing)
	tracerCfg := telemetry.TracerConfig{
		ServiceName:    cfg.OpenTelemetry.ServiceName,
		ServiceVersion: cfg.App.Version,
		SampleRatio:    cfg.OpenTelemetry.Jaeger.SamplerParam,
	}
	if cfg.OpenTelemetry.Enabled {
		tracerCfg.Endpoint = cfg.OpenTelemetry.Jaeger.Endpoint
	}
	tracerProvider, err := telemetry.InitTracer(tracerCfg)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetry.ShutdownTracer(ctx, tracerProvider); err != nil {
			logger.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// 4. Initialize Emotion Classifier Client
	classifierClient, err := classifier.NewClient(&classifier.Config{
		Endpoint:                cfg.Classifier.Endpoint,
		Timeout:                 cfg.Classifier.Timeout,
		MaxBodyBytes:            cfg.Classifier.MaxBodyBytes,
		BreakerMaxRequests:      cfg.CircuitBreaker.MaxRequests,
		BreakerInterval:         cfg.CircuitBreaker.Interval,
		BreakerTimeout:          cfg.CircuitBreaker.Timeout,
		BreakerFailureThreshold: cfg.CircuitBreaker.FailureThreshold,
	}, logger.Named("classifier"))
	if err != nil {
		logger.Fatal("Failed to create classifier client", zap.Error(err))
	}

	// 5. Initialize Services
	catalog := voice.NewEmotionCatalog(cfg.Skill.MediaBaseURL)
	voiceAssistant := voice.NewVoiceAssistant(classifierClient, catalog, logger.Named("skill"))

	healthService := health.NewService(cfg.App.Version, logger.Named("health"))
	healthService.RegisterChecker("classifier", health.BreakerChecker("classifier", classifierClient))

	// 6. Initialize Fiber HTTP Server
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		ServerHeader:          cfg.App.Name,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		BodyLimit:             cfg.HTTP.BodyLimit,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	// Global Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))
	if cfg.CORS.Enabled {
		app.Use(middleware.NewCORS(cfg.CORS))
	}

	// Health Check Endpoints
	health.NewFiberHandler(healthService).Mount(app)

	// Metrics endpoint for Prometheus
	if cfg.Prometheus.Enabled {
		metricsHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		app.Get(cfg.Prometheus.Path, func(c *fiber.Ctx) error {
			metricsHandler(c.Context())
			return nil
		})
	}

	// Skill endpoint
	skillHandler := handlers.NewSkillHandler(voiceAssistant, cfg.Skill.ApplicationID, logger.Named("adapter"))
	app.Post(cfg.Skill.EndpointPath,
		middleware.InvocationTimeout(cfg.Skill.InvocationTimeout),
		skillHandler.Handle,
	)
	if cfg.Skill.ApplicationID == "" {
		logger.Warn("skill.application_id is not set; accepting events for any skill")
	}

	// 7. Start HTTP Server
	go func() {
		logger.Info("Starting HTTP Server",
			zap.Int("port", cfg.HTTP.Port),
			zap.String("skill_path", cfg.Skill.EndpointPath),
		)
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 8. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// newLogger builds a zap logger from config: json for production, console otherwise.
func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
	}

	var zc zap.Config
	if cfg.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	return zc.Build()
}
