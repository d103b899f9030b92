package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/config"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/database"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/logging"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/metrics"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/middleware"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/routes"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/services"
	"github.com/TheOmegaWolf/fitness-tracker-backend/internal/tracing"
	chatws "github.com/TheOmegaWolf/fitness-tracker-backend/internal/websocket"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %s", err)
	}

	hostname, _ := os.Hostname()
	sentryEnabled := logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogFile,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogJSON,
		Environment:      cfg.AppEnv,
		SentryDSN:        cfg.SentryDSN,
		SentryServerName: hostname,
	})

	if cfg.DBUrl == "" {
		log.Fatal("DB_URL is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracingShutdown, err := tracing.Setup(ctx, tracing.SetupParams{
		Exporter:    cfg.TracingExporter,
		ServiceName: "fittrack-backend",
		Environment: cfg.AppEnv,
	})
	if err != nil {
		log.Fatalf("failed to set up tracing: %s", err)
	}

	pool, err := database.NewPool(ctx, database.PoolParams{
		DBUrl:          cfg.DBUrl,
		TracingEnabled: cfg.DBTracing,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %s", err)
	}

	registry := metrics.SetupPrometheus(database.NewPoolCollector(pool, "fittrack"))
	metricsManager := metrics.NewManager("fittrack", "server", registry)
	metricsManager.GaugeLifeSignal.Set(1)

	deps := routes.Dependencies{
		Config:   cfg,
		DB:       pool,
		Metrics:  metricsManager,
		Registry: registry,
	}

	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warnf("redis at %s is not answering, rate limits fail open until it is: %s", cfg.RedisAddr, err)
		}
		deps.Redis = redisClient
		deps.RateLimiter = redis_rate.NewLimiter(redisClient)
	} else {
		log.Info("REDIS_ADDR not set, rate limiting disabled")
	}

	if cfg.StorageEnabled() {
		deps.Storage = services.NewSupabaseStorage(cfg.SupabaseURL, cfg.SupabaseBucket, cfg.SupabaseServiceKey)
	} else {
		log.Info("object storage not configured, profile picture uploads disabled")
	}

	hub := chatws.NewHub(metricsManager)
	go hub.Run()
	deps.Hub = hub

	app := fiber.New(fiber.Config{
		AppName:      "fittrack-backend",
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    8 * 1024 * 1024,
	})
	app.Use(middleware.Recover(metricsManager))
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))
	app.Use(middleware.RequestLog(metricsManager))
	app.Use(middleware.Timeout(cfg.RequestTimeout))

	if err := routes.RegisterRoutes(app, deps); err != nil {
		log.Fatalf("failed to register routes: %s", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Infof("server starting on port %s", cfg.Port)
		serverErr <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			log.Errorf("server stopped: %s", err)
		}
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	metricsManager.GaugeLifeSignal.Set(0)
	err = app.ShutdownWithTimeout(shutdownTimeout)
	hub.Stop()
	if redisClient != nil {
		err = multierr.Append(err, redisClient.Close())
	}
	pool.Close()
	flushCtx, cancelFlush := context.WithTimeout(context.Background(), 5*time.Second)
	err = multierr.Append(err, tracingShutdown(flushCtx))
	cancelFlush()
	if err != nil {
		log.Errorf("shutdown: %s", err)
	}
	if sentryEnabled {
		sentry.Flush(2 * time.Second)
	}
	log.Info("server stopped")
}
