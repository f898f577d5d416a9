package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace/cmd"
	httpapi "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/eventbus"
	"marketplace/internal/adapters/out/memgeo"
	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/redisgeo"
	"marketplace/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = postgres.Migrate(configs.DSN()); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	gormDB, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("Failed to get database handle: %v", err)
	}
	defer sqlDB.Close()

	checks := map[string]httpapi.PingFunc{"postgres": sqlDB.PingContext}

	locations, closeLocations := newLocationStore(configs, checks)
	defer closeLocations()

	notifierCtx, stopNotifier := context.WithCancel(context.Background())
	notifier, waitNotifier := newNotifier(notifierCtx, configs, logger)

	app := cmd.NewCompositionRoot(configs, gormDB, notifier, locations)

	jobManager := app.CreateJobManager(logger)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	e, err := newWebServer(ctx, app, configs, checks, logger)
	if err != nil {
		log.Fatalf("Failed to build web server: %v", err)
	}

	go func() {
		logger.InfoContext(ctx, "HTTP server listening", "port", configs.HTTPPort)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "HTTP server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}

	jobManager.StopAll()

	// Events from in-flight requests are queued by now; flush them last.
	stopNotifier()
	waitNotifier()
}

// newLocationStore prefers Redis when an address is configured and falls back
// to the in-process index otherwise.
func newLocationStore(configs cmd.Config, checks map[string]httpapi.PingFunc) (ports.LocationStore, func()) {
	if configs.RedisAddr == "" {
		return memgeo.NewLocationStore(), func() {}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
	})
	store := redisgeo.NewLocationStore(rdb, configs.RedisGeoKey)
	checks["redis"] = store.Ping

	return store, func() { _ = rdb.Close() }
}

// newNotifier publishes to Kafka when brokers are configured and logs events
// otherwise. The returned func blocks until queued events are written.
func newNotifier(ctx context.Context, configs cmd.Config, logger *slog.Logger) (ports.Notifier, func()) {
	if len(configs.KafkaBrokers) == 0 {
		return eventbus.NewLogNotifier(logger), func() {}
	}

	writer := eventbus.NewKafkaWriter(configs.KafkaBrokers, configs.KafkaEventsTopic)
	notifier := eventbus.NewKafkaNotifier(writer, eventbus.DefaultBuffer, logger)
	notifier.Start(ctx)

	return notifier, func() {
		notifier.Wait()
		if dropped := notifier.Dropped(); dropped > 0 {
			logger.Warn("Events dropped while the queue was full", "count", dropped)
		}
	}
}

func newWebServer(
	ctx context.Context,
	app cmd.CompositionRoot,
	configs cmd.Config,
	checks map[string]httpapi.PingFunc,
	logger *slog.Logger,
) (*echo.Echo, error) {
	doc, err := httpapi.LoadDocument(ctx)
	if err != nil {
		return nil, err
	}

	e := httpapi.NewEcho(logger)
	server := httpapi.NewServer(app.CreateHTTPHandlers())
	err = server.Register(e, httpapi.RouteConfig{
		JWTSecret: []byte(configs.JWTSecret),
		Document:  doc,
		Checks:    checks,
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}
