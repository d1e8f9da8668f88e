package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gridvolt/stationd/internal/adapter/cache"
	"github.com/gridvolt/stationd/internal/adapter/http/fiber/handlers"
	"github.com/gridvolt/stationd/internal/adapter/http/fiber/middleware"
	"github.com/gridvolt/stationd/internal/adapter/queue"
	"github.com/gridvolt/stationd/internal/adapter/storage/postgres"
	"github.com/gridvolt/stationd/internal/ports"
	"github.com/gridvolt/stationd/internal/service/auth"
	"github.com/gridvolt/stationd/internal/service/connector"
	"github.com/gridvolt/stationd/internal/service/constraint"
	"github.com/gridvolt/stationd/internal/service/station"
	"github.com/gridvolt/stationd/internal/service/stationtype"
	"github.com/gridvolt/stationd/pkg/config"
)

const serviceName = "stationd"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		log.Fatal("Failed to initialize logger: ", err)
	}
	defer logger.Sync()

	logger.Info("Starting stationd",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	db, err := postgres.NewConnection(cfg.Database.URL, cfg.Database.LogQueries, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("Failed to get underlying SQL DB", zap.Error(err))
	}
	defer sqlDB.Close()

	if cfg.Database.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}
	if cfg.Database.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}
	if cfg.Database.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	}

	if cfg.Database.AutoMigrate {
		if err := postgres.RunMigrations(db); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
	}

	tokenCache := newTokenCache(cfg, logger)
	defer tokenCache.Close()

	messageQueue, err := newMessageQueue(cfg.Queue, logger)
	if err != nil {
		logger.Fatal("Failed to connect to message broker", zap.Error(err))
	}
	defer messageQueue.Close()

	typeRepo := postgres.NewStationTypeRepository(db, logger)
	stationRepo := postgres.NewStationRepository(db, logger)
	connectorRepo := postgres.NewConnectorRepository(db, logger)
	userRepo := postgres.NewUserRepository(db, logger)

	engine := constraint.NewEngine(typeRepo, stationRepo, connectorRepo, logger)

	typeService := stationtype.NewService(typeRepo, messageQueue, logger)
	stationService := station.NewService(stationRepo, engine, messageQueue, logger)
	connectorService := connector.NewService(connectorRepo, engine, messageQueue, logger)
	authService := auth.NewService(userRepo, tokenCache, cfg.JWT.Secret, cfg.JWT.AccessTokenDuration, logger)

	if cfg.Seed.Enabled {
		if err := typeService.Seed(context.Background()); err != nil {
			logger.Fatal("Failed to seed charging station types", zap.Error(err))
		}
	}

	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(middleware.Metrics())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.CORS.AllowedOrigins, ","),
		AllowMethods: strings.Join(cfg.CORS.AllowedMethods, ","),
		AllowHeaders: strings.Join(cfg.CORS.AllowedHeaders, ","),
	}))

	app.Get("/health/live", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})
	app.Get("/health/ready", func(c *fiber.Ctx) error {
		if err := sqlDB.Ping(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).SendString("Database not ready")
		}
		if err := tokenCache.Ping(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).SendString("Cache not ready")
		}
		return c.SendString("Ready")
	})
	app.Get("/metrics", func(c *fiber.Ctx) error {
		handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		handler(c.Context())
		return nil
	})

	authHandler := handlers.NewAuthHandler(authService, logger)
	typeHandler := handlers.NewStationTypeHandler(typeService, logger)
	stationHandler := handlers.NewStationHandler(stationService, logger)
	connectorHandler := handlers.NewConnectorHandler(connectorService, logger)

	app.Post("/token/", authHandler.Login)
	app.Post("/users/", authHandler.Register)

	protected := app.Group("", middleware.AuthRequired(authService))

	protected.Get("/users/me", authHandler.Me)
	protected.Put("/users/:username", authHandler.UpdateUser)
	protected.Delete("/users/:username", authHandler.DeleteUser)

	protected.Post("/charging_station_types/", typeHandler.Create)
	protected.Get("/charging_station_types/", typeHandler.List)
	protected.Get("/charging_station_types/:id", typeHandler.Get)
	protected.Put("/charging_station_types/:id", typeHandler.Update)
	protected.Delete("/charging_station_types/:id", typeHandler.Delete)

	protected.Post("/charging_stations/", stationHandler.Create)
	protected.Get("/charging_stations/", stationHandler.List)
	protected.Get("/charging_stations/:id", stationHandler.Get)
	protected.Put("/charging_stations/:id", stationHandler.Update)
	protected.Delete("/charging_stations/:id", stationHandler.Delete)

	protected.Post("/connectors/", connectorHandler.Create)
	protected.Get("/connectors/", connectorHandler.List)
	protected.Get("/connectors/:id", connectorHandler.Get)
	protected.Put("/connectors/:id", connectorHandler.Update)
	protected.Delete("/connectors/:id", connectorHandler.Delete)

	go func() {
		logger.Info("Starting HTTP server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

// newTokenCache returns Redis when configured, otherwise an in-process cache
// with its own expiry sweep.
func newTokenCache(cfg *config.Config, logger *zap.Logger) ports.Cache {
	if cfg.Redis.URL == "" {
		logger.Info("Redis not configured, using in-process token cache")
		return cache.NewLocalCache(time.Minute, logger)
	}

	redisCache, err := cache.NewRedisCache(cfg.Redis.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	return redisCache
}

func newMessageQueue(cfg config.QueueConfig, logger *zap.Logger) (queue.MessageQueue, error) {
	switch cfg.Broker {
	case "nats":
		return queue.NewNATSQueue(cfg.NATS.URL, logger)
	case "rabbitmq":
		return queue.NewRabbitMQQueue(cfg.RabbitMQ.URL, logger)
	case "none", "":
		logger.Info("Message broker disabled, events will be dropped")
		return queue.NewNoopQueue(), nil
	default:
		return nil, fmt.Errorf("unknown queue broker %q", cfg.Broker)
	}
}
