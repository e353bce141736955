package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/kidtrack/internal/pkg/config"
	"github.com/piresc/kidtrack/internal/pkg/database"
	"github.com/piresc/kidtrack/internal/pkg/health"
	"github.com/piresc/kidtrack/internal/pkg/logger"
	"github.com/piresc/kidtrack/internal/pkg/middleware"
	nsqpkg "github.com/piresc/kidtrack/internal/pkg/nsq"
	"github.com/piresc/kidtrack/internal/pkg/server"
	wspkg "github.com/piresc/kidtrack/internal/pkg/websocket"
	accounthandler "github.com/piresc/kidtrack/services/account/handler"
	accounthttp "github.com/piresc/kidtrack/services/account/handler/http"
	accountrepo "github.com/piresc/kidtrack/services/account/repository"
	accountuc "github.com/piresc/kidtrack/services/account/usecase"
	"github.com/piresc/kidtrack/services/location"
	"github.com/piresc/kidtrack/services/location/gateway"
	"github.com/piresc/kidtrack/services/location/handler"
	httpHandler "github.com/piresc/kidtrack/services/location/handler/http"
	nsqHandler "github.com/piresc/kidtrack/services/location/handler/nsq"
	wsHandler "github.com/piresc/kidtrack/services/location/handler/websocket"
	"github.com/piresc/kidtrack/services/location/repository"
	"github.com/piresc/kidtrack/services/location/source"
	"github.com/piresc/kidtrack/services/location/usecase"
)

func main() {
	appName := "kidtrack-tracker"
	configPath := config.GetEnv("CONFIG_PATH", "config/tracker.env")
	configs := config.InitConfig(configPath)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
	)

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	if err := postgresClient.Migrate(); err != nil {
		zapLogger.Fatal("Failed to run migrations", logger.Err(err))
	}

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
	}

	// Initialize history store
	var backend location.BatchHistoryRepo
	switch configs.History.Backend {
	case "postgres":
		backend = repository.NewPostgresHistoryRepo(postgresClient.GetDB(), configs.History)
	default:
		backend = repository.NewRedisHistoryRepo(redisClient, configs.History)
	}
	historyRepo := repository.NewBufferedHistoryRepo(backend, configs.History)
	zapLogger.Info("History store ready",
		logger.String("backend", configs.History.Backend),
		logger.Int64("max_samples", configs.History.MaxSamples),
		logger.Duration("retention", configs.History.Retention()))

	// Live stream clients always get events; NSQ is optional
	wsManager := wspkg.NewManager()
	var nsqGW location.LocationGW
	var nsqPublisher *gateway.NSQGateway
	var producer *nsqpkg.Producer
	if configs.NSQ.Enabled() {
		producer, err = nsqpkg.NewProducer(configs.NSQ.NSQDAddress)
		if err != nil {
			zapLogger.Fatal("Failed to create NSQ producer", logger.Err(err))
		}
		nsqPublisher = gateway.NewNSQGateway(producer)
		nsqGW = nsqPublisher
	} else {
		zapLogger.Warn("NSQD_ADDRESS not set, location events will not be published to NSQ")
	}
	locationGW := gateway.NewMultiGateway(nsqGW, gateway.NewLiveGateway(wsManager))

	// Account service
	accountRepo := accountrepo.NewAccountRepo(postgresClient.GetDB())
	settingsRepo := accountrepo.NewSettingsRepo(redisClient)
	accountUC := accountuc.NewAccountUC(accountRepo, settingsRepo, configs)
	accountHandler := accounthandler.NewHandler(accounthttp.NewAccountHandler(accountUC), configs)

	// Location service
	registry := source.NewRegistry(configs.Tracking.FeedBufferSize)
	locationUC := usecase.NewLocationUC(registry, historyRepo, locationGW, settingsRepo, configs)

	var consumers *nsqHandler.NsqHandler
	if configs.NSQ.Enabled() {
		consumers = nsqHandler.NewNsqHandler(locationUC, configs)
	}
	locationHandler := handler.NewHandler(
		httpHandler.NewLocationHandler(locationUC),
		consumers,
		wsHandler.NewLiveHandler(wsManager),
		configs,
	)

	if err := locationHandler.InitNSQConsumers(); err != nil {
		zapLogger.Fatal("Failed to initialize NSQ consumers", logger.Err(err))
	}

	// Initialize Echo router
	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = time.Duration(configs.Server.ReadTimeout) * time.Second
	e.Server.WriteTimeout = time.Duration(configs.Server.WriteTimeout) * time.Second

	// Add middlewares
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.ZapEchoMiddleware(zapLogger))
	e.Use(middleware.PanicRecoveryMiddleware(zapLogger))

	// Register health endpoints
	healthService := health.NewHealthService()
	healthService.AddChecker("postgres", health.PingChecker(postgresClient))
	healthService.AddChecker("redis", health.PingChecker(redisClient))
	if producer != nil {
		healthService.AddChecker("nsq", health.CheckerFunc(func(context.Context) error {
			return producer.Ping()
		}))
		healthService.AddChecker("nsq-publisher", nsqPublisher)
	}
	health.RegisterHealthEndpoints(e, health.ServiceInfo{
		Service:     appName,
		Version:     configs.App.Version,
		Environment: configs.App.Environment,
	}, healthService)

	// Register service routes
	accountHandler.RegisterRoutes(e)
	locationHandler.RegisterRoutes(e)

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Host, configs.Server.Port,
		time.Duration(configs.Server.ShutdownTimeout)*time.Second)

	// Cleanup runs in reverse: consumers, sessions, live clients, history flush, producer, then stores
	srv.OnShutdown(func(context.Context) error {
		return postgresClient.Close()
	})
	srv.OnShutdown(func(context.Context) error {
		return redisClient.Close()
	})
	if producer != nil {
		srv.OnShutdown(func(context.Context) error {
			producer.Stop()
			return nil
		})
	}
	srv.OnShutdown(historyRepo.Close)
	srv.OnShutdown(func(context.Context) error {
		wsManager.Close()
		return nil
	})
	srv.OnShutdown(locationUC.Shutdown)
	srv.OnShutdown(func(context.Context) error {
		locationHandler.StopNSQConsumers()
		return nil
	})

	if err := srv.Start(); err != nil {
		zapLogger.Fatal("Server stopped with error",
			logger.String("app", appName),
			logger.Err(err),
		)
	}
}
