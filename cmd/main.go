package main

import (
	"context"
	"expvar"
	"log"
	"runtime"

	_ "github.com/davrian/toolmart/docs"
	"github.com/davrian/toolmart/internal/infrastructure/configs"
	"github.com/davrian/toolmart/internal/infrastructure/events"
	"github.com/davrian/toolmart/internal/infrastructure/logging"
	"github.com/davrian/toolmart/internal/infrastructure/messaging"
	"github.com/davrian/toolmart/internal/infrastructure/metrics"
	"github.com/davrian/toolmart/internal/infrastructure/ratelimiter"
	"github.com/davrian/toolmart/internal/infrastructure/tracing"
	"github.com/davrian/toolmart/internal/infrastructure/ws"
	"github.com/davrian/toolmart/internal/moderation"
	"github.com/davrian/toolmart/internal/persistence/db"
	"github.com/davrian/toolmart/internal/persistence/repository"
	"github.com/davrian/toolmart/internal/presentation/api"
	auditHandler "github.com/davrian/toolmart/internal/presentation/handler/audit"
	"github.com/davrian/toolmart/internal/presentation/handler/health"
	moderationHandler "github.com/davrian/toolmart/internal/presentation/handler/moderation"
	notificationsHandler "github.com/davrian/toolmart/internal/presentation/handler/notifications"
)

const (
	serviceName = "toolmart-api"
)

// @title        Toolmart Moderation API
// @version      1.0
// @description  Content moderation and audit trail service for the Toolmart marketplace
// @BasePath     /api
func main() {
	tracerCfg := tracing.NewDefaultConfig(serviceName)

	sh, err := tracing.InitTracer(tracerCfg)
	if err != nil {
		log.Fatalf("Failed to initialize the tracer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer sh(ctx)

	logger := logging.NewLogger(logging.NewDefaultConfig())
	logger.Init()

	configPath := configs.DetermineConfigPath()
	cfg, err := configs.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}

	mongoCfg := &db.MongoConfig{
		URI:               cfg.Mongo.URI,
		Database:          cfg.Mongo.Database,
		ConnectionTimeout: cfg.Mongo.ConnectionTimeout,
	}
	mongoClient, err := db.NewMongoClient(ctx, mongoCfg)
	if err != nil {
		log.Fatal(err)
	}
	defer db.DisconnectMongo(context.Background(), mongoClient)

	database := db.GetDatabase(mongoClient, mongoCfg)

	contentRepository := repository.NewContentRepository(database)
	auditRepository := repository.NewAuditLogRepository(database)
	notificationRepository := repository.NewNotificationRepository(database)

	for _, ensure := range []func(context.Context) error{
		contentRepository.EnsureIndexes,
		auditRepository.EnsureIndexes,
		notificationRepository.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Printf("Failed to ensure indexes: %v", err)
		}
	}

	hub := ws.NewHub()
	go hub.Run()

	rabbitmq, err := messaging.NewRabbitMQ(cfg.RabbitMQ.URI)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitmq.Close()

	log.Println("Starting RabbitMQ connection")

	notificationPublisher := events.NewNotificationPublisher(rabbitmq)

	// Deliver events published by other instances to local stream clients
	notificationConsumer := events.NewNotificationConsumer(rabbitmq, hub)
	go notificationConsumer.Listen()

	ledger := moderation.NewLedger(auditRepository, contentRepository)
	dispatcher := moderation.NewDispatcher(notificationRepository, notificationPublisher, hub)
	moderationMetrics := metrics.NewModeration()
	service := moderation.NewService(contentRepository, ledger, dispatcher, logger, moderationMetrics)

	modHandler := moderationHandler.NewHandler(service)
	trailHandler := auditHandler.NewHandler(ledger, cfg.Audit.TrailLimit)
	notifHandler := notificationsHandler.NewHandler(notificationRepository, hub)
	healthHandler := health.NewHandler()

	rl := ratelimiter.New(ratelimiter.Options{
		MaxRatePerSecond: cfg.RateLimiter.MaxRatePerSecond,
		MaxBurst:         cfg.RateLimiter.MaxBurst,
		CacheTTL:         cfg.RateLimiter.CacheTTL,
		SourceHeaderKey:  cfg.RateLimiter.SourceHeaderKey,
	})
	app := api.NewApplication(*cfg, modHandler, trailHandler, notifHandler, healthHandler, logger, rl)

	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.Mount()
	if err := app.Run(mux); err != nil {
		logger.Fatalf("server error: %v", err)
	}
}
