package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/davrian/toolmart/internal/infrastructure/configs"
	"github.com/davrian/toolmart/internal/infrastructure/logging"
	"github.com/davrian/toolmart/internal/infrastructure/ratelimiter"
	auditHandler "github.com/davrian/toolmart/internal/presentation/handler/audit"
	healthHandler "github.com/davrian/toolmart/internal/presentation/handler/health"
	moderationHandler "github.com/davrian/toolmart/internal/presentation/handler/moderation"
	notificationsHandler "github.com/davrian/toolmart/internal/presentation/handler/notifications"
)

type Application struct {
	config               configs.Config
	moderationHandler    *moderationHandler.Handler
	auditHandler         *auditHandler.Handler
	notificationsHandler *notificationsHandler.Handler
	healthHandler        *healthHandler.Handler
	logger               logging.Logger
	ratelimiter          ratelimiter.Limiter
}

func NewApplication(
	config configs.Config,
	moderationHandler *moderationHandler.Handler,
	auditHandler *auditHandler.Handler,
	notificationsHandler *notificationsHandler.Handler,
	healthHandler *healthHandler.Handler,
	logger logging.Logger,
	ratelimiter ratelimiter.Limiter,
) *Application {
	return &Application{
		config:               config,
		moderationHandler:    moderationHandler,
		auditHandler:         auditHandler,
		notificationsHandler: notificationsHandler,
		healthHandler:        healthHandler,
		logger:               logger,
		ratelimiter:          ratelimiter,
	}
}

func (app *Application) Mount() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(app.rateLimiterMiddleware)
	r.Use(app.enableCors)
	r.Use(app.loggerMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Route("/moderation", func(r chi.Router) {
			r.Post("/{kind}/{id}/{action}", app.moderationHandler.ModerateHandler)
		})

		r.Route("/audit", func(r chi.Router) {
			r.Get("/actors/{actorId}", app.auditHandler.GetActorTrailHandler)
			r.Get("/{kind}/{id}", app.auditHandler.GetEntityTrailHandler)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/{recipientId}", app.notificationsHandler.ListHandler)
			r.Get("/{recipientId}/stream", app.notificationsHandler.StreamHandler)
			r.Post("/{recipientId}/{notificationId}/read", app.notificationsHandler.MarkReadHandler)
		})

		r.Get("/health", app.healthHandler.GetHealth)
		r.Get("/healthz", app.healthHandler.GetHealth)
		r.Get("/ready", app.healthHandler.GetHealth)
		r.Get("/live", app.healthHandler.GetHealth)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return otelhttp.NewHandler(r, "toolmart-http")
}

func (app *Application) Run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", app.config.HTTP.Host, app.config.HTTP.Port),
		Handler:      mux,
		WriteTimeout: app.config.HTTP.WriteTimeout,
		ReadTimeout:  app.config.HTTP.ReadTimeout,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Info(logging.General, logging.Shutdown, "signal caught", map[logging.ExtraKey]any{
			"signal": s.String(),
		})

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Info(logging.General, logging.Startup, "server has started", map[logging.ExtraKey]any{
		"addr": srv.Addr,
	})

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Info(logging.General, logging.Shutdown, "server has stopped", map[logging.ExtraKey]any{
		"addr": srv.Addr,
	})

	return nil
}
