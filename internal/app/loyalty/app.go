package loyalty

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/loyalty-platform/internal/backend/functions"
	"github.com/magabrotheeeer/loyalty-platform/internal/backend/gotrue"
	"github.com/magabrotheeeer/loyalty-platform/internal/cache"
	"github.com/magabrotheeeer/loyalty-platform/internal/config"
	"github.com/magabrotheeeer/loyalty-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/loyalty-platform/internal/lib/sl"
	"github.com/magabrotheeeer/loyalty-platform/internal/metrics"
	"github.com/magabrotheeeer/loyalty-platform/internal/migrations"
	"github.com/magabrotheeeer/loyalty-platform/internal/onboarding"
	"github.com/magabrotheeeer/loyalty-platform/internal/rabbitmq"
	authservice "github.com/magabrotheeeer/loyalty-platform/internal/services/auth"
	planservice "github.com/magabrotheeeer/loyalty-platform/internal/services/plans"
	roleservice "github.com/magabrotheeeer/loyalty-platform/internal/services/roles"
	"github.com/magabrotheeeer/loyalty-platform/internal/storage"
)

// App владеет HTTP-сервером и внешними подключениями.
type App struct {
	server    *http.Server
	logger    *slog.Logger
	db        *storage.Storage
	cache     *cache.Cache
	amqpConn  *amqp.Connection
	publisher *rabbitmq.Publisher
}

// New поднимает подключения и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.loyalty.New"

	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if cfg.MigrationsPath != "" {
		if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err = storage.CheckDatabaseReady(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	app := &App{
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}

	var events roleservice.EventPublisher
	if cfg.RabbitMQ.URL != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.Retries, cfg.RabbitMQ.RetryDelay)
		if err != nil {
			app.closeResources()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ch, err := rabbitmq.SetupChannel(conn, cfg.RabbitMQ.Exchange, rabbitmq.GetEventQueues())
		if err != nil {
			_ = conn.Close()
			app.closeResources()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.amqpConn = conn
		app.publisher = rabbitmq.NewPublisher(ch, cfg.RabbitMQ.Exchange)
		events = app.publisher
	} else {
		logger.Warn("rabbitmq is not configured, role change events are disabled")
	}

	httpClient := &http.Client{Timeout: cfg.Backend.Timeout}
	identity := gotrue.NewClient(cfg.Backend.URL, cfg.Backend.AnonKey, httpClient)
	gateway := functions.New(cfg.Backend.URL, cfg.Backend.AnonKey, httpClient)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := chi.NewRouter()
	RegisterRoutes(router, Deps{
		Logger:         logger,
		Tokens:         jwt.NewJWTMaker(cfg.Backend.JWTSecret, time.Hour),
		Users:          db,
		Auth:           authservice.NewAuthService(identity, db, logger),
		Roles:          roleservice.NewRoleService(db, events, rabbitmq.RoutingKeyRoleChanged, logger),
		Plans:          planservice.NewPlanService(db, cacheRedis, cfg.Plans.CacheTTL, logger),
		Onboarding:     onboarding.NewRegistry(cfg.Onboarding.ScopeTTL),
		Functions:      gateway,
		IsPublicFunc:   cfg.IsPublicFunction,
		Metrics:        metrics.New(reg),
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		SignInRPS:      cfg.RateLimit.RPS,
		SignInBurst:    cfg.RateLimit.Burst,
	})

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

// Run обслуживает запросы до отмены ctx, затем останавливает сервер.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.closeResources()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.closeResources()
		return err
	}
}

func (a *App) closeResources() {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("failed to close rabbitmq channel", sl.Err(err))
		}
	}
	if a.amqpConn != nil {
		if err := a.amqpConn.Close(); err != nil {
			a.logger.Warn("failed to close rabbitmq connection", sl.Err(err))
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("failed to close redis", sl.Err(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close database", sl.Err(err))
		}
	}
}
