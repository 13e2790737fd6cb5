// Package app wires configuration, storage, messaging, the job queue, and
// the HTTP surface into one runnable service.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"golang.org/x/time/rate"

	"github.com/mmiles2012/golf-league/api/handlers"
	"github.com/mmiles2012/golf-league/app/eventbus"
	leaderboardservice "github.com/mmiles2012/golf-league/app/modules/leaderboard/application"
	pointsconfigservice "github.com/mmiles2012/golf-league/app/modules/pointsconfig/application"
	recalcservice "github.com/mmiles2012/golf-league/app/modules/recalculation/application"
	recalcqueue "github.com/mmiles2012/golf-league/app/modules/recalculation/infrastructure/queue"
	recalcsubscribers "github.com/mmiles2012/golf-league/app/modules/recalculation/infrastructure/subscribers"
	scoringservice "github.com/mmiles2012/golf-league/app/modules/scoring/application"
	"github.com/mmiles2012/golf-league/config"
	"github.com/mmiles2012/golf-league/db/bundb"
	"github.com/mmiles2012/golf-league/internal/observability"
	"github.com/mmiles2012/golf-league/internal/observability/attr"
)

// App holds every long-lived component of the service.
type App struct {
	Cfg *config.Config

	db       *bundb.DBService
	eventBus eventbus.EventBus
	logger   *slog.Logger

	ScoringService      *scoringservice.ScoringService
	LeaderboardService  *leaderboardservice.Service
	PointsConfigService *pointsconfigservice.Service
	RecalcOrchestrator  *recalcservice.Orchestrator
	RecalcQueue         *recalcqueue.Service

	httpServer    *http.Server
	metricsServer *http.Server
}

// NewApp initializes the application with the necessary services and
// configuration.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	dbService, err := bundb.NewBunDBService(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database service: %w", err)
	}

	bus, err := eventbus.New(ctx, cfg.NATS.URL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}

	metrics := observability.NewPrometheusMetrics(prometheus.DefaultRegisterer, "golf_league")
	tracer := otel.Tracer("golf-league")

	pointsConfigSvc := pointsconfigservice.NewService(dbService.PointsConfigDB, bus, logger)

	scoringSvc := scoringservice.NewScoringService(
		dbService.ScoringDB,
		dbService.PlayerDB,
		pointsConfigSvc,
		bus,
		logger,
		metrics,
		tracer,
	)

	leaderboardSvc := leaderboardservice.NewService(
		dbService.ScoringDB,
		dbService.LeaderboardDB,
		logger,
		cfg.Scoring.BestEventCount,
	)

	orchestrator := recalcservice.NewOrchestrator(
		dbService.RecalcDB,
		dbService.ScoringDB,
		pointsConfigSvc,
		dbService.PlayerDB,
		leaderboardSvc,
		logger,
		cfg.Recalculation.Concurrency,
	)

	queueSvc, err := recalcqueue.NewService(ctx, cfg.Postgres.DSN, orchestrator, logger, metrics)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize recalculation queue: %w", err)
	}

	limiter := rate.NewLimiter(rate.Limit(cfg.Recalculation.TriggersPerMinute/60.0), 1)
	subscriber := recalcsubscribers.NewSubscriber(queueSvc, limiter, logger)
	if err := subscriber.Register(ctx, bus); err != nil {
		return nil, fmt.Errorf("failed to register recalculation subscriber: %w", err)
	}

	h := handlers.New(scoringSvc, leaderboardSvc, pointsConfigSvc, queueSvc, orchestrator, logger)

	a := &App{
		Cfg:                 cfg,
		db:                  dbService,
		eventBus:            bus,
		logger:              logger,
		ScoringService:      scoringSvc,
		LeaderboardService:  leaderboardSvc,
		PointsConfigService: pointsConfigSvc,
		RecalcOrchestrator:  orchestrator,
		RecalcQueue:         queueSvc,
		httpServer: &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           h.Router(),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
	if cfg.Observability.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		a.metricsServer = &http.Server{
			Addr:              cfg.Observability.MetricsAddress,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
	}
	return a, nil
}

// Run starts the queue and the HTTP listeners and blocks until ctx is
// canceled or a listener fails.
func (a *App) Run(ctx context.Context) error {
	if err := a.RecalcQueue.Start(ctx); err != nil {
		return fmt.Errorf("start recalculation queue: %w", err)
	}

	errCh := make(chan error, 2)
	go func() {
		a.logger.Info("http server listening", attr.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()
	if a.metricsServer != nil {
		go func() {
			a.logger.Info("metrics server listening", attr.String("addr", a.metricsServer.Addr))
			if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("metrics server: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Shutdown stops the listeners, drains the queue, and closes shared
// resources.
func (a *App) Shutdown(ctx context.Context) {
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("http server shutdown failed", attr.Error(err))
	}
	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(ctx); err != nil {
			a.logger.Error("metrics server shutdown failed", attr.Error(err))
		}
	}
	if err := a.RecalcQueue.Stop(ctx); err != nil {
		a.logger.Error("recalculation queue shutdown failed", attr.Error(err))
	}
	if err := a.eventBus.Close(); err != nil {
		a.logger.Error("event bus close failed", attr.Error(err))
	}
	if err := a.db.GetDB().Close(); err != nil {
		a.logger.Error("database close failed", attr.Error(err))
	}
}
