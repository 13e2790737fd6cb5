// Package recalcqueue runs recalculation jobs through River so HTTP triggers
// and points-table updates return immediately while runs execute in the
// background.
package recalcqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"

	recalcservice "github.com/mmiles2012/golf-league/app/modules/recalculation/application"
	recalcdomain "github.com/mmiles2012/golf-league/app/modules/recalculation/domain"
	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
	"github.com/mmiles2012/golf-league/internal/observability"
	"github.com/mmiles2012/golf-league/internal/observability/attr"
)

const recalcQueueName = "recalculation"

// Service owns the River client and exposes Trigger as the single entry
// point for starting a recalculation run.
type Service struct {
	client       *river.Client[pgx.Tx]
	pool         *pgxpool.Pool
	orchestrator *recalcservice.Orchestrator
	logger       *slog.Logger
	metrics      observability.OperationMetrics
}

// NewService builds the River client over its own pgx pool. River requires
// pgx directly, not database/sql, so the pool is separate from bun's.
func NewService(
	ctx context.Context,
	dsn string,
	orchestrator *recalcservice.Orchestrator,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
) (*Service, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("recalcqueue.NewService: parse dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("recalcqueue.NewService: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("recalcqueue.NewService: ping: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewRecalculationWorker(orchestrator, logger))

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			// One worker: runs are serialized even if the lock row were lost.
			recalcQueueName: {MaxWorkers: 1},
		},
		Workers: workers,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("recalcqueue.NewService: create river client: %w", err)
	}

	return &Service{
		client:       client,
		pool:         pool,
		orchestrator: orchestrator,
		logger:       logger,
		metrics:      metrics,
	}, nil
}

func (s *Service) Start(ctx context.Context) error {
	if err := s.client.Start(ctx); err != nil {
		return fmt.Errorf("recalcqueue.Start: %w", err)
	}
	s.logger.InfoContext(ctx, "recalculation queue started")
	return nil
}

func (s *Service) Stop(ctx context.Context) error {
	if err := s.client.Stop(ctx); err != nil {
		return fmt.Errorf("recalcqueue.Stop: %w", err)
	}
	s.pool.Close()
	s.logger.InfoContext(ctx, "recalculation queue stopped")
	return nil
}

// Trigger creates a pending run, claims the single-flight lock, and enqueues
// the job. It returns the run ID immediately; the run itself executes on the
// worker. ErrRunConflict is returned when a run is already pending or
// in progress.
func (s *Service) Trigger(ctx context.Context, reason string) (sharedtypes.RunID, error) {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "trigger_recalculation", "river")

	runID, err := s.orchestrator.Begin(ctx, reason)
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "trigger_recalculation", "river")
		return sharedtypes.RunID{}, err
	}

	result, err := s.client.Insert(ctx, RecalculationJobArgs{
		RunID:  runID.String(),
		Reason: reason,
	}, &river.InsertOpts{
		Queue: recalcQueueName,
		UniqueOpts: river.UniqueOpts{
			ByQueue: true,
		},
	})
	if err != nil {
		s.orchestrator.Abort(ctx, runID)
		s.metrics.RecordOperationFailure(ctx, "trigger_recalculation", "river")
		return sharedtypes.RunID{}, fmt.Errorf("recalcqueue.Trigger: insert job: %w", err)
	}
	if result.UniqueSkippedAsDuplicate {
		s.orchestrator.Abort(ctx, runID)
		s.metrics.RecordOperationFailure(ctx, "trigger_recalculation", "river")
		return sharedtypes.RunID{}, recalcdomain.ErrRunConflict
	}

	s.metrics.RecordOperationSuccess(ctx, "trigger_recalculation", "river")
	s.metrics.RecordOperationDuration(ctx, "trigger_recalculation", "river", time.Since(start))
	s.logger.InfoContext(ctx, "recalculation run queued",
		attr.RunID("run_id", runID),
		attr.String("reason", reason),
		attr.Int64("job_id", result.Job.ID),
	)
	return runID, nil
}
