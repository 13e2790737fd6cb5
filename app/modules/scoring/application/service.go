package scoringservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/mmiles2012/golf-league/app/eventbus"
	playerdomain "github.com/mmiles2012/golf-league/app/modules/player/domain"
	scoringdb "github.com/mmiles2012/golf-league/app/modules/scoring/infrastructure/repositories"
	"github.com/mmiles2012/golf-league/internal/observability"
	"github.com/mmiles2012/golf-league/internal/observability/attr"
)

const component = "scoring"

// ScoringService implements the Service interface.
type ScoringService struct {
	repo      scoringdb.Repository
	directory playerdomain.Directory
	tables    PointsTableSource
	eventBus  eventbus.EventBus
	logger    *slog.Logger
	metrics   observability.OperationMetrics
	tracer    trace.Tracer
}

var _ Service = (*ScoringService)(nil)

// NewScoringService creates a new ScoringService.
func NewScoringService(
	repo scoringdb.Repository,
	directory playerdomain.Directory,
	tables PointsTableSource,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
) *ScoringService {
	return &ScoringService{
		repo:      repo,
		directory: directory,
		tables:    tables,
		eventBus:  eventBus,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
	}
}

// withTelemetry wraps a service operation with tracing, metrics, and panic
// recovery.
func withTelemetry[T any](
	ctx context.Context,
	s *ScoringService,
	operationName string,
	op func(ctx context.Context) (T, error),
) (result T, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, component)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, component, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.String("operation", operationName),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, component)
			span.RecordError(err)
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrapped := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.Error(wrapped),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, component)
		span.RecordError(wrapped)
		return result, wrapped
	}

	s.metrics.RecordOperationSuccess(ctx, operationName, component)
	return result, nil
}
