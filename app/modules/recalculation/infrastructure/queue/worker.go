package recalcqueue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/riverqueue/river"

	recalcservice "github.com/mmiles2012/golf-league/app/modules/recalculation/application"
	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
	"github.com/mmiles2012/golf-league/internal/observability/attr"
)

// RecalculationWorker executes queued recalculation runs.
type RecalculationWorker struct {
	river.WorkerDefaults[RecalculationJobArgs]

	orchestrator *recalcservice.Orchestrator
	logger       *slog.Logger
}

func NewRecalculationWorker(orchestrator *recalcservice.Orchestrator, logger *slog.Logger) *RecalculationWorker {
	return &RecalculationWorker{
		orchestrator: orchestrator,
		logger:       logger,
	}
}

func (w *RecalculationWorker) Work(ctx context.Context, job *river.Job[RecalculationJobArgs]) error {
	runID, err := sharedtypes.ParseRunID(job.Args.RunID)
	if err != nil {
		// Malformed args never become valid; don't retry.
		return river.JobCancel(fmt.Errorf("parse run id %q: %w", job.Args.RunID, err))
	}

	w.logger.InfoContext(ctx, "recalculation job started",
		attr.RunID("run_id", runID),
		attr.String("reason", job.Args.Reason),
		attr.Int64("job_id", job.ID),
	)

	if err := w.orchestrator.Execute(ctx, runID); err != nil {
		return fmt.Errorf("execute recalculation: %w", err)
	}
	return nil
}
