package recalcdb

import (
	"context"

	recalcdomain "github.com/mmiles2012/golf-league/app/modules/recalculation/domain"
	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
)

// Repository persists recalculation run log entries and the single-flight
// run lock.
type Repository interface {
	CreateRun(ctx context.Context, entry *recalcdomain.LogEntry) error
	UpdateRun(ctx context.Context, entry *recalcdomain.LogEntry) error
	GetRun(ctx context.Context, runID sharedtypes.RunID) (*recalcdomain.LogEntry, error)
	DeleteRun(ctx context.Context, runID sharedtypes.RunID) error
	ListRuns(ctx context.Context, limit int) ([]recalcdomain.LogEntry, error)

	// AcquireRunLock claims the lock row for runID. It returns false without
	// error when another run already holds it.
	AcquireRunLock(ctx context.Context, runID sharedtypes.RunID) (bool, error)
	ReleaseRunLock(ctx context.Context, runID sharedtypes.RunID) error
}
