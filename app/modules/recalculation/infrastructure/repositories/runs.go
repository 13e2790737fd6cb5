package recalcdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	recalcdomain "github.com/mmiles2012/golf-league/app/modules/recalculation/domain"
	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
)

const lockRowID = 1

// Impl is the bun-backed Repository.
type Impl struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) *Impl {
	return &Impl{db: db}
}

func (r *Impl) CreateRun(ctx context.Context, entry *recalcdomain.LogEntry) error {
	model := fromDomain(entry)
	if _, err := r.db.NewInsert().Model(model).Exec(ctx); err != nil {
		return fmt.Errorf("recalcdb.CreateRun: %w", err)
	}
	return nil
}

func (r *Impl) UpdateRun(ctx context.Context, entry *recalcdomain.LogEntry) error {
	model := fromDomain(entry)
	res, err := r.db.NewUpdate().
		Model(model).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("recalcdb.UpdateRun: %w", err)
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return fmt.Errorf("recalcdb.UpdateRun: %w", recalcdomain.ErrRunNotFound)
	}
	return nil
}

func (r *Impl) GetRun(ctx context.Context, runID sharedtypes.RunID) (*recalcdomain.LogEntry, error) {
	model := new(RunLog)
	err := r.db.NewSelect().
		Model(model).
		Where("rr.run_id = ?", runID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, recalcdomain.ErrRunNotFound
		}
		return nil, fmt.Errorf("recalcdb.GetRun: %w", err)
	}
	return model.toDomain(), nil
}

func (r *Impl) DeleteRun(ctx context.Context, runID sharedtypes.RunID) error {
	_, err := r.db.NewDelete().
		Model((*RunLog)(nil)).
		Where("run_id = ?", runID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("recalcdb.DeleteRun: %w", err)
	}
	return nil
}

func (r *Impl) ListRuns(ctx context.Context, limit int) ([]recalcdomain.LogEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	var models []RunLog
	err := r.db.NewSelect().
		Model(&models).
		Order("started_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("recalcdb.ListRuns: %w", err)
	}
	entries := make([]recalcdomain.LogEntry, 0, len(models))
	for i := range models {
		entries = append(entries, *models[i].toDomain())
	}
	return entries, nil
}

func (r *Impl) AcquireRunLock(ctx context.Context, runID sharedtypes.RunID) (bool, error) {
	now := time.Now().UTC()
	res, err := r.db.NewUpdate().
		Model((*RunLock)(nil)).
		Set("locked = TRUE").
		Set("run_id = ?", runID).
		Set("locked_at = ?", now).
		Where("id = ?", lockRowID).
		Where("locked = FALSE").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("recalcdb.AcquireRunLock: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("recalcdb.AcquireRunLock: %w", err)
	}
	return rows == 1, nil
}

func (r *Impl) ReleaseRunLock(ctx context.Context, runID sharedtypes.RunID) error {
	_, err := r.db.NewUpdate().
		Model((*RunLock)(nil)).
		Set("locked = FALSE").
		Set("run_id = NULL").
		Set("locked_at = NULL").
		Where("id = ?", lockRowID).
		Where("run_id = ?", runID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("recalcdb.ReleaseRunLock: %w", err)
	}
	return nil
}
