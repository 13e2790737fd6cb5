package recalcdb

import (
	"time"

	"github.com/uptrace/bun"

	recalcdomain "github.com/mmiles2012/golf-league/app/modules/recalculation/domain"
	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
)

// RunLog is the persisted form of a recalculation run.
type RunLog struct {
	bun.BaseModel `bun:"table:recalculation_runs,alias:rr"`

	RunID                sharedtypes.RunID        `bun:"run_id,pk,type:uuid"`
	State                recalcdomain.RunState    `bun:"state,notnull"`
	Reason               string                   `bun:"reason"`
	StartedAt            time.Time                `bun:"started_at,notnull"`
	FinishedAt           *time.Time               `bun:"finished_at"`
	TournamentsProcessed int                      `bun:"tournaments_processed,notnull,default:0"`
	TournamentsSkipped   int                      `bun:"tournaments_skipped,notnull,default:0"`
	Errors               []recalcdomain.RunError  `bun:"errors,type:jsonb"`
}

// RunLock is a single-row table used as a pool-safe mutex. Advisory locks
// are session scoped and do not survive pgxpool connection churn, so the
// lock lives in a row instead.
type RunLock struct {
	bun.BaseModel `bun:"table:recalculation_lock,alias:rl"`

	ID       int64              `bun:"id,pk"`
	Locked   bool               `bun:"locked,notnull"`
	RunID    *sharedtypes.RunID `bun:"run_id,type:uuid"`
	LockedAt *time.Time         `bun:"locked_at"`
}

func (m *RunLog) toDomain() *recalcdomain.LogEntry {
	return &recalcdomain.LogEntry{
		RunID:                m.RunID,
		State:                m.State,
		Reason:               m.Reason,
		StartedAt:            m.StartedAt,
		FinishedAt:           m.FinishedAt,
		TournamentsProcessed: m.TournamentsProcessed,
		TournamentsSkipped:   m.TournamentsSkipped,
		Errors:               m.Errors,
	}
}

func fromDomain(e *recalcdomain.LogEntry) *RunLog {
	return &RunLog{
		RunID:                e.RunID,
		State:                e.State,
		Reason:               e.Reason,
		StartedAt:            e.StartedAt,
		FinishedAt:           e.FinishedAt,
		TournamentsProcessed: e.TournamentsProcessed,
		TournamentsSkipped:   e.TournamentsSkipped,
		Errors:               e.Errors,
	}
}
