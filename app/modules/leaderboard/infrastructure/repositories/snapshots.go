// Package leaderboarddb persists leaderboard snapshots. Snapshots are
// replaced wholesale by each recalculation run; reads serve the stored
// standings without re-folding the season.
package leaderboarddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	leaderboardtypes "github.com/mmiles2012/golf-league/app/modules/leaderboard/domain"
	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
)

// ErrSnapshotNotFound is returned when no snapshot exists for a basis.
var ErrSnapshotNotFound = errors.New("leaderboard snapshot not found")

// Snapshot is one basis' stored standings as a jsonb blob.
type Snapshot struct {
	bun.BaseModel `bun:"table:leaderboard_snapshots,alias:ls"`

	Basis     string                               `bun:"basis,pk"`
	Entries   []leaderboardtypes.LeaderboardEntry  `bun:"entries,type:jsonb,notnull"`
	UpdatedAt time.Time                            `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

// Repository reads and replaces leaderboard snapshots.
type Repository interface {
	GetSnapshot(ctx context.Context, basis sharedtypes.Basis) ([]leaderboardtypes.LeaderboardEntry, error)
	SaveSnapshot(ctx context.Context, basis sharedtypes.Basis, entries []leaderboardtypes.LeaderboardEntry) error
}

// Impl implements Repository using bun.
type Impl struct {
	DB *bun.DB
}

var _ Repository = (*Impl)(nil)

func New(db *bun.DB) *Impl {
	return &Impl{DB: db}
}

func (r *Impl) GetSnapshot(ctx context.Context, basis sharedtypes.Basis) ([]leaderboardtypes.LeaderboardEntry, error) {
	model := new(Snapshot)
	err := r.DB.NewSelect().
		Model(model).
		Where("basis = ?", string(basis)).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("basis %q: %w", basis, ErrSnapshotNotFound)
		}
		return nil, fmt.Errorf("leaderboarddb.GetSnapshot: %w", err)
	}
	return model.Entries, nil
}

func (r *Impl) SaveSnapshot(ctx context.Context, basis sharedtypes.Basis, entries []leaderboardtypes.LeaderboardEntry) error {
	model := &Snapshot{
		Basis:     string(basis),
		Entries:   entries,
		UpdatedAt: time.Now().UTC(),
	}
	_, err := r.DB.NewInsert().
		Model(model).
		On("CONFLICT (basis) DO UPDATE").
		Set("entries = EXCLUDED.entries").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("leaderboarddb.SaveSnapshot: %w", err)
	}
	return nil
}
