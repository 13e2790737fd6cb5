// Package playerdb implements the player directory on bun.
package playerdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	playerdomain "github.com/mmiles2012/golf-league/app/modules/player/domain"
	sharedtypes "github.com/mmiles2012/golf-league/app/shared/types"
)

// Player is the persisted directory row. Names are unique case-insensitively.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`

	ID              int64     `bun:"id,pk,autoincrement"`
	Name            string    `bun:"name,notnull,unique"`
	DefaultHandicap *float64  `bun:"default_handicap"`
	CreatedAt       time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// Impl implements playerdomain.Directory using bun.
type Impl struct {
	DB *bun.DB
}

var _ playerdomain.Directory = (*Impl)(nil)

func New(db *bun.DB) *Impl {
	return &Impl{DB: db}
}

func (r *Impl) FindPlayerByName(ctx context.Context, name string) (sharedtypes.PlayerID, error) {
	player := new(Player)
	err := r.DB.NewSelect().
		Model(player).
		Where("lower(name) = lower(?)", name).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, playerdomain.ErrPlayerNotFound
		}
		return 0, fmt.Errorf("playerdb.FindPlayerByName: %w", err)
	}
	return sharedtypes.PlayerID(player.ID), nil
}

func (r *Impl) CreatePlayer(ctx context.Context, name string, defaultHandicap *float64) (sharedtypes.PlayerID, error) {
	player := &Player{
		Name:            name,
		DefaultHandicap: defaultHandicap,
	}
	if _, err := r.DB.NewInsert().Model(player).Exec(ctx); err != nil {
		return 0, fmt.Errorf("playerdb.CreatePlayer: %w", err)
	}
	return sharedtypes.PlayerID(player.ID), nil
}

// ListPlayers returns the whole directory ordered by name.
func (r *Impl) ListPlayers(ctx context.Context) ([]playerdomain.Player, error) {
	var models []Player
	err := r.DB.NewSelect().
		Model(&models).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("playerdb.ListPlayers: %w", err)
	}
	players := make([]playerdomain.Player, 0, len(models))
	for _, m := range models {
		players = append(players, playerdomain.Player{
			ID:              sharedtypes.PlayerID(m.ID),
			Name:            m.Name,
			DefaultHandicap: m.DefaultHandicap,
		})
	}
	return players, nil
}
