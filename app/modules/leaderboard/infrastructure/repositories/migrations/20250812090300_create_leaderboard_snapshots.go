package leaderboardmigrations

import (
	"context"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			CREATE TABLE IF NOT EXISTS leaderboard_snapshots (
				basis      text        PRIMARY KEY,
				entries    jsonb       NOT NULL,
				updated_at timestamptz NOT NULL DEFAULT current_timestamp
			)
		`).Exec(ctx)
		return err
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw("DROP TABLE IF EXISTS leaderboard_snapshots").Exec(ctx)
		return err
	})
}
