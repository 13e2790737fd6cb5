package playermigrations

import (
	"context"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			CREATE TABLE IF NOT EXISTS players (
				id               bigserial   PRIMARY KEY,
				name             text        NOT NULL,
				default_handicap double precision NULL,
				created_at       timestamptz NOT NULL DEFAULT current_timestamp
			)
		`).Exec(ctx)
		if err != nil {
			return err
		}
		_, err = db.NewRaw(`
			CREATE UNIQUE INDEX IF NOT EXISTS players_name_lower_idx ON players (lower(name))
		`).Exec(ctx)
		return err
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw("DROP TABLE IF EXISTS players").Exec(ctx)
		return err
	})
}
