package recalcmigrations

import (
	"context"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			CREATE TABLE IF NOT EXISTS recalculation_runs (
				run_id                uuid        PRIMARY KEY,
				state                 text        NOT NULL,
				reason                text        NOT NULL DEFAULT '',
				started_at            timestamptz NOT NULL,
				finished_at           timestamptz NULL,
				tournaments_processed integer     NOT NULL DEFAULT 0,
				tournaments_skipped   integer     NOT NULL DEFAULT 0,
				errors                jsonb       NULL
			)
		`).Exec(ctx)
		if err != nil {
			return err
		}

		_, err = db.NewRaw(`
			CREATE TABLE IF NOT EXISTS recalculation_lock (
				id        bigint      PRIMARY KEY,
				locked    boolean     NOT NULL DEFAULT false,
				run_id    uuid        NULL,
				locked_at timestamptz NULL
			)
		`).Exec(ctx)
		if err != nil {
			return err
		}

		// Seed the single lock row so acquisition is always an UPDATE.
		_, err = db.NewRaw(`
			INSERT INTO recalculation_lock (id, locked) VALUES (1, false)
			ON CONFLICT (id) DO NOTHING
		`).Exec(ctx)
		return err
	}, func(ctx context.Context, db *bun.DB) error {
		if _, err := db.NewRaw("DROP TABLE IF EXISTS recalculation_lock").Exec(ctx); err != nil {
			return err
		}
		_, err := db.NewRaw("DROP TABLE IF EXISTS recalculation_runs").Exec(ctx)
		return err
	})
}
