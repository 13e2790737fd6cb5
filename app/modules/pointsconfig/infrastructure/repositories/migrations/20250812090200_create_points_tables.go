package pointsconfigmigrations

import (
	"context"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			CREATE TABLE IF NOT EXISTS points_tables (
				category   text        PRIMARY KEY,
				version    bigint      NOT NULL DEFAULT 1,
				values     jsonb       NOT NULL,
				updated_at timestamptz NOT NULL DEFAULT current_timestamp
			)
		`).Exec(ctx)
		if err != nil {
			return err
		}

		// Seed the league's historical tables so a fresh install can score
		// uploads immediately.
		_, err = db.NewRaw(`
			INSERT INTO points_tables (category, values) VALUES
				('major',  '[750, 450, 285, 202, 150, 120, 97, 82, 70, 60]'),
				('tour',   '[500, 300, 190, 135, 100, 80, 65, 55, 47, 40]'),
				('league', '[250, 150, 95, 67, 50, 40, 32, 27, 23, 20]'),
				('supr',   '[125, 75, 47, 33, 25, 20, 16, 13, 11, 10]')
			ON CONFLICT (category) DO NOTHING
		`).Exec(ctx)
		return err
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw("DROP TABLE IF EXISTS points_tables").Exec(ctx)
		return err
	})
}
