package scoringmigrations

import (
	"context"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			CREATE TABLE IF NOT EXISTS tournaments (
				id            uuid        PRIMARY KEY,
				name          text        NOT NULL,
				date          timestamptz NOT NULL,
				category      text        NOT NULL,
				scoring_mode  text        NOT NULL,
				scoring_type  text        NOT NULL,
				is_manual     boolean     NOT NULL DEFAULT false,
				score_inputs  jsonb       NULL,
				created_at    timestamptz NOT NULL DEFAULT current_timestamp
			)
		`).Exec(ctx)
		if err != nil {
			return err
		}

		_, err = db.NewRaw(`
			CREATE TABLE IF NOT EXISTS tournament_results (
				id               bigserial    PRIMARY KEY,
				tournament_id    uuid         NOT NULL REFERENCES tournaments (id) ON DELETE CASCADE,
				player_id        bigint       NOT NULL,
				player_name      text         NOT NULL,
				category         text         NOT NULL,
				position         integer      NOT NULL,
				display_position text         NOT NULL,
				tied_position    boolean      NOT NULL DEFAULT false,
				gross            double precision NULL,
				net              double precision NULL,
				handicap         double precision NULL,
				net_points       double precision NOT NULL DEFAULT 0,
				gross_points     double precision NOT NULL DEFAULT 0,
				is_new_player    boolean      NOT NULL DEFAULT false,
				created_at       timestamptz  NOT NULL DEFAULT current_timestamp,
				UNIQUE (tournament_id, player_id)
			)
		`).Exec(ctx)
		return err
	}, func(ctx context.Context, db *bun.DB) error {
		if _, err := db.NewRaw("DROP TABLE IF EXISTS tournament_results").Exec(ctx); err != nil {
			return err
		}
		_, err := db.NewRaw("DROP TABLE IF EXISTS tournaments").Exec(ctx)
		return err
	})
}
