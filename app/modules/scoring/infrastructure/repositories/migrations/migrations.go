package scoringmigrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the scoring module's schema migrations.
var Migrations = migrate.NewMigrations()
