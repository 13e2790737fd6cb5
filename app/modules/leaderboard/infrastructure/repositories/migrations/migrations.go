package leaderboardmigrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the leaderboard module's schema migrations.
var Migrations = migrate.NewMigrations()
