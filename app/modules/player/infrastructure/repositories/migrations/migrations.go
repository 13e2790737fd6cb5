package playermigrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the player module's schema migrations.
var Migrations = migrate.NewMigrations()
