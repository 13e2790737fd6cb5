package pointsconfigmigrations

import "github.com/uptrace/bun/migrate"

// Migrations holds the points configuration module's schema migrations.
var Migrations = migrate.NewMigrations()
