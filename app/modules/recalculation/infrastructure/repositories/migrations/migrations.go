// Package recalcmigrations registers the schema for recalculation run
// tracking.
package recalcmigrations

import "github.com/uptrace/bun/migrate"

var Migrations = migrate.NewMigrations()
