package migrations

import "github.com/uptrace/bun/migrate"

// Migrations holds every schema migration; each file registers one.
var Migrations = migrate.NewMigrations()
