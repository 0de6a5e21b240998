// Package migrations embeds the goose schema migrations of the users API,
// one directory per SQL dialect.
package migrations

import "embed"

// Directories inside Migrations.
const (
	PostgresDir = "postgres"
	SQLiteDir   = "sqlite"
)

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS
