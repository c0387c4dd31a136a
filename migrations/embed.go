// Package migrations embeds the goose migrations for each SQL store.
package migrations

import "embed"

//go:embed postgres/*.sql
var Postgres embed.FS

//go:embed sqlite/*.sql
var SQLite embed.FS

// Directory names inside the embedded filesystems
const (
	PostgresDir = "postgres"
	SQLiteDir   = "sqlite"
)
