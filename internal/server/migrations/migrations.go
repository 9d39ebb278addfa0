// Package migrations embeds the goose schema migrations for every supported
// profile store dialect.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed postgres/*.sql
var postgres embed.FS

//go:embed sqlite/*.sql
var sqlite embed.FS

// Postgres holds the PostgreSQL migrations rooted at ".".
var Postgres = mustSub(postgres, "postgres")

// SQLite holds the SQLite migrations rooted at ".".
var SQLite = mustSub(sqlite, "sqlite")

func mustSub(f fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(f, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
