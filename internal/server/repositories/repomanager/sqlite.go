package repomanager

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dmitrijs2005/authbridge/internal/dbx"
	"github.com/dmitrijs2005/authbridge/internal/server/migrations"
	"github.com/dmitrijs2005/authbridge/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/authbridge/internal/server/repositories/users"
	_ "modernc.org/sqlite"
)

// SQLiteRepositoryManager vends SQLite-backed repositories for single-node
// and development deployments.
type SQLiteRepositoryManager struct{}

func (m *SQLiteRepositoryManager) Profiles(db dbx.DBTX) profiles.Repository {
	return profiles.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) DriverName() string { return "sqlite" }

// Open limits the pool to one connection. SQLite allows a single writer, and
// with one connection concurrent hook calls queue in database/sql instead of
// failing with SQLITE_BUSY.
func (m *SQLiteRepositoryManager) Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open(m.DriverName(), dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// sqlitePragmas are applied to every connection the driver opens.
var sqlitePragmas = []struct{ name, value string }{
	{"busy_timeout", "5000"},
	{"journal_mode", "WAL"},
}

func withSQLitePragmas(dsn string) string {
	for _, p := range sqlitePragmas {
		if strings.Contains(dsn, "_pragma="+p.name) {
			continue
		}
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=" + p.name + "(" + p.value + ")"
	}
	return dsn
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return runMigrations(ctx, db, migrations.SQLite, "sqlite3")
}

func NewSQLiteRepositoryManager() *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{}
}
