package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/authbridge/internal/dbx"
	"github.com/dmitrijs2005/authbridge/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/authbridge/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Profiles(db dbx.DBTX) profiles.Repository
	Users(db dbx.DBTX) users.Repository
	// DriverName is the database/sql driver the DSN must be opened with.
	DriverName() string
	// Open opens dsn with the pool settings the backend needs.
	Open(dsn string) (*sql.DB, error)
}

// ForDSN picks the manager matching the DSN scheme and returns the DSN in the
// form expected by its driver. "sqlite:" and "file:" select SQLite, with
// busy_timeout and WAL pragmas added unless the DSN sets them; anything
// else is handed to pgx.
func ForDSN(dsn string) (RepositoryManager, string, error) {
	switch {
	case dsn == "":
		return nil, "", fmt.Errorf("empty database dsn")
	case strings.HasPrefix(dsn, "sqlite:"):
		return NewSQLiteRepositoryManager(), withSQLitePragmas(strings.TrimPrefix(dsn, "sqlite:")), nil
	case strings.HasPrefix(dsn, "file:"):
		return NewSQLiteRepositoryManager(), withSQLitePragmas(dsn), nil
	default:
		return NewPostgresRepositoryManager(), dsn, nil
	}
}
