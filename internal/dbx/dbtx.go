// Package dbx holds the small database abstractions repositories share:
// DBTX, satisfied by both *sql.DB and *sql.Tx, and WithTx for operator
// paths that need a consistent read after a write. Hook invocations never
// span a transaction.
package dbx

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/authbridge/internal/common"
)

// DBTX is the subset of database/sql used by our repos.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxBeginner starts transactions; *sql.DB implements it.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// WithTx runs fn inside a transaction, committing when fn returns nil and
// rolling back on error or panic. Panics are rethrown. Begin and commit
// failures come back as *common.StorageError; errors from fn are returned
// unchanged.
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    return manager.Profiles(tx).Restore(ctx, id)
//	})
func WithTx(ctx context.Context, db TxBeginner, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return &common.StorageError{Op: "begin", Err: err}
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			err = &common.StorageError{Op: "commit", Err: cerr}
		}
	}()

	return fn(ctx, tx)
}
