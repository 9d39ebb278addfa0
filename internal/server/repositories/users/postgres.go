package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/authbridge/internal/common"
	"github.com/dmitrijs2005/authbridge/internal/dbx"
	"github.com/dmitrijs2005/authbridge/internal/server/authengine"
	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, email string) (authengine.User, error) {
	query :=
		`INSERT INTO users (email)
		 VALUES ($1)
		 RETURNING id
		 `

	u := &authengine.UserRecord{UserEmail: email}
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&u.UserID); err != nil {
		return nil, &common.StorageError{Op: "insert user", Err: err}
	}
	return u, nil
}

func (r *PostgresRepository) FindUserByID(ctx context.Context, id string) (authengine.User, error) {
	query :=
		`SELECT id, email, system_id FROM users
		 WHERE id = $1
		 `

	var (
		u        authengine.UserRecord
		systemID sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.UserID, &u.UserEmail, &systemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return nil, common.ErrorNotFound
		}
		return nil, &common.StorageError{Op: "select user", Err: err}
	}
	if systemID.Valid {
		u.System = systemID.String
	}
	return &u, nil
}

func (r *PostgresRepository) Update(ctx context.Context, user authengine.User) error {
	id, err := authengine.CoerceID(user.ID())
	if err != nil {
		return err
	}

	query :=
		`UPDATE users SET system_id = $1
		 WHERE id = $2
		 `

	systemID, err := systemIDArg(user.SystemID())
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, systemID, id)
	if err != nil {
		return &common.StorageError{Op: "update user", Err: err}
	}
	return requireAffected(res)
}

func isInvalidID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}

// systemIDArg converts the user's system id to a column value. An unset id
// is stored as NULL; a value that is not an identifier is rejected.
func systemIDArg(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	id, err := authengine.CoerceID(v)
	if err != nil {
		return nil, fmt.Errorf("system id: %w", err)
	}
	return id, nil
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return &common.StorageError{Op: "update user", Err: err}
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
