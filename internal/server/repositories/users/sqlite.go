package users

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/authbridge/internal/common"
	"github.com/dmitrijs2005/authbridge/internal/dbx"
	"github.com/dmitrijs2005/authbridge/internal/server/authengine"
	"github.com/google/uuid"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, email string) (authengine.User, error) {
	u := &authengine.UserRecord{UserID: uuid.NewString(), UserEmail: email}
	if _, err := r.db.ExecContext(ctx, `INSERT INTO users (id, email) VALUES (?, ?)`, u.UserID, email); err != nil {
		return nil, &common.StorageError{Op: "insert user", Err: err}
	}
	return u, nil
}

func (r *SQLiteRepository) FindUserByID(ctx context.Context, id string) (authengine.User, error) {
	var (
		u        authengine.UserRecord
		systemID sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `SELECT id, email, system_id FROM users WHERE id = ?`, id).
		Scan(&u.UserID, &u.UserEmail, &systemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, &common.StorageError{Op: "select user", Err: err}
	}
	if systemID.Valid {
		u.System = systemID.String
	}
	return &u, nil
}

func (r *SQLiteRepository) Update(ctx context.Context, user authengine.User) error {
	id, err := authengine.CoerceID(user.ID())
	if err != nil {
		return err
	}
	systemID, err := systemIDArg(user.SystemID())
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `UPDATE users SET system_id = ? WHERE id = ?`, systemID, id)
	if err != nil {
		return &common.StorageError{Op: "update user", Err: err}
	}
	return requireAffected(res)
}
