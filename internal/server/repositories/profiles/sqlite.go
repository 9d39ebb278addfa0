package profiles

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/authbridge/internal/common"
	"github.com/dmitrijs2005/authbridge/internal/dbx"
	"github.com/dmitrijs2005/authbridge/internal/server/models"
	"github.com/dmitrijs2005/authbridge/internal/timex"
	"github.com/google/uuid"
)

// SQLiteRepository stores profiles in SQLite for single-node deployments.
// SQLite has no uuid or timestamptz types, so ids are generated here and
// timestamps are stored as TEXT in timex.TimestampLayout.
type SQLiteRepository struct {
	db    dbx.DBTX
	now   func() time.Time
	newID func() string
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now, newID: uuid.NewString}
}

func (r *SQLiteRepository) FindByID(ctx context.Context, id string) (*models.Profile, error) {
	if id == "" {
		return nil, common.ErrorNotFound
	}

	var (
		pid                             string
		name                            sql.NullString
		createdAt, updatedAt, deletedAt sql.NullString
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at, deleted_at FROM profiles WHERE id = ? AND deleted_at IS NULL`,
		id).Scan(&pid, &name, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, &common.StorageError{Op: "select profile", Err: err}
	}

	return Hydrate(Row{
		ColumnID:        pid,
		ColumnName:      name,
		ColumnCreatedAt: createdAt,
		ColumnUpdatedAt: updatedAt,
		ColumnDeletedAt: deletedAt,
	})
}

func (r *SQLiteRepository) Save(ctx context.Context, p *models.Profile) error {
	row := Dehydrate(p)
	now := timex.FormatTimestamp(r.now())

	if p.ID == "" {
		var id, createdAt string
		err := r.db.QueryRowContext(ctx,
			`INSERT INTO profiles (id, name, created_at) VALUES (?, ?, ?) RETURNING id, created_at`,
			r.newID(), row[ColumnName], now).Scan(&id, &createdAt)
		if err != nil {
			return &common.StorageError{Op: "insert profile", Err: err}
		}
		return Update(p, Row{ColumnID: id, ColumnCreatedAt: createdAt})
	}

	var updatedAt string
	err := r.db.QueryRowContext(ctx,
		`UPDATE profiles SET name = ?, updated_at = ? WHERE id = ? RETURNING updated_at`,
		row[ColumnName], now, row[ColumnID]).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrorNotFound
		}
		return &common.StorageError{Op: "update profile", Err: err}
	}
	return Update(p, Row{ColumnUpdatedAt: updatedAt})
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) (Row, error) {
	var deletedAt string
	err := r.db.QueryRowContext(ctx,
		`UPDATE profiles SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL RETURNING deleted_at`,
		timex.FormatTimestamp(r.now()), id).Scan(&deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Row{}, nil
		}
		return nil, &common.StorageError{Op: "delete profile", Err: err}
	}
	return Row{ColumnDeletedAt: deletedAt}, nil
}

func (r *SQLiteRepository) Restore(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE profiles SET deleted_at = NULL WHERE id = ?`, id)
	if err != nil {
		return &common.StorageError{Op: "restore profile", Err: err}
	}
	return nil
}
