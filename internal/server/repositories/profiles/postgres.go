package profiles

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/authbridge/internal/common"
	"github.com/dmitrijs2005/authbridge/internal/dbx"
	"github.com/dmitrijs2005/authbridge/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

// invalid_text_representation: the id is not a valid uuid, so no row can match.
const pgInvalidTextRepresentation = "22P02"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Profile, error) {
	if id == "" {
		return nil, common.ErrorNotFound
	}

	query :=
		`SELECT id, name, created_at, updated_at, deleted_at FROM profiles
		 WHERE id = $1 AND deleted_at IS NULL
		 `

	var (
		pid                             string
		name                            sql.NullString
		createdAt, updatedAt, deletedAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(&pid, &name, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
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

func (r *PostgresRepository) Save(ctx context.Context, p *models.Profile) error {
	if p.ID == "" {
		return r.insert(ctx, p)
	}
	return r.update(ctx, p)
}

func (r *PostgresRepository) insert(ctx context.Context, p *models.Profile) error {
	row := Dehydrate(p)

	query :=
		`INSERT INTO profiles (name)
		 VALUES ($1)
		 RETURNING id, created_at
		 `

	var (
		id        string
		createdAt sql.NullTime
	)
	if err := r.db.QueryRowContext(ctx, query, row[ColumnName]).Scan(&id, &createdAt); err != nil {
		return &common.StorageError{Op: "insert profile", Err: err}
	}

	return Update(p, Row{ColumnID: id, ColumnCreatedAt: createdAt})
}

func (r *PostgresRepository) update(ctx context.Context, p *models.Profile) error {
	row := Dehydrate(p)

	query :=
		`UPDATE profiles SET name = $1, updated_at = NOW()
		 WHERE id = $2
		 RETURNING updated_at
		 `

	var updatedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, row[ColumnName], row[ColumnID]).Scan(&updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return common.ErrorNotFound
		}
		return &common.StorageError{Op: "update profile", Err: err}
	}

	return Update(p, Row{ColumnUpdatedAt: updatedAt})
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (Row, error) {
	query :=
		`UPDATE profiles SET deleted_at = NOW()
		 WHERE id = $1 AND deleted_at IS NULL
		 RETURNING deleted_at
		 `

	var deletedAt sql.NullTime
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&deletedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidID(err) {
			return Row{}, nil
		}
		return nil, &common.StorageError{Op: "delete profile", Err: err}
	}
	return Row{ColumnDeletedAt: deletedAt}, nil
}

func (r *PostgresRepository) Restore(ctx context.Context, id string) error {
	query :=
		`UPDATE profiles SET deleted_at = NULL
		 WHERE id = $1
		 `

	if _, err := r.db.ExecContext(ctx, query, id); err != nil && !isInvalidID(err) {
		return &common.StorageError{Op: "restore profile", Err: err}
	}
	return nil
}

func isInvalidID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgInvalidTextRepresentation
}
