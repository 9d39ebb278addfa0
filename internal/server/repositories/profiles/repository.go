// Package profiles is the profile store: persistence of models.Profile with
// soft delete, plus the row hydration used by every backend.
package profiles

import (
	"context"

	"github.com/dmitrijs2005/authbridge/internal/server/models"
)

// Repository persists profiles. Lookups never return soft-deleted rows.
type Repository interface {
	// FindByID returns common.ErrorNotFound for unknown or deleted ids.
	FindByID(ctx context.Context, id string) (*models.Profile, error)

	// Save inserts when p.ID is empty (assigning ID and CreatedAt) and
	// otherwise updates by id (refreshing UpdatedAt).
	Save(ctx context.Context, p *models.Profile) error

	// Delete sets deleted_at and returns the stored value as a partial row
	// for Update. Deleting an already deleted profile is a no-op and returns
	// an empty row.
	Delete(ctx context.Context, id string) (Row, error)

	// Restore clears deleted_at unconditionally.
	Restore(ctx context.Context, id string) error
}

// Column names of the profiles table, also used as row keys.
const (
	ColumnID        = "id"
	ColumnName      = "name"
	ColumnCreatedAt = "created_at"
	ColumnUpdatedAt = "updated_at"
	ColumnDeletedAt = "deleted_at"
)
