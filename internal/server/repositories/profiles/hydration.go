package profiles

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authbridge/internal/server/models"
	"github.com/dmitrijs2005/authbridge/internal/timex"
)

// ErrIDMismatch is returned when a row tries to change a persisted id.
var ErrIDMismatch = errors.New("profile id cannot change")

// Row is the storage-side representation of a profile. A key mapped to nil
// is an explicit null, which is different from an absent key.
type Row map[string]any

// Dehydrate maps every profile attribute to a row. Unset attributes are
// present as nil; timestamps use timex.TimestampLayout.
func Dehydrate(p *models.Profile) Row {
	return Row{
		ColumnID:        nullableString(p.ID),
		ColumnName:      nullableString(p.Name),
		ColumnCreatedAt: nullableTimestamp(p.CreatedAt),
		ColumnUpdatedAt: nullableTimestamp(p.UpdatedAt),
		ColumnDeletedAt: nullableTimestamp(p.DeletedAt),
	}
}

// Hydrate builds a profile from row. Missing keys leave attributes unset.
func Hydrate(row Row) (*models.Profile, error) {
	p := &models.Profile{}
	if err := Update(p, row); err != nil {
		return nil, err
	}
	return p, nil
}

// Update applies only the keys present in row. A present nil clears the
// attribute, except id which, once assigned, cannot be cleared or changed.
func Update(p *models.Profile, row Row) error {
	if v, ok := row[ColumnID]; ok {
		id, err := stringValue(v)
		if err != nil {
			return fmt.Errorf("hydrate %s: %w", ColumnID, err)
		}
		if id != "" {
			if p.ID != "" && p.ID != id {
				return fmt.Errorf("%w: %s -> %s", ErrIDMismatch, p.ID, id)
			}
			p.ID = id
		}
	}

	if v, ok := row[ColumnName]; ok {
		name, err := stringValue(v)
		if err != nil {
			return fmt.Errorf("hydrate %s: %w", ColumnName, err)
		}
		p.Name = name
	}

	for _, f := range []struct {
		key string
		dst **time.Time
	}{
		{ColumnCreatedAt, &p.CreatedAt},
		{ColumnUpdatedAt, &p.UpdatedAt},
		{ColumnDeletedAt, &p.DeletedAt},
	} {
		v, ok := row[f.key]
		if !ok {
			continue
		}
		ts, err := timestampValue(v)
		if err != nil {
			return fmt.Errorf("hydrate %s: %w", f.key, err)
		}
		*f.dst = ts
	}

	return nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullableTimestamp(t *time.Time) any {
	if t == nil {
		return nil
	}
	return timex.FormatTimestamp(*t)
}

func stringValue(v any) (string, error) {
	switch s := v.(type) {
	case nil:
		return "", nil
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	case sql.NullString:
		return s.String, nil
	case fmt.Stringer:
		return s.String(), nil
	default:
		return "", fmt.Errorf("unsupported type %T", v)
	}
}

func timestampValue(v any) (*time.Time, error) {
	var t time.Time
	switch ts := v.(type) {
	case nil:
		return nil, nil
	case time.Time:
		t = ts
	case *time.Time:
		if ts == nil {
			return nil, nil
		}
		t = *ts
	case sql.NullTime:
		if !ts.Valid {
			return nil, nil
		}
		t = ts.Time
	case sql.NullString:
		if !ts.Valid {
			return nil, nil
		}
		return timestampValue(ts.String)
	case []byte:
		return timestampValue(string(ts))
	case string:
		parsed, err := timex.ParseTimestamp(ts)
		if err != nil {
			return nil, err
		}
		t = parsed
	default:
		return nil, fmt.Errorf("unsupported type %T", v)
	}
	t = timex.TruncateMicro(t.UTC())
	return &t, nil
}
