// Package models defines server-side data models persisted in the database.
package models

import "time"

// Profile is the locally owned user profile. ID is empty until the store
// assigns one on first save; DeletedAt non-nil means soft-deleted.
type Profile struct {
	ID        string
	Name      string
	CreatedAt *time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
}

// NewProfile returns an unsaved profile carrying only a display name.
func NewProfile(name string) *Profile {
	return &Profile{Name: name}
}

// IsDeleted reports whether the profile is soft-deleted.
func (p *Profile) IsDeleted() bool {
	return p.DeletedAt != nil
}

// IsPersisted reports whether the store has assigned an id.
func (p *Profile) IsPersisted() bool {
	return p.ID != ""
}

// SoftDelete marks the profile deleted at now.
func (p *Profile) SoftDelete(now time.Time) {
	p.DeletedAt = &now
}

// Restore clears the deletion mark.
func (p *Profile) Restore() {
	p.DeletedAt = nil
}
