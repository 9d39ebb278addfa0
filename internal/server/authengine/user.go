package authengine

import "context"

// User is the engine-owned user record as seen by hooks.
type User interface {
	// ID is the engine identifier, in whatever form the engine uses.
	ID() any
	Email() string
	// SystemID is the back-reference to the local profile id, possibly
	// unset (nil) or numeric depending on the engine's storage.
	SystemID() any
	SetSystemID(id string)
}

// UserRepository is the engine's user lookup and persistence contract.
type UserRepository interface {
	// FindUserByID returns common.ErrorNotFound when the engine has no
	// user with that id.
	FindUserByID(ctx context.Context, id string) (User, error)
	// Update persists changes made through SetSystemID.
	Update(ctx context.Context, user User) error
}

// UserRecord is a plain User implementation used by the SQL adapters.
type UserRecord struct {
	UserID    string
	UserEmail string
	System    any
}

func (u *UserRecord) ID() any              { return u.UserID }
func (u *UserRecord) Email() string        { return u.UserEmail }
func (u *UserRecord) SystemID() any        { return u.System }
func (u *UserRecord) SetSystemID(id string) { u.System = id }
