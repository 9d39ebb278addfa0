// Package users adapts the engine's users table to authengine.UserRepository.
package users

import (
	"context"

	"github.com/dmitrijs2005/authbridge/internal/server/authengine"
)

type Repository interface {
	authengine.UserRepository
	Create(ctx context.Context, email string) (authengine.User, error)
}
