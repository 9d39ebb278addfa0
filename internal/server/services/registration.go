package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/authbridge/internal/common"
	"github.com/dmitrijs2005/authbridge/internal/logging"
	"github.com/dmitrijs2005/authbridge/internal/server/authengine"
	"github.com/dmitrijs2005/authbridge/internal/server/models"
	"go.opentelemetry.io/otel/attribute"
)

// ProfileCreator persists a new profile from a display name.
type ProfileCreator interface {
	Create(ctx context.Context, name string) (*models.Profile, error)
}

// UserRegistration is the UserCreated hook: it provisions a profile for a
// user the engine has just created and links the two through the user's
// system id.
type UserRegistration struct {
	profiles ProfileCreator
	users    authengine.UserRepository
	logger   logging.Logger
}

func NewUserRegistration(profiles ProfileCreator, users authengine.UserRepository, logger logging.Logger) *UserRegistration {
	return &UserRegistration{
		profiles: profiles,
		users:    users,
		logger:   logger.With("module", "hooks", "hook", "user_created"),
	}
}

// Execute creates the profile before looking the user up. An unknown user
// therefore leaves an orphan profile behind, which is logged; the engine
// only calls this hook for a user it has just created.
func (h *UserRegistration) Execute(ctx context.Context, rc authengine.RegistrationContext, userID any) (err error) {
	ctx, span := startHookSpan(ctx, "UserCreated", attribute.String("user.id", authengine.DisplayID(userID)))
	defer func() { endSpan(span, err) }()

	name, err := rc.AdditionalString(authengine.KeyDisplayName)
	if err != nil {
		h.logger.Error(ctx, "registration context rejected", "error", err)
		return err
	}

	id, err := authengine.CoerceID(userID)
	if err != nil {
		return common.NewNotFoundError("user not found: %s", authengine.DisplayID(userID))
	}

	profile, err := h.profiles.Create(ctx, name)
	if err != nil {
		h.logger.Error(ctx, "profile not created", "user_id", id, "error", err)
		return err
	}

	user, err := h.users.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			h.logger.Warn(ctx, "user not found, profile left unlinked", "user_id", id, "profile_id", profile.ID)
			return common.NewNotFoundError("user not found: %s", id)
		}
		h.logger.Error(ctx, "user lookup failed", "user_id", id, "error", err)
		return err
	}

	user.SetSystemID(profile.ID)
	if err := h.users.Update(ctx, user); err != nil {
		h.logger.Error(ctx, "user not linked", "user_id", id, "profile_id", profile.ID, "error", err)
		return err
	}

	h.logger.Info(ctx, "profile linked", "user_id", id, "profile_id", profile.ID)
	return nil
}
