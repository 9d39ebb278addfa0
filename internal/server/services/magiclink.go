package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/authbridge/internal/common"
	"github.com/dmitrijs2005/authbridge/internal/logging"
	"github.com/dmitrijs2005/authbridge/internal/server/authengine"
	"github.com/dmitrijs2005/authbridge/internal/server/models"
	"github.com/dmitrijs2005/authbridge/internal/server/notify"
	"go.opentelemetry.io/otel/attribute"
)

// ProfileFinder looks up active profiles by id.
type ProfileFinder interface {
	FindByID(ctx context.Context, id string) (*models.Profile, error)
}

// Notifier hands a communication to the delivery bus.
type Notifier interface {
	BuildAndSend(ctx context.Context, definitionID string, recipients []notify.Recipient, cc notify.ChannelContext, opts ...notify.Option) error
}

// MagicLinkSender is the SendMagicLink hook.
type MagicLinkSender struct {
	users     authengine.UserRepository
	profiles  ProfileFinder
	notifier  Notifier
	verifyURL string
	logger    logging.Logger
}

func NewMagicLinkSender(users authengine.UserRepository, profiles ProfileFinder, notifier Notifier, verifyURL string, logger logging.Logger) *MagicLinkSender {
	return &MagicLinkSender{
		users:     users,
		profiles:  profiles,
		notifier:  notifier,
		verifyURL: verifyURL,
		logger:    logger.With("module", "hooks", "hook", "send_magic_link"),
	}
}

// Send resolves the user and its profile, then dispatches the login link.
// Nothing is sent unless both lookups succeed.
func (h *MagicLinkSender) Send(ctx context.Context, token authengine.MagicLinkToken) (err error) {
	ctx, span := startHookSpan(ctx, "SendMagicLink",
		attribute.String("user.id", authengine.DisplayID(token.UserID)),
		attribute.String("token.type", string(token.TokenType)))
	defer func() { endSpan(span, err) }()

	user, err := h.findUser(ctx, token.UserID)
	if err != nil {
		h.logger.Error(ctx, "magic link not sent", "user_id", authengine.DisplayID(token.UserID), "error", err)
		return err
	}

	profile, err := h.findProfile(ctx, user.SystemID())
	if err != nil {
		h.logger.Error(ctx, "magic link not sent", "user_id", authengine.DisplayID(token.UserID), "error", err)
		return err
	}

	link, err := verificationLink(h.verifyURL, token.Token)
	if err != nil {
		return err
	}

	name, email := profile.Name, user.Email()
	cc := notify.ChannelContext{
		"subject": {"name": name},
		"body":    {"name": name, "link": link},
		"email":   {"name": name, "link": link},
		"sms":     {"name": name, "link": link, "email": email},
	}
	recipients := []notify.Recipient{{Email: email, Name: name}}

	if err := h.notifier.BuildAndSend(ctx, common.DefinitionMagicLink, recipients, cc, tokenTypeOption(token)...); err != nil {
		return err
	}

	h.logger.Info(ctx, "magic link sent", "user_id", authengine.DisplayID(token.UserID), "profile_id", profile.ID)
	return nil
}

func (h *MagicLinkSender) findUser(ctx context.Context, userID any) (authengine.User, error) {
	id, err := authengine.CoerceID(userID)
	if err != nil {
		return nil, common.NewNotFoundError("user not found for magic link: %s", authengine.DisplayID(userID))
	}
	user, err := h.users.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewNotFoundError("user not found for magic link: %s", id)
		}
		return nil, err
	}
	return user, nil
}

// findProfile coerces the system id to the store's string id. A deleted
// profile is reported as not found.
func (h *MagicLinkSender) findProfile(ctx context.Context, systemID any) (*models.Profile, error) {
	id, err := authengine.CoerceID(systemID)
	if err != nil {
		return nil, common.NewNotFoundError("profile not found for user: %s", authengine.DisplayID(systemID))
	}
	profile, err := h.profiles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.NewNotFoundError("profile not found for user: %s", id)
		}
		return nil, err
	}
	return profile, nil
}

func verificationLink(base, token string) (string, error) {
	link, err := notify.BuildURL(base, notify.QueryParam{Key: "token", Value: token})
	if err != nil {
		return "", &common.CommunicationError{Op: "build verification link", Err: err}
	}
	return link, nil
}

func tokenTypeOption(token authengine.MagicLinkToken) []notify.Option {
	if token.TokenType == "" {
		return nil
	}
	return []notify.Option{notify.WithMetadata("tokenType", string(token.TokenType))}
}
