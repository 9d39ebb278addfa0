package services

import (
	"context"

	"github.com/dmitrijs2005/authbridge/internal/common"
	"github.com/dmitrijs2005/authbridge/internal/logging"
	"github.com/dmitrijs2005/authbridge/internal/server/authengine"
	"github.com/dmitrijs2005/authbridge/internal/server/notify"
)

// VerificationSender is the SendVerificationLink hook. Everything it needs
// is already in the registration context, so it touches no store.
type VerificationSender struct {
	notifier  Notifier
	verifyURL string
	logger    logging.Logger
}

func NewVerificationSender(notifier Notifier, verifyURL string, logger logging.Logger) *VerificationSender {
	return &VerificationSender{
		notifier:  notifier,
		verifyURL: verifyURL,
		logger:    logger.With("module", "hooks", "hook", "send_verification_link"),
	}
}

func (h *VerificationSender) Send(ctx context.Context, rc authengine.RegistrationContext, token authengine.MagicLinkToken) (err error) {
	ctx, span := startHookSpan(ctx, "SendVerificationLink")
	defer func() { endSpan(span, err) }()

	email, err := rc.String(authengine.KeyEmail)
	if err != nil {
		h.logger.Error(ctx, "verification link not sent", "error", err)
		return err
	}
	name, err := displayName(rc)
	if err != nil {
		h.logger.Error(ctx, "verification link not sent", "error", err)
		return err
	}

	link, err := verificationLink(h.verifyURL, token.Token)
	if err != nil {
		return err
	}

	cc := notify.ChannelContext{
		"subject": {"name": name},
		"body":    {"name": name, "link": link},
	}
	recipients := []notify.Recipient{{Email: email, Name: name}}

	if err := h.notifier.BuildAndSend(ctx, common.DefinitionEmailVerification, recipients, cc, tokenTypeOption(token)...); err != nil {
		return err
	}

	h.logger.Info(ctx, "verification link sent", "user_id", authengine.DisplayID(token.UserID))
	return nil
}

// displayName prefers a top-level displayName and falls back to
// additionalData.displayName.
func displayName(rc authengine.RegistrationContext) (string, error) {
	if name, err := rc.String(authengine.KeyDisplayName); err == nil {
		return name, nil
	}
	return rc.AdditionalString(authengine.KeyDisplayName)
}
