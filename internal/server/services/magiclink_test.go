package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/authbridge/internal/common"
	"github.com/dmitrijs2005/authbridge/internal/logging"
	"github.com/dmitrijs2005/authbridge/internal/server/authengine"
	"github.com/dmitrijs2005/authbridge/internal/server/models"
	"github.com/dmitrijs2005/authbridge/internal/server/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMagicLinkSender_Send(t *testing.T) {
	users := newFakeUsers(&authengine.UserRecord{UserID: "u-1", UserEmail: "a@example.com", System: "p-1"})
	profiles := &fakeProfiles{profiles: map[string]*models.Profile{"p-1": {ID: "p-1", Name: "Ann"}}}
	d, rec := newRecorderDispatcher()

	h := NewMagicLinkSender(users, profiles, d, testVerifyURL, logging.Nop{})
	err := h.Send(context.Background(), authengine.MagicLinkToken{UserID: "u-1", Token: "tok123", TokenType: authengine.TokenTypeLogin})
	require.NoError(t, err)

	sent := rec.Sent()
	require.Len(t, sent, 1)
	c := sent[0]
	link := testVerifyURL + "?token=tok123"

	assert.Equal(t, common.DefinitionMagicLink, c.DefinitionID)
	assert.Equal(t, []string{"email"}, c.Channels)
	assert.Equal(t, []notify.Recipient{{Email: "a@example.com", Name: "Ann"}}, c.Recipients)
	assert.Equal(t, notify.ChannelContext{
		"subject": {"name": "Ann"},
		"body":    {"name": "Ann", "link": link},
		"email":   {"name": "Ann", "link": link},
		"sms":     {"name": "Ann", "link": link, "email": "a@example.com"},
	}, c.Context)
	assert.Equal(t, "login", c.Metadata["tokenType"])
}

func TestMagicLinkSender_IntegerIdentifiers(t *testing.T) {
	users := newFakeUsers(&authengine.UserRecord{UserID: "42", UserEmail: "a@example.com", System: int64(7)})
	profiles := &fakeProfiles{profiles: map[string]*models.Profile{"7": {ID: "7", Name: "Ann"}}}
	d, rec := newRecorderDispatcher()

	h := NewMagicLinkSender(users, profiles, d, testVerifyURL, logging.Nop{})
	require.NoError(t, h.Send(context.Background(), authengine.MagicLinkToken{UserID: 42, Token: "t"}))

	sent := rec.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Ann", sent[0].Recipients[0].Name)
	assert.Equal(t, []string{"42"}, users.lookups)
}

func TestMagicLinkSender_UnknownUser(t *testing.T) {
	d, rec := newRecorderDispatcher()

	h := NewMagicLinkSender(newFakeUsers(), &fakeProfiles{}, d, testVerifyURL, logging.Nop{})
	err := h.Send(context.Background(), authengine.MagicLinkToken{UserID: "u-404", Token: "t"})

	var nf *common.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "user not found for magic link: u-404", nf.Error())
	assert.Empty(t, rec.Sent())
}

func TestMagicLinkSender_UnknownProfile(t *testing.T) {
	users := newFakeUsers(&authengine.UserRecord{UserID: "u-1", UserEmail: "a@example.com", System: "p-404"})
	d, rec := newRecorderDispatcher()

	h := NewMagicLinkSender(users, &fakeProfiles{}, d, testVerifyURL, logging.Nop{})
	err := h.Send(context.Background(), authengine.MagicLinkToken{UserID: "u-1", Token: "t"})

	var nf *common.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "profile not found for user: p-404", nf.Error())
	assert.Empty(t, rec.Sent())
}

func TestMagicLinkSender_UnlinkedUser(t *testing.T) {
	users := newFakeUsers(&authengine.UserRecord{UserID: "u-1", UserEmail: "a@example.com"})
	d, rec := newRecorderDispatcher()

	h := NewMagicLinkSender(users, &fakeProfiles{}, d, testVerifyURL, logging.Nop{})
	err := h.Send(context.Background(), authengine.MagicLinkToken{UserID: "u-1", Token: "t"})

	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Contains(t, err.Error(), "profile not found for user")
	assert.Empty(t, rec.Sent())
}

func TestMagicLinkSender_DeletedProfileIsNotFound(t *testing.T) {
	deletedAt := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	users := newFakeUsers(&authengine.UserRecord{UserID: "u-1", System: "p-1"})
	profiles := &fakeProfiles{profiles: map[string]*models.Profile{"p-1": {ID: "p-1", Name: "Ann", DeletedAt: &deletedAt}}}
	d, rec := newRecorderDispatcher()

	h := NewMagicLinkSender(users, profiles, d, testVerifyURL, logging.Nop{})
	err := h.Send(context.Background(), authengine.MagicLinkToken{UserID: "u-1", Token: "t"})

	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Empty(t, rec.Sent())
}

func TestMagicLinkSender_StorageErrorPropagates(t *testing.T) {
	users := newFakeUsers()
	users.findErr = &common.StorageError{Op: "select user", Err: errors.New("down")}
	d, rec := newRecorderDispatcher()

	h := NewMagicLinkSender(users, &fakeProfiles{}, d, testVerifyURL, logging.Nop{})
	err := h.Send(context.Background(), authengine.MagicLinkToken{UserID: "u-1", Token: "t"})

	assert.ErrorIs(t, err, common.ErrorStorage)
	assert.Empty(t, rec.Sent())
}

func TestMagicLinkSender_BusRejection(t *testing.T) {
	users := newFakeUsers(&authengine.UserRecord{UserID: "u-1", UserEmail: "a@example.com", System: "p-1"})
	profiles := &fakeProfiles{profiles: map[string]*models.Profile{"p-1": {ID: "p-1", Name: "Ann"}}}
	d, rec := newRecorderDispatcher()
	rec.Err = errors.New("bus down")

	h := NewMagicLinkSender(users, profiles, d, testVerifyURL, logging.Nop{})
	err := h.Send(context.Background(), authengine.MagicLinkToken{UserID: "u-1", Token: "t"})
	assert.ErrorIs(t, err, common.ErrorCommunication)
}

func TestMagicLinkSender_BadVerifyURL(t *testing.T) {
	users := newFakeUsers(&authengine.UserRecord{UserID: "u-1", UserEmail: "a@example.com", System: "p-1"})
	profiles := &fakeProfiles{profiles: map[string]*models.Profile{"p-1": {ID: "p-1", Name: "Ann"}}}
	d, rec := newRecorderDispatcher()

	h := NewMagicLinkSender(users, profiles, d, "/relative", logging.Nop{})
	err := h.Send(context.Background(), authengine.MagicLinkToken{UserID: "u-1", Token: "t"})
	assert.Error(t, err)
	assert.Empty(t, rec.Sent())
}
