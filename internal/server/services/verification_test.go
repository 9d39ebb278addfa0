package services

import (
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/authbridge/internal/common"
	"github.com/dmitrijs2005/authbridge/internal/logging"
	"github.com/dmitrijs2005/authbridge/internal/server/authengine"
	"github.com/dmitrijs2005/authbridge/internal/server/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationSender_Send(t *testing.T) {
	d, rec := newRecorderDispatcher()
	h := NewVerificationSender(d, testVerifyURL, logging.Nop{})

	rc := authengine.NewRegistrationContext(map[string]any{
		authengine.KeyEmail:       "a@example.com",
		authengine.KeyDisplayName: "Ann",
	})
	token := authengine.MagicLinkToken{Token: "tok123", TokenType: authengine.TokenTypeRegistration}
	require.NoError(t, h.Send(context.Background(), rc, token))

	sent := rec.Sent()
	require.Len(t, sent, 1)
	link := testVerifyURL + "?token=tok123"
	assert.Equal(t, common.DefinitionEmailVerification, sent[0].DefinitionID)
	assert.Equal(t, notify.ChannelContext{
		"subject": {"name": "Ann"},
		"body":    {"name": "Ann", "link": link},
	}, sent[0].Context)
	assert.Equal(t, "registration", sent[0].Metadata["tokenType"])
}

func TestVerificationSender_DisplayNameFromAdditionalData(t *testing.T) {
	d, rec := newRecorderDispatcher()
	h := NewVerificationSender(d, testVerifyURL, logging.Nop{})

	require.NoError(t, h.Send(context.Background(), registration("a@example.com", "Ann"), authengine.MagicLinkToken{Token: "t"}))
	require.Len(t, rec.Sent(), 1)
	assert.Equal(t, "Ann", rec.Sent()[0].Recipients[0].Name)
}

func TestVerificationSender_MissingFields(t *testing.T) {
	tests := []struct {
		name  string
		data  map[string]any
		field string
	}{
		{name: "email", data: map[string]any{authengine.KeyDisplayName: "Ann"}, field: "email"},
		{name: "display name", data: map[string]any{authengine.KeyEmail: "a@example.com"}, field: "additionalData.displayName"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, rec := newRecorderDispatcher()
			h := NewVerificationSender(d, testVerifyURL, logging.Nop{})

			err := h.Send(context.Background(), authengine.NewRegistrationContext(tt.data), authengine.MagicLinkToken{Token: "t"})
			var mf *common.MissingFieldError
			require.ErrorAs(t, err, &mf)
			assert.Equal(t, tt.field, mf.Field)
			assert.Empty(t, rec.Sent())
		})
	}
}

func TestVerificationSender_TokenIsEscaped(t *testing.T) {
	d, rec := newRecorderDispatcher()
	h := NewVerificationSender(d, testVerifyURL, logging.Nop{})

	require.NoError(t, h.Send(context.Background(), registration("a@example.com", "Ann"), authengine.MagicLinkToken{Token: "a&b"}))
	link := rec.Sent()[0].Context["body"]["link"]
	assert.True(t, strings.HasSuffix(link, "?token=a%26b"), link)
}
