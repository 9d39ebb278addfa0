// Package common contains shared constants and sentinel errors used across
// authbridge components.
package common

// AccessTokenHeaderName is the gRPC metadata key the authentication engine
// uses to carry its signed caller token on hook invocations.
const AccessTokenHeaderName = "access_token"

// Definition identifiers select the communication template on the delivery bus.
const (
	DefinitionMagicLink         = "auth.magic-link"
	DefinitionEmailVerification = "auth.email-verification"
)

// ChannelEmail is the default delivery channel.
const ChannelEmail = "email"
