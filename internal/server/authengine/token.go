package authengine

// TokenType distinguishes login links from registration verification links.
type TokenType string

const (
	TokenTypeLogin        TokenType = "login"
	TokenTypeRegistration TokenType = "registration"
)

// MagicLinkToken is a token previously issued by the engine. Only Token is
// read, to build the delivery URL.
type MagicLinkToken struct {
	UserID    any
	Token     string
	TokenType TokenType
}
