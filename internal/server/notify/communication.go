package notify

import "context"

// Recipient is an address plus display name pair.
type Recipient struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// ChannelContext holds one payload per channel part, keyed by part name
// (subject, body, email, sms). Each part may carry a different shape of the
// same logical data.
type ChannelContext map[string]map[string]string

// Communication is a fully formed delivery request.
type Communication struct {
	ID           string            `json:"id"`
	Channels     []string          `json:"channels"`
	DefinitionID string            `json:"definitionId"`
	Context      ChannelContext    `json:"context"`
	Recipients   []Recipient       `json:"recipients"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// Bus accepts communications for delivery. Publish must return once the
// request has been accepted or rejected; delivery happens elsewhere.
type Bus interface {
	Publish(ctx context.Context, c *Communication) error
}
