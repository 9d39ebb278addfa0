package notify

import (
	"context"
	"time"

	"github.com/dmitrijs2005/authbridge/internal/common"
	"github.com/dmitrijs2005/authbridge/internal/logging"
	"github.com/google/uuid"
)

// DefaultChannels is used when a Dispatcher is built without channels.
var DefaultChannels = []string{common.ChannelEmail}

type Dispatcher struct {
	bus      Bus
	channels []string
	timeout  time.Duration
	logger   logging.Logger
	newID    func() string
}

// Option customises a single communication before it is published.
type Option func(*Communication)

// WithMetadata attaches a key/value pair that buses carry alongside the
// payload.
func WithMetadata(key, value string) Option {
	return func(c *Communication) {
		if c.Metadata == nil {
			c.Metadata = map[string]string{}
		}
		c.Metadata[key] = value
	}
}

// NewDispatcher returns a Dispatcher publishing to bus. A zero timeout
// leaves the caller's deadline in charge.
func NewDispatcher(bus Bus, channels []string, timeout time.Duration, logger logging.Logger) *Dispatcher {
	if len(channels) == 0 {
		channels = DefaultChannels
	}
	return &Dispatcher{
		bus:      bus,
		channels: append([]string(nil), channels...),
		timeout:  timeout,
		logger:   logger.With("module", "notify"),
		newID:    uuid.NewString,
	}
}

// BuildAndSend assembles one communication and publishes it.
func (d *Dispatcher) BuildAndSend(ctx context.Context, definitionID string, recipients []Recipient, cc ChannelContext, opts ...Option) error {
	c := &Communication{
		ID:           d.newID(),
		Channels:     append([]string(nil), d.channels...),
		DefinitionID: definitionID,
		Context:      cc,
		Recipients:   recipients,
	}
	for _, opt := range opts {
		opt(c)
	}

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	if err := d.bus.Publish(ctx, c); err != nil {
		d.logger.Error(ctx, "communication rejected", "definition", definitionID, "communication", c.ID, "error", err)
		return &common.CommunicationError{Op: "publish " + definitionID, Err: err}
	}

	d.logger.Debug(ctx, "communication accepted", "definition", definitionID, "communication", c.ID, "recipients", len(recipients))
	return nil
}
