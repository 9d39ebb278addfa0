package notify

import (
	"context"

	"github.com/dmitrijs2005/authbridge/internal/logging"
)

// LogBus accepts every communication and writes it to the log. Links in the
// context are logged too, so it is meant for development only.
type LogBus struct {
	logger logging.Logger
}

func NewLogBus(logger logging.Logger) *LogBus {
	return &LogBus{logger: logger.With("module", "notify.logbus")}
}

func (b *LogBus) Publish(ctx context.Context, c *Communication) error {
	b.logger.Info(ctx, "communication",
		"id", c.ID,
		"definition", c.DefinitionID,
		"channels", c.Channels,
		"recipients", c.Recipients,
		"context", c.Context,
	)
	return nil
}
