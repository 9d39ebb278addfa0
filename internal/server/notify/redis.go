package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultStream is the stream RedisBus appends to when none is configured.
const DefaultStream = "communications"

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Stream   string
}

type streamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisBus publishes communications as entries of a Redis stream. Each entry
// carries the communication id, its definition id and the JSON payload.
type RedisBus struct {
	client streamAdder
	stream string
	closer func() error
}

func NewRedisBus(cfg RedisConfig) *RedisBus {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	b := newRedisBus(client, cfg.Stream)
	b.closer = client.Close
	return b
}

func newRedisBus(client streamAdder, stream string) *RedisBus {
	if stream == "" {
		stream = DefaultStream
	}
	return &RedisBus{client: client, stream: stream}
}

func (b *RedisBus) Publish(ctx context.Context, c *Communication) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode communication: %w", err)
	}

	return b.client.XAdd(ctx, &redis.XAddArgs{
		Stream: b.stream,
		Values: map[string]any{
			"id":            c.ID,
			"definition_id": c.DefinitionID,
			"payload":       string(payload),
		},
	}).Err()
}

func (b *RedisBus) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer()
}
