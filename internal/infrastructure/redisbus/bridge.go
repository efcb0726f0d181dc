package redisbus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/courseitda/internal/domain/event"
)

// Bridge re-publishes changes received from Redis into a local publisher, usually an
// event.Hub. Changes that this instance published itself are skipped since the hub already
// saw them.
type Bridge struct {
	Client  redis.UniversalClient
	Channel string
	Origin  string
	Local   event.Publisher
	Logger  *logrus.Logger

	ready chan struct{}
}

func NewBridge(client redis.UniversalClient, channel, origin string, local event.Publisher, logger *logrus.Logger) *Bridge {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Bridge{
		Client:  client,
		Channel: channel,
		Origin:  origin,
		Local:   local,
		Logger:  logger,
		ready:   make(chan struct{}),
	}
}

// Ready is closed once the Redis subscription is confirmed.
func (b *Bridge) Ready() <-chan struct{} { return b.ready }

// Run blocks until ctx is done or the subscription fails.
func (b *Bridge) Run(ctx context.Context) error {
	sub := b.Client.Subscribe(ctx, b.Channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("redis subscribe %s: %w", b.Channel, err)
	}
	close(b.ready)

	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			b.handle(ctx, msg.Payload)
		}
	}
}

func (b *Bridge) handle(ctx context.Context, payload string) {
	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		if b.Logger != nil {
			b.Logger.WithError(err).Warn("drop malformed change message")
		}
		return
	}
	if env.Origin == b.Origin {
		return
	}
	_ = b.Local.Publish(ctx, env.Change)
}
