// Package redisbus carries store change notifications and key/value state over Redis so
// several API instances see each other's writes.
package redisbus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/courseitda/internal/domain/event"
)

const DefaultChannel = "courseitda:changes"

// envelope tags a change with the instance that produced it.
type envelope struct {
	Origin string       `json:"origin"`
	Change event.Change `json:"change"`
}

// Publisher sends changes as JSON on a Redis pub/sub channel.
type Publisher struct {
	Client  redis.UniversalClient
	Channel string
	Origin  string
}

func NewPublisher(client redis.UniversalClient, channel, origin string) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{Client: client, Channel: channel, Origin: origin}
}

func (p *Publisher) Publish(ctx context.Context, c event.Change) error {
	b, err := json.Marshal(envelope{Origin: p.Origin, Change: c})
	if err != nil {
		return err
	}
	if err := p.Client.Publish(ctx, p.Channel, b).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", p.Channel, err)
	}
	return nil
}
