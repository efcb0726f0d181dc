package redisbus

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// KV stores session and settings entries as plain Redis strings under Prefix.
// A zero TTL keeps entries until they are deleted.
type KV struct {
	Client redis.Cmdable
	Prefix string
	TTL    time.Duration
}

func NewKV(client redis.Cmdable, prefix string, ttl time.Duration) *KV {
	return &KV{Client: client, Prefix: prefix, TTL: ttl}
}

func (kv *KV) Load(ctx context.Context, key string) (string, bool, error) {
	v, err := kv.Client.Get(ctx, kv.Prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (kv *KV) Save(ctx context.Context, key, value string) error {
	return kv.Client.Set(ctx, kv.Prefix+key, value, kv.TTL).Err()
}

func (kv *KV) Delete(ctx context.Context, key string) error {
	return kv.Client.Del(ctx, kv.Prefix+key).Err()
}
