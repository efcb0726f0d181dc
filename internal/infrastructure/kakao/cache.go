package kakao

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/courseitda/internal/application"
	"github.com/oksasatya/courseitda/internal/domain/entity"
	"github.com/oksasatya/courseitda/pkg/helpers"
)

const cachePrefix = "place:search:"

// CachedSearcher keeps successful search responses in Redis for TTL.
// Failures are never cached and a Redis outage falls through to the API.
type CachedSearcher struct {
	Next   application.PlaceSearcher
	Redis  redis.Cmdable
	TTL    time.Duration
	Logger *logrus.Logger
}

func NewCachedSearcher(next application.PlaceSearcher, rdb redis.Cmdable, ttl time.Duration, logger *logrus.Logger) *CachedSearcher {
	return &CachedSearcher{Next: next, Redis: rdb, TTL: ttl, Logger: logger}
}

// cacheKey does not include the API key; results do not depend on who asks.
func cacheKey(q application.SearchQuery) string {
	sum := sha256.Sum256([]byte(q.Query + "\x00" + strconv.Itoa(q.Page) + "\x00" + strconv.Itoa(q.Size)))
	return cachePrefix + hex.EncodeToString(sum[:])
}

func (c *CachedSearcher) Search(ctx context.Context, apiKey string, q application.SearchQuery) (*entity.SearchResult, error) {
	key := cacheKey(q)
	var cached entity.SearchResult
	ok, err := helpers.RedisGetJSON(ctx, c.Redis, key, &cached)
	if err != nil && c.Logger != nil {
		c.Logger.WithError(err).WithField("key", key).Warn("search cache read failed")
	}
	if ok {
		return &cached, nil
	}

	res, err := c.Next.Search(ctx, apiKey, q)
	if err != nil {
		return nil, err
	}
	if err := helpers.RedisSetJSON(ctx, c.Redis, key, res, c.TTL); err != nil && c.Logger != nil {
		c.Logger.WithError(err).WithField("key", key).Warn("search cache write failed")
	}
	return res, nil
}
