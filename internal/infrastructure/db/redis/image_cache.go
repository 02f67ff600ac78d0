package redis

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/outfitshare/outfit-api/internal/core/ports"
)

const (
	imageKeyPrefix  = "unsplash:photos:"
	defaultImageTTL = time.Minute
)

// CachingImageSearcher decorates an ImageSearcher with a Redis read-through
// cache keyed by the normalised query. Key format: unsplash:photos:<sha1>
//
// Cache failures never fail a search; the upstream is the source of truth.
//
// The upstream endpoint returns random photos, so repeated searches for the
// same query return the same batch until the entry expires. That trades
// variety for Unsplash rate limit headroom; set a short TTL, or leave Redis
// unconfigured, to get a fresh batch on every request.
type CachingImageSearcher struct {
	inner  ports.ImageSearcher
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewCachingImageSearcher wraps inner. A nil client disables caching.
func NewCachingImageSearcher(inner ports.ImageSearcher, client *redis.Client, ttl time.Duration, log zerolog.Logger) *CachingImageSearcher {
	if ttl <= 0 {
		ttl = defaultImageTTL
	}
	return &CachingImageSearcher{inner: inner, client: client, ttl: ttl, log: log}
}

func (c *CachingImageSearcher) Search(ctx context.Context, query string) (json.RawMessage, error) {
	if c.client == nil {
		return c.inner.Search(ctx, query)
	}

	key := imageKey(query)
	cached, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		return json.RawMessage(cached), nil
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Str("key", key).Msg("image cache read failed")
	}

	body, err := c.inner.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if err := c.client.Set(ctx, key, []byte(body), c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("image cache write failed")
	}
	return body, nil
}

func imageKey(query string) string {
	sum := sha1.Sum([]byte(strings.ToLower(strings.TrimSpace(query))))
	return imageKeyPrefix + hex.EncodeToString(sum[:])
}
