// Package cache wraps an LLM with a Redis completion cache. Identical
// prompts at the same temperature reuse the stored response for the
// configured TTL.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"tariften-backend/internal/core/ai/openai"
	"tariften-backend/internal/pkg/common"
)

const keyPrefix = "tariften:completion:"

// CachedLLM memoizes completions in Redis. Cache failures fall through to
// the wrapped client.
type CachedLLM struct {
	inner openai.LLM
	rdb   *redis.Client
	ttl   time.Duration
}

// Wrap connects to Redis and returns the caching wrapper. A failed ping
// returns the inner client unchanged.
func Wrap(inner openai.LLM, addr string, ttl time.Duration) openai.LLM {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		common.LogWarn("completion cache unavailable, continuing without it",
			zap.String("addr", addr), zap.Error(err))
		return inner
	}
	common.LogInfo("completion cache connected", zap.String("addr", addr))
	return &CachedLLM{inner: inner, rdb: rdb, ttl: ttl}
}

func (c *CachedLLM) Configured() bool { return c.inner.Configured() }

func cacheKey(system, user string, temperature float64) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s\x00%s\x00%.2f", system, user, temperature)))
	return keyPrefix + hex.EncodeToString(h[:])
}

// Complete returns the cached response when present, otherwise calls the
// inner client and stores the result.
func (c *CachedLLM) Complete(ctx context.Context, system, user string, temperature float64) (string, error) {
	key := cacheKey(system, user, temperature)

	if cached, err := c.rdb.Get(ctx, key).Result(); err == nil && cached != "" {
		common.LogDebug("completion cache hit", zap.String("key", key))
		return cached, nil
	} else if err != nil && err != redis.Nil {
		common.LogWarn("completion cache read failed", zap.Error(err))
	}

	content, err := c.inner.Complete(ctx, system, user, temperature)
	if err != nil {
		return "", err
	}

	if err := c.rdb.Set(ctx, key, content, c.ttl).Err(); err != nil {
		common.LogWarn("completion cache write failed", zap.Error(err))
	}
	return content, nil
}
