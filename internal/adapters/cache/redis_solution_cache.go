package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"insertion-route-service/internal/domain"
	"insertion-route-service/internal/platform/obs"

	"github.com/redis/go-redis/v9"
)

const DefaultTTL = 10 * time.Minute

// RedisSolutionCache keeps recently computed plans in redis as JSON.
// Keys are expected to be consistent (e.g. built by services.PlanCacheKey)
// by the caller.
type RedisSolutionCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisSolutionCache(client *redis.Client, ttl time.Duration) *RedisSolutionCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisSolutionCache{Client: client, TTL: ttl}
}

// Fetch a cached plan. A miss is reported as ok == false with a nil error.
func (c *RedisSolutionCache) Get(ctx context.Context, key string) (_ *domain.Plan, ok bool, err error) {
	defer obs.Time(ctx, "solution.cache.Get")(&err)

	if c.Client == nil {
		return nil, false, errors.New("solution cache: client is nil")
	}

	data, err := c.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("solution cache get %q: %w", key, err)
	}

	var plan domain.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, false, fmt.Errorf("solution cache get %q: decode: %w", key, err)
	}

	return &plan, true, nil
}

// Store a plan under key for the configured TTL.
func (c *RedisSolutionCache) Put(ctx context.Context, key string, plan *domain.Plan) error {
	if c.Client == nil {
		return errors.New("solution cache: client is nil")
	}

	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("solution cache put %q: encode: %w", key, err)
	}

	if err := c.Client.Set(ctx, key, data, c.TTL).Err(); err != nil {
		return fmt.Errorf("solution cache put %q: %w", key, err)
	}

	return nil
}
