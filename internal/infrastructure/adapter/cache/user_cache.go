package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campuspoints/points-api/internal/domain/entity"
	"github.com/campuspoints/points-api/internal/domain/port/core"
)

// UserCache is a read-through cache for user profiles served by the
// HTTP layer. Balance mutations never consult it; they always go
// through the database, and the mutating handlers invalidate the
// cached entry afterwards. A nil *UserCache is valid and disables
// caching entirely.
type UserCache struct {
	client *redis.Client
	ttl    time.Duration
	logger core.Logger
}

// Config contains cache connection settings
type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewUserCache connects to Redis and returns a user cache. The
// connection is verified up front so a misconfigured cache fails at
// startup instead of on first request.
func NewUserCache(ctx context.Context, config Config, logger core.Logger) (*UserCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", config.Addr, err)
	}

	ttl := config.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &UserCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}, nil
}

// Get retrieves a cached user. The second return value reports whether
// the entry was present.
func (c *UserCache) Get(ctx context.Context, userID uint64) (*entity.User, bool) {
	if c == nil {
		return nil, false
	}

	val, err := c.client.Get(ctx, userKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("Cache read failed", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, false
	}

	var user entity.User
	if err := json.Unmarshal([]byte(val), &user); err != nil {
		return nil, false
	}
	return &user, true
}

// Set stores a user with the configured TTL. Failures are logged and
// swallowed; the cache is best effort.
func (c *UserCache) Set(ctx context.Context, user *entity.User) {
	if c == nil || user == nil {
		return
	}

	b, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, userKey(user.ID), b, c.ttl).Err(); err != nil {
		c.logger.Warn("Cache write failed", map[string]any{
			"user_id": user.ID,
			"error":   err.Error(),
		})
	}
}

// Invalidate removes a user's cached entry after a balance mutation
func (c *UserCache) Invalidate(ctx context.Context, userID uint64) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, userKey(userID)).Err(); err != nil {
		c.logger.Warn("Cache invalidation failed", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
	}
}

// Close releases the Redis connection
func (c *UserCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

func userKey(userID uint64) string {
	return fmt.Sprintf("user:%d", userID)
}
